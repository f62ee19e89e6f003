package mirror

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
)

// List returns the collection in insertion order.
func (m *Mirror) List(ctx context.Context, collection string) ([]rostersdk.Roaster, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT data, local_only FROM profiles
		WHERE collection = ?
		ORDER BY position ASC
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("mirror: list %s: %w", collection, err)
	}
	defer rows.Close()

	out := []rostersdk.Roaster{}
	for rows.Next() {
		var (
			data      string
			localOnly bool
		)
		if err := rows.Scan(&data, &localOnly); err != nil {
			return nil, fmt.Errorf("mirror: scan profile: %w", err)
		}

		var r rostersdk.Roaster
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("mirror: decode profile: %w", err)
		}
		r.LocalOnly = localOnly
		out = append(out, r)
	}
	return out, rows.Err()
}

func (m *Mirror) GetProfile(ctx context.Context, collection, id string) (rostersdk.Roaster, error) {
	var (
		data      string
		localOnly bool
	)
	err := m.db.QueryRowContext(ctx,
		`SELECT data, local_only FROM profiles WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&data, &localOnly)
	if errors.Is(err, sql.ErrNoRows) {
		return rostersdk.Roaster{}, ErrNotFound
	}
	if err != nil {
		return rostersdk.Roaster{}, fmt.Errorf("mirror: get profile: %w", err)
	}

	var r rostersdk.Roaster
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return rostersdk.Roaster{}, fmt.Errorf("mirror: decode profile: %w", err)
	}
	r.LocalOnly = localOnly
	return r, nil
}

// Add appends profiles to the collection. A profile whose id is already
// present replaces the stored copy in place.
func (m *Mirror) Add(ctx context.Context, collection string, profiles ...rostersdk.Roaster) error {
	return m.withTx(ctx, func(tx *sql.Tx) error {
		return put(ctx, tx, collection, profiles)
	})
}

// Replace swaps the server-sourced part of the collection for profiles.
// Local-only records are kept, after the new ones.
func (m *Mirror) Replace(ctx context.Context, collection string, profiles []rostersdk.Roaster) error {
	return m.withTx(ctx, func(tx *sql.Tx) error {
		local, err := listLocal(ctx, tx, collection)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE collection = ?`, collection); err != nil {
			return fmt.Errorf("mirror: replace %s: %w", collection, err)
		}
		if err := put(ctx, tx, collection, profiles); err != nil {
			return err
		}
		return put(ctx, tx, collection, local)
	})
}

// Put stores p, replacing an existing copy with the same id or appending.
func (m *Mirror) Put(ctx context.Context, collection string, p rostersdk.Roaster) error {
	return m.Add(ctx, collection, p)
}

// Remove deletes the given ids and reports how many were present.
func (m *Mirror) Remove(ctx context.Context, collection string, ids ...string) (int64, error) {
	var n int64
	err := m.withTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			res, err := tx.ExecContext(ctx,
				`DELETE FROM profiles WHERE collection = ? AND id = ?`, collection, id)
			if err != nil {
				return fmt.Errorf("mirror: remove profile: %w", err)
			}
			affected, _ := res.RowsAffected()
			n += affected
		}
		return nil
	})
	return n, err
}

// Clear empties the collection.
func (m *Mirror) Clear(ctx context.Context, collection string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM profiles WHERE collection = ?`, collection); err != nil {
		return fmt.Errorf("mirror: clear %s: %w", collection, err)
	}
	return nil
}

func (m *Mirror) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func put(ctx context.Context, tx *sql.Tx, collection string, profiles []rostersdk.Roaster) error {
	for _, p := range profiles {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("mirror: encode profile: %w", err)
		}

		// Existing rows keep their position.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO profiles (collection, id, position, local_only, data)
			VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM profiles WHERE collection = ?), ?, ?)
			ON CONFLICT(collection, id) DO UPDATE SET
				local_only = excluded.local_only,
				data = excluded.data
		`, collection, p.ID, collection, p.LocalOnly, string(data))
		if err != nil {
			return fmt.Errorf("mirror: put profile: %w", err)
		}
	}
	return nil
}

func listLocal(ctx context.Context, tx *sql.Tx, collection string) ([]rostersdk.Roaster, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT data FROM profiles
		WHERE collection = ? AND local_only = 1
		ORDER BY position ASC
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("mirror: list local %s: %w", collection, err)
	}
	defer rows.Close()

	var out []rostersdk.Roaster
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r rostersdk.Roaster
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("mirror: decode profile: %w", err)
		}
		r.LocalOnly = true
		out = append(out, r)
	}
	return out, rows.Err()
}
