package mirror

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
)

const (
	keyToken   = "token"
	keyAccount = "account"
)

// Get returns the value for key, or nil when it is not set.
func (m *Mirror) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := m.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mirror: get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (m *Mirror) Set(ctx context.Context, key string, value []byte) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("mirror: set metadata[%s]: %w", key, err)
	}
	return nil
}

func (m *Mirror) Delete(ctx context.Context, key string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key); err != nil {
		return fmt.Errorf("mirror: delete metadata[%s]: %w", key, err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when logged out.
func (m *Mirror) Token(ctx context.Context) (string, error) {
	v, err := m.Get(ctx, keyToken)
	return string(v), err
}

// SaveSession stores the token and the account it belongs to.
func (m *Mirror) SaveSession(ctx context.Context, token string, user rostersdk.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range map[string][]byte{keyToken: []byte(token), keyAccount: data} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value); err != nil {
			return fmt.Errorf("mirror: save session: %w", err)
		}
	}
	return tx.Commit()
}

// Account returns the cached account, or nil when logged out.
func (m *Mirror) Account(ctx context.Context) (*rostersdk.User, error) {
	data, err := m.Get(ctx, keyAccount)
	if err != nil || data == nil {
		return nil, err
	}

	var u rostersdk.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("mirror: decode account: %w", err)
	}
	return &u, nil
}

// ClearSession forgets the token and the cached account.
func (m *Mirror) ClearSession(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (?, ?)`, keyToken, keyAccount)
	if err != nil {
		return fmt.Errorf("mirror: clear session: %w", err)
	}
	return nil
}
