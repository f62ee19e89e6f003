package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/domain"
)

const rosterColumns = `id, name, profile_link, platform, followers, followers_display, state,
	category, commercials, phone_number, sex, age, email, response, status, created_by,
	created_at, updated_at`

type rostersRepo struct {
	db DBTX
	d  Dialect
}

func (r *rostersRepo) CreateRoster(ctx context.Context, p domain.RosterProfile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO rosters (`+rosterColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.Name, p.ProfileLink, p.Platform, p.Followers, p.FollowersDisplay, p.State,
		p.Category, p.Commercials, p.PhoneNumber, p.Sex, mapIntNull(p.Age), p.Email, p.Response,
		string(p.Status), p.CreatedBy, toMillis(p.CreatedAt), toMillis(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert roster: %w", err)
	}
	return nil
}

func (r *rostersRepo) GetRosterByID(ctx context.Context, id string) (domain.RosterProfile, error) {
	row := r.db.QueryRowContext(ctx, r.d.Rebind(
		`SELECT `+rosterColumns+` FROM rosters WHERE id = ?`), id)
	p, err := scanRoster(row)
	if err != nil {
		return domain.RosterProfile{}, mapNotFound(err)
	}
	return p, nil
}

func (r *rostersRepo) ListRosters(ctx context.Context) ([]domain.RosterProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rosterColumns+` FROM rosters ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list rosters: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RosterProfile, 0)
	for rows.Next() {
		p, err := scanRoster(rows)
		if err != nil {
			return nil, fmt.Errorf("scan roster: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rosters: %w", err)
	}
	return out, nil
}

func (r *rostersRepo) UpdateRoster(ctx context.Context, p domain.RosterProfile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`
		UPDATE rosters SET
			name = ?, profile_link = ?, platform = ?, followers = ?, followers_display = ?,
			state = ?, category = ?, commercials = ?, phone_number = ?, sex = ?, age = ?,
			email = ?, response = ?, status = ?, updated_at = ?
		WHERE id = ?`),
		p.Name, p.ProfileLink, p.Platform, p.Followers, p.FollowersDisplay,
		p.State, p.Category, p.Commercials, p.PhoneNumber, p.Sex, mapIntNull(p.Age),
		p.Email, p.Response, string(p.Status), toMillis(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update roster: %w", err)
	}
	return checkAffected(res)
}

func (r *rostersRepo) DeleteRoster(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM rosters WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete roster: %w", err)
	}
	return checkAffected(res)
}

func (r *rostersRepo) DeleteAllRosters(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rosters`)
	if err != nil {
		return 0, fmt.Errorf("clear rosters: %w", err)
	}
	return res.RowsAffected()
}

func scanRoster(row rowScanner) (domain.RosterProfile, error) {
	var (
		p                domain.RosterProfile
		age              sql.NullInt64
		status           string
		created, updated int64
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.ProfileLink, &p.Platform, &p.Followers, &p.FollowersDisplay, &p.State,
		&p.Category, &p.Commercials, &p.PhoneNumber, &p.Sex, &age, &p.Email, &p.Response,
		&status, &p.CreatedBy, &created, &updated,
	)
	if err != nil {
		return domain.RosterProfile{}, err
	}
	p.Age = mapNullInt(age)
	p.Status = domain.RosterStatus(status)
	p.CreatedAt = fromMillis(created)
	p.UpdatedAt = fromMillis(updated)
	return p, nil
}
