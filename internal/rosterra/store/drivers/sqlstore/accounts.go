package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/domain"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/store"
)

const accountColumns = `id, email, name, password_hash, role, status, created_at, updated_at`

type accountsRepo struct {
	db DBTX
	d  Dialect
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		a.ID, a.Email, a.Name, a.PasswordHash, string(a.Role), string(a.Status),
		toMillis(a.CreatedAt), toMillis(a.UpdatedAt),
	)
	if err != nil {
		if r.d.IsUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, r.d.Rebind(
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`), id)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, r.d.Rebind(
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`), email)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return collectAccounts(rows)
}

func (r *accountsRepo) ListAccountsByStatus(
	ctx context.Context,
	status domain.AccountStatus,
) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, r.d.Rebind(
		`SELECT `+accountColumns+` FROM accounts WHERE status = ? ORDER BY created_at DESC, id DESC`),
		string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("list accounts by status: %w", err)
	}
	return collectAccounts(rows)
}

func (r *accountsRepo) CountAccountsByStatus(ctx context.Context, status domain.AccountStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, r.d.Rebind(
		`SELECT COUNT(*) FROM accounts WHERE status = ?`), string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

func (r *accountsRepo) CountAccounts(ctx context.Context) (domain.StatusCounts, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM accounts GROUP BY status`)
	if err != nil {
		return domain.StatusCounts{}, fmt.Errorf("count accounts: %w", err)
	}
	defer rows.Close()

	var counts domain.StatusCounts
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return domain.StatusCounts{}, fmt.Errorf("scan account count: %w", err)
		}
		switch domain.AccountStatus(status) {
		case domain.StatusApproved:
			counts.Approved = n
		case domain.StatusPending:
			counts.Pending = n
		case domain.StatusRejected:
			counts.Rejected = n
		}
	}
	return counts, rows.Err()
}

func (r *accountsRepo) SetAccountStatus(ctx context.Context, id string, status domain.AccountStatus, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	res, err := r.db.ExecContext(ctx, r.d.Rebind(
		`UPDATE accounts SET status = ?, updated_at = ? WHERE id = ?`),
		string(status), toMillis(at), id,
	)
	if err != nil {
		return fmt.Errorf("update account status: %w", err)
	}
	return checkAffected(res)
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM accounts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return checkAffected(res)
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a                domain.Account
		role, status     string
		created, updated int64
	)
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &role, &status, &created, &updated)
	if err != nil {
		return domain.Account{}, err
	}
	a.Role = domain.AccountRole(role)
	a.Status = domain.AccountStatus(status)
	a.CreatedAt = fromMillis(created)
	a.UpdatedAt = fromMillis(updated)
	return a, nil
}

func collectAccounts(rows *sql.Rows) ([]domain.Account, error) {
	defer rows.Close()

	out := make([]domain.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return out, nil
}
