package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this and expose sub-repositories so a transaction can only be
// started from the root and never from inside another one.
type Store interface {
	Accounts() Accounts
	Rosters() Rosters

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A nil return commits, an error
	// rolls back.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a new account (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail expects an already normalized email.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// ListAccounts returns every account, newest first.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListAccountsByStatus returns accounts in one status, newest first.
	ListAccountsByStatus(ctx context.Context, status domain.AccountStatus) ([]domain.Account, error)

	// CountAccountsByStatus counts accounts in one status.
	CountAccountsByStatus(ctx context.Context, status domain.AccountStatus) (int, error)

	// CountAccounts returns the per-status breakdown.
	CountAccounts(ctx context.Context) (domain.StatusCounts, error)

	// SetAccountStatus overwrites the status and sets updated_at to at (now
	// when zero). Setting the current status again is not an error.
	SetAccountStatus(ctx context.Context, id string, status domain.AccountStatus, at time.Time) error

	// DeleteAccount removes the row. Returns ErrNotFound if nothing was deleted.
	DeleteAccount(ctx context.Context, id string) error

	// IsEmpty returns true if there are no accounts.
	IsEmpty(ctx context.Context) (bool, error)
}

type Rosters interface {
	// CreateRoster inserts a profile (id is ULID).
	CreateRoster(ctx context.Context, p domain.RosterProfile) error

	// GetRosterByID returns a profile by id.
	GetRosterByID(ctx context.Context, id string) (domain.RosterProfile, error)

	// ListRosters returns every profile, newest first.
	ListRosters(ctx context.Context) ([]domain.RosterProfile, error)

	// UpdateRoster overwrites all mutable columns of an existing profile,
	// including updated_at from p.UpdatedAt (now when zero).
	UpdateRoster(ctx context.Context, p domain.RosterProfile) error

	// DeleteRoster removes one profile. Returns ErrNotFound if nothing was deleted.
	DeleteRoster(ctx context.Context, id string) error

	// DeleteAllRosters removes every profile and reports how many went.
	DeleteAllRosters(ctx context.Context) (int64, error)
}
