package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/domain"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/store"
	"github.com/aussiebroadwan/rosterra/pkg/cryptox"
	"github.com/aussiebroadwan/rosterra/pkg/idx"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
)

// SeedService creates the default admin on a fresh database so the first
// person can log in and approve everyone else.
type SeedService struct {
	Store    store.Store
	Email    string
	Password string
	Name     string

	// Hash defaults to cryptox.HashPassword.
	Hash func(password string) (string, error)
}

// SeedDefaultAdmin creates an approved admin when the account table is
// empty. It reports whether an account was created.
func (s *SeedService) SeedDefaultAdmin(ctx context.Context) (bool, error) {
	l := slogx.FromContext(ctx)

	// The password is only hashed when the table is empty; the tx below re-checks.
	empty, err := s.Store.Accounts().IsEmpty(ctx)
	if err != nil {
		return false, fmt.Errorf("seed default admin: %w", err)
	}
	if !empty {
		return false, nil
	}

	hashFn := s.Hash
	if hashFn == nil {
		hashFn = cryptox.HashPassword
	}
	hash, err := hashFn(s.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	admin := domain.Account{
		ID:           idx.NewAt(now).String(),
		Email:        domain.NormalizeEmail(s.Email),
		Name:         s.Name,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.StatusApproved,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created := false
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Accounts().IsEmpty(ctx)
		if err != nil || !empty {
			return err
		}
		if err := tx.Accounts().CreateAccount(ctx, admin); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed default admin: %w", err)
	}

	if created {
		l.Warn("default admin created",
			slog.String("account_id", admin.ID),
			slog.String("email", admin.Email),
		)
	}
	return created, nil
}
