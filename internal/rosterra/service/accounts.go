package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/domain"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/store"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
)

// AccountService is the admin approval workflow. Callers are expected to
// have passed the admin role guard already.
type AccountService struct {
	Store store.Store

	Now func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	acc, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	return acc, err
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccounts(ctx)
}

func (s *AccountService) ListPending(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccountsByStatus(ctx, domain.StatusPending)
}

func (s *AccountService) CountPending(ctx context.Context) (int, error) {
	return s.Store.Accounts().CountAccountsByStatus(ctx, domain.StatusPending)
}

func (s *AccountService) Counts(ctx context.Context) (domain.StatusCounts, error) {
	return s.Store.Accounts().CountAccounts(ctx)
}

// Approve moves the account to approved. Approving an approved account
// succeeds and changes nothing.
func (s *AccountService) Approve(ctx context.Context, actorID, id string) (domain.Account, error) {
	return s.transition(ctx, actorID, id, domain.StatusApproved)
}

// Reject moves the account to rejected from any state. An admin cannot
// reject themselves.
func (s *AccountService) Reject(ctx context.Context, actorID, id string) (domain.Account, error) {
	if actorID == id {
		return domain.Account{}, ErrForbiddenSelfAction
	}
	return s.transition(ctx, actorID, id, domain.StatusRejected)
}

// Delete removes the account for good. An admin cannot delete themselves.
func (s *AccountService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrForbiddenSelfAction
	}

	if err := s.Store.Accounts().DeleteAccount(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}

	slogx.FromContext(ctx).Info("account deleted",
		slog.String("target_id", id),
		slog.String("actor_id", actorID),
	)
	return nil
}

// transition writes the new status and reads the row back in one
// transaction. Concurrent transitions on the same account are last write wins.
func (s *AccountService) transition(
	ctx context.Context,
	actorID, id string,
	status domain.AccountStatus,
) (domain.Account, error) {
	var acc domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().SetAccountStatus(ctx, id, status, s.now()); err != nil {
			return err
		}
		var err error
		acc, err = tx.Accounts().GetAccountByID(ctx, id)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("set account status: %w", err)
	}

	slogx.FromContext(ctx).Info("account status changed",
		slog.String("target_id", id),
		slog.String("actor_id", actorID),
		slog.String("status", string(status)),
	)
	return acc, nil
}
