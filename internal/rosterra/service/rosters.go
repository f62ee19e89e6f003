package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/domain"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/store"
	"github.com/aussiebroadwan/rosterra/pkg/idx"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
)

// RosterService manages roster profiles. Any approved account may read and
// change any profile.
type RosterService struct {
	Store store.Store

	Now func() time.Time
}

// BulkItem is one entry of a bulk create. Err is set when the entry could
// not even be decoded; such entries are reported as failed without touching
// the store.
type BulkItem struct {
	Patch domain.RosterPatch
	Err   error
}

// BulkResult is the outcome of one BulkItem, in input order.
type BulkResult struct {
	Index   int
	Profile *domain.RosterProfile
	Err     error
}

func (s *RosterService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *RosterService) List(ctx context.Context) ([]domain.RosterProfile, error) {
	return s.Store.Rosters().ListRosters(ctx)
}

func (s *RosterService) Get(ctx context.Context, id string) (domain.RosterProfile, error) {
	p, err := s.Store.Rosters().GetRosterByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.RosterProfile{}, ErrRosterNotFound
	}
	return p, err
}

// Create stores a new profile. Only the name is required; followers default
// to 0 and status to pending.
func (s *RosterService) Create(ctx context.Context, createdBy string, patch domain.RosterPatch) (domain.RosterProfile, error) {
	if err := validatePatch(patch, true); err != nil {
		return domain.RosterProfile{}, err
	}

	now := s.now()
	p := domain.NewRosterProfile(idx.NewAt(now).String(), createdBy, patch, now)

	if err := s.Store.Rosters().CreateRoster(ctx, p); err != nil {
		return domain.RosterProfile{}, fmt.Errorf("create roster: %w", err)
	}
	return p, nil
}

// CreateBulk creates each item on its own. A failing item does not stop the
// others.
func (s *RosterService) CreateBulk(ctx context.Context, createdBy string, items []BulkItem) []BulkResult {
	l := slogx.FromContext(ctx)

	results := make([]BulkResult, len(items))
	for i, item := range items {
		results[i].Index = i
		if item.Err != nil {
			results[i].Err = item.Err
			continue
		}

		p, err := s.Create(ctx, createdBy, item.Patch)
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].Profile = &p
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	l.Info("bulk roster create", slog.Int("created", len(items)-failed), slog.Int("failed", failed))

	return results
}

// Update merges the supplied fields into the stored profile.
func (s *RosterService) Update(ctx context.Context, id string, patch domain.RosterPatch) (domain.RosterProfile, error) {
	if err := validatePatch(patch, false); err != nil {
		return domain.RosterProfile{}, err
	}

	var out domain.RosterProfile
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cur, err := tx.Rosters().GetRosterByID(ctx, id)
		if err != nil {
			return err
		}

		next := patch.Apply(cur)
		next.UpdatedAt = s.now()
		if err := tx.Rosters().UpdateRoster(ctx, next); err != nil {
			return err
		}
		out, err = tx.Rosters().GetRosterByID(ctx, id)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.RosterProfile{}, ErrRosterNotFound
	}
	if err != nil {
		return domain.RosterProfile{}, fmt.Errorf("update roster: %w", err)
	}
	return out, nil
}

func (s *RosterService) Delete(ctx context.Context, id string) error {
	err := s.Store.Rosters().DeleteRoster(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrRosterNotFound
	}
	return err
}

// Clear removes every profile and returns how many were deleted.
func (s *RosterService) Clear(ctx context.Context) (int64, error) {
	n, err := s.Store.Rosters().DeleteAllRosters(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear rosters: %w", err)
	}

	slogx.FromContext(ctx).Info("roster cleared", slog.Int64("deleted", n))
	return n, nil
}

func validatePatch(p domain.RosterPatch, create bool) error {
	fields := map[string]string{}

	switch {
	case create && (p.Name == nil || strings.TrimSpace(*p.Name) == ""):
		fields["name"] = "is required"
	case !create && p.Name != nil && strings.TrimSpace(*p.Name) == "":
		fields["name"] = "cannot be empty"
	}

	if p.Followers != nil && *p.Followers < 0 {
		fields["followers"] = "must be a non-negative integer"
	}
	if p.Age != nil && (*p.Age < domain.MinAge || *p.Age > domain.MaxAge) {
		fields["age"] = fmt.Sprintf("must be between %d and %d", domain.MinAge, domain.MaxAge)
	}
	if p.Status != nil && !p.Status.Valid() {
		fields["status"] = "must be one of pending, accepted, rejected"
	}

	return newValidationError(fields)
}
