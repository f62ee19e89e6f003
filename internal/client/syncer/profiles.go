package syncer

import (
	"context"

	"github.com/aussiebroadwan/rosterra/internal/client/mirror"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
)

// Local working profiles (imports, scratch lists) live only in the mirror
// and are never sent to the server.

func (s *Syncer) ListProfiles(ctx context.Context) ([]rostersdk.Roaster, error) {
	return s.Mirror.List(ctx, mirror.Profiles)
}

// AddProfiles appends new local profiles and returns them with their ids.
func (s *Syncer) AddProfiles(ctx context.Context, items []rostersdk.RoasterInput) ([]rostersdk.Roaster, error) {
	now := s.now()

	out := make([]rostersdk.Roaster, 0, len(items))
	for _, in := range items {
		out = append(out, newLocalRoaster(in, now))
	}
	if err := s.Mirror.Add(ctx, mirror.Profiles, out...); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile merges in into the local profile id.
func (s *Syncer) UpdateProfile(ctx context.Context, id string, in rostersdk.RoasterInput) (rostersdk.Roaster, error) {
	p, err := s.Mirror.GetProfile(ctx, mirror.Profiles, id)
	if err != nil {
		return rostersdk.Roaster{}, err
	}

	applyInput(&p, in, s.now())
	if err := s.Mirror.Put(ctx, mirror.Profiles, p); err != nil {
		return rostersdk.Roaster{}, err
	}
	return p, nil
}

// DeleteProfiles removes the given local profiles and reports how many
// existed.
func (s *Syncer) DeleteProfiles(ctx context.Context, ids ...string) (int64, error) {
	return s.Mirror.Remove(ctx, mirror.Profiles, ids...)
}

func (s *Syncer) ClearProfiles(ctx context.Context) error {
	return s.Mirror.Clear(ctx, mirror.Profiles)
}
