package syncer

import (
	"time"

	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/google/uuid"
)

// newLocalRoaster builds a record that only exists on this machine. It gets
// a random id that cannot clash with server ids.
func newLocalRoaster(in rostersdk.RoasterInput, now time.Time) rostersdk.Roaster {
	r := rostersdk.Roaster{
		ID:        uuid.NewString(),
		Status:    rostersdk.StatusPending,
		CreatedAt: now.UTC(),
		LocalOnly: true,
	}
	applyInput(&r, in, now)
	return r
}

// applyInput merges the supplied fields of in into r.
func applyInput(r *rostersdk.Roaster, in rostersdk.RoasterInput, now time.Time) {
	in.Normalize()

	for dst, src := range map[*string]*string{
		&r.Name:             in.Name,
		&r.ProfileLink:      in.ProfileLink,
		&r.Platform:         in.Platform,
		&r.FollowersDisplay: in.FollowersDisplay,
		&r.State:            in.State,
		&r.Category:         in.Category,
		&r.Commercials:      in.Commercials,
		&r.PhoneNumber:      in.PhoneNumber,
		&r.Sex:              in.Sex,
		&r.Email:            in.Email,
		&r.Response:         in.Response,
	} {
		if src != nil {
			*dst = *src
		}
	}

	if in.Followers.Set {
		r.Followers = 0
		if !in.Followers.Empty {
			r.Followers = in.Followers.Value
		}
	}

	switch {
	case in.Age.Set && in.Age.Empty:
		r.Age = nil
	case in.Age.Set:
		age := int(in.Age.Value)
		r.Age = &age
	}

	if in.Status != nil && *in.Status != "" {
		r.Status = *in.Status
	}

	r.UpdatedAt = now.UTC()
}
