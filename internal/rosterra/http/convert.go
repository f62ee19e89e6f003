package http

import (
	"strings"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/domain"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/service"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
)

func toUser(a domain.Account) rostersdk.User {
	return rostersdk.User{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt.UTC(),
	}
}

func toUsers(accs []domain.Account) []rostersdk.User {
	out := make([]rostersdk.User, 0, len(accs))
	for _, a := range accs {
		out = append(out, toUser(a))
	}
	return out
}

func toRoaster(p domain.RosterProfile) rostersdk.Roaster {
	return rostersdk.Roaster{
		ID:               p.ID,
		Name:             p.Name,
		ProfileLink:      p.ProfileLink,
		Platform:         p.Platform,
		Followers:        p.Followers,
		FollowersDisplay: p.FollowersDisplay,
		State:            p.State,
		Category:         p.Category,
		Commercials:      p.Commercials,
		PhoneNumber:      p.PhoneNumber,
		Sex:              p.Sex,
		Age:              p.Age,
		Email:            p.Email,
		Response:         p.Response,
		Status:           string(p.Status),
		CreatedBy:        p.CreatedBy,
		CreatedAt:        p.CreatedAt.UTC(),
		UpdatedAt:        p.UpdatedAt.UTC(),
	}
}

func toRoasters(ps []domain.RosterProfile) []rostersdk.Roaster {
	out := make([]rostersdk.Roaster, 0, len(ps))
	for _, p := range ps {
		out = append(out, toRoaster(p))
	}
	return out
}

// toPatch converts a request body into a patch. Numeric fields that did not
// parse become a validation error here since the domain patch only carries
// integers. An empty age clears it; empty followers mean 0.
func toPatch(in rostersdk.RoasterInput) (domain.RosterPatch, error) {
	in.Normalize()

	fields := map[string]string{}
	if !in.Followers.Valid() {
		fields["followers"] = "must be a non-negative integer"
	}
	if !in.Age.Valid() {
		fields["age"] = "must be an integer between 0 and 120"
	}
	if len(fields) > 0 {
		return domain.RosterPatch{}, &service.ValidationError{Fields: fields}
	}

	patch := domain.RosterPatch{
		Name:             in.Name,
		ProfileLink:      in.ProfileLink,
		Platform:         in.Platform,
		FollowersDisplay: in.FollowersDisplay,
		State:            in.State,
		Category:         in.Category,
		Commercials:      in.Commercials,
		PhoneNumber:      in.PhoneNumber,
		Sex:              in.Sex,
		Email:            in.Email,
		Response:         in.Response,
	}

	if in.Followers.Set {
		n := in.Followers.Value
		if in.Followers.Empty {
			n = 0
		}
		patch.Followers = &n
	}

	switch {
	case in.Age.Set && in.Age.Empty:
		patch.ClearAge = true
	case in.Age.Set:
		age := int(in.Age.Value)
		patch.Age = &age
	}

	if in.Status != nil && *in.Status != "" {
		st := domain.RosterStatus(strings.ToLower(*in.Status))
		patch.Status = &st
	}

	return patch, nil
}
