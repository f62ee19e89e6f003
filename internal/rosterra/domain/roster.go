package domain

import "time"

// RosterStatus tracks the outreach state of a roster profile. It is unrelated
// to AccountStatus and the two must not be mixed.
type RosterStatus string

const (
	RosterPending  RosterStatus = "pending"
	RosterAccepted RosterStatus = "accepted"
	RosterRejected RosterStatus = "rejected"
)

func (s RosterStatus) Valid() bool {
	switch s {
	case RosterPending, RosterAccepted, RosterRejected:
		return true
	}
	return false
}

const (
	MinAge = 0
	MaxAge = 120
)

// RosterProfile is a tracked influencer/contact record.
type RosterProfile struct {
	ID               string
	Name             string
	ProfileLink      string
	Platform         string // Instagram, YouTube, Twitter, ... free text
	Followers        int64
	FollowersDisplay string
	State            string
	Category         string
	Commercials      string
	PhoneNumber      string
	Sex              string
	Age              *int // nil when unknown
	Email            string
	Response         string
	Status           RosterStatus
	CreatedBy        string // account id of the creator, empty if unknown
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RosterPatch carries the fields supplied by a caller. Nil fields are left
// untouched when merged into an existing profile.
type RosterPatch struct {
	Name             *string
	ProfileLink      *string
	Platform         *string
	Followers        *int64
	FollowersDisplay *string
	State            *string
	Category         *string
	Commercials      *string
	PhoneNumber      *string
	Sex              *string
	Age              *int
	ClearAge         bool
	Email            *string
	Response         *string
	Status           *RosterStatus
}

// Apply merges the patch into p and returns the result.
func (patch RosterPatch) Apply(p RosterProfile) RosterProfile {
	setString(&p.Name, patch.Name)
	setString(&p.ProfileLink, patch.ProfileLink)
	setString(&p.Platform, patch.Platform)
	setString(&p.FollowersDisplay, patch.FollowersDisplay)
	setString(&p.State, patch.State)
	setString(&p.Category, patch.Category)
	setString(&p.Commercials, patch.Commercials)
	setString(&p.PhoneNumber, patch.PhoneNumber)
	setString(&p.Sex, patch.Sex)
	setString(&p.Email, patch.Email)
	setString(&p.Response, patch.Response)

	if patch.Followers != nil {
		p.Followers = *patch.Followers
	}
	if patch.ClearAge {
		p.Age = nil
	}
	if patch.Age != nil {
		age := *patch.Age
		p.Age = &age
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	return p
}

// NewRosterProfile builds a profile from a patch with defaults applied:
// followers 0, status pending.
func NewRosterProfile(id, createdBy string, patch RosterPatch, now time.Time) RosterProfile {
	p := patch.Apply(RosterProfile{
		ID:        id,
		Status:    RosterPending,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if p.Status == "" {
		p.Status = RosterPending
	}
	return p
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
