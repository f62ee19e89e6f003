package domain

import (
	"strings"
	"time"
)

// AccountRole determines what an approved account may do.
type AccountRole string

const (
	RoleStaff AccountRole = "staff"
	RoleAdmin AccountRole = "admin"
)

func (r AccountRole) Valid() bool {
	return r == RoleStaff || r == RoleAdmin
}

// AccountStatus gates login eligibility. Only approved accounts get past the
// authorization gate.
type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusApproved AccountStatus = "approved"
	StatusRejected AccountStatus = "rejected"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Account struct {
	ID           string
	Email        string // lower-cased, unique
	Name         string
	PasswordHash string // argon2 encoded
	Role         AccountRole
	Status       AccountStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Account) IsAdmin() bool    { return a.Role == RoleAdmin }
func (a Account) IsApproved() bool { return a.Status == StatusApproved }

// StatusCounts is a per-status breakdown of the account table.
type StatusCounts struct {
	Approved int
	Pending  int
	Rejected int
}

func (c StatusCounts) Total() int { return c.Approved + c.Pending + c.Rejected }

// NormalizeEmail trims and lower-cases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
