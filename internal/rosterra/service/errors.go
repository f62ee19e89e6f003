package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/domain"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email already registered")
	ErrAccountNotFound     = errors.New("account not found")
	ErrForbiddenSelfAction = errors.New("action not allowed on own account")
	ErrRosterNotFound      = errors.New("roster profile not found")
)

// AccountNotApprovedError is returned by Login for pending and rejected
// accounts.
type AccountNotApprovedError struct {
	Status domain.AccountStatus
}

func (e *AccountNotApprovedError) Error() string {
	return fmt.Sprintf("account is %s", e.Status)
}

// Message is the guidance shown to the user trying to log in.
func (e *AccountNotApprovedError) Message() string {
	switch e.Status {
	case domain.StatusPending:
		return "Your account is pending admin approval. Please wait for approval to login."
	case domain.StatusRejected:
		return "Your account has been rejected by admin. Please contact support."
	default:
		return fmt.Sprintf("Your account is %s.", e.Status)
	}
}

// ValidationError lists the offending fields and why.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
