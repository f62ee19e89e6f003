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
	"github.com/aussiebroadwan/rosterra/pkg/cryptox"
	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/aussiebroadwan/rosterra/pkg/idx"
	"github.com/aussiebroadwan/rosterra/pkg/jwtx"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
)

// AuthService handles signup, login and token resolution.
type AuthService struct {
	Store  store.Store
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration

	Now func() time.Time
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string // ignored, self signup is always staff
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Signup creates a staff account in pending status.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	in.Name = strings.TrimSpace(in.Name)
	in.Email = domain.NormalizeEmail(in.Email)

	err := rostersdk.SignupRequest{Name: in.Name, Email: in.Email, Password: in.Password}.Validate()
	var verr *rostersdk.ValidationError
	if errors.As(err, &verr) {
		return domain.Account{}, &ValidationError{Fields: verr.Fields}
	}

	if in.Role != "" && domain.AccountRole(in.Role) != domain.RoleStaff {
		l.Warn("signup requested a role, creating staff instead", slog.String("requested_role", in.Role))
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	acc := domain.Account{
		ID:           idx.NewAt(now).String(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         domain.RoleStaff,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Accounts().CreateAccount(ctx, acc); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrEmailTaken
		}
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	l.Info("account signed up", slog.String("account_id", acc.ID))
	return acc, nil
}

// Login checks the credentials and the approval status, and issues a token
// for approved accounts only.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.Account, error) {
	l := slogx.FromContext(ctx)

	acc, err := s.Store.Accounts().GetAccountByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", domain.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", domain.Account{}, fmt.Errorf("load account: %w", err)
	}

	if err := cryptox.VerifyPassword(password, acc.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			l.Error("stored password hash unusable", slog.String("account_id", acc.ID), slog.Any("error", err))
		}
		return "", domain.Account{}, ErrInvalidCredentials
	}

	if !acc.IsApproved() {
		l.Info("login refused, account not approved",
			slog.String("account_id", acc.ID),
			slog.String("status", string(acc.Status)),
		)
		return "", domain.Account{}, &AccountNotApprovedError{Status: acc.Status}
	}

	token, err := s.IssueToken(acc)
	if err != nil {
		return "", domain.Account{}, err
	}

	l.Info("account logged in", slog.String("account_id", acc.ID))
	return token, acc, nil
}

// IssueToken signs a token naming acc.
func (s *AuthService) IssueToken(acc domain.Account) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	token, err := s.Signer.Sign(jwtx.NewClaims(acc.ID, s.Issuer, ttl, s.now()))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// ResolveAccount implements httpx.AccountResolver for the authorization gate.
func (s *AuthService) ResolveAccount(ctx context.Context, id string) (httpx.Principal, error) {
	acc, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return httpx.Principal{}, httpx.ErrUnknownAccount
	}
	if err != nil {
		return httpx.Principal{}, err
	}

	return httpx.Principal{
		ID:     acc.ID,
		Role:   string(acc.Role),
		Status: string(acc.Status),
	}, nil
}
