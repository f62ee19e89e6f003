package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/rosterra/pkg/jwtx"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
)

var (
	ErrMissingToken   = errors.New("httpx: missing bearer token")
	ErrUnknownAccount = errors.New("httpx: unknown account")
	ErrForbidden      = errors.New("httpx: forbidden")
)

// AccountNotApprovedError is returned when a token belongs to an account
// whose status is not approved.
type AccountNotApprovedError struct {
	Status string
}

func (e *AccountNotApprovedError) Error() string {
	return fmt.Sprintf("httpx: account is %s", e.Status)
}

// AccountResolver looks up the live state of the account a token was issued
// to. It must return ErrUnknownAccount when the account no longer exists.
type AccountResolver interface {
	ResolveAccount(ctx context.Context, id string) (Principal, error)
}

// AccountResolverFunc adapts a function to AccountResolver.
type AccountResolverFunc func(ctx context.Context, id string) (Principal, error)

func (f AccountResolverFunc) ResolveAccount(ctx context.Context, id string) (Principal, error) {
	return f(ctx, id)
}

// RequireAccount is the authorization gate. It verifies the bearer token,
// loads the account it names and only lets approved accounts through, with
// the Principal attached to the request context.
func RequireAccount(v jwtx.Verifier, accounts AccountResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, err := BearerToken(r)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Debug("token rejected", "err", err)
				writeAuthError(w, err)
				return
			}

			p, err := accounts.ResolveAccount(ctx, claims.AccountID())
			switch {
			case errors.Is(err, ErrUnknownAccount):
				log.Info("token for unknown account", "account_id", claims.AccountID())
				writeAuthError(w, err)
				return
			case err != nil:
				log.Error("resolve account failed", "err", err)
				WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			if p.Status != StatusApproved {
				writeAuthError(w, &AccountNotApprovedError{Status: p.Status})
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.WithAttrs(ctx, "account_id", p.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only when the principal attached by
// RequireAccount has one of roles.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				writeAuthError(w, ErrMissingToken)
				return
			}

			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			slogx.FromContext(r.Context()).Info("role check failed", "role", p.Role)
			writeAuthError(w, ErrForbidden)
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func BearerToken(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// writeAuthError maps gate and token failures onto the response.
func writeAuthError(w http.ResponseWriter, err error) {
	var notApproved *AccountNotApprovedError

	resp := ErrorResponse{}
	status := http.StatusUnauthorized

	switch {
	case errors.As(err, &notApproved):
		resp.Error = "Account not approved"
		resp.Code = "account_not_approved"
		resp.Status = notApproved.Status
	case errors.Is(err, ErrForbidden):
		status = http.StatusForbidden
		resp.Error = "Admin access required"
		resp.Code = "forbidden"
	case errors.Is(err, ErrUnknownAccount):
		resp.Error = "User not found"
		resp.Code = "account_not_found"
	case errors.Is(err, ErrMissingToken), errors.Is(err, jwtx.ErrMissing):
		resp.Error = "No token provided"
		resp.Code = "token_missing"
	case errors.Is(err, jwtx.ErrExpired):
		resp.Error = "Token expired"
		resp.Code = "token_expired"
	case errors.Is(err, jwtx.ErrMalformed):
		resp.Error = "Malformed token"
		resp.Code = "token_malformed"
	case errors.Is(err, jwtx.ErrInvalidSig):
		resp.Error = "Invalid token"
		resp.Code = "token_invalid"
	case errors.Is(err, jwtx.ErrNotYetValid):
		resp.Error = "Token not yet valid"
		resp.Code = "token_not_yet_valid"
	default:
		resp.Error = "Invalid token"
		resp.Code = "token_invalid_claims"
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	}
	WriteJSON(w, status, resp)
}
