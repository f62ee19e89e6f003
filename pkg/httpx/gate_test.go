package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/aussiebroadwan/rosterra/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var secret = []byte("gate-test-secret-0123456789abcdef")

func sign(t *testing.T, id string, ttl time.Duration, now time.Time) string {
	t.Helper()
	s, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	tok, err := s.Sign(jwtx.NewClaims(id, "rosterra", ttl, now))
	require.NoError(t, err)
	return tok
}

type fakeAccounts map[string]httpx.Principal

func (f fakeAccounts) ResolveAccount(_ context.Context, id string) (httpx.Principal, error) {
	p, ok := f[id]
	if !ok {
		return httpx.Principal{}, httpx.ErrUnknownAccount
	}
	return p, nil
}

func newProtected(t *testing.T, accounts httpx.AccountResolver, mws ...httpx.Middleware) (http.Handler, *httpx.Principal) {
	t.Helper()

	v, err := jwtx.NewVerifierHS256(secret, "rosterra", 0)
	require.NoError(t, err)

	var seen httpx.Principal
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := httpx.PrincipalFrom(r.Context())
		require.True(t, ok)
		seen = p
		w.WriteHeader(http.StatusNoContent)
	})

	chain := append([]httpx.Middleware{httpx.RequireAccount(v, accounts)}, mws...)
	return httpx.Chain(final, chain...), &seen
}

func do(h http.Handler, auth string) (*httptest.ResponseRecorder, httpx.ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, "/api/roasters", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body httpx.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestRequireAccount(t *testing.T) {
	accounts := fakeAccounts{
		"staff-ok":  {ID: "staff-ok", Role: "staff", Status: "approved"},
		"admin-ok":  {ID: "admin-ok", Role: "admin", Status: "approved"},
		"waiting":   {ID: "waiting", Role: "staff", Status: "pending"},
		"turned-by": {ID: "turned-by", Role: "staff", Status: "rejected"},
	}
	h, seen := newProtected(t, accounts)
	now := time.Now()

	tests := []struct {
		name       string
		auth       string
		wantStatus int
		wantCode   string
		wantAcct   string
	}{
		{"no header", "", http.StatusUnauthorized, "token_missing", ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "token_missing", ""},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "token_missing", ""},
		{"malformed", "Bearer abc.def", http.StatusUnauthorized, "token_malformed", ""},
		{"expired", "Bearer " + sign(t, "staff-ok", time.Minute, now.Add(-time.Hour)), http.StatusUnauthorized, "token_expired", ""},
		{"deleted account", "Bearer " + sign(t, "gone", time.Hour, now), http.StatusUnauthorized, "account_not_found", ""},
		{"pending account", "Bearer " + sign(t, "waiting", time.Hour, now), http.StatusUnauthorized, "account_not_approved", "pending"},
		{"rejected account", "Bearer " + sign(t, "turned-by", time.Hour, now), http.StatusUnauthorized, "account_not_approved", "rejected"},
		{"approved", "Bearer " + sign(t, "staff-ok", time.Hour, now), http.StatusNoContent, "", ""},
		{"lowercase scheme", "bearer " + sign(t, "admin-ok", time.Hour, now), http.StatusNoContent, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(h, tt.auth)
			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.wantCode, body.Code)
			require.Equal(t, tt.wantAcct, body.Status)
		})
	}

	_, _ = do(h, "Bearer "+sign(t, "staff-ok", time.Hour, now))
	require.Equal(t, httpx.Principal{ID: "staff-ok", Role: "staff", Status: "approved"}, *seen)
}

func TestRequireAccount_ForgedToken(t *testing.T) {
	h, _ := newProtected(t, fakeAccounts{"a": {ID: "a", Role: "admin", Status: "approved"}})

	other, err := jwtx.NewSignerHS256([]byte("a-completely-different-secret!!"))
	require.NoError(t, err)
	tok, err := other.Sign(jwtx.NewClaims("a", "rosterra", time.Hour, time.Now()))
	require.NoError(t, err)

	rec, body := do(h, "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "token_invalid", body.Code)
}

func TestRequireAccount_ResolverFailure(t *testing.T) {
	h, _ := newProtected(t, httpx.AccountResolverFunc(func(context.Context, string) (httpx.Principal, error) {
		return httpx.Principal{}, errors.New("database is on fire")
	}))

	rec, body := do(h, "Bearer "+sign(t, "a", time.Hour, time.Now()))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, body.Error, "fire")
}

func TestRequireRole(t *testing.T) {
	accounts := fakeAccounts{
		"staff": {ID: "staff", Role: "staff", Status: "approved"},
		"admin": {ID: "admin", Role: "admin", Status: "approved"},
	}
	h, _ := newProtected(t, accounts, httpx.RequireRole(httpx.RoleAdmin))
	now := time.Now()

	rec, body := do(h, "Bearer "+sign(t, "staff", time.Hour, now))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "forbidden", body.Code)

	rec, _ = do(h, "Bearer "+sign(t, "admin", time.Hour, now))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRole_WithoutGate(t *testing.T) {
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}), httpx.RequireRole(httpx.RoleAdmin))

	rec, _ := do(h, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}
