package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/domain"
	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	st := newStore(t)
	auth := newAuth(t, st)
	ctx := t.Context()

	acc, err := auth.Signup(ctx, SignupInput{Name: " Ann ", Email: " Ann@X.com", Password: "secret1", Role: "admin"})
	require.NoError(t, err)
	require.Equal(t, "Ann", acc.Name)
	require.Equal(t, "ann@x.com", acc.Email)
	require.Equal(t, domain.RoleStaff, acc.Role, "self signup never grants admin")
	require.Equal(t, domain.StatusPending, acc.Status)
	require.NotEqual(t, "secret1", acc.PasswordHash)

	_, err = auth.Signup(ctx, SignupInput{Name: "Ann again", Email: "ann@x.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_Validation(t *testing.T) {
	auth := newAuth(t, newStore(t))

	_, err := auth.Signup(t.Context(), SignupInput{Name: "", Email: "nope", Password: "123"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "name")
	require.Contains(t, verr.Fields, "email")
	require.Contains(t, verr.Fields, "password")
}

func TestLogin_ApprovalFlow(t *testing.T) {
	st := newStore(t)
	auth := newAuth(t, st)
	accounts := &AccountService{Store: st}
	admin := seedAdmin(t, st)
	ctx := t.Context()

	ann, err := auth.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "ann@x.com", "secret1")
	var notApproved *AccountNotApprovedError
	require.ErrorAs(t, err, &notApproved)
	require.Equal(t, domain.StatusPending, notApproved.Status)
	require.Contains(t, notApproved.Message(), "pending admin approval")

	_, err = accounts.Approve(ctx, admin.ID, ann.ID)
	require.NoError(t, err)

	token, acc, err := auth.Login(ctx, "ANN@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, domain.StatusApproved, acc.Status)

	claims, err := newVerifier(t).Verify(token)
	require.NoError(t, err)
	require.Equal(t, ann.ID, claims.AccountID())

	_, err = accounts.Reject(ctx, admin.ID, ann.ID)
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "ann@x.com", "secret1")
	require.ErrorAs(t, err, &notApproved)
	require.Equal(t, domain.StatusRejected, notApproved.Status)
	require.Contains(t, notApproved.Message(), "rejected by admin")
}

func TestLogin_BadCredentials(t *testing.T) {
	st := newStore(t)
	auth := newAuth(t, st)
	seedAdmin(t, st)

	_, _, err := auth.Login(t.Context(), "admin@rosterra.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(t.Context(), "nobody@rosterra.com", "admin123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_PendingWithWrongPasswordIsGeneric(t *testing.T) {
	st := newStore(t)
	auth := newAuth(t, st)

	_, err := auth.Signup(t.Context(), SignupInput{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = auth.Login(t.Context(), "ann@x.com", "not-it")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveAccount(t *testing.T) {
	st := newStore(t)
	auth := newAuth(t, st)
	admin := seedAdmin(t, st)

	p, err := auth.ResolveAccount(t.Context(), admin.ID)
	require.NoError(t, err)
	require.Equal(t, httpx.Principal{ID: admin.ID, Role: "admin", Status: "approved"}, p)

	_, err = auth.ResolveAccount(t.Context(), "gone")
	require.ErrorIs(t, err, httpx.ErrUnknownAccount)
}

func TestIssueToken_UsesTTL(t *testing.T) {
	st := newStore(t)
	auth := newAuth(t, st)
	fixed := time.Now().Add(-2 * time.Hour)
	auth.Now = func() time.Time { return fixed }

	token, err := auth.IssueToken(domain.Account{ID: "acc-1"})
	require.NoError(t, err)

	_, err = newVerifier(t).Verify(token)
	require.Error(t, err, "issued two hours ago with a one hour ttl")
}
