package httpx

import "context"

const (
	// RoleAdmin is the role allowed through RequireRole(RoleAdmin).
	RoleAdmin = "admin"

	// StatusApproved is the only account status the gate lets through.
	StatusApproved = "approved"
)

// Principal is the resolved caller of a request.
type Principal struct {
	ID     string
	Role   string
	Status string
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFrom returns the principal attached by RequireAccount.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
