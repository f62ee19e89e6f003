package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long a login token stays valid unless configured
// otherwise.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims carry the account id (as both "sub" and "userId") and the validity
// window. Nothing else about the account is put in the token; status and role
// are resolved from the store on every request.
type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"userId"`
}

// NewClaims builds the claims for a login token.
func NewClaims(accountID, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UserID: accountID,
	}
}

// AccountID returns the account the token was issued to.
func (c Claims) AccountID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
