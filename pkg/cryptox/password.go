package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

var (
	ErrMismatch    = errors.New("cryptox: password does not match")
	ErrInvalidHash = errors.New("cryptox: invalid hash format")
)

const (
	keyLength  = 32
	saltLength = 16
)

// Params are the Argon2id cost factors used for new hashes. Existing hashes
// carry their own parameters and keep verifying after a change.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultParams follows the OWASP minimum for Argon2id (19 MiB, t=2, p=1).
var DefaultParams = Params{Memory: 19 * 1024, Iterations: 2, Parallelism: 1}

var (
	paramsMu sync.RWMutex
	params   = DefaultParams
)

// SetParams replaces the cost factors for subsequent HashPassword calls.
// Zero fields fall back to DefaultParams.
func SetParams(p Params) {
	if p.Memory == 0 {
		p.Memory = DefaultParams.Memory
	}
	if p.Iterations == 0 {
		p.Iterations = DefaultParams.Iterations
	}
	if p.Parallelism == 0 {
		p.Parallelism = DefaultParams.Parallelism
	}

	paramsMu.Lock()
	params = p
	paramsMu.Unlock()
}

func currentParams() Params {
	paramsMu.RLock()
	defer paramsMu.RUnlock()
	return params
}

// HashPassword returns a PHC encoded Argon2id hash of password+pepper.
func HashPassword(password string) (string, error) {
	pepper, err := Pepper()
	if err != nil {
		return "", err
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	p := currentParams()
	hash := argon2.IDKey([]byte(password+pepper), salt, p.Iterations, p.Memory, p.Parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword checks password against a hash produced by HashPassword.
// It returns ErrMismatch for a wrong password and ErrInvalidHash when the
// stored value cannot be parsed.
func VerifyPassword(password, encodedHash string) error {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return ErrInvalidHash
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("%w: hash: %v", ErrInvalidHash, err)
	}

	pepper, err := Pepper()
	if err != nil {
		return err
	}

	got := argon2.IDKey([]byte(password+pepper), salt, p.Iterations, p.Memory, p.Parallelism,
		uint32(len(want))) // #nosec G115 - hash length is 32

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}
