package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/domain"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()

	dir := t.TempDir()
	return Config{
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		APIPrefix:            "/api",
		DatabaseDriver:       "sqlite",
		DatabaseURL:          filepath.Join(dir, "rosterra.db"),
		Issuer:               "rosterra",
		JWTSecretFile:        filepath.Join(dir, "secrets", "jwt.secret"),
		TokenTTL:             time.Hour,
		PepperFile:           filepath.Join(dir, "pepper"),
		PasswordMemoryKiB:    1024,
		PasswordIterations:   1,
		SeedDefaultAdmin:     true,
		DefaultAdminEmail:    "admin@rosterra.com",
		DefaultAdminPassword: "admin123",
		DefaultAdminName:     "Admin",
	}
}

func TestNew_WiresEverything(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	require.FileExists(t, cfg.JWTSecretFile)

	empty, err := application.db.Accounts().IsEmpty(t.Context())
	require.NoError(t, err)
	require.False(t, empty, "default admin seeded")

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/roasters", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = "mongodb"

	_, err := New(cfg)
	require.ErrorContains(t, err, "unsupported database driver")
}

func TestNew_WeakSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = "short"

	_, err := New(cfg)
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	cfg := testConfig(t)
	configurePasswords(cfg)

	db, err := OpenStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	seed := NewSeedService(cfg, db)

	var out bytes.Buffer
	require.NoError(t, Check(t.Context(), db, seed, &out))
	require.Contains(t, out.String(), "Total accounts: 0")
	require.Contains(t, out.String(), "Created default admin admin@rosterra.com")

	out.Reset()
	require.NoError(t, Check(t.Context(), db, seed, &out))
	require.Contains(t, out.String(), "Total accounts: 1")
	require.Contains(t, out.String(), string(domain.RoleAdmin))
	require.Contains(t, out.String(), "Approved: 1")
	require.Contains(t, out.String(), "Pending: 0")
}
