package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "prod")
	for _, k := range []string{"PORT", "API_PREFIX", "DATABASE_DRIVER", "DATABASE_URL", "TOKEN_TTL", "JWT_SECRET", "SEED_DEFAULT_ADMIN", "ROSTERRA_DOTENV", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 5000, cfg.Port)
	require.Equal(t, "/api", cfg.APIPrefix)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "rosterra.db", cfg.DatabaseURL)
	require.Equal(t, 168*time.Hour, cfg.TokenTTL)
	require.True(t, cfg.SeedDefaultAdmin)
	require.Equal(t, "admin@rosterra.com", cfg.DefaultAdminEmail)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestGetEnvListOrDefault(t *testing.T) {
	t.Setenv("X_LIST", "http://localhost:5173, https://app.example.com,,")
	require.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, getEnvListOrDefault("X_LIST", nil))

	t.Setenv("X_LIST", "None")
	require.Empty(t, getEnvListOrDefault("X_LIST", []string{"*"}))

	t.Setenv("X_LIST", "")
	require.Equal(t, []string{"*"}, getEnvListOrDefault("X_LIST", []string{"*"}))
}

func TestLoadConfig_Dotenv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte("PORT=6001\nTOKEN_TTL=90\n"), 0o600))

	t.Setenv("ROSTERRA_DOTENV", file)
	unsetenv(t, "PORT", "TOKEN_TTL")
	t.Setenv("SEED_DEFAULT_ADMIN", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 6001, cfg.Port)
	require.Equal(t, 90*time.Minute, cfg.TokenTTL)
	require.False(t, cfg.SeedDefaultAdmin)
}

func TestLoadConfig_MissingDotenvFile(t *testing.T) {
	t.Setenv("ROSTERRA_DOTENV", filepath.Join(t.TempDir(), "nope.env"))

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestGetEnvDurationOrDefault(t *testing.T) {
	t.Setenv("X_DUR", "bogus")
	require.Equal(t, time.Second, getEnvDurationOrDefault("X_DUR", time.Second))

	t.Setenv("X_DUR", "45s")
	require.Equal(t, 45*time.Second, getEnvDurationOrDefault("X_DUR", time.Second))
}

// unsetenv removes keys for the duration of the test; godotenv never
// overrides a variable that is set, even to "".
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}
