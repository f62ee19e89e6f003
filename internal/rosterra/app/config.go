package app

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 5000)
	APIPrefix string // Mount prefix of the REST surface (default: /api)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseURL    string // sqlite file path or postgres URL (default: rosterra.db)

	Issuer        string        // Token issuer claim (default: rosterra)
	JWTSecret     string        // Optional: signing secret, loaded from JWTSecretFile when empty
	JWTSecretFile string        // Secret file (default: jwt.secret)
	TokenTTL      time.Duration // Token validity window (default: 168h)

	PepperFile         string // Password pepper file (default: pepper)
	PasswordMemoryKiB  int    // Argon2id memory (default: 19456)
	PasswordIterations int    // Argon2id iterations (default: 2)

	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	CORSOrigins []string // Browser origins allowed to call the API, comma separated, "none" disables (default: *)

	SeedDefaultAdmin     bool   // Create the default admin on an empty account table (default: true)
	DefaultAdminEmail    string // (default: admin@rosterra.com)
	DefaultAdminPassword string // (default: admin123)
	DefaultAdminName     string // (default: Admin)
}

// LoadConfig reads the configuration from the environment. In dev, or when
// ROSTERRA_DOTENV names a file, a .env file is loaded first; variables that
// are already set win over the file.
func LoadConfig() (Config, error) {
	if err := loadDotenv(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 5000),
		APIPrefix: getEnvOrDefault("API_PREFIX", "/api"),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabaseURL:    getEnvOrDefault("DATABASE_URL", "rosterra.db"),

		Issuer:        getEnvOrDefault("TOKEN_ISSUER", "rosterra"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTSecretFile: getEnvOrDefault("JWT_SECRET_FILE", "jwt.secret"),
		TokenTTL:      getEnvDurationOrDefault("TOKEN_TTL", 168*time.Hour),

		PepperFile:         getEnvOrDefault("PEPPER_FILE", "pepper"),
		PasswordMemoryKiB:  getEnvIntOrDefault("PASSWORD_MEMORY_KIB", 19*1024),
		PasswordIterations: getEnvIntOrDefault("PASSWORD_ITERATIONS", 2),

		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		CORSOrigins: getEnvListOrDefault("CORS_ORIGINS", []string{"*"}),

		SeedDefaultAdmin:     getEnvBoolOrDefault("SEED_DEFAULT_ADMIN", true),
		DefaultAdminEmail:    getEnvOrDefault("DEFAULT_ADMIN_EMAIL", "admin@rosterra.com"),
		DefaultAdminPassword: getEnvOrDefault("DEFAULT_ADMIN_PASSWORD", "admin123"),
		DefaultAdminName:     getEnvOrDefault("DEFAULT_ADMIN_NAME", "Admin"),
	}

	return cfg, nil
}

func loadDotenv() error {
	if file := os.Getenv("ROSTERRA_DOTENV"); file != "" {
		return godotenv.Load(file)
	}

	if getEnvOrDefault("ENV", "dev") != "dev" {
		return nil
	}

	// A missing .env is fine in dev.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated value. "none" yields an empty
// list.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	switch {
	case value == "":
		return defaultValue
	case strings.EqualFold(value, "none"):
		return []string{}
	}

	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
