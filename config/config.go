package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvProduction = "production"
)

// Config is built once at startup and handed to the components that need it.
type Config struct {
	Env  string
	Port string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	BodyLimitBytes  int
	AllowedOrigins  string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Load reads the optional .env file and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := Config{
		Env:  get("APP_ENV", "development"),
		Port: get("PORT", "3214"),

		DBDriver:   strings.ToLower(get("DB_DRIVER", DriverPostgres)),
		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),
		SQLitePath: get("SQLITE_PATH", "inspection.db"),

		JWTSecret:  strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:   getDuration("TOKEN_TTL", 12*time.Hour),
		BcryptCost: getInt("BCRYPT_COST", bcrypt.DefaultCost),

		BodyLimitBytes:  getInt("BODY_LIMIT_MB", 50) * 1024 * 1024,
		AllowedOrigins:  get("ALLOWED_ORIGINS", "*"),
		RateLimitMax:    getInt("RATE_LIMIT_MAX", 120),
		RateLimitWindow: time.Duration(getInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}
	return cfg
}

// Validate reports configuration the server cannot start with.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is not defined")
	}
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBUser == "" || c.DBName == "" {
			return errors.New("DB_USER and DB_NAME are required for the postgres driver")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// PostgresDSN renders the libpq connection string for the configured database.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getInt reads an int env var with a default fallback.
func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}
