package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read once at startup and handed to every component that needs it.
type Config struct {
	Port    string
	GinMode string

	Database DatabaseConfig
	JWT      JWTConfig

	AdminRoleID   uint
	DefaultRoleID uint

	RedisURL               string
	BlacklistCacheSize     int
	BlacklistPurgeSchedule string

	LogLevel string
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load builds a Config from the process environment. Call godotenv.Load
// beforehand to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "release"),
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "docman"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "docman.db"),
		},
		RedisURL:               os.Getenv("REDIS_URL"),
		BlacklistPurgeSchedule: getEnv("BLACKLIST_PURGE_SCHEDULE", "@hourly"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}

	if cfg.Database.Driver != DriverPostgres && cfg.Database.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	jwtCfg, err := loadJWT()
	if err != nil {
		return nil, err
	}
	cfg.JWT = jwtCfg

	if cfg.AdminRoleID, err = getUint("ADMIN_ROLE_ID", 2); err != nil {
		return nil, err
	}
	if cfg.DefaultRoleID, err = getUint("DEFAULT_ROLE_ID", 1); err != nil {
		return nil, err
	}
	if cfg.AdminRoleID == cfg.DefaultRoleID {
		return nil, fmt.Errorf("ADMIN_ROLE_ID and DEFAULT_ROLE_ID must differ")
	}

	size, err := getUint("BLACKLIST_CACHE_SIZE", 1024)
	if err != nil {
		return nil, err
	}
	cfg.BlacklistCacheSize = int(size)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getUint(key string, fallback uint) (uint, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return uint(n), nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
