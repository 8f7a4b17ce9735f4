package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	defaultSQLiteDSN = "file:esports.db?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
)

type Config struct {
	Addr            string
	DBDriver        string
	DBDSN           string
	LogLevel        slog.Level
	SessionLifetime time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadFromEnv(os.Getenv)
}

func LoadFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:     strings.TrimSpace(getenv("APP_ADDR")),
		DBDriver: strings.TrimSpace(getenv("APP_DB_DRIVER")),
		DBDSN:    strings.TrimSpace(getenv("APP_DB_DSN")),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	switch cfg.DBDriver {
	case "":
		cfg.DBDriver = DriverSQLite
	case DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("APP_DB_DRIVER: must be %s or %s", DriverSQLite, DriverPostgres)
	}

	if cfg.DBDSN == "" {
		if cfg.DBDriver == DriverPostgres {
			return Config{}, errors.New("APP_DB_DSN: required for postgres")
		}
		cfg.DBDSN = defaultSQLiteDSN
	}

	switch strings.ToLower(strings.TrimSpace(getenv("APP_LOG_LEVEL"))) {
	case "", "info":
		cfg.LogLevel = slog.LevelInfo
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return Config{}, errors.New("APP_LOG_LEVEL: must be one of debug, info, warn, error")
	}

	lifetimeRaw := getenv("APP_SESSION_LIFETIME")
	if lifetimeRaw == "" {
		cfg.SessionLifetime = 24 * time.Hour
	} else {
		lifetime, err := time.ParseDuration(lifetimeRaw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_SESSION_LIFETIME: %w", err)
		}
		if lifetime <= 0 {
			return Config{}, errors.New("APP_SESSION_LIFETIME: must be > 0")
		}
		cfg.SessionLifetime = lifetime
	}

	return cfg, nil
}
