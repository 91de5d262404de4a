package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pable/doubles-league/internal/cache"
)

// Config holds the settings shared by every command.
type Config struct {
	DBPath       string
	LogLevel     string
	CacheBackend cache.Backend
	RedisURL     string
	Timezone     string
	StatsSource  cache.Mode
	RemoteURL    string
	RemoteToken  string
}

// Load reads an optional .env file, then the LEAGUE_* environment. A
// missing envFile is not an error.
func Load(envFile string, logger zerolog.Logger) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		logger.Debug().Str("file", envFile).Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:   getEnv("LEAGUE_DB_PATH", filepath.Join(userHome(), ".league", "league.db")),
		LogLevel: getEnv("LEAGUE_LOG_LEVEL", "info"),
		RedisURL: getEnv("LEAGUE_REDIS_URL", "redis://localhost:6379/0"),
		Timezone: getEnv("LEAGUE_TIMEZONE", "Europe/Warsaw"),

		RemoteURL:   os.Getenv("LEAGUE_REMOTE_URL"),
		RemoteToken: getEnv("LEAGUE_REMOTE_TOKEN", readTokenFile()),
	}

	var err error
	if cfg.CacheBackend, err = cache.ParseBackend(getEnv("LEAGUE_CACHE_BACKEND", string(cache.BackendSQLite))); err != nil {
		return nil, err
	}
	if cfg.StatsSource, err = cache.ParseMode(getEnv("LEAGUE_STATS_SOURCE", string(cache.ModeCached))); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("db_path", cfg.DBPath).
		Str("log_level", cfg.LogLevel).
		Str("cache_backend", string(cfg.CacheBackend)).
		Str("stats_source", string(cfg.StatsSource)).
		Str("timezone", cfg.Timezone).
		Msg("configuration loaded")

	return cfg, nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RedisOptions parses the configured Redis URL.
func (c *Config) RedisOptions() (*redis.Options, error) {
	opts, err := redis.ParseURL(c.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse LEAGUE_REDIS_URL: %w", err)
	}
	return opts, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// readTokenFile returns the contents of ~/.league/remote_token, or "" when
// the file is absent.
func readTokenFile() string {
	data, err := os.ReadFile(filepath.Join(userHome(), ".league", "remote_token"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
