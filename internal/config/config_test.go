package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pable/doubles-league/internal/cache"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LEAGUE_DB_PATH", "LEAGUE_LOG_LEVEL", "LEAGUE_CACHE_BACKEND", "LEAGUE_REDIS_URL", "LEAGUE_TIMEZONE", "LEAGUE_STATS_SOURCE", "LEAGUE_REMOTE_URL", "LEAGUE_REMOTE_TOKEN"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheBackend != cache.BackendSQLite || cfg.StatsSource != cache.ModeCached {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Timezone != "Europe/Warsaw" || cfg.LogLevel != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
	if filepath.Base(cfg.DBPath) != "league.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "league.env")
	body := "LEAGUE_DB_PATH=/tmp/x.db\nLEAGUE_CACHE_BACKEND=redis\nLEAGUE_STATS_SOURCE=live\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set.
	for _, k := range []string{"LEAGUE_DB_PATH", "LEAGUE_CACHE_BACKEND", "LEAGUE_STATS_SOURCE"} {
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for _, k := range []string{"LEAGUE_DB_PATH", "LEAGUE_CACHE_BACKEND", "LEAGUE_STATS_SOURCE"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := Load(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" || cfg.CacheBackend != cache.BackendRedis || cfg.StatsSource != cache.ModeLive {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEAGUE_CACHE_BACKEND", "memcached")
	if _, err := Load(filepath.Join(t.TempDir(), "none"), zerolog.Nop()); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestRedisOptions(t *testing.T) {
	cfg := &Config{RedisURL: "redis://:secret@cache.local:6380/2"}
	opts, err := cfg.RedisOptions()
	if err != nil {
		t.Fatalf("RedisOptions: %v", err)
	}
	if opts.Addr != "cache.local:6380" || opts.DB != 2 || opts.Password != "secret" {
		t.Errorf("opts = %+v", opts)
	}
	if _, err := (&Config{RedisURL: "http://nope"}).RedisOptions(); err == nil {
		t.Error("expected error for non-redis scheme")
	}
}

func TestLocation(t *testing.T) {
	if _, err := (&Config{Timezone: "UTC"}).Location(); err != nil {
		t.Errorf("Location(UTC): %v", err)
	}
	if _, err := (&Config{Timezone: "Mars/Olympus"}).Location(); err == nil {
		t.Error("expected error for unknown zone")
	}
}

func TestLoadRemote(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEAGUE_REMOTE_URL", "https://league.example.com")
	t.Setenv("LEAGUE_REMOTE_TOKEN", "tok")
	cfg, err := Load(filepath.Join(t.TempDir(), "none"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RemoteURL != "https://league.example.com" || cfg.RemoteToken != "tok" {
		t.Errorf("remote = %q %q", cfg.RemoteURL, cfg.RemoteToken)
	}
}
