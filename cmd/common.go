package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pable/doubles-league/internal/cache"
	"github.com/pable/doubles-league/internal/model"
	"github.com/pable/doubles-league/internal/storage"
)

// openDB opens the configured database, creating its directory if needed.
func openDB() (*storage.DB, error) {
	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// mustFindPlayer resolves a player reference or fails with a readable error.
func mustFindPlayer(ctx context.Context, db *storage.DB, ref string) (*model.Player, error) {
	p, err := db.FindPlayer(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("find player %q: %w", ref, err)
	}
	if p == nil {
		return nil, fmt.Errorf("no player matches %q", ref)
	}
	return p, nil
}

// openSnapshotStore returns the configured cache backend. The returned
// close func releases a Redis connection and is a no-op for SQLite.
func openSnapshotStore(db *storage.DB) (cache.SnapshotStore, func(), error) {
	switch cfg.CacheBackend {
	case cache.BackendRedis:
		opts, err := cfg.RedisOptions()
		if err != nil {
			return nil, nil, err
		}
		client := redis.NewClient(opts)
		log.Debug().Str("addr", opts.Addr).Int("db", opts.DB).Msg("using redis snapshot store")
		return cache.NewRedisStore(client, ""), func() { client.Close() }, nil
	default:
		return db, func() {}, nil
	}
}

// parseDay parses a YYYY-MM-DD flag value in loc. An empty value yields the
// zero time, which the rating functions read as "now".
func parseDay(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// resolvePlayers maps each reference to a player id, failing on the first miss.
func resolvePlayers(ctx context.Context, db *storage.DB, refs []string) ([]int64, error) {
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		p, err := mustFindPlayer(ctx, db, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// writeMetrics exports the cache counters accumulated by this run. An empty
// path is a no-op.
func writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := cache.WriteTextfile(path); err != nil {
		return err
	}
	log.Debug().Str("path", path).Msg("cache metrics written")
	return nil
}
