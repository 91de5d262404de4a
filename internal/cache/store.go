// Package cache keeps precomputed per-player rating and stats snapshots and
// decides when to serve them instead of recomputing from the match log.
package cache

import (
	"context"
	"fmt"

	"github.com/pable/doubles-league/internal/model"
)

// SnapshotStore persists one snapshot row per player.
type SnapshotStore interface {
	WriteSnapshot(ctx context.Context, s model.CachedPlayerStats) error
	// ReadSnapshot returns nil, nil when the player has no row.
	ReadSnapshot(ctx context.Context, playerID int64) (*model.CachedPlayerStats, error)
	ListSnapshots(ctx context.Context) ([]model.CachedPlayerStats, error)
	ClearSnapshots(ctx context.Context) error
}

// Backend names a SnapshotStore implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendSQLite, BackendRedis:
		return Backend(s), nil
	}
	return "", fmt.Errorf("unknown cache backend %q (want sqlite or redis)", s)
}
