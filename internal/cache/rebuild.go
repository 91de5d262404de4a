package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pable/doubles-league/internal/aggregator"
	"github.com/pable/doubles-league/internal/model"
	"github.com/pable/doubles-league/internal/rating"
)

// BuildSnapshots computes one snapshot per player, in player order. Ratings
// are replayed once for the whole league.
func BuildSnapshots(players []model.Player, matches []model.Match, asOf, now time.Time, generation string) []model.CachedPlayerStats {
	ratings := rating.ReplayPlayerRatings(players, matches, asOf)
	out := make([]model.CachedPlayerStats, 0, len(players))
	for _, p := range players {
		st := aggregator.ComputePlayerStats(p.ID, matches)
		out = append(out, model.NewCachedPlayerStats(ratings.Get(p.ID), st, now, generation))
	}
	return out
}

// RebuildAll recomputes and writes every player's snapshot under a fresh
// generation id. Rows are written one at a time without a surrounding
// transaction: on failure the rows already written stay, and are returned
// together with the error.
func RebuildAll(ctx context.Context, store SnapshotStore, players []model.Player, matches []model.Match, asOf time.Time) ([]model.CachedPlayerStats, error) {
	snaps := BuildSnapshots(players, matches, asOf, time.Now().UTC(), uuid.NewString())

	written := make([]model.CachedPlayerStats, 0, len(snaps))
	for _, s := range snaps {
		if err := store.WriteSnapshot(ctx, s); err != nil {
			return written, fmt.Errorf("rebuild stopped after %d of %d players: %w", len(written), len(snaps), err)
		}
		snapshotsWritten.Inc()
		written = append(written, s)
	}
	return written, nil
}
