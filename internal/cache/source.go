package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pable/doubles-league/internal/aggregator"
	"github.com/pable/doubles-league/internal/model"
	"github.com/pable/doubles-league/internal/rating"
)

// StatsSource yields a player's rating and stats.
type StatsSource interface {
	PlayerStats(ctx context.Context, playerID int64) (model.CachedPlayerStats, error)
}

// Mode selects how stats are served.
type Mode string

const (
	ModeCached Mode = "cached"
	ModeLive   Mode = "live"
)

// ParseMode validates a stats source mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCached, ModeLive:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown stats source %q (want cached or live)", s)
}

// LiveComputeSource recomputes from the match log on every call.
type LiveComputeSource struct {
	Players []model.Player
	Matches []model.Match
	AsOf    time.Time // zero means now

	ratings model.RatingTable
}

// NewLiveSource returns a live source over a loaded league.
func NewLiveSource(players []model.Player, matches []model.Match, asOf time.Time) *LiveComputeSource {
	return &LiveComputeSource{Players: players, Matches: matches, AsOf: asOf}
}

// PlayerStats replays ratings once per source and aggregates the player's stats.
// Live rows carry an empty Generation.
func (s *LiveComputeSource) PlayerStats(_ context.Context, playerID int64) (model.CachedPlayerStats, error) {
	if s.ratings == nil {
		s.ratings = rating.ReplayPlayerRatings(s.Players, s.Matches, s.AsOf)
	}
	st := aggregator.ComputePlayerStats(playerID, s.Matches)
	return model.NewCachedPlayerStats(s.ratings.Get(playerID), st, time.Now().UTC(), ""), nil
}

// CachedSource serves snapshots and falls back to live computation on a miss
// or a read error. It only fails if the fallback fails.
type CachedSource struct {
	Store    SnapshotStore
	Fallback StatsSource
	Log      zerolog.Logger
}

// PlayerStats implements StatsSource.
func (s *CachedSource) PlayerStats(ctx context.Context, playerID int64) (model.CachedPlayerStats, error) {
	snap, err := s.Store.ReadSnapshot(ctx, playerID)
	switch {
	case err != nil:
		cacheFallbacks.Inc()
		s.Log.Warn().Err(err).Int64("player", playerID).Msg("snapshot read failed, computing live")
	case snap == nil:
		cacheMisses.Inc()
		s.Log.Debug().Int64("player", playerID).Msg("snapshot miss")
	default:
		cacheHits.Inc()
		return *snap, nil
	}
	return s.Fallback.PlayerStats(ctx, playerID)
}

// NewSource picks the stats strategy. A nil store forces live mode.
func NewSource(mode Mode, store SnapshotStore, live StatsSource, log zerolog.Logger) StatsSource {
	if mode == ModeLive || store == nil {
		return live
	}
	return &CachedSource{Store: store, Fallback: live, Log: log}
}
