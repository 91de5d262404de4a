package storage

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pable/doubles-league/internal/model"
)

// LoadLeague reads all players and matches. The two reads run concurrently.
func (db *DB) LoadLeague(ctx context.Context) ([]model.Player, []model.Match, error) {
	start := time.Now()

	var (
		players []model.Player
		matches []model.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if players, err = db.ListPlayers(gctx); err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if matches, err = db.ListMatches(gctx); err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	db.log.Debug().
		Int("players", len(players)).
		Int("matches", len(matches)).
		Dur("took", time.Since(start)).
		Msg("league loaded")
	return players, matches, nil
}
