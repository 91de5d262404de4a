package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/aggregator"
	"github.com/pable/doubles-league/internal/cache"
	"github.com/pable/doubles-league/internal/rating"
	"github.com/pable/doubles-league/internal/report"
	"github.com/pable/doubles-league/internal/storage"
)

var (
	playerMinGames int
	playerLive     bool
)

var playerCmd = &cobra.Command{
	Use:   "player <id|name> [<id|name>...]",
	Short: "Player profile: rating, record, partners and opponent strength",
	Long: `Show a player's cached stats snapshot, falling back to a live computation
when the snapshot is missing or the cache backend is unavailable.

The partner table counts every 2v2 match; best and worst partner only
consider partners with at least --min-games games together.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().IntVar(&playerMinGames, "min-games", 1, "minimum games together for best/worst partner")
	playerCmd.Flags().BoolVar(&playerLive, "live", false, "ignore the cache and compute from the match log")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, ref := range args {
		if err := showPlayer(cmd.Context(), db, os.Stdout, ref); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return nil
}

func showPlayer(ctx context.Context, db *storage.DB, w io.Writer, ref string) error {
	p, err := mustFindPlayer(ctx, db, ref)
	if err != nil {
		return err
	}
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}

	store, closeStore, err := openSnapshotStore(db)
	if err != nil {
		return err
	}
	defer closeStore()

	mode := cfg.StatsSource
	if playerLive {
		mode = cache.ModeLive
	}
	live := cache.NewLiveSource(players, matches, time.Now())
	src := cache.NewSource(mode, store, live, log)

	snap, err := src.PlayerStats(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("stats for %s: %w", p.Name, err)
	}

	names := report.NewNames(players)
	report.PrintPlayerSummary(w, p.Name, snap, names)

	stats := aggregator.ComputePlayerStatsMin(p.ID, matches, playerMinGames)
	report.PrintPartners(w, stats, names)

	table := rating.ReplayPlayerRatings(players, matches, time.Now())
	report.PrintStrength(w, aggregator.PerformanceByOpponentStrength(p.ID, matches, table))
	return nil
}
