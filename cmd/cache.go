package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/cache"
	"github.com/pable/doubles-league/internal/report"
	"github.com/pable/doubles-league/internal/storage"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the player stats snapshot cache",
	Long: `The stats cache holds one precomputed snapshot per player so profile lookups
skip a full replay. Snapshots live in SQLite or Redis (LEAGUE_CACHE_BACKEND).`,
}

var cacheRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Recompute and store a snapshot for every player",
	Args:  cobra.NoArgs,
	RunE:  runCacheRebuild,
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List stored snapshots",
	Args:  cobra.NoArgs,
	RunE:  runCacheShow,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored snapshot",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheRebuildCmd, cacheShowCmd, cacheClearCmd)
}

// withStore opens the database and the configured snapshot store for fn.
func withStore(fn func(db *storage.DB, store cache.SnapshotStore) error) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	store, closeStore, err := openSnapshotStore(db)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(db, store)
}

func runCacheRebuild(cmd *cobra.Command, args []string) error {
	return withStore(func(db *storage.DB, store cache.SnapshotStore) error {
		return rebuildCache(cmd.Context(), db, store, os.Stdout)
	})
}

func rebuildCache(ctx context.Context, db *storage.DB, store cache.SnapshotStore, w io.Writer) error {
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	snaps, err := cache.RebuildAll(ctx, store, players, matches, start)
	if err != nil {
		log.Error().Err(err).Int("written", len(snaps)).Msg("cache rebuild incomplete")
		return err
	}
	log.Info().
		Int("players", len(snaps)).
		Str("backend", string(cfg.CacheBackend)).
		Dur("took", time.Since(start)).
		Msg("stats cache rebuilt")
	fmt.Fprintf(w, "Rebuilt %d snapshots\n", len(snaps))
	return nil
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	return withStore(func(db *storage.DB, store cache.SnapshotStore) error {
		return showCache(cmd.Context(), db, store, os.Stdout)
	})
}

func showCache(ctx context.Context, db *storage.DB, store cache.SnapshotStore, w io.Writer) error {
	snaps, err := store.ListSnapshots(ctx)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Fprintln(w, "Cache is empty. Run 'league cache rebuild'.")
		return nil
	}
	players, err := db.ListPlayers(ctx)
	if err != nil {
		return err
	}
	report.PrintSnapshots(w, snaps, report.NewNames(players))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	return withStore(func(db *storage.DB, store cache.SnapshotStore) error {
		if err := store.ClearSnapshots(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Cache cleared.")
		return nil
	})
}
