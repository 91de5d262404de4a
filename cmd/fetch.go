package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/cache"
	"github.com/pable/doubles-league/internal/remote"
)

// fetch command flags.
var (
	// fetchURL overrides LEAGUE_REMOTE_URL.
	fetchURL string
	// fetchPageSize is the number of matches requested per page.
	fetchPageSize int
	// fetchRebuild refreshes the stats cache after a successful fetch.
	fetchRebuild bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Pull players and matches from the league web API",
	Long: `Download every player and match from a league web API (/api/players and
the paginated /api/matches) and upsert them into the local database.

The API root comes from --url or LEAGUE_REMOTE_URL. A bearer token is read
from LEAGUE_REMOTE_TOKEN or ~/.league/remote_token when the API needs one.

Examples:
  league fetch --url https://league.example.com
  league fetch --rebuild-cache`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "league API root (default $LEAGUE_REMOTE_URL)")
	fetchCmd.Flags().IntVar(&fetchPageSize, "page-size", remote.DefaultPageSize, "matches per page")
	fetchCmd.Flags().BoolVar(&fetchRebuild, "rebuild-cache", false, "rebuild the stats cache afterwards")
}

func runFetch(cmd *cobra.Command, args []string) error {
	url := fetchURL
	if url == "" {
		url = cfg.RemoteURL
	}
	if url == "" {
		return fmt.Errorf("no league API configured: use --url or set LEAGUE_REMOTE_URL")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	start := time.Now()
	fmt.Fprintf(os.Stderr, "Fetching league from %s...\n", url)
	players, matches, err := remote.NewClient(url, cfg.RemoteToken).FetchLeague(ctx, fetchPageSize)
	if err != nil {
		return fmt.Errorf("fetch league: %w", err)
	}

	if err := db.UpsertPlayers(ctx, players); err != nil {
		return fmt.Errorf("store players: %w", err)
	}
	if err := db.InsertMatches(ctx, matches); err != nil {
		return fmt.Errorf("store matches: %w", err)
	}
	log.Info().
		Int("players", len(players)).
		Int("matches", len(matches)).
		Dur("took", time.Since(start)).
		Msg("league fetched")
	fmt.Fprintf(os.Stdout, "Stored %d players and %d matches\n", len(players), len(matches))

	if !fetchRebuild {
		return nil
	}
	store, closeStore, err := openSnapshotStore(db)
	if err != nil {
		return err
	}
	defer closeStore()
	snaps, err := cache.RebuildAll(ctx, store, players, matches, time.Now())
	if err != nil {
		return fmt.Errorf("rebuild cache: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Rebuilt %d snapshots\n", len(snaps))
	return nil
}
