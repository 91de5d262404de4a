package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/rating"
	"github.com/pable/doubles-league/internal/report"
	"github.com/pable/doubles-league/internal/storage"
)

var (
	ratingsAsOf   string
	ratingsPlayer string
)

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Show the league table over the rolling 182-day window",
	Long: `Replay every 2v2 match from the last 182 days in chronological order and
print the resulting standings. Players without a match in the window sit at 1000.

Example:
  league ratings
  league ratings --as-of 2024-06-01 --player Ania`,
	Args: cobra.NoArgs,
	RunE: runRatings,
}

func init() {
	ratingsCmd.Flags().StringVar(&ratingsAsOf, "as-of", "", "window end date YYYY-MM-DD (default: now)")
	ratingsCmd.Flags().StringVar(&ratingsPlayer, "player", "", "highlight this player (id or name)")
}

func runRatings(cmd *cobra.Command, args []string) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	asOf, err := parseDay(ratingsAsOf, loc)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showRatings(cmd.Context(), db, os.Stdout, asOf, ratingsPlayer)
}

func showRatings(ctx context.Context, db *storage.DB, w io.Writer, asOf time.Time, focusRef string) error {
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		fmt.Fprintln(w, "No players stored yet.")
		return nil
	}

	var focus int64
	if focusRef != "" {
		p, err := mustFindPlayer(ctx, db, focusRef)
		if err != nil {
			return err
		}
		focus = p.ID
	}

	table := rating.ReplayPlayerRatings(players, matches, asOf)
	log.Debug().Int("players", len(players)).Int("matches", len(matches)).Time("as_of", asOf).Msg("ratings replayed")
	report.PrintStandings(w, players, table, focus)
	return nil
}
