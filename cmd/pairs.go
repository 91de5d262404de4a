package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/model"
	"github.com/pable/doubles-league/internal/rating"
	"github.com/pable/doubles-league/internal/report"
	"github.com/pable/doubles-league/internal/storage"
)

var (
	pairsMin    int
	pairsStored bool
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Rebuild and show pair ratings",
	Long: `Replay the full match history into ratings for every two-player team,
replace the stored pair table with the result, and print it. Pair ratings are
never windowed. A drawn match counts as a loss for both pairs.`,
	Args: cobra.NoArgs,
	RunE: runPairs,
}

func init() {
	pairsCmd.Flags().IntVar(&pairsMin, "min", 1, "hide pairs with fewer matches")
	pairsCmd.Flags().BoolVar(&pairsStored, "stored", false, "print the stored table without rebuilding")
}

func runPairs(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showPairs(cmd.Context(), db, os.Stdout, pairsMin, pairsStored)
}

func showPairs(ctx context.Context, db *storage.DB, w io.Writer, minMatches int, stored bool) error {
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}

	var pairs []model.PairState
	if stored {
		if pairs, err = db.ListPairs(ctx); err != nil {
			return err
		}
	} else {
		pairs = rating.ReplayPairRatings(matches)
		if err := db.ReplacePairs(ctx, pairs); err != nil {
			return fmt.Errorf("store pairs: %w", err)
		}
		log.Info().Int("pairs", len(pairs)).Int("matches", len(matches)).Msg("pair ratings rebuilt")
	}

	if len(pairs) == 0 {
		fmt.Fprintln(w, "No pairs yet.")
		return nil
	}
	report.PrintPairs(w, pairs, report.NewNames(players), minMatches)
	return nil
}
