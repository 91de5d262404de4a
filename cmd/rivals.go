package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/aggregator"
	"github.com/pable/doubles-league/internal/report"
	"github.com/pable/doubles-league/internal/storage"
)

var rivalsLimit int

var rivalsCmd = &cobra.Command{
	Use:   "rivals",
	Short: "Most frequent opposing pairings",
	Args:  cobra.NoArgs,
	RunE:  runRivals,
}

func init() {
	rivalsCmd.Flags().IntVar(&rivalsLimit, "limit", 10, "number of rivalries to show (0 = all)")
}

func runRivals(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showRivals(cmd.Context(), db, os.Stdout, rivalsLimit)
}

func showRivals(ctx context.Context, db *storage.DB, w io.Writer, limit int) error {
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}
	report.PrintRivalries(w, aggregator.TopRivalries(matches, limit), matches, report.NewNames(players))
	return nil
}
