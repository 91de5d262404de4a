package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/records"
	"github.com/pable/doubles-league/internal/report"
	"github.com/pable/doubles-league/internal/storage"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "League-wide records",
	Long: `Print all-time league records: rating peaks over an unwindowed replay,
most matches, best and worst win rate (5+ matches), longest streaks,
biggest score margin and best and worst duo.`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

func runRecords(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showRecords(cmd.Context(), db, os.Stdout)
}

func showRecords(ctx context.Context, db *storage.DB, w io.Writer) error {
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}
	report.PrintRecords(w, records.ComputeLeagueRecords(players, matches), report.NewNames(players))
	return nil
}
