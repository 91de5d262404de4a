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

var streakCmd = &cobra.Command{
	Use:   "streak <id|name> [<id|name>...]",
	Short: "Longest and current win/loss streaks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStreak,
}

func runStreak(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	for _, ref := range args {
		if err := showStreak(cmd.Context(), db, os.Stdout, ref); err != nil {
			return err
		}
	}
	return nil
}

func showStreak(ctx context.Context, db *storage.DB, w io.Writer, ref string) error {
	p, err := mustFindPlayer(ctx, db, ref)
	if err != nil {
		return err
	}
	matches, err := db.ListMatches(ctx)
	if err != nil {
		return err
	}
	report.PrintStreaks(w, p.Name, records.ComputePlayerStreaks(p.ID, matches))
	return nil
}
