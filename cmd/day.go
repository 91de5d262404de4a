package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/rating"
	"github.com/pable/doubles-league/internal/report"
	"github.com/pable/doubles-league/internal/storage"
)

var dayDate string

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Rating changes for one league day",
	Long: `Summarise how each player's all-time rating moved over one calendar day in
the league time zone (LEAGUE_TIMEZONE, default Europe/Warsaw).`,
	Args: cobra.NoArgs,
	RunE: runDay,
}

func init() {
	dayCmd.Flags().StringVar(&dayDate, "date", "", "day to summarise YYYY-MM-DD (default: today)")
}

func runDay(cmd *cobra.Command, args []string) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	day, err := parseDay(dayDate, loc)
	if err != nil {
		return err
	}
	if day.IsZero() {
		day = time.Now().In(loc)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showDay(cmd.Context(), db, os.Stdout, day, loc)
}

func showDay(ctx context.Context, db *storage.DB, w io.Writer, day time.Time, loc *time.Location) error {
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}
	changes := rating.DaySummary(players, matches, day, loc)
	report.PrintDaySummary(w, day, changes, report.NewNames(players))
	return nil
}
