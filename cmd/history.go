package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/rating"
	"github.com/pable/doubles-league/internal/report"
	"github.com/pable/doubles-league/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history <id|name>",
	Short: "Rating after each of a player's matches",
	Long: `Print the player's windowed rating as it stood right after each match they
played, starting from 1000. Every point is a full replay of the 182 days
before that match, so ratings can drift between matches as old results age out.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showHistory(cmd.Context(), db, os.Stdout, args[0])
}

func showHistory(ctx context.Context, db *storage.DB, w io.Writer, ref string) error {
	p, err := mustFindPlayer(ctx, db, ref)
	if err != nil {
		return err
	}
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}
	points := rating.RatingHistory(p.ID, players, matches)
	fmt.Fprintf(w, "\n%s\n", p.Name)
	report.PrintHistory(w, points)
	return nil
}
