package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/aggregator"
	"github.com/pable/doubles-league/internal/report"
	"github.com/pable/doubles-league/internal/storage"
)

var versusCmd = &cobra.Command{
	Use:   "versus <id|name> <id|name>",
	Short: "Head-to-head record between two players",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersus,
}

func runVersus(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showVersus(cmd.Context(), db, os.Stdout, args[0], args[1])
}

func showVersus(ctx context.Context, db *storage.DB, w io.Writer, ref1, ref2 string) error {
	ids, err := resolvePlayers(ctx, db, []string{ref1, ref2})
	if err != nil {
		return err
	}
	if ids[0] == ids[1] {
		return fmt.Errorf("versus needs two different players")
	}
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}
	report.PrintVersus(w, aggregator.Versus(ids[0], ids[1], matches), report.NewNames(players))
	return nil
}
