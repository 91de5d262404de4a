package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the league database",
	Long: `Run an arbitrary SQL query against the league database and print results as a table.

Schema overview:
  players(id, name, external_id)
  matches(id, played_at, match_type, score_a, score_b)
  match_players(match_id, side, slot, player_id)
  pairs(player1_id, player2_id, rating, matches, wins, losses)
  player_stats_cache(player_id, rating, matches, wins, losses, win_rate,
    to6_wins, to6_losses, to4_wins, to4_losses, to3_wins, to3_losses,
    best_partner_id, best_partner_win_rate, worst_partner_id,
    worst_partner_win_rate, updated_at, generation)

Note: played_at and updated_at are Unix milliseconds. Use
  datetime(played_at/1000, 'unixepoch') to read them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return printQuery(cmd.Context(), db, os.Stdout, strings.Join(args, " "))
}

func printQuery(ctx context.Context, db *storage.DB, w io.Writer, query string) error {
	cols, rows, err := db.QueryRaw(ctx, query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return nil
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
	return nil
}
