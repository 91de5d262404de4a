package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/model"
	"github.com/pable/doubles-league/internal/report"
	"github.com/pable/doubles-league/internal/storage"
)

var (
	listMatches bool
	listPlayer  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List players, or matches with --matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listMatches, "matches", false, "list matches instead of players")
	listCmd.Flags().StringVar(&listPlayer, "player", "", "only matches involving this player (id or name)")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if listMatches || listPlayer != "" {
		return showMatches(cmd.Context(), db, os.Stdout, listPlayer)
	}
	return showPlayers(cmd.Context(), db, os.Stdout)
}

func showPlayers(ctx context.Context, db *storage.DB, w io.Writer) error {
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		fmt.Fprintln(w, "No players stored yet. Run 'league import <dump.json>' to add some.")
		return nil
	}

	played := make(map[int64]int)
	for _, m := range matches {
		for _, id := range append(append([]int64{}, m.TeamA...), m.TeamB...) {
			played[id]++
		}
	}

	fmt.Fprintf(w, "%6s  %-20s  %8s  %s\n", "ID", "NAME", "MATCHES", "EXTERNAL")
	fmt.Fprintf(w, "%6s  %-20s  %8s  %s\n", "──────", "────────────────────", "────────", "────────")
	for _, p := range players {
		ext := "-"
		if p.ExternalID != nil {
			ext = fmt.Sprintf("%d", *p.ExternalID)
		}
		fmt.Fprintf(w, "%6d  %-20s  %8d  %s\n", p.ID, p.Name, played[p.ID], ext)
	}
	return nil
}

func showMatches(ctx context.Context, db *storage.DB, w io.Writer, playerRef string) error {
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}
	if playerRef != "" {
		p, err := mustFindPlayer(ctx, db, playerRef)
		if err != nil {
			return err
		}
		var own []model.Match
		for _, m := range matches {
			if m.Involves(p.ID) {
				own = append(own, m)
			}
		}
		matches = own
	}
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches.")
		return nil
	}
	report.PrintMatches(w, model.SortChronological(matches), report.NewNames(players))
	return nil
}
