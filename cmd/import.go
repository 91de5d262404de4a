package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/remote"
)

var importCmd = &cobra.Command{
	Use:   "import <dump.json|->",
	Short: "Load players and matches from a JSON dump",
	Long: `Upsert the players and matches in a league dump. Matches are keyed by id, so
re-importing a dump replaces earlier copies of the same match and its line-up.
Files ending in .gz or .zst are decompressed on the fly.

Dump format:
  {"players": [{"id": 1, "name": "Ania"}, ...],
   "matches": [{"id": 1, "date": "2024-05-01T18:00:00Z", "type": "to6",
                "team_a": [1, 2], "team_b": [3, 4], "score_a": 6, "score_b": 3}, ...]}`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open dump: %w", err)
		}
		defer f.Close()
		r = f
	}
	body, err := remote.Decompress(r, remote.EncodingForPath(args[0]))
	if err != nil {
		return fmt.Errorf("open dump: %w", err)
	}
	defer body.Close()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := db.Import(cmd.Context(), body)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Imported %d players and %d matches into %s\n", st.Players, st.Matches, cfg.DBPath)
	return nil
}
