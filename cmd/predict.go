package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/doubles-league/internal/model"
	"github.com/pable/doubles-league/internal/rating"
	"github.com/pable/doubles-league/internal/report"
	"github.com/pable/doubles-league/internal/storage"
)

var (
	predictScore string
	predictType  string
)

var predictCmd = &cobra.Command{
	Use:   "predict <a1> <a2> <b1> <b2>",
	Short: "Win chance and rating swing for a hypothetical match",
	Long: `Compare two pairs on current windowed ratings and show what each player
would gain or lose for the given result. Nothing is stored.

Example:
  league predict Ania Bartek Celina Darek --score 6-3 --type to6`,
	Args: cobra.ExactArgs(4),
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictScore, "score", "6-0", "result for team A as A-B")
	predictCmd.Flags().StringVar(&predictType, "type", "to6", "match type: to6, to4, to3")
}

func runPredict(cmd *cobra.Command, args []string) error {
	scoreA, scoreB, err := parseScore(predictScore)
	if err != nil {
		return err
	}
	t, err := model.ParseMatchType(predictType)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showPrediction(cmd.Context(), db, os.Stdout, args, scoreA, scoreB, t)
}

func showPrediction(ctx context.Context, db *storage.DB, w io.Writer, refs []string, scoreA, scoreB int, t model.MatchType) error {
	ids, err := resolvePlayers(ctx, db, refs)
	if err != nil {
		return err
	}
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}

	table := rating.ReplayPlayerRatings(players, matches, time.Now())
	teamA, teamB := ids[:2], ids[2:]
	p, err := rating.Predict(table, teamA, teamB, scoreA, scoreB, t)
	if err != nil {
		return err
	}
	report.PrintPrediction(w, p, teamA, teamB, report.NewNames(players))
	return nil
}

// parseScore reads "6-3" into its two halves.
func parseScore(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid score %q (want A-B)", s)
	}
	sa, errA := strconv.Atoi(strings.TrimSpace(a))
	sb, errB := strconv.Atoi(strings.TrimSpace(b))
	if errA != nil || errB != nil || sa < 0 || sb < 0 {
		return 0, 0, fmt.Errorf("invalid score %q (want A-B)", s)
	}
	return sa, sb, nil
}
