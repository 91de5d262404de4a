package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pable/doubles-league/internal/aggregator"
	"github.com/pable/doubles-league/internal/model"
	"github.com/pable/doubles-league/internal/rating"
)

// PrintRecords prints the league's all-time records. Empty records are skipped.
func PrintRecords(w io.Writer, rec model.LeagueRecords, names Names) {
	table := newTable(w)
	table.Header("RECORD", "HOLDER", "VALUE", "DATE")

	if r := rec.Highest; r != nil {
		table.Append("Highest rating", names.Name(r.PlayerID), fmtRating(r.Rating), fmtDate(r.Date))
	}
	if r := rec.Lowest; r != nil {
		table.Append("Lowest rating", names.Name(r.PlayerID), fmtRating(r.Rating), fmtDate(r.Date))
	}
	if r := rec.MostMatches; r != nil {
		table.Append("Most matches", names.Name(r.PlayerID), strconv.Itoa(r.Count), "—")
	}
	if r := rec.BestWinRate; r != nil {
		table.Append("Best win rate", names.Name(r.PlayerID), fmt.Sprintf("%s of %d", fmtPct(r.WinRate), r.Matches), "—")
	}
	if r := rec.WorstWinRate; r != nil {
		table.Append("Worst win rate", names.Name(r.PlayerID), fmt.Sprintf("%s of %d", fmtPct(r.WinRate), r.Matches), "—")
	}
	if r := rec.LongestWinStreak; r != nil {
		table.Append("Longest win streak", names.Name(r.PlayerID), strconv.Itoa(r.Length), fmtDate(r.Date))
	}
	if r := rec.LongestLossStreak; r != nil {
		table.Append("Longest loss streak", names.Name(r.PlayerID), strconv.Itoa(r.Length), fmtDate(r.Date))
	}
	if r := rec.BiggestMargin; r != nil {
		m := r.Match
		d := m.Date
		table.Append("Biggest win",
			fmt.Sprintf("%s vs %s", names.Team(m.TeamA), names.Team(m.TeamB)),
			fmt.Sprintf("%d–%d", m.ScoreA, m.ScoreB), fmtDate(&d))
	}
	if r := rec.BestDuo; r != nil {
		table.Append("Best duo", names.Name(r.PlayerID)+" + "+names.Name(r.PartnerID),
			fmt.Sprintf("%s of %d", fmtPct(r.WinRate), r.Games), "—")
	}
	if r := rec.WorstDuo; r != nil {
		table.Append("Worst duo", names.Name(r.PlayerID)+" + "+names.Name(r.PartnerID),
			fmt.Sprintf("%s of %d", fmtPct(r.WinRate), r.Games), "—")
	}
	table.Render()
}

// PrintStreaks prints a player's streak summary.
func PrintStreaks(w io.Writer, name string, s model.StreakSummary) {
	fmt.Fprintf(w, "\n%s\n", name)
	if s.CurrentType == model.StreakNone {
		fmt.Fprintln(w, "No matches played.")
		return
	}
	fmt.Fprintf(w, "Current:    %d %s (since %s)\n", s.Current, s.CurrentType, fmtDate(s.CurrentStart))
	fmt.Fprintf(w, "Best win:   %d (%s)\n", s.BestWin, fmtDate(s.BestWinDate))
	fmt.Fprintf(w, "Worst loss: %d (%s)\n", s.WorstLoss, fmtDate(s.WorstLossDate))
}

// PrintVersus prints a head-to-head summary.
func PrintVersus(w io.Writer, v aggregator.VersusStats, names Names) {
	n1, n2 := names.Name(v.Player1ID), names.Name(v.Player2ID)
	if v.Total == 0 {
		fmt.Fprintf(w, "%s and %s have not played against each other.\n", n1, n2)
		return
	}
	fmt.Fprintf(w, "\n%s vs %s  |  Matches: %d  |  %d–%d", n1, n2, v.Total, v.P1Wins, v.P2Wins)
	if v.Draws > 0 {
		fmt.Fprintf(w, " (%d drawn)", v.Draws)
	}
	fmt.Fprintf(w, "  |  Avg score: %.1f–%.1f\n", v.AvgScore1, v.AvgScore2)
}

// PrintRivalries prints the most frequent match-ups, each with its
// head-to-head line.
func PrintRivalries(w io.Writer, rivalries []aggregator.Rivalry, matches []model.Match, names Names) {
	table := newTable(w)
	table.Header("#", "RIVALRY", "MEETINGS", "H2H")
	for i, r := range rivalries {
		v := aggregator.Versus(r.Player1ID, r.Player2ID, matches)
		table.Append(
			strconv.Itoa(i+1),
			names.Name(r.Player1ID)+" vs "+names.Name(r.Player2ID),
			strconv.Itoa(r.Count),
			fmt.Sprintf("%d–%d", v.P1Wins, v.P2Wins),
		)
	}
	table.Render()
}

// PrintStrength prints a player's record against stronger, similar and
// weaker opposition.
func PrintStrength(w io.Writer, s aggregator.StrengthSplit) {
	table := newTable(w)
	table.Header("OPPONENTS", "M", "W", "L", "WIN%")
	rows := []struct {
		label string
		b     aggregator.BucketStats
	}{
		{fmt.Sprintf("stronger (> +%.0f)", aggregator.StrengthBand), s.Strong},
		{"similar", s.Equal},
		{fmt.Sprintf("weaker (< -%.0f)", aggregator.StrengthBand), s.Weak},
	}
	for _, r := range rows {
		table.Append(r.label, strconv.Itoa(r.b.Total), strconv.Itoa(r.b.Wins), strconv.Itoa(r.b.Losses), fmtPct(r.b.WinRate))
	}
	table.Render()
}

// PrintDaySummary prints the rating movement over one day.
func PrintDaySummary(w io.Writer, day time.Time, changes []rating.DayChange, names Names) {
	if len(changes) == 0 {
		fmt.Fprintf(w, "No matches on %s.\n", day.Format(dateLayout))
		return
	}
	fmt.Fprintf(w, "\nDay summary for %s\n\n", day.Format(dateLayout))
	table := newTable(w)
	table.Header("PLAYER", "M", "BEFORE", "AFTER", "Δ")
	for _, c := range changes {
		table.Append(names.Name(c.PlayerID), strconv.Itoa(c.Matches), fmtRating(c.OldRating), fmtRating(c.NewRating), fmtSigned(c.Change))
	}
	table.Render()
}

// PrintPrediction prints a what-if match outcome.
func PrintPrediction(w io.Writer, p rating.Prediction, teamA, teamB []int64, names Names) {
	fmt.Fprintf(w, "\n%s (%s)  vs  %s (%s)\n", names.Team(teamA), fmtRating(p.TeamARating), names.Team(teamB), fmtRating(p.TeamBRating))
	fmt.Fprintf(w, "Win chance: %s – %s\n\n", fmtPct(p.WinChanceA*100), fmtPct((1-p.WinChanceA)*100))

	table := newTable(w)
	table.Header("PLAYER", "NOW", "AFTER", "Δ")
	for _, pr := range p.Players {
		table.Append(names.Name(pr.PlayerID), fmtRating(pr.Before), fmtRating(pr.After), fmtSigned(pr.After-pr.Before))
	}
	table.Render()
}
