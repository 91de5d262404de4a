// Package records derives all-time streaks and league-wide extremes from the
// full, unwindowed match history.
package records

import (
	"github.com/pable/doubles-league/internal/model"
)

// ComputePlayerStreaks walks the player's matches in (date, id) order and
// reports the longest win and loss runs and the run still in progress.
// A draw counts as a loss. Matches where the player's own team is not a
// pair are skipped.
func ComputePlayerStreaks(playerID int64, matches []model.Match) model.StreakSummary {
	s := model.StreakSummary{PlayerID: playerID}

	var wins, losses int
	for _, m := range model.SortChronological(matches) {
		side := m.Side(playerID)
		if side == 0 {
			continue
		}
		own, won := m.TeamA, m.ScoreA > m.ScoreB
		if side == 'B' {
			own, won = m.TeamB, m.ScoreB > m.ScoreA
		}
		if len(own) != 2 {
			continue
		}
		date := m.Date

		if won {
			wins++
			losses = 0
			if wins > s.BestWin {
				s.BestWin = wins
				s.BestWinDate = &date
			}
		} else {
			losses++
			wins = 0
			if losses > s.WorstLoss {
				s.WorstLoss = losses
				s.WorstLossDate = &date
			}
		}

		typ := model.StreakLoss
		if won {
			typ = model.StreakWin
		}
		if typ != s.CurrentType {
			s.CurrentType = typ
			s.Current = 0
			s.CurrentStart = &date
		}
		s.Current++
	}
	return s
}
