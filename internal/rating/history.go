package rating

import (
	"time"

	"github.com/pable/doubles-league/internal/model"
)

// HistoryPoint is the player's windowed rating right after one match.
// The first point of a history has no match and a zero Date.
type HistoryPoint struct {
	Date    time.Time
	MatchID int64
	Rating  float64
}

// RatingHistory returns the player's rating trajectory: a leading
// StartRating point, then one point per match they played. Each point is a
// windowed replay anchored at that match's date over the sorted prefix that
// ends with the match, so the values match what ReplayPlayerRatings would
// have reported right after it.
func RatingHistory(playerID int64, players []model.Player, matches []model.Match) []HistoryPoint {
	sorted := model.SortChronological(matches)
	history := []HistoryPoint{{Rating: model.StartRating}}

	for i, m := range sorted {
		if !m.Involves(playerID) {
			continue
		}
		cutoff := Cutoff(m.Date)
		table := NewTable(players)
		for _, prev := range sorted[:i+1] {
			if prev.Date.Before(cutoff) {
				continue
			}
			table = applyTeamDelta(table, prev)
		}
		history = append(history, HistoryPoint{
			Date:    m.Date,
			MatchID: m.ID,
			Rating:  table.Get(playerID),
		})
	}
	return history
}
