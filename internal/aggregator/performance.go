package aggregator

import (
	"github.com/pable/doubles-league/internal/model"
)

// StrengthBand is how far the opponents' mean rating may sit from the
// player's own before they count as stronger or weaker.
const StrengthBand = 50.0

// BucketStats is a win/loss record for one opponent-strength bucket.
type BucketStats struct {
	Total   int
	Wins    int
	Losses  int
	WinRate float64
}

func (b *BucketStats) add(won bool) {
	b.Total++
	if won {
		b.Wins++
	} else {
		b.Losses++
	}
	b.WinRate = float64(b.Wins) / float64(b.Total) * 100
}

// StrengthSplit is a player's record against stronger, similar and weaker
// opposition.
type StrengthSplit struct {
	PlayerID      int64
	CurrentRating float64
	Strong        BucketStats
	Equal         BucketStats
	Weak          BucketStats
}

// PerformanceByOpponentStrength buckets the player's matches by the mean
// current rating of the opposing team relative to the player's own current
// rating. Opponents are judged by today's ratings, not those at match time.
func PerformanceByOpponentStrength(playerID int64, matches []model.Match, ratings model.RatingTable) StrengthSplit {
	out := StrengthSplit{PlayerID: playerID, CurrentRating: ratings.Get(playerID)}
	for _, m := range matches {
		side := m.Side(playerID)
		if side == 0 {
			continue
		}
		opp, my, their := m.TeamB, m.ScoreA, m.ScoreB
		if side == 'B' {
			opp, my, their = m.TeamA, m.ScoreB, m.ScoreA
		}
		if len(opp) == 0 {
			continue
		}
		var sum float64
		for _, id := range opp {
			sum += ratings.Get(id)
		}
		diff := sum/float64(len(opp)) - out.CurrentRating
		won := my > their

		switch {
		case diff > StrengthBand:
			out.Strong.add(won)
		case diff < -StrengthBand:
			out.Weak.add(won)
		default:
			out.Equal.add(won)
		}
	}
	return out
}
