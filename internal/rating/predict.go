package rating

import (
	"fmt"

	"github.com/pable/doubles-league/internal/model"
)

// Projection is a player's rating before and after a hypothetical match.
type Projection struct {
	PlayerID int64
	Before   float64
	After    float64
}

// Prediction is the outcome of a what-if match.
type Prediction struct {
	TeamARating float64
	TeamBRating float64
	WinChanceA  float64 // expected outcome of team A, 0..1
	Delta       float64 // applied to team A, negated for team B
	Players     []Projection
}

// Predict simulates one doubles match against the ratings in table without
// modifying it.
func Predict(table model.RatingTable, teamA, teamB []int64, scoreA, scoreB int, t model.MatchType) (Prediction, error) {
	if len(teamA) != 2 || len(teamB) != 2 {
		return Prediction{}, fmt.Errorf("predict: need two players per team, got %d and %d", len(teamA), len(teamB))
	}
	if t == model.MatchTypeUnknown {
		return Prediction{}, fmt.Errorf("predict: match type required")
	}
	seen := map[int64]bool{}
	for _, id := range append(append([]int64{}, teamA...), teamB...) {
		if seen[id] {
			return Prediction{}, fmt.Errorf("predict: player %d listed twice", id)
		}
		seen[id] = true
	}

	ra := TeamRating(table, teamA)
	rb := TeamRating(table, teamB)
	delta := Delta(ra, rb, scoreA, scoreB, t)

	p := Prediction{
		TeamARating: ra,
		TeamBRating: rb,
		WinChanceA:  Expected(ra, rb),
		Delta:       delta,
	}
	for _, id := range teamA {
		p.Players = append(p.Players, Projection{PlayerID: id, Before: table.Get(id), After: table.Get(id) + delta})
	}
	for _, id := range teamB {
		p.Players = append(p.Players, Projection{PlayerID: id, Before: table.Get(id), After: table.Get(id) - delta})
	}
	return p, nil
}
