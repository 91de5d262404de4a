// Package rating implements the Elo-style update rule and the replays that
// fold it over a match log: windowed player ratings, pair ratings, rating
// history, day summaries and what-if predictions.
package rating

import (
	"math"

	"github.com/pable/doubles-league/internal/model"
)

const (
	// KBase is the global K factor.
	KBase = 28.0

	// Scale is the logistic spread: 400 points means 10:1 odds.
	Scale = 400.0

	// MarginFactor damps the score margin's influence on the outcome,
	// keeping it within [0.2, 0.8].
	MarginFactor = 0.3
)

// Expected returns the expected outcome of self against opp.
func Expected(self, opp float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opp-self)/Scale))
}

// ActualOutcome maps a score line to a realized outcome in [0.2, 0.8].
// normalizer must be positive.
func ActualOutcome(scoreSelf, scoreOpp int, normalizer float64) float64 {
	margin := float64(scoreSelf-scoreOpp) / normalizer
	margin = math.Max(-1.0, math.Min(1.0, margin))
	return 0.5 + MarginFactor*margin
}

// Normalizer returns the race length T for a match type.
func Normalizer(t model.MatchType) float64 {
	switch t {
	case model.MatchTypeFour:
		return 4
	case model.MatchTypeThree:
		return 3
	default:
		return 6
	}
}

// Importance returns the weight L for a match type.
func Importance(t model.MatchType) float64 {
	switch t {
	case model.MatchTypeFour:
		return 0.8
	case model.MatchTypeThree:
		return 0.7
	default:
		return 1.0
	}
}

// Delta is the rating change for the "self" side. The other side moves by
// the negated value.
func Delta(teamSelf, teamOpp float64, scoreSelf, scoreOpp int, t model.MatchType) float64 {
	s := ActualOutcome(scoreSelf, scoreOpp, Normalizer(t))
	e := Expected(teamSelf, teamOpp)
	return KBase * Importance(t) * (s - e)
}

// TeamRating is the mean of the members' current ratings.
func TeamRating(table model.RatingTable, team []int64) float64 {
	if len(team) == 0 {
		return model.StartRating
	}
	var sum float64
	for _, id := range team {
		sum += table.Get(id)
	}
	return sum / float64(len(team))
}

// MatchDelta computes team A's delta for a doubles match against the
// ratings in table. ok is false when the match is not a 2v2.
func MatchDelta(table model.RatingTable, m model.Match) (delta float64, ok bool) {
	if !m.IsDoubles() {
		return 0, false
	}
	ra := TeamRating(table, m.TeamA)
	rb := TeamRating(table, m.TeamB)
	return Delta(ra, rb, m.ScoreA, m.ScoreB, m.Type), true
}
