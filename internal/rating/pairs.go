package rating

import (
	"sort"

	"github.com/pable/doubles-league/internal/model"
)

// pairLedger is the accumulator of the pair replay.
type pairLedger map[model.PairKey]*model.PairState

func (l pairLedger) get(team []int64) *model.PairState {
	key := model.NewPairKey(team[0], team[1])
	p, ok := l[key]
	if !ok {
		p = &model.PairState{PairKey: key, Rating: model.StartRating}
		l[key] = p
	}
	return p
}

// distinctPair reports whether a two-slot team names two different players.
func distinctPair(team []int64) bool {
	return team[0] != team[1]
}

func applyPairMatch(l pairLedger, m model.Match) pairLedger {
	if !m.IsDoubles() || !distinctPair(m.TeamA) || !distinctPair(m.TeamB) {
		return l
	}
	a := l.get(m.TeamA)
	b := l.get(m.TeamB)

	delta := Delta(a.Rating, b.Rating, m.ScoreA, m.ScoreB, m.Type)
	a.Rating += delta
	b.Rating -= delta

	a.Matches++
	b.Matches++
	// Draws count as a loss for both pairs.
	switch {
	case m.ScoreA > m.ScoreB:
		a.Wins++
		b.Losses++
	case m.ScoreB > m.ScoreA:
		b.Wins++
		a.Losses++
	default:
		a.Losses++
		b.Losses++
	}
	return l
}

// ReplayPairRatings rebuilds every pair's rating from the full match
// history. The result is meant to replace any stored pair table wholesale;
// it is ordered by rating descending, then by pair key.
func ReplayPairRatings(matches []model.Match) []model.PairState {
	ledger := Fold(model.SortChronological(matches), pairLedger{}, applyPairMatch)

	out := make([]model.PairState, 0, len(ledger))
	for _, p := range ledger {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		if out[i].Player1ID != out[j].Player1ID {
			return out[i].Player1ID < out[j].Player1ID
		}
		return out[i].Player2ID < out[j].Player2ID
	})
	return out
}
