package aggregator

import (
	"sort"

	"github.com/pable/doubles-league/internal/model"
)

// VersusStats is the head-to-head record of two players on opposite teams.
type VersusStats struct {
	Player1ID int64
	Player2ID int64
	Total     int
	P1Wins    int
	P2Wins    int
	Draws     int
	AvgScore1 float64
	AvgScore2 float64
}

// Versus computes the head-to-head record between p1 and p2 over every
// match in which they stood on opposite teams.
func Versus(p1, p2 int64, matches []model.Match) VersusStats {
	v := VersusStats{Player1ID: p1, Player2ID: p2}
	var sum1, sum2 int
	for _, m := range matches {
		s1, s2 := m.Side(p1), m.Side(p2)
		if s1 == 0 || s2 == 0 || s1 == s2 {
			continue
		}
		my, their := m.ScoreA, m.ScoreB
		if s1 == 'B' {
			my, their = m.ScoreB, m.ScoreA
		}
		v.Total++
		sum1 += my
		sum2 += their
		switch {
		case my > their:
			v.P1Wins++
		case their > my:
			v.P2Wins++
		default:
			v.Draws++
		}
	}
	if v.Total > 0 {
		v.AvgScore1 = float64(sum1) / float64(v.Total)
		v.AvgScore2 = float64(sum2) / float64(v.Total)
	}
	return v
}

// Rivalry is how often two players have faced each other.
type Rivalry struct {
	model.PairKey
	Count int
}

// TopRivalries counts every cross-team player pairing across doubles
// matches and returns the most frequent, capped at limit (0 = no cap).
// Equal counts are ordered by pair key.
func TopRivalries(matches []model.Match, limit int) []Rivalry {
	counts := map[model.PairKey]int{}
	for _, m := range matches {
		if !m.IsDoubles() {
			continue
		}
		for _, a := range m.TeamA {
			for _, b := range m.TeamB {
				counts[model.NewPairKey(a, b)]++
			}
		}
	}

	out := make([]Rivalry, 0, len(counts))
	for k, n := range counts {
		out = append(out, Rivalry{PairKey: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Player1ID != out[j].Player1ID {
			return out[i].Player1ID < out[j].Player1ID
		}
		return out[i].Player2ID < out[j].Player2ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
