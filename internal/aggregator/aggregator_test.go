package aggregator

import (
	"testing"
	"time"

	"github.com/pable/doubles-league/internal/model"
)

var base = time.Date(2025, 5, 10, 19, 0, 0, 0, time.UTC)

// IDs for test players.
const (
	playerA int64 = 1
	playerB int64 = 2
	playerC int64 = 3
	playerD int64 = 4
	playerE int64 = 5
)

// game builds a match; the n-th game is played n hours after base.
func game(id int64, t model.MatchType, a, b []int64, sa, sb int) model.Match {
	return model.Match{
		ID:     id,
		Date:   base.Add(time.Duration(id) * time.Hour),
		Type:   t,
		TeamA:  a,
		TeamB:  b,
		ScoreA: sa,
		ScoreB: sb,
	}
}

func team(ids ...int64) []int64 { return ids }

// ---- ComputePlayerStats ----

func TestStatsNoMatches(t *testing.T) {
	s := ComputePlayerStats(playerA, nil)
	if s.Matches != 0 || s.WinRate != 0 {
		t.Errorf("empty stats = %+v", s)
	}
	if len(s.PerType) != len(model.MatchTypes) {
		t.Errorf("PerType has %d entries, want %d", len(s.PerType), len(model.MatchTypes))
	}
	if s.BestPartner != nil || s.WorstPartner != nil {
		t.Error("expected no best/worst partner")
	}
}

func TestStatsCountsAndPartners(t *testing.T) {
	matches := []model.Match{
		game(1, model.MatchTypeSix, team(playerA, playerB), team(playerC, playerD), 6, 2),
		game(2, model.MatchTypeFour, team(playerC, playerD), team(playerA, playerB), 4, 1),
		game(3, model.MatchTypeThree, team(playerA, playerC), team(playerB, playerD), 3, 0),
		game(4, model.MatchTypeSix, team(playerB, playerD), team(playerC, playerE), 6, 0),
	}
	s := ComputePlayerStats(playerA, matches)

	if s.Matches != 3 || s.Wins != 2 || s.Losses != 1 {
		t.Errorf("got %d/%d/%d, want 3/2/1", s.Matches, s.Wins, s.Losses)
	}
	if s.Wins+s.Losses != s.Matches {
		t.Error("wins + losses != matches")
	}
	if got := s.PerType[model.MatchTypeFour]; got.Losses != 1 || got.Wins != 0 {
		t.Errorf("to4 bucket = %+v", got)
	}
	if pb := s.Partners[playerB]; pb.Games != 2 || pb.Wins != 1 {
		t.Errorf("partner B = %+v", pb)
	}
	if s.BestPartner == nil || *s.BestPartner != playerC || *s.BestPartnerWinRate != 100 {
		t.Errorf("best partner = %v", s.BestPartner)
	}
	if s.WorstPartner == nil || *s.WorstPartner != playerB || *s.WorstPartnerWinRate != 50 {
		t.Errorf("worst partner = %v", s.WorstPartner)
	}
}

func TestStatsDrawIsLoss(t *testing.T) {
	matches := []model.Match{game(1, model.MatchTypeSix, team(playerA, playerB), team(playerC, playerD), 5, 5)}
	for _, id := range []int64{playerA, playerC} {
		s := ComputePlayerStats(id, matches)
		if s.Wins != 0 || s.Losses != 1 {
			t.Errorf("player %d: draw gave %d wins %d losses", id, s.Wins, s.Losses)
		}
	}
}

func TestStatsSkipsMatchesWithoutOwnPair(t *testing.T) {
	matches := []model.Match{
		game(1, model.MatchTypeSix, team(playerA), team(playerC, playerD), 6, 4),
		game(2, model.MatchTypeThree, team(playerA, playerB, playerE), team(playerC, playerD), 3, 0),
	}
	s := ComputePlayerStats(playerA, matches)
	if s.Matches != 0 || s.Wins != 0 || s.WinRate != 0 {
		t.Errorf("malformed matches counted: %+v", s)
	}
	if s.PerType[model.MatchTypeThree] != (model.WinLoss{}) || len(s.Partners) != 0 {
		t.Errorf("per type = %v, partners = %v", s.PerType, s.Partners)
	}

	// The opponent side's size does not matter.
	c := ComputePlayerStats(playerC, matches)
	if c.Matches != 2 || c.Losses != 2 || c.Partners[playerD].Games != 2 {
		t.Errorf("stats for C = %+v", c)
	}
}

func TestStatsPartnerTieBreak(t *testing.T) {
	// A wins once with C, and twice with D: both 100%, D has more games.
	matches := []model.Match{
		game(1, model.MatchTypeSix, team(playerA, playerC), team(playerB, playerE), 6, 0),
		game(2, model.MatchTypeSix, team(playerA, playerD), team(playerB, playerE), 6, 0),
		game(3, model.MatchTypeSix, team(playerA, playerD), team(playerB, playerE), 6, 0),
	}
	s := ComputePlayerStats(playerA, matches)
	if *s.BestPartner != playerD {
		t.Errorf("best partner = %d, want %d (more games)", *s.BestPartner, playerD)
	}
	if *s.WorstPartner != playerD {
		t.Errorf("worst partner = %d, want %d (more games)", *s.WorstPartner, playerD)
	}

	// Equal rate and games: lowest id wins.
	even := matches[:2]
	s = ComputePlayerStats(playerA, even)
	if *s.BestPartner != playerC {
		t.Errorf("best partner = %d, want %d (lowest id)", *s.BestPartner, playerC)
	}
}

func TestStatsMinGames(t *testing.T) {
	matches := []model.Match{
		game(1, model.MatchTypeSix, team(playerA, playerC), team(playerB, playerE), 6, 0),
		game(2, model.MatchTypeSix, team(playerA, playerD), team(playerB, playerE), 0, 6),
		game(3, model.MatchTypeSix, team(playerA, playerD), team(playerB, playerE), 0, 6),
		game(4, model.MatchTypeSix, team(playerA, playerD), team(playerB, playerE), 6, 0),
	}
	s := ComputePlayerStatsMin(playerA, matches, 3)
	if s.BestPartner == nil || *s.BestPartner != playerD {
		t.Errorf("only D qualifies with 3 games, got %v", s.BestPartner)
	}
	s = ComputePlayerStatsMin(playerA, matches, 4)
	if s.BestPartner != nil {
		t.Errorf("no partner should qualify, got %d", *s.BestPartner)
	}
}

// ---- Versus / rivalries ----

func TestVersus(t *testing.T) {
	matches := []model.Match{
		game(1, model.MatchTypeSix, team(playerA, playerB), team(playerC, playerD), 6, 2),
		game(2, model.MatchTypeSix, team(playerC, playerB), team(playerA, playerD), 6, 4),
		game(3, model.MatchTypeSix, team(playerA, playerC), team(playerB, playerD), 6, 0),
		game(4, model.MatchTypeSix, team(playerA, playerE), team(playerC, playerB), 3, 3),
	}
	v := Versus(playerA, playerC, matches)
	if v.Total != 3 || v.P1Wins != 1 || v.P2Wins != 1 || v.Draws != 1 {
		t.Errorf("versus = %+v", v)
	}
	if v.AvgScore1 != float64(6+4+3)/3 {
		t.Errorf("avg score p1 = %v", v.AvgScore1)
	}
}

func TestTopRivalries(t *testing.T) {
	matches := []model.Match{
		game(1, model.MatchTypeSix, team(playerA, playerB), team(playerC, playerD), 6, 2),
		game(2, model.MatchTypeSix, team(playerA, playerC), team(playerB, playerD), 6, 2),
		game(3, model.MatchTypeSix, team(playerA), team(playerD, playerE), 6, 2),
	}
	got := TopRivalries(matches, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 rivalries, got %d", len(got))
	}
	if got[0].PairKey != model.NewPairKey(playerA, playerD) || got[0].Count != 2 {
		t.Errorf("top rivalry = %+v, want A-D x2", got[0])
	}
	if got[1].Count != 2 {
		t.Errorf("second rivalry = %+v, want count 2", got[1])
	}
}

// ---- Opponent strength ----

func TestPerformanceByOpponentStrength(t *testing.T) {
	ratings := model.RatingTable{playerA: 1000, playerB: 1000, playerC: 1100, playerD: 1100, playerE: 900}
	matches := []model.Match{
		game(1, model.MatchTypeSix, team(playerA, playerB), team(playerC, playerD), 6, 2),
		game(2, model.MatchTypeSix, team(playerA, playerB), team(playerE, 6), 2, 6),
		game(3, model.MatchTypeSix, team(playerA, playerC), team(playerB, playerE), 6, 0),
	}
	got := PerformanceByOpponentStrength(playerA, matches, ratings)
	if got.Strong.Total != 1 || got.Strong.Wins != 1 {
		t.Errorf("strong = %+v", got.Strong)
	}
	// E (900) and unknown 6 (1000) average 950: exactly -50 is still "equal".
	if got.Equal.Total != 2 || got.Equal.Losses != 1 || got.Equal.WinRate != 50 {
		t.Errorf("equal = %+v", got.Equal)
	}
	if got.Weak.Total != 0 {
		t.Errorf("weak = %+v", got.Weak)
	}
}
