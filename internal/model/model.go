package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// StartRating is the rating every player and every pair begins with.
const StartRating = 1000.0

// MatchType is the race-to length a match was played to.
type MatchType int

const (
	MatchTypeUnknown MatchType = 0
	MatchTypeSix     MatchType = 6
	MatchTypeFour    MatchType = 4
	MatchTypeThree   MatchType = 3
)

// MatchTypes lists the known match types in display order.
var MatchTypes = []MatchType{MatchTypeSix, MatchTypeFour, MatchTypeThree}

func (t MatchType) String() string {
	switch t {
	case MatchTypeSix:
		return "to6"
	case MatchTypeFour:
		return "to4"
	case MatchTypeThree:
		return "to3"
	default:
		return "?"
	}
}

// ParseMatchType accepts the stored form ("to6") as well as "six"/"6".
func ParseMatchType(s string) (MatchType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "to6", "six", "6":
		return MatchTypeSix, nil
	case "to4", "four", "4":
		return MatchTypeFour, nil
	case "to3", "three", "3":
		return MatchTypeThree, nil
	}
	return MatchTypeUnknown, fmt.Errorf("unknown match type %q", s)
}

// Player is a league member. Players are created and renamed outside the core.
type Player struct {
	ID         int64
	Name       string
	ExternalID *int64 // e.g. a linked chat account
}

// Match is one recorded doubles result. Team slices normally hold two ids;
// anything else is kept as-is and skipped by the rating replays.
type Match struct {
	ID     int64
	Date   time.Time
	Type   MatchType
	TeamA  []int64
	TeamB  []int64
	ScoreA int
	ScoreB int
}

// IsDoubles reports whether both teams have exactly two players.
func (m Match) IsDoubles() bool {
	return len(m.TeamA) == 2 && len(m.TeamB) == 2
}

// Side returns which team the player was on: 'A', 'B', or 0 if absent.
func (m Match) Side(playerID int64) byte {
	for _, id := range m.TeamA {
		if id == playerID {
			return 'A'
		}
	}
	for _, id := range m.TeamB {
		if id == playerID {
			return 'B'
		}
	}
	return 0
}

// Involves reports whether the player took part in the match.
func (m Match) Involves(playerID int64) bool {
	return m.Side(playerID) != 0
}

// Margin is the absolute score difference.
func (m Match) Margin() int {
	if m.ScoreA > m.ScoreB {
		return m.ScoreA - m.ScoreB
	}
	return m.ScoreB - m.ScoreA
}

// Before orders matches by (Date, ID).
func (m Match) Before(o Match) bool {
	if !m.Date.Equal(o.Date) {
		return m.Date.Before(o.Date)
	}
	return m.ID < o.ID
}

// SortChronological returns a copy of matches ordered by (Date, ID) ascending.
// The input slice is left untouched.
func SortChronological(matches []Match) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out
}

// RatingTable maps player id to rating.
type RatingTable map[int64]float64

// Get returns the rating for id, or StartRating when the id is unknown.
func (t RatingTable) Get(id int64) float64 {
	if r, ok := t[id]; ok {
		return r
	}
	return StartRating
}

// Clone returns an independent copy of the table.
func (t RatingTable) Clone() RatingTable {
	out := make(RatingTable, len(t))
	for id, r := range t {
		out[id] = r
	}
	return out
}

// PairKey identifies an unordered pair of players; Player1ID < Player2ID.
type PairKey struct {
	Player1ID int64
	Player2ID int64
}

// NewPairKey builds the canonical key for two player ids.
func NewPairKey(a, b int64) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Player1ID: a, Player2ID: b}
}

func (k PairKey) String() string {
	return fmt.Sprintf("%d-%d", k.Player1ID, k.Player2ID)
}

// PairState is the rating record of a duo that has played together.
type PairState struct {
	PairKey
	Rating  float64
	Matches int
	Wins    int
	Losses  int
}

// WinRate returns the pair's win percentage.
func (p PairState) WinRate() float64 {
	if p.Matches == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Matches) * 100
}
