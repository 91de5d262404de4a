package model

import "time"

// WinLoss is a plain win/loss counter.
type WinLoss struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// PartnerStats counts results with one specific teammate.
type PartnerStats struct {
	Games  int
	Wins   int
	Losses int
}

// WinRate returns the win percentage with this partner.
func (p PartnerStats) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games) * 100
}

// PlayerStats is the unwindowed record of one player.
type PlayerStats struct {
	PlayerID int64
	Matches  int
	Wins     int
	Losses   int
	WinRate  float64 // percent, 0 when no matches

	PerType  map[MatchType]WinLoss // always has an entry for every MatchTypes value
	Partners map[int64]PartnerStats

	BestPartner         *int64
	BestPartnerWinRate  *float64
	WorstPartner        *int64
	WorstPartnerWinRate *float64
}

// StreakType tells whether a streak is made of wins or losses.
type StreakType int

const (
	StreakNone StreakType = iota
	StreakWin
	StreakLoss
)

func (t StreakType) String() string {
	switch t {
	case StreakWin:
		return "win"
	case StreakLoss:
		return "loss"
	default:
		return "-"
	}
}

// StreakSummary holds the all-time and current streaks of a player.
type StreakSummary struct {
	PlayerID int64

	BestWin       int
	BestWinDate   *time.Time // date of the last win in the best run
	WorstLoss     int
	WorstLossDate *time.Time // date of the last loss in the worst run

	Current      int
	CurrentType  StreakType
	CurrentStart *time.Time
}

// RatingRecord is a rating extreme reached by a player.
// Date is nil when the extreme is the untouched start rating.
type RatingRecord struct {
	PlayerID int64
	Rating   float64
	Date     *time.Time
}

// CountRecord is a per-player count such as total matches.
type CountRecord struct {
	PlayerID int64
	Count    int
}

// RateRecord is a per-player win rate.
type RateRecord struct {
	PlayerID int64
	WinRate  float64
	Matches  int
}

// StreakRecord is the longest run of one result across the league.
type StreakRecord struct {
	PlayerID int64
	Length   int
	Date     *time.Time
}

// MarginRecord is the most lopsided single match.
type MarginRecord struct {
	Match  Match
	Margin int
}

// DuoRecord is a player together with their best or worst partner.
type DuoRecord struct {
	PlayerID  int64
	PartnerID int64
	WinRate   float64
	Games     int
}

// LeagueRecords collects all-time league extremes. Nil fields mean no
// candidate qualified.
type LeagueRecords struct {
	Highest *RatingRecord
	Lowest  *RatingRecord

	MostMatches *CountRecord

	BestWinRate  *RateRecord
	WorstWinRate *RateRecord

	LongestWinStreak  *StreakRecord
	LongestLossStreak *StreakRecord

	BiggestMargin *MarginRecord

	BestDuo  *DuoRecord
	WorstDuo *DuoRecord
}

// CachedPlayerStats is the persisted snapshot of a player's rating and
// stats, without partner detail.
type CachedPlayerStats struct {
	PlayerID int64   `json:"player_id"`
	Rating   float64 `json:"rating"`
	Matches  int     `json:"matches"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	WinRate  float64 `json:"win_rate"`

	PerType map[MatchType]WinLoss `json:"per_type"`

	BestPartner         *int64   `json:"best_partner,omitempty"`
	BestPartnerWinRate  *float64 `json:"best_partner_win_rate,omitempty"`
	WorstPartner        *int64   `json:"worst_partner,omitempty"`
	WorstPartnerWinRate *float64 `json:"worst_partner_win_rate,omitempty"`

	UpdatedAt  time.Time `json:"updated_at"`
	Generation string    `json:"generation"` // id of the rebuild that wrote this row; empty when computed live
}

// NewCachedPlayerStats combines a rating and a stats record into a snapshot row.
func NewCachedPlayerStats(rating float64, s PlayerStats, updatedAt time.Time, generation string) CachedPlayerStats {
	perType := make(map[MatchType]WinLoss, len(MatchTypes))
	for _, t := range MatchTypes {
		perType[t] = s.PerType[t]
	}
	return CachedPlayerStats{
		PlayerID:            s.PlayerID,
		Rating:              rating,
		Matches:             s.Matches,
		Wins:                s.Wins,
		Losses:              s.Losses,
		WinRate:             s.WinRate,
		PerType:             perType,
		BestPartner:         s.BestPartner,
		BestPartnerWinRate:  s.BestPartnerWinRate,
		WorstPartner:        s.WorstPartner,
		WorstPartnerWinRate: s.WorstPartnerWinRate,
		UpdatedAt:           updatedAt,
		Generation:          generation,
	}
}
