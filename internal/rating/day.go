package rating

import (
	"sort"
	"time"

	"github.com/pable/doubles-league/internal/model"
)

// DefaultLocation is the league's home time zone for day boundaries.
const DefaultLocation = "Europe/Warsaw"

// DayChange is one player's movement over a single day.
type DayChange struct {
	PlayerID  int64
	Matches   int
	OldRating float64
	NewRating float64
	Change    float64
}

// DayBounds returns [start, end) of the calendar day containing t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// DaySummary reports how each player's rating moved over the calendar day
// containing day. Starting ratings come from an unwindowed replay of every
// earlier match; the day's doubles are then applied in (date, id) order.
// A nil loc means DefaultLocation, or UTC if that zone is unavailable.
func DaySummary(players []model.Player, matches []model.Match, day time.Time, loc *time.Location) []DayChange {
	if loc == nil {
		var err error
		if loc, err = time.LoadLocation(DefaultLocation); err != nil {
			loc = time.UTC
		}
	}
	start, end := DayBounds(day, loc)

	var before, today []model.Match
	for _, m := range matches {
		switch {
		case m.Date.Before(start):
			before = append(before, m)
		case m.Date.Before(end):
			today = append(today, m)
		}
	}
	if len(today) == 0 {
		return []DayChange{}
	}

	opening := ReplayAll(players, before)
	current := opening.Clone()

	played := map[int64]int{}
	for _, m := range model.SortChronological(today) {
		if !m.IsDoubles() {
			continue
		}
		current = applyTeamDelta(current, m)
		for _, id := range m.TeamA {
			played[id]++
		}
		for _, id := range m.TeamB {
			played[id]++
		}
	}

	out := make([]DayChange, 0, len(played))
	for id, n := range played {
		old := opening.Get(id)
		cur := current.Get(id)
		out = append(out, DayChange{
			PlayerID:  id,
			Matches:   n,
			OldRating: old,
			NewRating: cur,
			Change:    cur - old,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Change != out[j].Change {
			return out[i].Change > out[j].Change
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
