package rating

import (
	"time"

	"github.com/pable/doubles-league/internal/model"
)

// WindowDays is the look-back of the current-form rating.
const WindowDays = 182

// Window is WindowDays as a duration.
const Window = WindowDays * 24 * time.Hour

// Fold threads acc through step for every match, in slice order.
func Fold[S any](matches []model.Match, acc S, step func(S, model.Match) S) S {
	for _, m := range matches {
		acc = step(acc, m)
	}
	return acc
}

// Cutoff returns the earliest match date counted by a replay as of asOf.
func Cutoff(asOf time.Time) time.Time {
	return asOf.Add(-Window)
}

// NewTable seeds a rating table with StartRating for every player.
func NewTable(players []model.Player) model.RatingTable {
	table := make(model.RatingTable, len(players))
	for _, p := range players {
		table[p.ID] = model.StartRating
	}
	return table
}

// applyTeamDelta is the replay step: every member of team A gains the full
// team delta and every member of team B loses it. Non-doubles are skipped.
func applyTeamDelta(table model.RatingTable, m model.Match) model.RatingTable {
	delta, ok := MatchDelta(table, m)
	if !ok {
		return table
	}
	for _, id := range m.TeamA {
		table[id] = table.Get(id) + delta
	}
	for _, id := range m.TeamB {
		table[id] = table.Get(id) - delta
	}
	return table
}

// ReplayPlayerRatings returns the current-form ratings: every known player
// starts at StartRating and only matches dated on or after asOf-182d are
// replayed in (date, id) order. A zero asOf means now.
func ReplayPlayerRatings(players []model.Player, matches []model.Match, asOf time.Time) model.RatingTable {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	cutoff := Cutoff(asOf)

	windowed := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if m.Date.Before(cutoff) {
			continue
		}
		windowed = append(windowed, m)
	}

	return Fold(model.SortChronological(windowed), NewTable(players), applyTeamDelta)
}

// ReplayAll replays every match with no window. Used where a rating "as of
// the start of a period" must include all prior history.
func ReplayAll(players []model.Player, matches []model.Match) model.RatingTable {
	return Fold(model.SortChronological(matches), NewTable(players), applyTeamDelta)
}
