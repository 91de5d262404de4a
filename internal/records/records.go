package records

import (
	"sort"
	"time"

	"github.com/pable/doubles-league/internal/aggregator"
	"github.com/pable/doubles-league/internal/model"
	"github.com/pable/doubles-league/internal/rating"
)

// QualifyingMatches is the minimum number of matches for win-rate records.
const QualifyingMatches = 5

// DuoMinGames is the minimum number of games together for a duo record.
const DuoMinGames = 3

// extremes tracks one player's all-time peak and trough.
type extremes struct {
	high, low         float64
	highDate, lowDate *time.Time
}

// peakTracker is the accumulator of the records replay.
type peakTracker struct {
	table model.RatingTable
	ext   map[int64]*extremes
}

func (p *peakTracker) observe(id int64, date time.Time) {
	r := p.table.Get(id)
	e, ok := p.ext[id]
	if !ok {
		e = &extremes{high: model.StartRating, low: model.StartRating}
		p.ext[id] = e
	}
	if r > e.high {
		e.high = r
		e.highDate = &date
	}
	if r < e.low {
		e.low = r
		e.lowDate = &date
	}
}

func trackPeaks(p *peakTracker, m model.Match) *peakTracker {
	delta, ok := rating.MatchDelta(p.table, m)
	if !ok {
		return p
	}
	for _, id := range m.TeamA {
		p.table[id] = p.table.Get(id) + delta
		p.observe(id, m.Date)
	}
	for _, id := range m.TeamB {
		p.table[id] = p.table.Get(id) - delta
		p.observe(id, m.Date)
	}
	return p
}

// playerIDs returns every id in players plus any id only seen in matches,
// ascending.
func playerIDs(players []model.Player, matches []model.Match) []int64 {
	seen := map[int64]bool{}
	var ids []int64
	add := func(id int64) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, p := range players {
		add(p.ID)
	}
	for _, m := range matches {
		for _, id := range m.TeamA {
			add(id)
		}
		for _, id := range m.TeamB {
			add(id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ComputeLeagueRecords replays the whole history without a window and
// collects the league's all-time extremes. Where several players share a
// record the lowest player id holds it.
func ComputeLeagueRecords(players []model.Player, matches []model.Match) model.LeagueRecords {
	var rec model.LeagueRecords
	ids := playerIDs(players, matches)
	if len(ids) == 0 {
		return rec
	}

	tracker := &peakTracker{table: model.RatingTable{}, ext: map[int64]*extremes{}}
	for _, id := range ids {
		tracker.table[id] = model.StartRating
		tracker.ext[id] = &extremes{high: model.StartRating, low: model.StartRating}
	}
	sorted := model.SortChronological(matches)
	tracker = rating.Fold(sorted, tracker, trackPeaks)

	// ids ascending, so strict comparisons keep the lowest id on ties.
	for _, id := range ids {
		e := tracker.ext[id]
		if rec.Highest == nil || e.high > rec.Highest.Rating {
			rec.Highest = &model.RatingRecord{PlayerID: id, Rating: e.high, Date: e.highDate}
		}
		if rec.Lowest == nil || e.low < rec.Lowest.Rating {
			rec.Lowest = &model.RatingRecord{PlayerID: id, Rating: e.low, Date: e.lowDate}
		}
	}

	for _, id := range ids {
		st := aggregator.ComputePlayerStatsMin(id, matches, DuoMinGames)

		if rec.MostMatches == nil || st.Matches > rec.MostMatches.Count {
			rec.MostMatches = &model.CountRecord{PlayerID: id, Count: st.Matches}
		}

		if st.Matches >= QualifyingMatches {
			if rec.BestWinRate == nil || st.WinRate > rec.BestWinRate.WinRate {
				rec.BestWinRate = &model.RateRecord{PlayerID: id, WinRate: st.WinRate, Matches: st.Matches}
			}
			if rec.WorstWinRate == nil || st.WinRate < rec.WorstWinRate.WinRate {
				rec.WorstWinRate = &model.RateRecord{PlayerID: id, WinRate: st.WinRate, Matches: st.Matches}
			}
		}

		if st.BestPartner != nil && (rec.BestDuo == nil || *st.BestPartnerWinRate > rec.BestDuo.WinRate) {
			rec.BestDuo = &model.DuoRecord{
				PlayerID:  id,
				PartnerID: *st.BestPartner,
				WinRate:   *st.BestPartnerWinRate,
				Games:     st.Partners[*st.BestPartner].Games,
			}
		}
		if st.WorstPartner != nil && (rec.WorstDuo == nil || *st.WorstPartnerWinRate < rec.WorstDuo.WinRate) {
			rec.WorstDuo = &model.DuoRecord{
				PlayerID:  id,
				PartnerID: *st.WorstPartner,
				WinRate:   *st.WorstPartnerWinRate,
				Games:     st.Partners[*st.WorstPartner].Games,
			}
		}

		sk := ComputePlayerStreaks(id, matches)
		if sk.BestWin > 0 && (rec.LongestWinStreak == nil || sk.BestWin > rec.LongestWinStreak.Length) {
			rec.LongestWinStreak = &model.StreakRecord{PlayerID: id, Length: sk.BestWin, Date: sk.BestWinDate}
		}
		if sk.WorstLoss > 0 && (rec.LongestLossStreak == nil || sk.WorstLoss > rec.LongestLossStreak.Length) {
			rec.LongestLossStreak = &model.StreakRecord{PlayerID: id, Length: sk.WorstLoss, Date: sk.WorstLossDate}
		}
	}

	// sorted is chronological, so the first lopsided match keeps the record.
	for _, m := range sorted {
		if !m.IsDoubles() {
			continue
		}
		if d := m.Margin(); d > 0 && (rec.BiggestMargin == nil || d > rec.BiggestMargin.Margin) {
			rec.BiggestMargin = &model.MarginRecord{Match: m, Margin: d}
		}
	}
	return rec
}
