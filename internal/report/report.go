package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/doubles-league/internal/model"
	"github.com/pable/doubles-league/internal/rating"
)

// Names resolves player ids to display names.
type Names map[int64]string

// NewNames indexes players by id.
func NewNames(players []model.Player) Names {
	n := make(Names, len(players))
	for _, p := range players {
		n[p.ID] = p.Name
	}
	return n
}

// Name returns the player's name, or "#id" for unregistered ids.
func (n Names) Name(id int64) string {
	if name, ok := n[id]; ok {
		return name
	}
	return "#" + strconv.FormatInt(id, 10)
}

// Team joins the names of a line-up.
func (n Names) Team(ids []int64) string {
	s := ""
	for i, id := range ids {
		if i > 0 {
			s += " + "
		}
		s += n.Name(id)
	}
	return s
}

const dateLayout = "2006-01-02"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func fmtRating(r float64) string { return fmt.Sprintf("%.1f", r) }
func fmtPct(p float64) string { return fmt.Sprintf("%.0f%%", p) }

func fmtSigned(d float64) string { return fmt.Sprintf("%+.1f", d) }

func fmtDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format(dateLayout)
}

// PrintStandings prints the windowed rating table, best first.
// If focus is non-zero, that player's row is marked with ">".
func PrintStandings(w io.Writer, players []model.Player, ratings model.RatingTable, focus int64) {
	type row struct {
		id     int64
		rating float64
	}
	rows := make([]row, 0, len(players))
	for _, p := range players {
		rows = append(rows, row{p.ID, ratings.Get(p.ID)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].rating != rows[j].rating {
			return rows[i].rating > rows[j].rating
		}
		return rows[i].id < rows[j].id
	})

	names := NewNames(players)
	table := newTable(w)
	table.Header(" ", "#", "PLAYER", "RATING", "Δ START")
	for i, r := range rows {
		marker := " "
		if focus != 0 && r.id == focus {
			marker = ">"
		}
		table.Append(marker, strconv.Itoa(i+1), names.Name(r.id), fmtRating(r.rating), fmtSigned(r.rating-model.StartRating))
	}
	table.Render()
}

// PrintMatches prints the match log, newest first.
func PrintMatches(w io.Writer, matches []model.Match, names Names) {
	sorted := model.SortChronological(matches)
	table := newTable(w)
	table.Header("ID", "DATE", "TYPE", "TEAM A", "SCORE", "TEAM B")
	for i := len(sorted) - 1; i >= 0; i-- {
		m := sorted[i]
		table.Append(
			strconv.FormatInt(m.ID, 10),
			m.Date.Format("2006-01-02 15:04"),
			m.Type.String(),
			names.Team(m.TeamA),
			fmt.Sprintf("%d–%d", m.ScoreA, m.ScoreB),
			names.Team(m.TeamB),
		)
	}
	table.Render()
}

// PrintPlayerSummary prints a player's headline numbers and per-type record.
func PrintPlayerSummary(w io.Writer, name string, s model.CachedPlayerStats, names Names) {
	source := "live"
	if s.Generation != "" {
		source = "cached " + s.UpdatedAt.Format("2006-01-02 15:04")
	}
	fmt.Fprintf(w, "\n%s  |  Rating: %s  |  Matches: %d  |  W-L: %d-%d  |  Win rate: %s  |  (%s)\n\n",
		name, fmtRating(s.Rating), s.Matches, s.Wins, s.Losses, fmtPct(s.WinRate), source)

	table := newTable(w)
	table.Header("TYPE", "W", "L", "WIN%")
	for _, t := range model.MatchTypes {
		wl := s.PerType[t]
		pct := "—"
		if n := wl.Wins + wl.Losses; n > 0 {
			pct = fmtPct(float64(wl.Wins) / float64(n) * 100)
		}
		table.Append(t.String(), strconv.Itoa(wl.Wins), strconv.Itoa(wl.Losses), pct)
	}
	table.Render()

	if s.BestPartner != nil {
		fmt.Fprintf(w, "Best partner:  %s (%s)\n", names.Name(*s.BestPartner), fmtPct(*s.BestPartnerWinRate))
	}
	if s.WorstPartner != nil {
		fmt.Fprintf(w, "Worst partner: %s (%s)\n", names.Name(*s.WorstPartner), fmtPct(*s.WorstPartnerWinRate))
	}
}

// PrintPartners prints every partner a player has teamed with, most games first.
func PrintPartners(w io.Writer, s model.PlayerStats, names Names) {
	if len(s.Partners) == 0 {
		return
	}
	ids := make([]int64, 0, len(s.Partners))
	for id := range s.Partners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.Partners[ids[i]], s.Partners[ids[j]]
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return ids[i] < ids[j]
	})

	table := newTable(w)
	table.Header("PARTNER", "GAMES", "W", "L", "WIN%")
	for _, id := range ids {
		p := s.Partners[id]
		table.Append(names.Name(id), strconv.Itoa(p.Games), strconv.Itoa(p.Wins), strconv.Itoa(p.Losses), fmtPct(p.WinRate()))
	}
	table.Render()
}

// PrintHistory prints a player's rating trajectory.
func PrintHistory(w io.Writer, points []rating.HistoryPoint) {
	table := newTable(w)
	table.Header("DATE", "MATCH", "RATING", "Δ")
	prev := model.StartRating
	for _, p := range points {
		date, match := "start", "—"
		if !p.Date.IsZero() {
			date = p.Date.Format(dateLayout)
			match = strconv.FormatInt(p.MatchID, 10)
		}
		table.Append(date, match, fmtRating(p.Rating), fmtSigned(p.Rating-prev))
		prev = p.Rating
	}
	table.Render()
}

// PrintPairs prints pair ratings in the order given.
func PrintPairs(w io.Writer, pairs []model.PairState, names Names, minMatches int) {
	table := newTable(w)
	table.Header("#", "PAIR", "RATING", "M", "W", "L", "WIN%")
	n := 0
	for _, p := range pairs {
		if p.Matches < minMatches {
			continue
		}
		n++
		table.Append(
			strconv.Itoa(n),
			names.Name(p.Player1ID)+" + "+names.Name(p.Player2ID),
			fmtRating(p.Rating),
			strconv.Itoa(p.Matches),
			strconv.Itoa(p.Wins),
			strconv.Itoa(p.Losses),
			fmtPct(p.WinRate()),
		)
	}
	table.Render()
}

// PrintSnapshots prints the contents of the stats cache.
func PrintSnapshots(w io.Writer, snaps []model.CachedPlayerStats, names Names) {
	table := newTable(w)
	table.Header("PLAYER", "RATING", "M", "W", "L", "WIN%", "UPDATED", "GENERATION")
	for _, s := range snaps {
		gen := s.Generation
		if len(gen) > 8 {
			gen = gen[:8]
		}
		table.Append(
			names.Name(s.PlayerID),
			fmtRating(s.Rating),
			strconv.Itoa(s.Matches),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			fmtPct(s.WinRate),
			s.UpdatedAt.Format("2006-01-02 15:04"),
			gen,
		)
	}
	table.Render()
}
