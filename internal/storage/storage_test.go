package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pable/doubles-league/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var played = time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)

func seed(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()
	ext := int64(555)
	players := []model.Player{
		{ID: 1, Name: "anna", ExternalID: &ext},
		{ID: 2, Name: "Boris"},
		{ID: 3, Name: "chen"},
		{ID: 4, Name: "dora"},
	}
	if err := db.UpsertPlayers(ctx, players); err != nil {
		t.Fatalf("UpsertPlayers: %v", err)
	}
	matches := []model.Match{
		{ID: 2, Date: played.Add(time.Hour), Type: model.MatchTypeFour, TeamA: []int64{3, 1}, TeamB: []int64{2, 4}, ScoreA: 4, ScoreB: 2},
		{ID: 1, Date: played, Type: model.MatchTypeSix, TeamA: []int64{1, 2}, TeamB: []int64{3, 4}, ScoreA: 6, ScoreB: 3},
	}
	if err := db.InsertMatches(ctx, matches); err != nil {
		t.Fatalf("InsertMatches: %v", err)
	}
}

func TestPlayersRoundTrip(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)
	ctx := context.Background()

	players, err := db.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if len(players) != 4 {
		t.Fatalf("expected 4 players, got %d", len(players))
	}
	if players[0].ExternalID == nil || *players[0].ExternalID != 555 {
		t.Errorf("external id lost: %+v", players[0])
	}
	if players[1].ExternalID != nil {
		t.Errorf("expected nil external id, got %v", *players[1].ExternalID)
	}
}

func TestFindPlayer(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)
	ctx := context.Background()

	for _, ref := range []string{"2", "boris", "@BORIS"} {
		p, err := db.FindPlayer(ctx, ref)
		if err != nil {
			t.Fatalf("FindPlayer(%q): %v", ref, err)
		}
		if p == nil || p.ID != 2 {
			t.Errorf("FindPlayer(%q) = %+v, want id 2", ref, p)
		}
	}
	p, err := db.FindPlayer(ctx, "nobody")
	if err != nil || p != nil {
		t.Errorf("expected nil, nil for unknown player, got %+v, %v", p, err)
	}
}

func TestMatchesRoundTrip(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)

	matches, err := db.ListMatches(context.Background())
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	first := matches[0]
	if first.ID != 1 || !first.Date.Equal(played) || first.Type != model.MatchTypeSix {
		t.Errorf("first match = %+v", first)
	}
	// Slot order is preserved.
	if second := matches[1]; second.TeamA[0] != 3 || second.TeamA[1] != 1 || len(second.TeamB) != 2 {
		t.Errorf("line-up not preserved: %+v", second)
	}
}

func TestInsertMatchReplacesLineUp(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)
	ctx := context.Background()

	fixed := model.Match{ID: 1, Date: played, Type: model.MatchTypeSix, TeamA: []int64{1, 4}, TeamB: []int64{2, 3}, ScoreA: 6, ScoreB: 5}
	if err := db.InsertMatches(ctx, []model.Match{fixed}); err != nil {
		t.Fatalf("InsertMatches: %v", err)
	}
	matches, _ := db.ListMatches(ctx)
	if matches[0].TeamA[1] != 4 || len(matches[0].TeamA) != 2 || matches[0].ScoreB != 5 {
		t.Errorf("match not replaced: %+v", matches[0])
	}
}

func TestInsertMatchRejectsUnknownType(t *testing.T) {
	db := openMemDB(t)
	err := db.InsertMatches(context.Background(), []model.Match{{ID: 9, Date: played, TeamA: []int64{1, 2}, TeamB: []int64{3, 4}}})
	if err == nil {
		t.Error("expected error for match without type")
	}
}

func TestLoadLeague(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)

	players, matches, err := db.LoadLeague(context.Background())
	if err != nil {
		t.Fatalf("LoadLeague: %v", err)
	}
	if len(players) != 4 || len(matches) != 2 {
		t.Errorf("loaded %d players, %d matches", len(players), len(matches))
	}
}

func TestReplacePairs(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	old := []model.PairState{
		{PairKey: model.NewPairKey(1, 2), Rating: 1010, Matches: 1, Wins: 1},
		{PairKey: model.NewPairKey(3, 4), Rating: 990, Matches: 1, Losses: 1},
	}
	if err := db.ReplacePairs(ctx, old); err != nil {
		t.Fatalf("ReplacePairs: %v", err)
	}
	fresh := []model.PairState{{PairKey: model.NewPairKey(1, 3), Rating: 1004.2, Matches: 1, Wins: 1}}
	if err := db.ReplacePairs(ctx, fresh); err != nil {
		t.Fatalf("ReplacePairs: %v", err)
	}

	got, err := db.ListPairs(ctx)
	if err != nil {
		t.Fatalf("ListPairs: %v", err)
	}
	if len(got) != 1 || got[0].PairKey != model.NewPairKey(1, 3) {
		t.Errorf("stale pairs kept: %+v", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	miss, err := db.ReadSnapshot(ctx, 1)
	if err != nil || miss != nil {
		t.Fatalf("expected miss, got %+v, %v", miss, err)
	}

	partner, rate := int64(2), 75.0
	in := model.CachedPlayerStats{
		PlayerID: 1, Rating: 1012.5, Matches: 4, Wins: 3, Losses: 1, WinRate: 75,
		PerType: map[model.MatchType]model.WinLoss{
			model.MatchTypeSix:   {Wins: 2, Losses: 1},
			model.MatchTypeFour:  {Wins: 1},
			model.MatchTypeThree: {},
		},
		BestPartner: &partner, BestPartnerWinRate: &rate,
		UpdatedAt:  played,
		Generation: "gen-1",
	}
	if err := db.WriteSnapshot(ctx, in); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	out, err := db.ReadSnapshot(ctx, 1)
	if err != nil || out == nil {
		t.Fatalf("ReadSnapshot: %+v, %v", out, err)
	}
	if out.Rating != in.Rating || out.PerType[model.MatchTypeSix] != in.PerType[model.MatchTypeSix] {
		t.Errorf("snapshot mismatch: %+v", out)
	}
	if out.BestPartner == nil || *out.BestPartner != 2 || out.WorstPartner != nil {
		t.Errorf("partner columns mismatch: %+v", out)
	}
	if !out.UpdatedAt.Equal(played) || out.Generation != "gen-1" {
		t.Errorf("metadata mismatch: %v %q", out.UpdatedAt, out.Generation)
	}

	if err := db.ClearSnapshots(ctx); err != nil {
		t.Fatalf("ClearSnapshots: %v", err)
	}
	all, _ := db.ListSnapshots(ctx)
	if len(all) != 0 {
		t.Errorf("expected empty cache after clear, got %d rows", len(all))
	}
}

func TestImportExport(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	dump := `{
		"players": [{"id": 1, "name": "anna"}, {"id": 2, "name": "boris"}],
		"matches": [{"id": 7, "date": "2025-06-01T18:30:00Z", "type": "to3",
		             "team_a": [1, 2], "team_b": [3, 4], "score_a": 3, "score_b": 1}]
	}`
	stats, err := db.Import(ctx, strings.NewReader(dump))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if stats.Players != 2 || stats.Matches != 1 {
		t.Errorf("import stats = %+v", stats)
	}

	var buf bytes.Buffer
	if err := db.Export(ctx, &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	players, matches, err := DecodeDump(&buf)
	if err != nil {
		t.Fatalf("DecodeDump: %v", err)
	}
	if len(players) != 2 || len(matches) != 1 || matches[0].Type != model.MatchTypeThree {
		t.Errorf("export lost data: %d players, %+v", len(players), matches)
	}
}

func TestImportRejectsBadType(t *testing.T) {
	db := openMemDB(t)
	dump := `{"players": [], "matches": [{"id": 1, "date": "2025-06-01T18:30:00Z", "type": "to9"}]}`
	if _, err := db.Import(context.Background(), strings.NewReader(dump)); err == nil {
		t.Error("expected error for unknown match type")
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	seed(t, db)

	cols, rows, err := db.QueryRaw(context.Background(), "SELECT id, name, external_id FROM players WHERE id IN (1, 2) ORDER BY id")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 3 || len(rows) != 2 {
		t.Fatalf("got %d cols, %d rows", len(cols), len(rows))
	}
	if rows[0][2] != "555" || rows[1][2] != "NULL" {
		t.Errorf("rows = %v", rows)
	}
}
