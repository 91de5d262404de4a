package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/pable/doubles-league/internal/model"
)

const playersJSON = `[{"id":1,"name":"Ania","tg_id":42},{"id":2,"name":"Bartek","tg_id":null}]`

// leagueServer serves two players and three matches, two per page, newest first.
func leagueServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	all := []Match{
		{ID: 3, Type: "to4", TeamA: []int64{1, 2}, TeamB: []int64{3, 4}, ScoreA: 4, ScoreB: 2},
		{ID: 2, Type: "to6", TeamA: []int64{1, 3}, TeamB: []int64{2, 4}, ScoreA: 6, ScoreB: 1},
		{ID: 1, Type: "to3", TeamA: []int64{1, 4}, TeamB: []int64{2, 3}, ScoreA: 1, ScoreB: 3},
	}
	for i := range all {
		all[i].Date = mustDate(t, "2024-05-0"+strconv.Itoa(int(all[i].ID))+"T18:00:00Z")
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/players":
			io.WriteString(w, playersJSON)
		case "/api/matches":
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			start := (page - 1) * limit
			end := min(start+limit, len(all))
			var mp MatchPage
			if start < len(all) {
				mp.Matches = all[start:end]
			}
			mp.Pagination.Page = page
			mp.Pagination.HasMore = end < len(all)
			json.NewEncoder(w).Encode(mp)
		default:
			http.NotFound(w, r)
		}
	}))
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFetchLeague(t *testing.T) {
	srv := leagueServer(t, "s3cret")
	defer srv.Close()

	players, matches, err := NewClient(srv.URL+"/", "s3cret").FetchLeague(context.Background(), 2)
	if err != nil {
		t.Fatalf("FetchLeague: %v", err)
	}
	if len(players) != 2 || players[0].ExternalID == nil || *players[0].ExternalID != 42 || players[1].ExternalID != nil {
		t.Errorf("players = %+v", players)
	}
	if len(matches) != 3 {
		t.Fatalf("matches = %d, want 3", len(matches))
	}
	for i, want := range []int64{1, 2, 3} {
		if matches[i].ID != want {
			t.Errorf("matches[%d].ID = %d, want %d (chronological)", i, matches[i].ID, want)
		}
	}
	if matches[0].Type != model.MatchTypeThree || matches[2].Type != model.MatchTypeFour {
		t.Errorf("types = %v, %v", matches[0].Type, matches[2].Type)
	}
}

func TestFetchLeagueUnauthorized(t *testing.T) {
	srv := leagueServer(t, "s3cret")
	defer srv.Close()

	_, _, err := NewClient(srv.URL, "wrong").FetchLeague(context.Background(), 10)
	if err == nil || !strings.Contains(err.Error(), "HTTP 401") {
		t.Errorf("err = %v, want HTTP 401", err)
	}
}

func TestCompressedResponse(t *testing.T) {
	for _, enc := range []string{EncodingZstd, EncodingGzip} {
		t.Run(enc, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.Contains(r.Header.Get("Accept-Encoding"), enc) {
					t.Errorf("Accept-Encoding = %q", r.Header.Get("Accept-Encoding"))
				}
				w.Header().Set("Content-Encoding", enc)
				w.Write(compress(t, enc, []byte(playersJSON)))
			}))
			defer srv.Close()

			players, err := NewClient(srv.URL, "").GetPlayers(context.Background())
			if err != nil {
				t.Fatalf("GetPlayers: %v", err)
			}
			if len(players) != 2 || players[1].Name != "Bartek" {
				t.Errorf("players = %+v", players)
			}
		})
	}
}

func TestDecompressUnknown(t *testing.T) {
	if _, err := Decompress(strings.NewReader(""), "br"); err == nil {
		t.Error("expected error for unsupported encoding")
	}
}

func TestEncodingForPath(t *testing.T) {
	tests := map[string]string{
		"league.json":     "",
		"league.json.gz":  EncodingGzip,
		"league.json.zst": EncodingZstd,
		"LEAGUE.ZST":      EncodingZstd,
	}
	for path, want := range tests {
		if got := EncodingForPath(path); got != want {
			t.Errorf("EncodingForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func compress(t *testing.T, enc string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch enc {
	case EncodingZstd:
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Fatal(err)
		}
		zw.Write(data)
		zw.Close()
	case EncodingGzip:
		gw := gzip.NewWriter(&buf)
		gw.Write(data)
		gw.Close()
	}
	return buf.Bytes()
}
