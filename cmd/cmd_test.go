package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pable/doubles-league/internal/cache"
	"github.com/pable/doubles-league/internal/storage"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		in     string
		a, b   int
		wantOK bool
	}{
		{"6-3", 6, 3, true},
		{" 4 - 4 ", 4, 4, true},
		{"6", 0, 0, false},
		{"6-x", 0, 0, false},
		{"-1-6", 0, 0, false},
	}
	for _, tt := range tests {
		a, b, err := parseScore(tt.in)
		if (err == nil) != tt.wantOK || a != tt.a || b != tt.b {
			t.Errorf("parseScore(%q) = %d, %d, %v", tt.in, a, b, err)
		}
	}
}

func TestParseDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	d, err := parseDay("2024-07-01", loc)
	if err != nil {
		t.Fatalf("parseDay: %v", err)
	}
	if d.Location() != loc || d.Hour() != 0 || d.Day() != 1 {
		t.Errorf("parseDay = %v", d)
	}
	if d, _ := parseDay("", loc); !d.IsZero() {
		t.Errorf("empty flag = %v, want zero", d)
	}
	if _, err := parseDay("01/07/2024", loc); err == nil {
		t.Error("expected error for bad layout")
	}
}

func TestWriteMetricsAfterLookup(t *testing.T) {
	log = zerolog.Nop()
	db, err := storage.Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	src := cache.NewSource(cache.ModeCached, db, cache.NewLiveSource(nil, nil, time.Time{}), zerolog.Nop())
	if _, err := src.PlayerStats(context.Background(), 1); err != nil {
		t.Fatalf("PlayerStats: %v", err)
	}

	path := filepath.Join(t.TempDir(), "league.prom")
	if err := writeMetrics(path); err != nil {
		t.Fatalf("writeMetrics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "league_cache_misses_total") || strings.Contains(out, "league_cache_misses_total 0\n") {
		t.Errorf("miss not exported:\n%s", out)
	}

	if err := writeMetrics(""); err != nil {
		t.Errorf("empty path: %v", err)
	}
}
