package model

import (
	"testing"
	"time"
)

func TestParseMatchType(t *testing.T) {
	tests := []struct {
		in   string
		want MatchType
		ok   bool
	}{
		{"to6", MatchTypeSix, true},
		{" SIX ", MatchTypeSix, true},
		{"4", MatchTypeFour, true},
		{"three", MatchTypeThree, true},
		{"to5", MatchTypeUnknown, false},
		{"", MatchTypeUnknown, false},
	}
	for _, tt := range tests {
		got, err := ParseMatchType(tt.in)
		if got != tt.want || (err == nil) != tt.ok {
			t.Errorf("ParseMatchType(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestSortChronologicalCopies(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	in := []Match{
		{ID: 3, Date: day.Add(time.Hour)},
		{ID: 2, Date: day},
		{ID: 1, Date: day},
	}
	out := SortChronological(in)

	for i, want := range []int64{1, 2, 3} {
		if out[i].ID != want {
			t.Errorf("out[%d].ID = %d, want %d", i, out[i].ID, want)
		}
	}
	if in[0].ID != 3 {
		t.Error("input slice was reordered")
	}
}

func TestMatchSide(t *testing.T) {
	m := Match{TeamA: []int64{1, 2}, TeamB: []int64{3, 4}, ScoreA: 2, ScoreB: 6}
	if m.Side(2) != 'A' || m.Side(4) != 'B' || m.Side(9) != 0 {
		t.Errorf("Side = %c %c %d", m.Side(2), m.Side(4), m.Side(9))
	}
	if m.Margin() != 4 || !m.IsDoubles() {
		t.Errorf("Margin = %d, IsDoubles = %v", m.Margin(), m.IsDoubles())
	}
}

func TestPairKeyCanonical(t *testing.T) {
	if NewPairKey(7, 3) != NewPairKey(3, 7) {
		t.Error("pair key depends on argument order")
	}
	if got := NewPairKey(7, 3).String(); got != "3-7" {
		t.Errorf("String = %q", got)
	}
}

func TestRatingTableGet(t *testing.T) {
	tbl := RatingTable{1: 1012.5}
	if tbl.Get(1) != 1012.5 || tbl.Get(2) != StartRating {
		t.Errorf("Get = %v, %v", tbl.Get(1), tbl.Get(2))
	}
	c := tbl.Clone()
	c[1] = 0
	if tbl[1] != 1012.5 {
		t.Error("Clone shares storage")
	}
}
