package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pable/doubles-league/internal/model"
)

// PlayerRecord is a player as it appears in a league dump.
type PlayerRecord struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ExternalID *int64 `json:"external_id,omitempty"`
}

// MatchRecord is a match as it appears in a league dump.
type MatchRecord struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"`
	Type   string    `json:"type"` // "to6", "to4" or "to3"
	TeamA  []int64   `json:"team_a"`
	TeamB  []int64   `json:"team_b"`
	ScoreA int       `json:"score_a"`
	ScoreB int       `json:"score_b"`
}

// LeagueDump is the JSON interchange format for import and export.
type LeagueDump struct {
	Players []PlayerRecord `json:"players"`
	Matches []MatchRecord  `json:"matches"`
}

// ImportStats reports what an import wrote.
type ImportStats struct {
	Players int
	Matches int
}

// DecodeDump parses a league dump into domain values.
func DecodeDump(r io.Reader) ([]model.Player, []model.Match, error) {
	var dump LeagueDump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, nil, fmt.Errorf("decode league dump: %w", err)
	}

	players := make([]model.Player, len(dump.Players))
	for i, p := range dump.Players {
		if p.Name == "" {
			return nil, nil, fmt.Errorf("player %d: empty name", p.ID)
		}
		players[i] = model.Player{ID: p.ID, Name: p.Name, ExternalID: p.ExternalID}
	}

	matches := make([]model.Match, len(dump.Matches))
	for i, m := range dump.Matches {
		typ, err := model.ParseMatchType(m.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("match %d: %w", m.ID, err)
		}
		if m.ScoreA < 0 || m.ScoreB < 0 {
			return nil, nil, fmt.Errorf("match %d: negative score", m.ID)
		}
		matches[i] = model.Match{
			ID:     m.ID,
			Date:   m.Date.UTC(),
			Type:   typ,
			TeamA:  m.TeamA,
			TeamB:  m.TeamB,
			ScoreA: m.ScoreA,
			ScoreB: m.ScoreB,
		}
	}
	return players, matches, nil
}

// Import decodes a league dump and upserts its contents.
func (db *DB) Import(ctx context.Context, r io.Reader) (ImportStats, error) {
	players, matches, err := DecodeDump(r)
	if err != nil {
		return ImportStats{}, err
	}
	if err := db.UpsertPlayers(ctx, players); err != nil {
		return ImportStats{}, fmt.Errorf("import players: %w", err)
	}
	if err := db.InsertMatches(ctx, matches); err != nil {
		return ImportStats{Players: len(players)}, fmt.Errorf("import matches: %w", err)
	}
	db.log.Info().Int("players", len(players)).Int("matches", len(matches)).Msg("league imported")
	return ImportStats{Players: len(players), Matches: len(matches)}, nil
}

// Export writes the whole league as an indented JSON dump.
func (db *DB) Export(ctx context.Context, w io.Writer) error {
	players, matches, err := db.LoadLeague(ctx)
	if err != nil {
		return err
	}

	dump := LeagueDump{
		Players: make([]PlayerRecord, len(players)),
		Matches: make([]MatchRecord, len(matches)),
	}
	for i, p := range players {
		dump.Players[i] = PlayerRecord{ID: p.ID, Name: p.Name, ExternalID: p.ExternalID}
	}
	for i, m := range matches {
		dump.Matches[i] = MatchRecord{
			ID:     m.ID,
			Date:   m.Date,
			Type:   m.Type.String(),
			TeamA:  m.TeamA,
			TeamB:  m.TeamB,
			ScoreA: m.ScoreA,
			ScoreB: m.ScoreB,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}
