package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pable/doubles-league/internal/model"
)

// UpsertPlayers inserts or replaces players in a transaction.
func (db *DB) UpsertPlayers(ctx context.Context, players []model.Player) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO players(id, name, external_id) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, nullInt(p.ExternalID)); err != nil {
			return fmt.Errorf("insert player %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// ListPlayers returns all players ordered by id.
func (db *DB) ListPlayers(ctx context.Context) ([]model.Player, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name, external_id FROM players ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		var (
			p   model.Player
			ext sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Name, &ext); err != nil {
			return nil, err
		}
		if ext.Valid {
			v := ext.Int64
			p.ExternalID = &v
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FindPlayer resolves a player by numeric id or case-insensitive name, with
// an optional leading "@". Returns nil, nil if no player matches.
func (db *DB) FindPlayer(ctx context.Context, ref string) (*model.Player, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "@")

	query := `SELECT id, name, external_id FROM players WHERE name = ? COLLATE NOCASE`
	var arg any = ref
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		query = `SELECT id, name, external_id FROM players WHERE id = ?`
		arg = id
	}

	var (
		p   model.Player
		ext sql.NullInt64
	)
	err := db.conn.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.Name, &ext)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if ext.Valid {
		v := ext.Int64
		p.ExternalID = &v
	}
	return &p, nil
}

// InsertMatches inserts or replaces matches and their line-ups in a
// transaction. A replaced match gets its line-up rewritten.
func (db *DB) InsertMatches(ctx context.Context, matches []model.Match) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	matchStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO matches(id, played_at, match_type, score_a, score_b)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer matchStmt.Close()

	clearStmt, err := tx.PrepareContext(ctx, `DELETE FROM match_players WHERE match_id = ?`)
	if err != nil {
		return err
	}
	defer clearStmt.Close()

	lineStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO match_players(match_id, side, slot, player_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer lineStmt.Close()

	for _, m := range matches {
		if m.Type == model.MatchTypeUnknown {
			return fmt.Errorf("match %d: unknown match type", m.ID)
		}
		if _, err := matchStmt.ExecContext(ctx, m.ID, m.Date.UnixMilli(), m.Type.String(), m.ScoreA, m.ScoreB); err != nil {
			return fmt.Errorf("insert match %d: %w", m.ID, err)
		}
		if _, err := clearStmt.ExecContext(ctx, m.ID); err != nil {
			return fmt.Errorf("clear line-up of match %d: %w", m.ID, err)
		}
		for side, team := range map[string][]int64{"A": m.TeamA, "B": m.TeamB} {
			for slot, pid := range team {
				if _, err := lineStmt.ExecContext(ctx, m.ID, side, slot, pid); err != nil {
					return fmt.Errorf("insert line-up of match %d: %w", m.ID, err)
				}
			}
		}
	}
	return tx.Commit()
}

// ListMatches returns every match ordered by (date, id), line-ups included.
func (db *DB) ListMatches(ctx context.Context) ([]model.Match, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, played_at, match_type, score_a, score_b
		FROM matches ORDER BY played_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Match
	index := map[int64]int{}
	for rows.Next() {
		var (
			m      model.Match
			millis int64
			typ    string
		)
		if err := rows.Scan(&m.ID, &millis, &typ, &m.ScoreA, &m.ScoreB); err != nil {
			return nil, err
		}
		m.Date = time.UnixMilli(millis).UTC()
		if m.Type, err = model.ParseMatchType(typ); err != nil {
			return nil, fmt.Errorf("match %d: %w", m.ID, err)
		}
		index[m.ID] = len(out)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lrows, err := db.conn.QueryContext(ctx, `
		SELECT match_id, side, player_id FROM match_players ORDER BY match_id, side, slot`)
	if err != nil {
		return nil, err
	}
	defer lrows.Close()

	for lrows.Next() {
		var (
			matchID, playerID int64
			side              string
		)
		if err := lrows.Scan(&matchID, &side, &playerID); err != nil {
			return nil, err
		}
		i, ok := index[matchID]
		if !ok {
			continue
		}
		if side == "A" {
			out[i].TeamA = append(out[i].TeamA, playerID)
		} else {
			out[i].TeamB = append(out[i].TeamB, playerID)
		}
	}
	return out, lrows.Err()
}

func nullInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
