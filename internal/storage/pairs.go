package storage

import (
	"context"
	"fmt"

	"github.com/pable/doubles-league/internal/model"
)

// ReplacePairs swaps the whole pair table for pairs in one transaction.
// Pairs missing from the new set are removed.
func (db *DB) ReplacePairs(ctx context.Context, pairs []model.PairState) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pairs`); err != nil {
		return fmt.Errorf("clear pairs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pairs(player1_id, player2_id, rating, matches, wins, losses)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range pairs {
		if _, err := stmt.ExecContext(ctx, p.Player1ID, p.Player2ID, p.Rating, p.Matches, p.Wins, p.Losses); err != nil {
			return fmt.Errorf("insert pair %s: %w", p.PairKey, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	db.log.Debug().Int("pairs", len(pairs)).Msg("pair table replaced")
	return nil
}

// ListPairs returns stored pairs ordered by rating descending.
func (db *DB) ListPairs(ctx context.Context) ([]model.PairState, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT player1_id, player2_id, rating, matches, wins, losses
		FROM pairs ORDER BY rating DESC, player1_id, player2_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PairState
	for rows.Next() {
		var p model.PairState
		if err := rows.Scan(&p.Player1ID, &p.Player2ID, &p.Rating, &p.Matches, &p.Wins, &p.Losses); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
