package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pable/doubles-league/internal/model"
)

const snapshotColumns = `
	player_id, rating, matches, wins, losses, win_rate,
	to6_wins, to6_losses, to4_wins, to4_losses, to3_wins, to3_losses,
	best_partner_id, best_partner_win_rate, worst_partner_id, worst_partner_win_rate,
	updated_at, generation`

// WriteSnapshot inserts or replaces the cached stats row of one player.
func (db *DB) WriteSnapshot(ctx context.Context, s model.CachedPlayerStats) error {
	six := s.PerType[model.MatchTypeSix]
	four := s.PerType[model.MatchTypeFour]
	three := s.PerType[model.MatchTypeThree]

	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO player_stats_cache(`+snapshotColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.PlayerID, s.Rating, s.Matches, s.Wins, s.Losses, s.WinRate,
		six.Wins, six.Losses, four.Wins, four.Losses, three.Wins, three.Losses,
		nullInt(s.BestPartner), nullFloat(s.BestPartnerWinRate),
		nullInt(s.WorstPartner), nullFloat(s.WorstPartnerWinRate),
		s.UpdatedAt.UnixMilli(), s.Generation,
	)
	if err != nil {
		return fmt.Errorf("write snapshot for player %d: %w", s.PlayerID, err)
	}
	return nil
}

// ReadSnapshot returns the cached row for a player, or nil, nil if absent.
func (db *DB) ReadSnapshot(ctx context.Context, playerID int64) (*model.CachedPlayerStats, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM player_stats_cache WHERE player_id = ?`, playerID)
	s, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot for player %d: %w", playerID, err)
	}
	return &s, nil
}

// ListSnapshots returns every cached row ordered by rating descending.
func (db *DB) ListSnapshots(ctx context.Context) ([]model.CachedPlayerStats, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+snapshotColumns+` FROM player_stats_cache ORDER BY rating DESC, player_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CachedPlayerStats
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ClearSnapshots empties the cache table.
func (db *DB) ClearSnapshots(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM player_stats_cache`)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(r scanner) (model.CachedPlayerStats, error) {
	var (
		s                   model.CachedPlayerStats
		six, four, three    model.WinLoss
		bestID, worstID     sql.NullInt64
		bestRate, worstRate sql.NullFloat64
		updatedAt           int64
	)
	err := r.Scan(
		&s.PlayerID, &s.Rating, &s.Matches, &s.Wins, &s.Losses, &s.WinRate,
		&six.Wins, &six.Losses, &four.Wins, &four.Losses, &three.Wins, &three.Losses,
		&bestID, &bestRate, &worstID, &worstRate,
		&updatedAt, &s.Generation,
	)
	if err != nil {
		return s, err
	}
	s.PerType = map[model.MatchType]model.WinLoss{
		model.MatchTypeSix:   six,
		model.MatchTypeFour:  four,
		model.MatchTypeThree: three,
	}
	if bestID.Valid {
		id, rate := bestID.Int64, bestRate.Float64
		s.BestPartner, s.BestPartnerWinRate = &id, &rate
	}
	if worstID.Valid {
		id, rate := worstID.Int64, worstRate.Float64
		s.WorstPartner, s.WorstPartnerWinRate = &id, &rate
	}
	s.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return s, nil
}
