package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const holdingCols = `id, user_id, script_id, units, total_value, last_updated`

func (s *Store) FindHolding(ctx context.Context, userID, scriptID int64) (Holding, error) {
	var h Holding
	q := `SELECT ` + holdingCols + ` FROM holdings WHERE user_id = $1 AND script_id = $2`
	err := s.db.GetContext(ctx, &h, q, userID, scriptID)
	if errors.Is(err, sql.ErrNoRows) {
		return Holding{}, ErrHoldingNotFound
	}
	return h, err
}

// LockHolding reads the position row under FOR UPDATE so concurrent buys and
// redemptions on the same (user, script) pair serialize on the row lock for
// the remainder of the transaction.
func (s *Store) LockHolding(ctx context.Context, tx *sqlx.Tx, userID, scriptID int64) (Holding, error) {
	var h Holding
	q := `SELECT ` + holdingCols + ` FROM holdings WHERE user_id = $1 AND script_id = $2 FOR UPDATE`
	err := tx.GetContext(ctx, &h, q, userID, scriptID)
	if errors.Is(err, sql.ErrNoRows) {
		return Holding{}, ErrHoldingNotFound
	}
	return h, err
}

// EnsureHolding is the atomic form of fetch-or-create: insert a zero row if
// the pair has never been seen, then lock whichever row won. Two first-time
// buyers racing on the same pair cannot produce duplicate rows.
func (s *Store) EnsureHolding(ctx context.Context, tx *sqlx.Tx, userID, scriptID int64, asOf time.Time) (Holding, error) {
	insert := `INSERT INTO holdings (user_id, script_id, units, total_value, last_updated) VALUES ($1, $2, 0, 0, $3) ON CONFLICT (user_id, script_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, insert, userID, scriptID, asOf.Format("2006-01-02")); err != nil {
		return Holding{}, err
	}
	return s.LockHolding(ctx, tx, userID, scriptID)
}

// SaveHolding writes back units, the recomputed valuation snapshot and the
// valuation date for an already-locked holding row.
func (s *Store) SaveHolding(ctx context.Context, tx *sqlx.Tx, h Holding) error {
	q := `UPDATE holdings SET units = $1::numeric, total_value = $2::numeric, last_updated = $3 WHERE id = $4`
	_, err := tx.ExecContext(ctx, q, h.Units.String(), h.TotalValue.String(), h.LastUpdated.Format("2006-01-02"), h.ID)
	return err
}

func (s *Store) HoldingsByUser(ctx context.Context, userID int64) ([]Holding, error) {
	holdings := []Holding{}
	q := `SELECT ` + holdingCols + ` FROM holdings WHERE user_id = $1 ORDER BY id`
	err := s.db.SelectContext(ctx, &holdings, q, userID)
	return holdings, err
}
