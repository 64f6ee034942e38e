package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// NavFor resolves the published NAV for a script on one date. There is at
// most one row per (script, date); the unique index enforces it.
func (s *Store) NavFor(ctx context.Context, scriptID int64, date time.Time) (Nav, error) {
	var n Nav
	q := `SELECT id, script_id, nav_date, nav_value FROM navs WHERE script_id = $1 AND nav_date = $2`
	err := s.db.GetContext(ctx, &n, q, scriptID, date.Format("2006-01-02"))
	if errors.Is(err, sql.ErrNoRows) {
		return Nav{}, ErrNavNotFound
	}
	return n, err
}

func (s *Store) InsertNav(ctx context.Context, scriptID int64, date time.Time, value decimal.Decimal) (Nav, error) {
	var n Nav
	q := `INSERT INTO navs (script_id, nav_date, nav_value) VALUES ($1, $2, $3::numeric) RETURNING id, script_id, nav_date, nav_value`
	err := s.db.GetContext(ctx, &n, q, scriptID, date.Format("2006-01-02"), value.String())
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return Nav{}, ErrNavExists
	}
	return n, err
}
