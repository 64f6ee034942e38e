package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const scriptCols = `id, fund_code, name, category, amc, active, created_at`

func (s *Store) ScriptByID(ctx context.Context, id int64) (Script, error) {
	var sc Script
	err := s.db.GetContext(ctx, &sc, `SELECT `+scriptCols+` FROM scripts WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Script{}, ErrScriptNotFound
	}
	return sc, err
}

func (s *Store) ScriptByCode(ctx context.Context, fundCode string) (Script, error) {
	var sc Script
	err := s.db.GetContext(ctx, &sc, `SELECT `+scriptCols+` FROM scripts WHERE fund_code = $1`, fundCode)
	if errors.Is(err, sql.ErrNoRows) {
		return Script{}, ErrScriptNotFound
	}
	return sc, err
}

func (s *Store) CreateScript(ctx context.Context, fundCode, name, category, amc string) (Script, error) {
	var sc Script
	q := `INSERT INTO scripts (fund_code, name, category, amc) VALUES ($1, $2, $3, $4) RETURNING ` + scriptCols
	err := s.db.GetContext(ctx, &sc, q, fundCode, name, category, amc)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return Script{}, ErrScriptExists
	}
	return sc, err
}

func (s *Store) ListScripts(ctx context.Context) ([]Script, error) {
	scripts := []Script{}
	err := s.db.SelectContext(ctx, &scripts, `SELECT `+scriptCols+` FROM scripts WHERE active ORDER BY id`)
	return scripts, err
}
