package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Store wraps the Postgres connection pool. Methods that must participate in
// a caller-controlled transaction take a sqlx.ExtContext so they run against
// either the pool or an open *sqlx.Tx.
type Store struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Store {
	return &Store{db: db, log: log}
}

func (s *Store) DB() *sqlx.DB { return s.db }

// WithinTx runs fn inside one transaction at the given isolation level,
// rolling back on error or panic and committing otherwise.
func (s *Store) WithinTx(ctx context.Context, iso sql.IsolationLevel, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: iso})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			s.log.Warnf("rollback failed: %v", rbErr)
		}
		return err
	}
	return tx.Commit()
}

// ParseIsolation maps the TX_ISOLATION config value to a sql.IsolationLevel.
// Row locks on the holding already rule out lost updates, so read committed
// is the default; repeatable read is available as a stricter policy.
func ParseIsolation(v string) (sql.IsolationLevel, error) {
	switch v {
	case "", "read_committed":
		return sql.LevelReadCommitted, nil
	case "repeatable_read":
		return sql.LevelRepeatableRead, nil
	default:
		return sql.LevelDefault, fmt.Errorf("unknown isolation level %q", v)
	}
}
