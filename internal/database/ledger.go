package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// AppendTransaction inserts one immutable ledger row. The ledger is
// append-only: nothing in this package updates or deletes transactions.
func (s *Store) AppendTransaction(ctx context.Context, tx *sqlx.Tx, t Transaction) (Transaction, error) {
	q := `INSERT INTO transactions (user_id, script_id, type, units, amount, nav_value, transaction_date)
	      VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7)
	      RETURNING id, user_id, script_id, type, units, amount, nav_value, transaction_date, created_at`
	var rec Transaction
	err := tx.GetContext(ctx, &rec, q,
		t.UserID, t.ScriptID, string(t.Type),
		t.Units.String(), t.Amount.String(), t.NavValue.String(),
		t.TransactionDate.Format("2006-01-02"))
	if err != nil {
		return Transaction{}, err
	}
	s.log.Debugf("transaction recorded with id: %d", rec.ID)
	return rec, nil
}

func (s *Store) TransactionsByUser(ctx context.Context, userID int64) ([]Transaction, error) {
	txns := []Transaction{}
	q := `SELECT id, user_id, script_id, type, units, amount, nav_value, transaction_date, created_at
	      FROM transactions WHERE user_id = $1 ORDER BY id DESC`
	err := s.db.SelectContext(ctx, &txns, q, userID)
	return txns, err
}
