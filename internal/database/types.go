package database

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// TransactionType is a closed tag: every ledger row is either a buy or a
// redemption, with identical field sets.
type TransactionType string

const (
	TxnBuy    TransactionType = "BUY"
	TxnRedeem TransactionType = "REDEEM"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Script struct {
	ID        int64     `db:"id" json:"id"`
	FundCode  string    `db:"fund_code" json:"fund_code"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category"`
	AMC       string    `db:"amc" json:"amc"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Nav struct {
	ID       int64           `db:"id" json:"id"`
	ScriptID int64           `db:"script_id" json:"script_id"`
	NavDate  time.Time       `db:"nav_date" json:"nav_date"`
	NavValue decimal.Decimal `db:"nav_value" json:"nav_value"`
}

// Holding is the per-(user, script) position. TotalValue is a mark-to-market
// snapshot: units times the NAV used at the last mutation, not a cost basis.
type Holding struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"user_id"`
	ScriptID    int64           `db:"script_id" json:"script_id"`
	Units       decimal.Decimal `db:"units" json:"units"`
	TotalValue  decimal.Decimal `db:"total_value" json:"total_value"`
	LastUpdated time.Time       `db:"last_updated" json:"last_updated"`
}

type Transaction struct {
	ID              int64           `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"user_id"`
	ScriptID        int64           `db:"script_id" json:"script_id"`
	Type            TransactionType `db:"type" json:"type"`
	Units           decimal.Decimal `db:"units" json:"units"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	NavValue        decimal.Decimal `db:"nav_value" json:"nav_value"`
	TransactionDate time.Time       `db:"transaction_date" json:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
