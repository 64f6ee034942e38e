package service

import (
	"context"
	"database/sql"
	"time"

	"fundfolio/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Clock supplies the orchestrator's notion of "today". Injected so tests can
// pin the valuation date instead of depending on the wall clock.
type Clock func() time.Time

// TransactionService coordinates the directories, the position store and the
// ledger to execute buys and redemptions atomically, and aggregates holdings
// into a portfolio view.
type TransactionService struct {
	store     *database.Store
	log       *logrus.Logger
	clock     Clock
	isolation sql.IsolationLevel
}

func NewTransactionService(store *database.Store, log *logrus.Logger, iso sql.IsolationLevel) *TransactionService {
	return &TransactionService{store: store, log: log, clock: time.Now, isolation: iso}
}

// WithClock overrides the valuation-date source.
func (s *TransactionService) WithClock(c Clock) *TransactionService {
	s.clock = c
	return s
}

func (s *TransactionService) today() time.Time {
	y, m, d := s.clock().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type txnContext struct {
	user   database.User
	script database.Script
	nav    database.Nav
	today  time.Time
}

// prepare resolves the user, the script and today's NAV, failing fast before
// any mutation when one is missing.
func (s *TransactionService) prepare(ctx context.Context, userID, scriptID int64) (txnContext, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return txnContext{}, err
	}
	script, err := s.store.ScriptByID(ctx, scriptID)
	if err != nil {
		return txnContext{}, err
	}
	today := s.today()
	nav, err := s.store.NavFor(ctx, script.ID, today)
	if err != nil {
		return txnContext{}, err
	}
	return txnContext{user: user, script: script, nav: nav, today: today}, nil
}

// Buy converts amount into units at today's NAV and applies them to the
// user's holding. The holding upsert and the ledger append commit together
// or not at all.
func (s *TransactionService) Buy(ctx context.Context, userID, scriptID int64, amount decimal.Decimal) error {
	s.log.Infof("processing buy - user: %d, script: %d, amount: %s", userID, scriptID, amount)

	if amount.Cmp(decimal.Zero) <= 0 {
		return ErrNonPositiveAmount
	}
	tc, err := s.prepare(ctx, userID, scriptID)
	if err != nil {
		return err
	}
	units := UnitsFor(amount, tc.nav.NavValue)

	err = s.store.WithinTx(ctx, s.isolation, func(tx *sqlx.Tx) error {
		holding, err := s.store.EnsureHolding(ctx, tx, tc.user.ID, tc.script.ID, tc.today)
		if err != nil {
			return err
		}
		holding.Units = holding.Units.Add(units)
		holding.TotalValue = AmountFor(holding.Units, tc.nav.NavValue)
		holding.LastUpdated = tc.today
		if err := s.store.SaveHolding(ctx, tx, holding); err != nil {
			return err
		}
		_, err = s.store.AppendTransaction(ctx, tx, database.Transaction{
			UserID:          tc.user.ID,
			ScriptID:        tc.script.ID,
			Type:            database.TxnBuy,
			Units:           units,
			Amount:          amount,
			NavValue:        tc.nav.NavValue,
			TransactionDate: tc.today,
		})
		return err
	})
	if err != nil {
		return err
	}

	s.log.Infof("buy completed - user: %d, script: %s, units: %s", userID, tc.script.FundCode, units)
	return nil
}

// Redeem converts units into a monetary amount at today's NAV and removes
// them from the user's holding. Absence of a holding and insufficient units
// are distinct failures; neither leaves any partial state.
func (s *TransactionService) Redeem(ctx context.Context, userID, scriptID int64, units decimal.Decimal) error {
	s.log.Infof("processing redemption - user: %d, script: %d, units: %s", userID, scriptID, units)

	if units.Cmp(decimal.Zero) <= 0 {
		return ErrNonPositiveUnits
	}
	tc, err := s.prepare(ctx, userID, scriptID)
	if err != nil {
		return err
	}
	amount := AmountFor(units, tc.nav.NavValue)

	err = s.store.WithinTx(ctx, s.isolation, func(tx *sqlx.Tx) error {
		holding, err := s.store.LockHolding(ctx, tx, tc.user.ID, tc.script.ID)
		if err != nil {
			return err
		}
		if holding.Units.Cmp(units) < 0 {
			s.log.Warnf("redemption failed: insufficient units. requested: %s, available: %s", units, holding.Units)
			return &InsufficientUnitsError{Requested: units, Available: holding.Units}
		}
		holding.Units = holding.Units.Sub(units)
		holding.TotalValue = AmountFor(holding.Units, tc.nav.NavValue)
		holding.LastUpdated = tc.today
		if err := s.store.SaveHolding(ctx, tx, holding); err != nil {
			return err
		}
		_, err = s.store.AppendTransaction(ctx, tx, database.Transaction{
			UserID:          tc.user.ID,
			ScriptID:        tc.script.ID,
			Type:            database.TxnRedeem,
			Units:           units,
			Amount:          amount,
			NavValue:        tc.nav.NavValue,
			TransactionDate: tc.today,
		})
		return err
	})
	if err != nil {
		return err
	}

	s.log.Infof("redemption completed - user: %d, script: %s, amount: %s", userID, tc.script.FundCode, amount)
	return nil
}

type HoldingView struct {
	HoldingID     int64           `json:"holding_id"`
	ScriptID      int64           `json:"script_id"`
	FundCode      string          `json:"fund_code"`
	ScriptName    string          `json:"script_name"`
	Category      string          `json:"category"`
	AMC           string          `json:"amc"`
	Units         decimal.Decimal `json:"units"`
	CurrentNav    decimal.Decimal `json:"current_nav"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	InvestedValue decimal.Decimal `json:"invested_value"`
	ProfitLoss    decimal.Decimal `json:"profit_loss"`
	ProfitLossPct decimal.Decimal `json:"profit_loss_pct"`
}

type PortfolioView struct {
	UserID             int64           `json:"user_id"`
	Username           string          `json:"username"`
	Holdings           []HoldingView   `json:"holdings"`
	TotalInvestedValue decimal.Decimal `json:"total_invested_value"`
	TotalCurrentValue  decimal.Decimal `json:"total_current_value"`
	TotalProfitLoss    decimal.Decimal `json:"total_profit_loss"`
	TotalProfitLossPct decimal.Decimal `json:"total_profit_loss_pct"`
}

// Portfolio values every holding at today's NAV against its stored invested
// snapshot. A user with no holdings gets a zero-valued view, not an error.
func (s *TransactionService) Portfolio(ctx context.Context, userID int64) (PortfolioView, error) {
	s.log.Infof("fetching portfolio for user: %d", userID)

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return PortfolioView{}, err
	}
	holdings, err := s.store.HoldingsByUser(ctx, user.ID)
	if err != nil {
		return PortfolioView{}, err
	}

	view := PortfolioView{UserID: user.ID, Username: user.Username, Holdings: []HoldingView{}}
	today := s.today()
	for _, h := range holdings {
		script, err := s.store.ScriptByID(ctx, h.ScriptID)
		if err != nil {
			return PortfolioView{}, err
		}
		nav, err := s.store.NavFor(ctx, script.ID, today)
		if err != nil {
			return PortfolioView{}, err
		}

		currentValue := AmountFor(h.Units, nav.NavValue)
		investedValue := h.TotalValue
		profitLoss := currentValue.Sub(investedValue)

		view.Holdings = append(view.Holdings, HoldingView{
			HoldingID:     h.ID,
			ScriptID:      script.ID,
			FundCode:      script.FundCode,
			ScriptName:    script.Name,
			Category:      script.Category,
			AMC:           script.AMC,
			Units:         h.Units,
			CurrentNav:    nav.NavValue,
			CurrentValue:  currentValue,
			InvestedValue: investedValue,
			ProfitLoss:    profitLoss,
			ProfitLossPct: PercentChange(profitLoss, investedValue),
		})
		view.TotalInvestedValue = view.TotalInvestedValue.Add(investedValue)
		view.TotalCurrentValue = view.TotalCurrentValue.Add(currentValue)
	}
	view.TotalProfitLoss = view.TotalCurrentValue.Sub(view.TotalInvestedValue)
	view.TotalProfitLossPct = PercentChange(view.TotalProfitLoss, view.TotalInvestedValue)

	return view, nil
}

// History lists the user's ledger entries, newest first.
func (s *TransactionService) History(ctx context.Context, userID int64) ([]database.Transaction, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.TransactionsByUser(ctx, user.ID)
}
