package service

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// UnitsFor converts a monetary amount into units at the given NAV. Division
// uses shopspring's default 16-digit precision; no currency rounding is
// applied at this layer.
func UnitsFor(amount, nav decimal.Decimal) decimal.Decimal {
	return amount.Div(nav)
}

// AmountFor converts a unit count into a monetary amount at the given NAV.
func AmountFor(units, nav decimal.Decimal) decimal.Decimal {
	return units.Mul(nav)
}

// PercentChange returns delta/base*100, or zero when base is not positive.
// The zero guard keeps profit/loss percentages finite for empty or
// zero-invested positions.
func PercentChange(delta, base decimal.Decimal) decimal.Decimal {
	if base.Cmp(decimal.Zero) <= 0 {
		return decimal.Zero
	}
	return delta.Div(base).Mul(hundred)
}
