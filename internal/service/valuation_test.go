package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUnitsFor(t *testing.T) {
	units := UnitsFor(decimal.RequireFromString("1000"), decimal.RequireFromString("319.20"))

	// 1000 / 319.20 ≈ 3.1328
	low := decimal.RequireFromString("3.1328")
	high := decimal.RequireFromString("3.1329")
	assert.True(t, units.Cmp(low) > 0 && units.Cmp(high) < 0, "got %s", units)
}

func TestAmountFor(t *testing.T) {
	amount := AmountFor(decimal.RequireFromString("150"), decimal.RequireFromString("25.0"))
	assert.True(t, amount.Equal(decimal.RequireFromString("3750")), "got %s", amount)
}

func TestUnitsRoundTrip(t *testing.T) {
	nav := decimal.RequireFromString("319.20")
	amount := decimal.RequireFromString("1000")

	back := AmountFor(UnitsFor(amount, nav), nav)
	diff := back.Sub(amount).Abs()
	assert.True(t, diff.Cmp(decimal.RequireFromString("0.000000000001")) < 0, "round trip drifted by %s", diff)
}

func TestPercentChange(t *testing.T) {
	pct := PercentChange(decimal.RequireFromString("50"), decimal.RequireFromString("200"))
	assert.True(t, pct.Equal(decimal.RequireFromString("25")), "got %s", pct)
}

func TestPercentChange_ZeroBase(t *testing.T) {
	assert.True(t, PercentChange(decimal.RequireFromString("50"), decimal.Zero).IsZero())
	assert.True(t, PercentChange(decimal.RequireFromString("50"), decimal.RequireFromString("-10")).IsZero())
}
