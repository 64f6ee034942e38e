package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrNonPositiveUnits  = errors.New("units must be positive")
	ErrNonPositiveNav    = errors.New("nav value must be positive")
	ErrInvalidRole       = errors.New("role must be ADMIN or USER")
)

// InsufficientUnitsError carries the units actually available so the caller
// can report how far short the redemption fell.
type InsufficientUnitsError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientUnitsError) Error() string {
	return fmt.Sprintf("insufficient units to redeem: requested %s, available %s",
		e.Requested.String(), e.Available.String())
}

// IsInvalidOperation reports whether err is a business-rule violation rather
// than a missing entity or a persistence failure.
func IsInvalidOperation(err error) bool {
	var insufficient *InsufficientUnitsError
	return errors.Is(err, ErrNonPositiveAmount) ||
		errors.Is(err, ErrNonPositiveUnits) ||
		errors.Is(err, ErrNonPositiveNav) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.As(err, &insufficient)
}
