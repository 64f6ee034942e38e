package database

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrScriptNotFound  = errors.New("script not found")
	ErrNavNotFound     = errors.New("nav not found")
	ErrHoldingNotFound = errors.New("user does not hold this script")

	ErrUsernameTaken = errors.New("username already exists")
	ErrScriptExists  = errors.New("script with fund code already exists")
	ErrNavExists     = errors.New("nav for this date already exists")
)

// IsNotFound reports whether err is one of the missing-entity errors, as
// opposed to a business-rule violation or a persistence failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrScriptNotFound) ||
		errors.Is(err, ErrNavNotFound) ||
		errors.Is(err, ErrHoldingNotFound)
}

// IsConflict reports whether err is a uniqueness violation surfaced as a
// business error (duplicate username, fund code, or NAV date).
func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrScriptExists) ||
		errors.Is(err, ErrNavExists)
}
