package trading

import "errors"

// Error kinds shared by the order, execution, and portfolio paths. Handlers
// map these to HTTP statuses with errors.Is; services wrap them with detail
// via fmt.Errorf("...: %w", Err...).
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidState         = errors.New("invalid state")
	ErrInsufficientFunds    = errors.New("insufficient cash balance")
	ErrInsufficientPosition = errors.New("insufficient position")
)
