package ledger

import "errors"

// Error kinds the stock operations can return. Callers classify with
// errors.Is; the wrapped message carries the item context (id, name,
// available vs requested) for the UI.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadySold       = errors.New("already sold")
	ErrInsufficientStock = errors.New("insufficient stock")
)
