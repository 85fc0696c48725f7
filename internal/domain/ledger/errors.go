// internal/domain/ledger/errors.go
package ledger

import "errors"

// Domain errors. Handlers rely on errors.Is to tell a missing monthly document
// apart from a missing entry inside an existing document.
var (
	ErrLedgerNotFound      = errors.New("stock ledger not found for the requested period")
	ErrEntryNotFound       = errors.New("stock entry not found in the requested period")
	ErrMissingDate         = errors.New("movement date is required")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrUnknownMovementType = errors.New("unknown movement type")
)
