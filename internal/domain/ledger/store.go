// internal/domain/ledger/store.go
package ledger

import "github.com/shopspring/decimal"

// Store is the persistence boundary for monthly ledger documents.
//
// Implementations must load and return documents with their entries in stored
// insertion order, and list documents for a key in ascending (year, month)
// order as one bounded query per key.
type Store interface {
	// GetOrCreate returns the document for the key, creating it with the given
	// opening balance, empty entries and zero totals when absent. Creation is
	// idempotent: concurrent calls for the same key must not produce duplicates.
	GetOrCreate(venueID, productID uint, year, month int, openingBalance decimal.Decimal) (*StockLedger, error)

	// Get returns the document for the key, or ErrLedgerNotFound.
	Get(venueID, productID uint, year, month int) (*StockLedger, error)

	// ListForProduct returns every document for the (venue, product) key,
	// ascending by (year, month).
	ListForProduct(venueID, productID uint) ([]*StockLedger, error)

	// PreviousClosingBalance returns the closing balance of the chronologically
	// latest document strictly before (year, month), or zero when none exists.
	PreviousClosingBalance(venueID, productID uint, year, month int) (decimal.Decimal, error)

	// Save persists the document and its current entry set, removing entries
	// that are no longer present.
	Save(l *StockLedger) error

	// SaveAll persists several documents atomically: either every document's
	// changes become durable or none do. Cross-month expiry recognition depends
	// on this to keep the source entry's booked marker and the target month's
	// carry-forward bucket in step across retries.
	SaveAll(docs ...*StockLedger) error
}
