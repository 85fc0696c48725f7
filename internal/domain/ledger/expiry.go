// internal/domain/ledger/expiry.go
package ledger

import (
	"fmt"
	"time"

	"github.com/your-org/concessions-backend/internal/pkg/metrics"
)

// RecognizeExpiry scans every monthly document for the (venue, product) key and
// promotes any batch whose expiry has passed into recognized loss.
//
// A batch added and expiring in the same calendar month has the remainder added
// to its own entry's expired_stock. A batch expiring in a later month leaves
// the original entry's quantities untouched and books the remainder into the
// expired_carry_forward_stock of the expiry month's document, creating that
// document if needed. The loss must land in the month it was recognized, not
// the month the stock was bought. Returns whether anything was recognized so
// the caller can decide to refresh the product's current-stock value.
func (s *Service) RecognizeExpiry(venueID, productID uint) (bool, error) {
	docs, err := s.store.ListForProduct(venueID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to load ledger history: %w", err)
	}

	now := s.now()
	recognized := false

	for _, doc := range docs {
		dirty := false
		// A batch cannot expire more stock than its month still holds; the
		// sold/damaged entries that consumed it live alongside it in the same
		// document, not on the batch entry itself.
		available := doc.ClosingBalance
		for i := range doc.Entries {
			e := &doc.Entries[i]
			if e.ExpireDate == nil || e.ExpiryBooked {
				continue
			}
			if e.Type != MovementAdded && e.Type != MovementReturned {
				continue
			}
			if now.Before(graceBoundary(*e.ExpireDate)) {
				continue
			}
			remaining := e.Remaining()
			if remaining.GreaterThan(available) {
				remaining = available
			}
			if remaining.IsZero() {
				continue
			}
			available = available.Sub(remaining)

			if sameMonth(e.Date, *e.ExpireDate) {
				e.ExpiredStock = e.ExpiredStock.Add(remaining)
				e.ExpiryBooked = true
				dirty = true
			} else {
				expYear, expMonth := e.ExpireDate.Year(), int(e.ExpireDate.Month())
				target := findPeriod(docs, expYear, expMonth)
				if target == nil {
					opening, err := s.store.PreviousClosingBalance(venueID, productID, expYear, expMonth)
					if err != nil {
						return recognized, fmt.Errorf("failed to resolve opening balance: %w", err)
					}
					target, err = s.store.GetOrCreate(venueID, productID, expYear, expMonth, opening)
					if err != nil {
						return recognized, fmt.Errorf("failed to create expiry ledger: %w", err)
					}
					// Later batches expiring into the same month must hit this
					// same instance, not a stale re-read.
					docs = append(docs, target)
				}
				target.ExpiredCarryForwardStock = target.ExpiredCarryForwardStock.Add(remaining)
				Recalculate(target)
				e.ExpiryBooked = true
				Recalculate(doc)
				// The booked marker and the bucket increment must become
				// durable together. Persisting one without the other would
				// double-book the remainder, or drop it, when a failed request
				// is retried.
				if err := s.store.SaveAll(doc, target); err != nil {
					return recognized, fmt.Errorf("failed to save expiry ledger: %w", err)
				}
			}

			recognized = true
			metrics.ExpiryRecognitions.Inc()
		}

		if dirty {
			Recalculate(doc)
			if err := s.store.Save(doc); err != nil {
				return recognized, fmt.Errorf("failed to save ledger: %w", err)
			}
		}
	}

	return recognized, nil
}

// graceBoundary is 00:01 on the calendar day after the expiry date; stock
// remains usable through the whole expiry day itself.
func graceBoundary(expire time.Time) time.Time {
	d := expire.AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 1, 0, 0, d.Location())
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func findPeriod(docs []*StockLedger, year, month int) *StockLedger {
	for _, doc := range docs {
		if doc.PeriodEquals(year, month) {
			return doc
		}
	}
	return nil
}
