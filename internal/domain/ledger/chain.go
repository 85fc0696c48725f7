// internal/domain/ledger/chain.go
package ledger

import (
	"fmt"

	"github.com/your-org/concessions-backend/internal/pkg/metrics"
)

// SyncCarryForward walks every monthly document for the (venue, product) key
// in ascending (year, month) order and makes each one's carry-forward equal
// the previous month's closing balance. A repaired document is recalculated
// and persisted before the next month is examined, so a single historical
// correction ripples through every later month in one pass. Returns whether
// any document was modified.
func (s *Service) SyncCarryForward(venueID, productID uint) (bool, error) {
	docs, err := s.store.ListForProduct(venueID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to load ledger history: %w", err)
	}

	changed := false
	var prev *StockLedger
	for _, doc := range docs {
		if prev != nil && !doc.CarryForward.Equal(prev.ClosingBalance) {
			doc.CarryForward = prev.ClosingBalance
			Recalculate(doc)
			if err := s.store.Save(doc); err != nil {
				return changed, fmt.Errorf("failed to save ledger: %w", err)
			}
			changed = true
			metrics.ChainRepairs.Inc()
		}
		prev = doc
	}
	return changed, nil
}
