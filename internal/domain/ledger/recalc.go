// internal/domain/ledger/recalc.go
package ledger

import "github.com/shopspring/decimal"

// Recalculate rederives every entry balance and the document's cached totals
// in one pass over the entries, in stored insertion order.
//
// The running balance starts at the carry-forward and is clamped to zero after
// each entry; the clamped value seeds the next entry, so a shortfall is not
// carried as negative debt into later movements. Each entry's contribution is
// read from its current stock_added/used_stock/expired_stock/damage_stock
// columns rather than re-derived from its type, so manual edits to those
// columns survive recalculation.
func Recalculate(l *StockLedger) {
	running := l.CarryForward
	totalAdded := decimal.Zero
	totalUsed := decimal.Zero
	totalExpired := decimal.Zero
	totalDamaged := decimal.Zero

	for i := range l.Entries {
		e := &l.Entries[i]
		running = running.Add(e.Delta())
		if running.IsNegative() {
			running = decimal.Zero
		}
		e.Balance = running

		totalAdded = totalAdded.Add(e.StockAdded)
		totalUsed = totalUsed.Add(e.UsedStock)
		totalExpired = totalExpired.Add(e.ExpiredStock)
		totalDamaged = totalDamaged.Add(e.DamageStock)
	}

	l.TotalAdded = totalAdded
	l.TotalUsed = totalUsed
	l.TotalExpired = totalExpired
	l.TotalDamaged = totalDamaged

	closing := l.CarryForward.
		Add(totalAdded).
		Sub(totalUsed).
		Sub(totalExpired).
		Sub(totalDamaged).
		Sub(l.ExpiredCarryForwardStock)
	if closing.IsNegative() {
		closing = decimal.Zero
	}
	l.ClosingBalance = closing
}
