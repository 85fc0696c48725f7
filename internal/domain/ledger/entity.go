// internal/domain/ledger/entity.go
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a single stock movement
type MovementType string

const (
	MovementAdded      MovementType = "ADDED"
	MovementReturned   MovementType = "RETURNED"
	MovementSold       MovementType = "SOLD"
	MovementExpired    MovementType = "EXPIRED"
	MovementDamaged    MovementType = "DAMAGED"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// IsValid checks whether the movement type is one of the known values
func (t MovementType) IsValid() bool {
	switch t {
	case MovementAdded, MovementReturned, MovementSold, MovementExpired, MovementDamaged, MovementAdjustment:
		return true
	}
	return false
}

// StockLedger is the monthly ledger document for one product at one venue.
// There is exactly one per (venue, product, year, month); the composite unique
// index enforces that even under concurrent creation.
type StockLedger struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	VenueID   uint `gorm:"not null;uniqueIndex:idx_stock_ledgers_key,priority:1" json:"venue_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_stock_ledgers_key,priority:2" json:"product_id"`
	Year      int  `gorm:"not null;uniqueIndex:idx_stock_ledgers_key,priority:3" json:"year"`
	Month     int  `gorm:"not null;uniqueIndex:idx_stock_ledgers_key,priority:4" json:"month"` // 1-12

	// CarryForward is the opening balance: the closing balance of the previous
	// month's document, or zero when there is none.
	CarryForward decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"carry_forward"`

	// ExpiredCarryForwardStock accumulates quantity recognized as expired during
	// this month that was added to stock in an earlier month.
	ExpiredCarryForwardStock decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"expired_carry_forward_stock"`

	// Cached totals, recomputed on every recalculation pass and never mutated
	// independently.
	TotalAdded     decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total_added"`
	TotalUsed      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total_used"`
	TotalExpired   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total_expired"`
	TotalDamaged   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total_damaged"`
	ClosingBalance decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"closing_balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Entries []StockEntry `gorm:"foreignKey:LedgerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"entries"`
}

// PeriodBefore reports whether this document's month is strictly before (year, month)
func (l *StockLedger) PeriodBefore(year, month int) bool {
	return l.Year < year || (l.Year == year && l.Month < month)
}

// PeriodEquals reports whether this document covers (year, month)
func (l *StockLedger) PeriodEquals(year, month int) bool {
	return l.Year == year && l.Month == month
}

// StockEntry is one recorded movement inside a monthly ledger document.
// Position preserves insertion order; the recalculation pass walks entries in
// that order, not by movement date.
type StockEntry struct {
	ID       string       `gorm:"size:36;primaryKey" json:"id"`
	LedgerID uint         `gorm:"not null;index" json:"ledger_id"`
	Position int          `gorm:"not null" json:"position"`
	Date     time.Time    `gorm:"not null" json:"date"`
	Type     MovementType `gorm:"size:20;not null" json:"type"`

	// Quantity as supplied by the caller. Signed for ADJUSTMENT, unsigned
	// magnitude for every other type.
	Quantity decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`

	// Derived per-type columns. The recalculation pass reads these as-is rather
	// than re-deriving them from Type, so manual edits survive.
	StockAdded   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"stock_added"`
	UsedStock    decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"used_stock"`
	ExpiredStock decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"expired_stock"`
	DamageStock  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"damage_stock"`

	// Balance is the running balance after this movement, clamped to zero.
	// Owned by the recalculation pass.
	Balance decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"balance"`

	// ExpireDate marks the batch as perishable; meaningful for ADDED/RETURNED.
	ExpireDate *time.Time `json:"expire_date,omitempty"`

	// ExpiryBooked is set once the entry's expired remainder has been
	// recognized, on the entry itself or into the expiry month's carry-forward
	// bucket, so a second recognition pass books nothing.
	ExpiryBooked bool `gorm:"default:false" json:"expiry_booked"`

	BatchNumber string    `gorm:"size:50" json:"batch_number"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Delta is the entry's signed balance contribution before clamping
func (e *StockEntry) Delta() decimal.Decimal {
	return e.StockAdded.Sub(e.UsedStock).Sub(e.ExpiredStock).Sub(e.DamageStock)
}

// Remaining is the unconsumed remainder of the entry's batch, floored at zero
func (e *StockEntry) Remaining() decimal.Decimal {
	r := e.Delta()
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
