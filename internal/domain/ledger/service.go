// internal/domain/ledger/service.go
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/concessions-backend/internal/pkg/metrics"
)

// ProductStockWriter pushes a ledger closing balance into the product's
// denormalized current-stock column. Implemented by the product service.
type ProductStockWriter interface {
	SetCurrentStock(productID uint, quantity decimal.Decimal) error
}

// Service is the monthly stock ledger engine. Every read or write for a
// (venue, product) key first recognizes newly-expired batches, then re-syncs
// the carry-forward chain, then performs the requested operation. The passes
// run sequentially within the request; a persistence failure aborts the whole
// operation, and concurrent writers against the same key resolve as
// last-writer-wins.
type Service struct {
	store    Store
	products ProductStockWriter
	now      func() time.Time
}

// NewService creates a new ledger service
func NewService(store Store, products ProductStockWriter) *Service {
	return &Service{
		store:    store,
		products: products,
		now:      time.Now,
	}
}

// MovementRequest carries a caller-supplied stock movement
type MovementRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Type        MovementType    `json:"type" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	ExpireDate  *time.Time      `json:"expire_date,omitempty"`
	BatchNumber string          `json:"batch_number,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// Validate rejects movements the engine must never record
func (r *MovementRequest) Validate() error {
	if r.Date.IsZero() {
		return ErrMissingDate
	}
	if !r.Type.IsValid() {
		return ErrUnknownMovementType
	}
	if r.Type == MovementAdjustment {
		if r.Quantity.IsZero() {
			return ErrInvalidQuantity
		}
		return nil
	}
	if !r.Quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	return nil
}

// apply writes the request's fields onto an entry, rederiving the per-type
// stock columns from scratch
func (r *MovementRequest) apply(e *StockEntry) {
	e.Date = r.Date
	e.Type = r.Type
	e.Quantity = r.Quantity
	e.ExpireDate = r.ExpireDate
	e.BatchNumber = r.BatchNumber
	e.Notes = r.Notes

	e.StockAdded = decimal.Zero
	e.UsedStock = decimal.Zero
	e.ExpiredStock = decimal.Zero
	e.DamageStock = decimal.Zero

	switch r.Type {
	case MovementAdded, MovementReturned:
		e.StockAdded = r.Quantity
	case MovementSold:
		e.UsedStock = r.Quantity
	case MovementExpired:
		e.ExpiredStock = r.Quantity
	case MovementDamaged:
		e.DamageStock = r.Quantity
	case MovementAdjustment:
		if r.Quantity.IsNegative() {
			e.UsedStock = r.Quantity.Abs()
		} else {
			e.StockAdded = r.Quantity
		}
	}
}

// ReadPeriod resolves the monthly document for the key, creating it on first
// reference with the previous month's closing balance as its opening balance.
// Zero year/month default to the current calendar period.
func (s *Service) ReadPeriod(venueID, productID uint, year, month int) (*StockLedger, error) {
	if year == 0 || month == 0 {
		now := s.now()
		year, month = now.Year(), int(now.Month())
	}

	recognized, err := s.RecognizeExpiry(venueID, productID)
	if err != nil {
		return nil, err
	}
	synced, err := s.SyncCarryForward(venueID, productID)
	if err != nil {
		return nil, err
	}

	doc, err := s.resolvePeriod(venueID, productID, year, month)
	if err != nil {
		return nil, err
	}

	if recognized || synced {
		if err := s.products.SetCurrentStock(productID, doc.ClosingBalance); err != nil {
			return nil, fmt.Errorf("failed to update product stock: %w", err)
		}
	}
	return doc, nil
}

// RecordMovement validates and appends a movement to the document resolved
// from its date, recalculates that document and pushes the new closing balance
// to the product record. Cross-month rippling from backdated edits is deferred
// to the carry-forward sync on the next access.
func (s *Service) RecordMovement(venueID, productID uint, req *MovementRequest) (*StockLedger, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.RecognizeExpiry(venueID, productID); err != nil {
		return nil, err
	}
	if _, err := s.SyncCarryForward(venueID, productID); err != nil {
		return nil, err
	}

	doc, err := s.resolvePeriod(venueID, productID, req.Date.Year(), int(req.Date.Month()))
	if err != nil {
		return nil, err
	}

	entry := StockEntry{
		ID:        uuid.New().String(),
		LedgerID:  doc.ID,
		Position:  len(doc.Entries),
		CreatedAt: s.now(),
	}
	req.apply(&entry)
	doc.Entries = append(doc.Entries, entry)

	Recalculate(doc)
	if err := s.store.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}
	if err := s.products.SetCurrentStock(productID, doc.ClosingBalance); err != nil {
		return nil, fmt.Errorf("failed to update product stock: %w", err)
	}

	metrics.MovementsRecorded.WithLabelValues(string(req.Type)).Inc()
	return doc, nil
}

// UpdateMovement replaces an entry's fields in place. The target document is
// the one implied by the (possibly updated) movement date; the whole entry
// sequence is recalculated since later balances, and manual column edits,
// depend on it.
func (s *Service) UpdateMovement(venueID, productID uint, entryID string, req *MovementRequest) (*StockLedger, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.RecognizeExpiry(venueID, productID); err != nil {
		return nil, err
	}
	if _, err := s.SyncCarryForward(venueID, productID); err != nil {
		return nil, err
	}

	doc, err := s.store.Get(venueID, productID, req.Date.Year(), int(req.Date.Month()))
	if err != nil {
		return nil, err
	}

	entry := findEntry(doc, entryID)
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	req.apply(entry)

	Recalculate(doc)
	if err := s.store.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}
	if err := s.products.SetCurrentStock(productID, doc.ClosingBalance); err != nil {
		return nil, fmt.Errorf("failed to update product stock: %w", err)
	}
	return doc, nil
}

// DeleteMovement removes an entry from the document for (year, month) and
// recalculates the remaining sequence
func (s *Service) DeleteMovement(venueID, productID uint, year, month int, entryID string) (*StockLedger, error) {
	if _, err := s.RecognizeExpiry(venueID, productID); err != nil {
		return nil, err
	}
	if _, err := s.SyncCarryForward(venueID, productID); err != nil {
		return nil, err
	}

	doc, err := s.store.Get(venueID, productID, year, month)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range doc.Entries {
		if doc.Entries[i].ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrEntryNotFound
	}

	doc.Entries = append(doc.Entries[:idx], doc.Entries[idx+1:]...)
	for i := range doc.Entries {
		doc.Entries[i].Position = i
	}

	Recalculate(doc)
	if err := s.store.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}
	if err := s.products.SetCurrentStock(productID, doc.ClosingBalance); err != nil {
		return nil, fmt.Errorf("failed to update product stock: %w", err)
	}
	return doc, nil
}

// resolvePeriod fetches the document for (year, month), creating it with the
// previous month's closing balance when it does not exist yet
func (s *Service) resolvePeriod(venueID, productID uint, year, month int) (*StockLedger, error) {
	opening, err := s.store.PreviousClosingBalance(venueID, productID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve opening balance: %w", err)
	}
	doc, err := s.store.GetOrCreate(venueID, productID, year, month, opening)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return doc, nil
}

func findEntry(doc *StockLedger, entryID string) *StockEntry {
	for i := range doc.Entries {
		if doc.Entries[i].ID == entryID {
			return &doc.Entries[i]
		}
	}
	return nil
}
