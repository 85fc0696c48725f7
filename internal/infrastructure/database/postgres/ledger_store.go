// internal/infrastructure/database/postgres/ledger_store.go
package postgres

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/concessions-backend/internal/domain/ledger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ledger.Store = (*LedgerStore)(nil)

// LedgerStore implements ledger.Store on PostgreSQL via GORM
type LedgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a new ledger store
func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// GetOrCreate returns the document for the key, creating it with the given
// opening balance when absent. The composite unique index on the key makes
// concurrent creation collapse to a single row; the loser re-reads.
func (s *LedgerStore) GetOrCreate(venueID, productID uint, year, month int, openingBalance decimal.Decimal) (*ledger.StockLedger, error) {
	doc, err := s.find(venueID, productID, year, month)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	fresh := &ledger.StockLedger{
		VenueID:   venueID,
		ProductID: productID,
		Year:      year,
		Month:     month,

		CarryForward:             openingBalance,
		ExpiredCarryForwardStock: decimal.Zero,
		TotalAdded:               decimal.Zero,
		TotalUsed:                decimal.Zero,
		TotalExpired:             decimal.Zero,
		TotalDamaged:             decimal.Zero,
		ClosingBalance:           openingBalance,
	}
	if err := s.db.Create(fresh).Error; err != nil {
		// A concurrent request may have created the row first
		doc, findErr := s.find(venueID, productID, year, month)
		if findErr == nil {
			return doc, nil
		}
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}
	return fresh, nil
}

// Get returns the document for the key, or ledger.ErrLedgerNotFound
func (s *LedgerStore) Get(venueID, productID uint, year, month int) (*ledger.StockLedger, error) {
	doc, err := s.find(venueID, productID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrLedgerNotFound
		}
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return doc, nil
}

// ListForProduct returns every document for the key, ascending by
// (year, month), entries in stored insertion order
func (s *LedgerStore) ListForProduct(venueID, productID uint) ([]*ledger.StockLedger, error) {
	var docs []*ledger.StockLedger
	err := s.db.
		Preload("Entries", orderedEntries).
		Where("venue_id = ? AND product_id = ?", venueID, productID).
		Order("year ASC, month ASC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	return docs, nil
}

// PreviousClosingBalance returns the closing balance of the chronologically
// latest document strictly before (year, month), or zero
func (s *LedgerStore) PreviousClosingBalance(venueID, productID uint, year, month int) (decimal.Decimal, error) {
	var doc ledger.StockLedger
	err := s.db.
		Where("venue_id = ? AND product_id = ?", venueID, productID).
		Where("(year < ?) OR (year = ? AND month < ?)", year, year, month).
		Order("year DESC, month DESC").
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to resolve previous period: %w", err)
	}
	return doc.ClosingBalance, nil
}

// Save persists the document header and its current entry set in one
// transaction, deleting entries that were removed
func (s *LedgerStore) Save(l *ledger.StockLedger) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return saveDocument(tx, l)
	})
}

// SaveAll persists several documents in one transaction so related changes,
// such as an expiry booked marker and the expiry month's carry-forward bucket,
// become durable together or not at all
func (s *LedgerStore) SaveAll(docs ...*ledger.StockLedger) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, l := range docs {
			if err := saveDocument(tx, l); err != nil {
				return err
			}
		}
		return nil
	})
}

func saveDocument(tx *gorm.DB, l *ledger.StockLedger) error {
	if err := tx.Omit("Entries").Save(l).Error; err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	ids := make([]string, 0, len(l.Entries))
	for i := range l.Entries {
		e := &l.Entries[i]
		e.LedgerID = l.ID
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(e).Error; err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}
		ids = append(ids, e.ID)
	}

	del := tx.Where("ledger_id = ?", l.ID)
	if len(ids) > 0 {
		del = del.Where("id NOT IN ?", ids)
	}
	if err := del.Delete(&ledger.StockEntry{}).Error; err != nil {
		return fmt.Errorf("failed to prune entries: %w", err)
	}
	return nil
}

func (s *LedgerStore) find(venueID, productID uint, year, month int) (*ledger.StockLedger, error) {
	var doc ledger.StockLedger
	err := s.db.
		Preload("Entries", orderedEntries).
		Where("venue_id = ? AND product_id = ? AND year = ? AND month = ?", venueID, productID, year, month).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func orderedEntries(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
