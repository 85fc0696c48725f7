// internal/domain/ledger/memstore.go
package ledger

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type memKey struct {
	venueID   uint
	productID uint
	year      int
	month     int
}

// MemoryStore is a map-backed Store. It hands out deep copies so callers see
// the same read-modify-write behavior as the database-backed store; nothing is
// visible until Save.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint
	docs   map[memKey]*StockLedger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[memKey]*StockLedger)}
}

// GetOrCreate returns the stored document or creates an empty one with the
// given opening balance
func (s *MemoryStore) GetOrCreate(venueID, productID uint, year, month int, openingBalance decimal.Decimal) (*StockLedger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memKey{venueID, productID, year, month}
	if doc, ok := s.docs[key]; ok {
		return copyLedger(doc), nil
	}

	s.nextID++
	now := time.Now()
	doc := &StockLedger{
		ID:        s.nextID,
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

		CreatedAt: now,
		UpdatedAt: now,
	}
	s.docs[key] = copyLedger(doc)
	return doc, nil
}

// Get returns the stored document or ErrLedgerNotFound
func (s *MemoryStore) Get(venueID, productID uint, year, month int) (*StockLedger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[memKey{venueID, productID, year, month}]
	if !ok {
		return nil, ErrLedgerNotFound
	}
	return copyLedger(doc), nil
}

// ListForProduct returns all documents for the key, ascending by (year, month)
func (s *MemoryStore) ListForProduct(venueID, productID uint) ([]*StockLedger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []*StockLedger
	for key, doc := range s.docs {
		if key.venueID == venueID && key.productID == productID {
			list = append(list, copyLedger(doc))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Year != list[j].Year {
			return list[i].Year < list[j].Year
		}
		return list[i].Month < list[j].Month
	})
	return list, nil
}

// PreviousClosingBalance returns the closing balance of the latest document
// strictly before (year, month), or zero
func (s *MemoryStore) PreviousClosingBalance(venueID, productID uint, year, month int) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prev *StockLedger
	for key, doc := range s.docs {
		if key.venueID != venueID || key.productID != productID {
			continue
		}
		if !doc.PeriodBefore(year, month) {
			continue
		}
		if prev == nil || prev.PeriodBefore(doc.Year, doc.Month) {
			prev = doc
		}
	}
	if prev == nil {
		return decimal.Zero, nil
	}
	return prev.ClosingBalance, nil
}

// Save stores a deep copy of the document, replacing its entry set
func (s *MemoryStore) Save(l *StockLedger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.save(l)
	return nil
}

// SaveAll stores deep copies of all documents under one lock acquisition
func (s *MemoryStore) SaveAll(docs ...*StockLedger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range docs {
		s.save(l)
	}
	return nil
}

func (s *MemoryStore) save(l *StockLedger) {
	l.UpdatedAt = time.Now()
	s.docs[memKey{l.VenueID, l.ProductID, l.Year, l.Month}] = copyLedger(l)
}

func copyLedger(l *StockLedger) *StockLedger {
	dup := *l
	dup.Entries = make([]StockEntry, len(l.Entries))
	for i, e := range l.Entries {
		dup.Entries[i] = e
		if e.ExpireDate != nil {
			d := *e.ExpireDate
			dup.Entries[i].ExpireDate = &d
		}
	}
	return &dup
}
