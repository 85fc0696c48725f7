// internal/domain/ledger/service_test.go
package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stockRecorder captures current-stock pushes from the engine
type stockRecorder struct {
	pushes []decimal.Decimal
}

func (r *stockRecorder) SetCurrentStock(productID uint, quantity decimal.Decimal) error {
	r.pushes = append(r.pushes, quantity)
	return nil
}

func (r *stockRecorder) last() decimal.Decimal {
	if len(r.pushes) == 0 {
		return decimal.NewFromInt(-1)
	}
	return r.pushes[len(r.pushes)-1]
}

func newTestService(now time.Time) (*Service, *MemoryStore, *stockRecorder) {
	store := NewMemoryStore()
	products := &stockRecorder{}
	svc := NewService(store, products)
	svc.now = func() time.Time { return now }
	return svc, store, products
}

func (s *Service) setNow(now time.Time) {
	s.now = func() time.Time { return now }
}

func movement(typ MovementType, qty int64, date time.Time) *MovementRequest {
	return &MovementRequest{Date: date, Type: typ, Quantity: dec(qty)}
}

func TestMovementRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  MovementRequest
		want error
	}{
		{"missing date", MovementRequest{Type: MovementAdded, Quantity: dec(1)}, ErrMissingDate},
		{"unknown type", MovementRequest{Date: day(2024, 1, 1), Type: "LOST", Quantity: dec(1)}, ErrUnknownMovementType},
		{"zero quantity", MovementRequest{Date: day(2024, 1, 1), Type: MovementSold}, ErrInvalidQuantity},
		{"negative quantity on sale", MovementRequest{Date: day(2024, 1, 1), Type: MovementSold, Quantity: dec(-5)}, ErrInvalidQuantity},
		{"zero adjustment", MovementRequest{Date: day(2024, 1, 1), Type: MovementAdjustment}, ErrInvalidQuantity},
		{"negative adjustment allowed", MovementRequest{Date: day(2024, 1, 1), Type: MovementAdjustment, Quantity: dec(-5)}, nil},
		{"positive add allowed", MovementRequest{Date: day(2024, 1, 1), Type: MovementAdded, Quantity: dec(5)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestRecordMovement_RejectsInvalidWithoutWriting(t *testing.T) {
	svc, store, _ := newTestService(day(2024, 1, 15))

	_, err := svc.RecordMovement(1, 1, movement(MovementSold, 0, day(2024, 1, 10)))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	docs, err := store.ListForProduct(1, 1)
	require.NoError(t, err)
	assert.Empty(t, docs, "validation failure must not create a period")
}

func TestRecordMovement_AppendsAndRecalculates(t *testing.T) {
	svc, _, products := newTestService(day(2024, 1, 15))

	doc, err := svc.RecordMovement(1, 1, movement(MovementAdded, 100, day(2024, 1, 5)))
	require.NoError(t, err)
	doc, err = svc.RecordMovement(1, 1, movement(MovementSold, 30, day(2024, 1, 10)))
	require.NoError(t, err)

	require.Len(t, doc.Entries, 2)
	assert.Equal(t, 0, doc.Entries[0].Position)
	assert.Equal(t, 1, doc.Entries[1].Position)
	assert.True(t, doc.ClosingBalance.Equal(dec(70)))
	assert.True(t, products.last().Equal(dec(70)))
}

func TestRecordMovement_NewPeriodOpensWithPreviousClosing(t *testing.T) {
	svc, _, _ := newTestService(day(2024, 1, 15))

	_, err := svc.RecordMovement(1, 1, movement(MovementAdded, 100, day(2024, 1, 5)))
	require.NoError(t, err)

	svc.setNow(day(2024, 2, 10))
	feb, err := svc.RecordMovement(1, 1, movement(MovementAdded, 50, day(2024, 2, 8)))
	require.NoError(t, err)

	assert.True(t, feb.CarryForward.Equal(dec(100)))
	assert.True(t, feb.ClosingBalance.Equal(dec(150)))
}

func TestReadPeriod_DefaultsToCurrentMonthAndCreates(t *testing.T) {
	svc, _, _ := newTestService(day(2024, 3, 15))

	doc, err := svc.ReadPeriod(1, 1, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 2024, doc.Year)
	assert.Equal(t, 3, doc.Month)
	assert.True(t, doc.CarryForward.IsZero())
	assert.Empty(t, doc.Entries)
}

func TestReadPeriod_ResolvesRequestedMonth(t *testing.T) {
	svc, _, _ := newTestService(day(2024, 3, 15))

	_, err := svc.RecordMovement(1, 1, movement(MovementAdded, 40, day(2024, 1, 5)))
	require.NoError(t, err)

	doc, err := svc.ReadPeriod(1, 1, 2024, 1)
	require.NoError(t, err)
	assert.True(t, doc.ClosingBalance.Equal(dec(40)))
}

func TestUpdateMovement_MissingPeriodVersusMissingEntry(t *testing.T) {
	svc, _, _ := newTestService(day(2024, 1, 20))

	doc, err := svc.RecordMovement(1, 1, movement(MovementAdded, 100, day(2024, 1, 5)))
	require.NoError(t, err)

	// No document exists for June at all.
	_, err = svc.UpdateMovement(1, 1, doc.Entries[0].ID, movement(MovementAdded, 100, day(2024, 6, 5)))
	assert.ErrorIs(t, err, ErrLedgerNotFound)

	// January exists, but the entry does not.
	_, err = svc.UpdateMovement(1, 1, "no-such-entry", movement(MovementAdded, 100, day(2024, 1, 5)))
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestUpdateMovement_RecalculatesWholeSequence(t *testing.T) {
	svc, _, products := newTestService(day(2024, 1, 20))

	_, err := svc.RecordMovement(1, 1, movement(MovementAdded, 100, day(2024, 1, 5)))
	require.NoError(t, err)
	doc, err := svc.RecordMovement(1, 1, movement(MovementSold, 30, day(2024, 1, 10)))
	require.NoError(t, err)

	soldID := doc.Entries[1].ID
	updated, err := svc.UpdateMovement(1, 1, soldID, movement(MovementSold, 10, day(2024, 1, 10)))
	require.NoError(t, err)

	assert.True(t, updated.Entries[1].UsedStock.Equal(dec(10)))
	assert.True(t, updated.Entries[1].Balance.Equal(dec(90)))
	assert.True(t, updated.ClosingBalance.Equal(dec(90)))
	assert.True(t, products.last().Equal(dec(90)))
}

func TestDeleteMovement_RemovesEntryAndRenumbers(t *testing.T) {
	svc, _, _ := newTestService(day(2024, 1, 20))

	_, err := svc.RecordMovement(1, 1, movement(MovementAdded, 100, day(2024, 1, 5)))
	require.NoError(t, err)
	doc, err := svc.RecordMovement(1, 1, movement(MovementSold, 30, day(2024, 1, 10)))
	require.NoError(t, err)

	soldID := doc.Entries[1].ID
	after, err := svc.DeleteMovement(1, 1, 2024, 1, soldID)
	require.NoError(t, err)

	require.Len(t, after.Entries, 1)
	assert.Equal(t, 0, after.Entries[0].Position)
	assert.True(t, after.ClosingBalance.Equal(dec(100)))

	// Deleting the same entry again is a missing-entry condition.
	_, err = svc.DeleteMovement(1, 1, 2024, 1, soldID)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	// Deleting from a month with no document is a missing-period condition.
	_, err = svc.DeleteMovement(1, 1, 2024, 6, soldID)
	assert.ErrorIs(t, err, ErrLedgerNotFound)
}
