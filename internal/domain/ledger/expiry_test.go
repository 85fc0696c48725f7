// internal/domain/ledger/expiry_test.go
package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perishable(typ MovementType, qty int64, date, expire time.Time) *MovementRequest {
	req := movement(typ, qty, date)
	req.ExpireDate = &expire
	return req
}

func TestGraceBoundary(t *testing.T) {
	expire := time.Date(2024, 1, 20, 16, 30, 0, 0, time.UTC)
	boundary := graceBoundary(expire)

	assert.Equal(t, time.Date(2024, 1, 21, 0, 1, 0, 0, time.UTC), boundary)
}

func TestRecognizeExpiry_NothingBeforeGraceBoundary(t *testing.T) {
	svc, _, _ := newTestService(day(2024, 1, 10))

	_, err := svc.RecordMovement(1, 1, perishable(MovementAdded, 100, day(2024, 1, 5), day(2024, 1, 20)))
	require.NoError(t, err)

	// The whole expiry day, and midnight after it, are still inside the grace
	// window; only 00:01 the next day crosses it.
	for _, now := range []time.Time{
		time.Date(2024, 1, 20, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC),
	} {
		svc.setNow(now)
		recognized, err := svc.RecognizeExpiry(1, 1)
		require.NoError(t, err)
		assert.False(t, recognized, "must not recognize at %v", now)
	}

	svc.setNow(time.Date(2024, 1, 21, 0, 1, 0, 0, time.UTC))
	recognized, err := svc.RecognizeExpiry(1, 1)
	require.NoError(t, err)
	assert.True(t, recognized)
}

func TestRecognizeExpiry_SameMonth(t *testing.T) {
	svc, store, _ := newTestService(day(2024, 1, 10))

	_, err := svc.RecordMovement(1, 1, perishable(MovementAdded, 100, day(2024, 1, 5), day(2024, 1, 20)))
	require.NoError(t, err)
	_, err = svc.RecordMovement(1, 1, movement(MovementSold, 30, day(2024, 1, 10)))
	require.NoError(t, err)

	svc.setNow(day(2024, 1, 21))
	recognized, err := svc.RecognizeExpiry(1, 1)
	require.NoError(t, err)
	assert.True(t, recognized)

	jan, err := store.Get(1, 1, 2024, 1)
	require.NoError(t, err)

	// The unsold remainder of the batch is booked onto the batch entry itself.
	assert.True(t, jan.Entries[0].ExpiredStock.Equal(dec(70)))
	assert.True(t, jan.TotalExpired.Equal(dec(70)))
	assert.True(t, jan.ClosingBalance.Equal(dec(0)))
}

func TestRecognizeExpiry_SameMonthIdempotent(t *testing.T) {
	svc, store, _ := newTestService(day(2024, 1, 10))

	_, err := svc.RecordMovement(1, 1, perishable(MovementAdded, 100, day(2024, 1, 5), day(2024, 1, 20)))
	require.NoError(t, err)
	_, err = svc.RecordMovement(1, 1, movement(MovementSold, 30, day(2024, 1, 10)))
	require.NoError(t, err)

	svc.setNow(day(2024, 1, 21))
	recognized, err := svc.RecognizeExpiry(1, 1)
	require.NoError(t, err)
	require.True(t, recognized)

	recognized, err = svc.RecognizeExpiry(1, 1)
	require.NoError(t, err)
	assert.False(t, recognized, "second pass with no new movements must book nothing")

	jan, err := store.Get(1, 1, 2024, 1)
	require.NoError(t, err)
	assert.True(t, jan.Entries[0].ExpiredStock.Equal(dec(70)))
	assert.True(t, jan.ClosingBalance.Equal(dec(0)))
}

func TestRecognizeExpiry_CrossMonth(t *testing.T) {
	svc, store, _ := newTestService(day(2024, 1, 10))

	_, err := svc.RecordMovement(1, 1, perishable(MovementAdded, 100, day(2024, 1, 5), day(2024, 2, 5)))
	require.NoError(t, err)
	_, err = svc.RecordMovement(1, 1, movement(MovementSold, 30, day(2024, 1, 10)))
	require.NoError(t, err)

	svc.setNow(day(2024, 2, 6))
	recognized, err := svc.RecognizeExpiry(1, 1)
	require.NoError(t, err)
	assert.True(t, recognized)

	// January's books are closed: the batch entry is untouched.
	jan, err := store.Get(1, 1, 2024, 1)
	require.NoError(t, err)
	assert.True(t, jan.Entries[0].ExpiredStock.IsZero())
	assert.True(t, jan.TotalExpired.IsZero())
	assert.True(t, jan.ClosingBalance.Equal(dec(70)))

	// The loss lands in February, the month it was recognized.
	feb, err := store.Get(1, 1, 2024, 2)
	require.NoError(t, err)
	assert.True(t, feb.ExpiredCarryForwardStock.Equal(dec(70)))
	assert.True(t, feb.CarryForward.Equal(dec(70)))
	assert.True(t, feb.ClosingBalance.Equal(dec(0)))
}

func TestRecognizeExpiry_CrossMonthIdempotent(t *testing.T) {
	svc, store, _ := newTestService(day(2024, 1, 10))

	_, err := svc.RecordMovement(1, 1, perishable(MovementAdded, 100, day(2024, 1, 5), day(2024, 2, 5)))
	require.NoError(t, err)

	svc.setNow(day(2024, 2, 6))
	recognized, err := svc.RecognizeExpiry(1, 1)
	require.NoError(t, err)
	require.True(t, recognized)

	recognized, err = svc.RecognizeExpiry(1, 1)
	require.NoError(t, err)
	assert.False(t, recognized)

	feb, err := store.Get(1, 1, 2024, 2)
	require.NoError(t, err)
	assert.True(t, feb.ExpiredCarryForwardStock.Equal(dec(100)))
}

// flakyStore fails a number of atomic saves before behaving normally, standing
// in for a database connection dropping mid-request
type flakyStore struct {
	Store
	failSaveAll int
}

func (s *flakyStore) SaveAll(docs ...*StockLedger) error {
	if s.failSaveAll > 0 {
		s.failSaveAll--
		return errors.New("connection reset by peer")
	}
	return s.Store.SaveAll(docs...)
}

func TestRecognizeExpiry_RetryAfterSaveFailureBooksOnce(t *testing.T) {
	svc, store, _ := newTestService(day(2024, 1, 10))

	_, err := svc.RecordMovement(1, 1, perishable(MovementAdded, 100, day(2024, 1, 5), day(2024, 2, 5)))
	require.NoError(t, err)

	flaky := &flakyStore{Store: store, failSaveAll: 1}
	svc.store = flaky
	svc.setNow(day(2024, 2, 6))

	// The booked marker and the bucket increment either both land or neither
	// does, so a failed pass leaves nothing behind.
	_, err = svc.RecognizeExpiry(1, 1)
	require.Error(t, err)

	jan, err := store.Get(1, 1, 2024, 1)
	require.NoError(t, err)
	assert.False(t, jan.Entries[0].ExpiryBooked)
	feb0, err := store.Get(1, 1, 2024, 2)
	require.NoError(t, err)
	assert.True(t, feb0.ExpiredCarryForwardStock.IsZero(), "nothing booked by the failed pass")

	// Retrying from scratch books the remainder exactly once.
	recognized, err := svc.RecognizeExpiry(1, 1)
	require.NoError(t, err)
	assert.True(t, recognized)

	feb, err := store.Get(1, 1, 2024, 2)
	require.NoError(t, err)
	assert.True(t, feb.ExpiredCarryForwardStock.Equal(dec(100)))

	recognized, err = svc.RecognizeExpiry(1, 1)
	require.NoError(t, err)
	assert.False(t, recognized)
	feb, err = store.Get(1, 1, 2024, 2)
	require.NoError(t, err)
	assert.True(t, feb.ExpiredCarryForwardStock.Equal(dec(100)))
}

func TestRecognizeExpiry_FullyConsumedBatch(t *testing.T) {
	svc, _, _ := newTestService(day(2024, 1, 10))

	_, err := svc.RecordMovement(1, 1, perishable(MovementAdded, 50, day(2024, 1, 5), day(2024, 1, 20)))
	require.NoError(t, err)
	_, err = svc.RecordMovement(1, 1, movement(MovementSold, 50, day(2024, 1, 12)))
	require.NoError(t, err)

	svc.setNow(day(2024, 1, 25))
	recognized, err := svc.RecognizeExpiry(1, 1)
	require.NoError(t, err)
	assert.False(t, recognized, "a fully sold batch has nothing left to expire")
}

func TestRecognizeExpiry_IgnoresNonBatchTypes(t *testing.T) {
	svc, store, _ := newTestService(day(2024, 1, 10))

	// An expire date on a sale is meaningless and must be ignored.
	_, err := svc.RecordMovement(1, 1, movement(MovementAdded, 100, day(2024, 1, 5)))
	require.NoError(t, err)
	_, err = svc.RecordMovement(1, 1, perishable(MovementSold, 30, day(2024, 1, 10), day(2024, 1, 12)))
	require.NoError(t, err)

	svc.setNow(day(2024, 1, 20))
	recognized, err := svc.RecognizeExpiry(1, 1)
	require.NoError(t, err)
	assert.False(t, recognized)

	jan, err := store.Get(1, 1, 2024, 1)
	require.NoError(t, err)
	assert.True(t, jan.ClosingBalance.Equal(dec(70)))
}

func TestReadPeriod_TriggersExpiryRecognition(t *testing.T) {
	svc, _, products := newTestService(day(2024, 1, 10))

	_, err := svc.RecordMovement(1, 1, perishable(MovementAdded, 100, day(2024, 1, 5), day(2024, 1, 20)))
	require.NoError(t, err)

	svc.setNow(day(2024, 1, 22))
	doc, err := svc.ReadPeriod(1, 1, 2024, 1)
	require.NoError(t, err)

	assert.True(t, doc.Entries[0].ExpiredStock.Equal(dec(100)))
	assert.True(t, doc.ClosingBalance.IsZero())
	assert.True(t, products.last().IsZero(), "recognized expiry must refresh the product's current stock")
}
