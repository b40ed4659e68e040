package fingerprint

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/analytics-server/internal/cache"
	"github.com/carson-networks/analytics-server/internal/storage/sqlconfig"
)

func makeRows(n int) []*sqlconfig.Transaction {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]*sqlconfig.Transaction, n)
	for i := range rows {
		rows[i] = &sqlconfig.Transaction{
			ID:              uuid.Must(uuid.NewV4()),
			UserID:          uuid.Must(uuid.NewV4()),
			TransactionDate: base.AddDate(0, 0, i),
			Debit:           decimal.NewNullDecimal(decimal.NewFromInt(int64(100 + i))),
			Credit:          decimal.NullDecimal{},
			Reference:       "REF",
			Remarks:         "remarks",
		}
	}
	return rows
}

func TestCompute_Stable(t *testing.T) {
	rows := makeRows(5)
	assert.Equal(t, Compute(rows), Compute(rows), "same rows in same order must digest identically")
}

func TestCompute_EmptyIsSentinel(t *testing.T) {
	assert.Equal(t, NoData, Compute(nil))
	assert.Equal(t, NoData, Compute([]*sqlconfig.Transaction{}))
}

func TestCompute_SensitiveToAmountEdit(t *testing.T) {
	rows := makeRows(5)
	before := Compute(rows)

	rows[2].Debit = decimal.NewNullDecimal(decimal.NewFromInt(999))
	assert.NotEqual(t, before, Compute(rows))
}

func TestCompute_SensitiveToAbsentAmount(t *testing.T) {
	rows := makeRows(3)
	before := Compute(rows)

	rows[1].Debit = decimal.NullDecimal{}
	assert.NotEqual(t, before, Compute(rows), "clearing an amount must change the digest")
}

func TestCompute_SensitiveToOrder(t *testing.T) {
	rows := makeRows(4)
	before := Compute(rows)

	rows[0], rows[1] = rows[1], rows[0]
	assert.NotEqual(t, before, Compute(rows))
}

func TestCompute_SensitiveToCount(t *testing.T) {
	rows := makeRows(4)
	assert.NotEqual(t, Compute(rows), Compute(rows[:3]))
}

func TestCompute_IgnoresReferenceAndRemarks(t *testing.T) {
	rows := makeRows(3)
	before := Compute(rows)

	rows[0].Reference = "changed"
	rows[1].Remarks = "changed"
	assert.Equal(t, before, Compute(rows), "only id/date/debit/credit participate in the digest")
}

func TestHasChanged_ColdStartIsTrue(t *testing.T) {
	store := cache.NewStore()
	detector := NewDetector(store)
	userID := uuid.Must(uuid.NewV4())

	assert.True(t, detector.HasChanged(userID, makeRows(3)))
}

func TestHasChanged_UnchangedIsFalse(t *testing.T) {
	store := cache.NewStore()
	detector := NewDetector(store)
	userID := uuid.Must(uuid.NewV4())
	rows := makeRows(3)

	detector.HasChanged(userID, rows)
	assert.False(t, detector.HasChanged(userID, rows))
}

func TestHasChanged_DetectsEdit(t *testing.T) {
	store := cache.NewStore()
	detector := NewDetector(store)
	userID := uuid.Must(uuid.NewV4())
	rows := makeRows(3)

	detector.HasChanged(userID, rows)

	rows[0].Credit = decimal.NewNullDecimal(decimal.NewFromInt(50))
	assert.True(t, detector.HasChanged(userID, rows))
	assert.False(t, detector.HasChanged(userID, rows), "digest is recorded on every observation")
}

func TestHasChanged_RecordsDigestUnconditionally(t *testing.T) {
	store := cache.NewStore()
	detector := NewDetector(store)
	userID := uuid.Must(uuid.NewV4())

	detector.HasChanged(userID, makeRows(2))

	_, ok := store.Get(cache.NamespaceFingerprint, userID.String())
	assert.True(t, ok)
}

func TestHasChanged_UsersAreIndependent(t *testing.T) {
	store := cache.NewStore()
	detector := NewDetector(store)
	rows := makeRows(3)

	userA := uuid.Must(uuid.NewV4())
	userB := uuid.Must(uuid.NewV4())

	detector.HasChanged(userA, rows)
	assert.True(t, detector.HasChanged(userB, rows), "first observation per user is always a change")
}
