// Package fingerprint detects change in a user's transaction set without
// storing the set twice. The digest is deliberately cheap rather than
// cryptographic: it only needs to make accidental collisions unlikely for
// data volumes in the thousands of rows.
package fingerprint

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/analytics-server/internal/cache"
	"github.com/carson-networks/analytics-server/internal/storage/sqlconfig"
)

const (
	// seed is the FNV-1 offset basis; any odd constant would do.
	seed = uint32(2166136261)
	// multiplier for the rolling polynomial hash, with 32-bit wraparound.
	multiplier = uint32(31)

	// NoData is the digest of an empty transaction set.
	NoData = seed

	dateFormat = "2006-01-02"
)

// Compute folds a rolling hash over the (id, date, debit, credit) projection
// of each row, in the order supplied by the caller. Order sensitivity is
// intentional: a reordered source is reported as changed. Rows must come from
// a deterministically ordered query for the digest to be stable.
func Compute(rows []*sqlconfig.Transaction) uint32 {
	h := seed
	for _, row := range rows {
		h = hashString(h, row.ID.String())
		h = hashByte(h, '|')
		h = hashString(h, row.TransactionDate.Format(dateFormat))
		h = hashByte(h, '|')
		h = hashString(h, amountString(row.Debit))
		h = hashByte(h, '|')
		h = hashString(h, amountString(row.Credit))
		h = hashByte(h, '\n')
	}
	return h
}

func hashString(h uint32, s string) uint32 {
	for i := 0; i < len(s); i++ {
		h = hashByte(h, s[i])
	}
	return h
}

func hashByte(h uint32, b byte) uint32 {
	return h*multiplier + uint32(b)
}

func amountString(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return ""
	}
	return amount.Decimal.String()
}

// Detector compares fresh digests against the cached one per user. It holds
// no state of its own beyond the fingerprint cache namespace.
type Detector struct {
	cache *cache.Store
}

func NewDetector(store *cache.Store) *Detector {
	return &Detector{cache: store}
}

// HasChanged reports whether the user's transaction set differs from the
// last one observed, and unconditionally records the new digest. A user with
// no recorded digest is always reported as changed, forcing a cold pipeline
// run. On a true result the caller must invalidate the user's forecast and
// classification entries before recomputing.
func (d *Detector) HasChanged(userID uuid.UUID, rows []*sqlconfig.Transaction) bool {
	digest := Compute(rows)
	key := userID.String()

	previous, ok := d.cache.Get(cache.NamespaceFingerprint, key)
	d.cache.Set(cache.NamespaceFingerprint, key, digest, cache.DefaultTTL)

	if !ok {
		return true
	}
	return digest != previous.(uint32)
}
