package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a transaction record. Rows are owned by the
// ingestion side; this server only ever reads them.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	TransactionDate time.Time
	Debit           decimal.NullDecimal
	Credit          decimal.NullDecimal
	Reference       string
	Remarks         string
	CreatedAt       time.Time
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	UserID          *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation without changing callers.
type ITransactionTable interface {
	// ListByUser returns every transaction for a user in a deterministic
	// order (transaction_date, then id). The analytics pipeline fingerprints
	// this sequence, so the ordering is part of the contract.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}
