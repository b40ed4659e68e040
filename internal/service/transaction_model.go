package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a transaction in the service layer. Debit and
// Credit are null when the side does not apply to the row.
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

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}
