package sqlconfig

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/gofrs/uuid/v5"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	db *sql.DB
}

func NewTransactionsTable(db *sql.DB) *TransactionsTable {
	return &TransactionsTable{db: db}
}

const transactionColumns = "id, user_id, transaction_date, debit, credit, reference, remarks, created_at"

// ListByUser retrieves a user's full transaction history, ordered by
// transaction_date then id so repeated reads of unchanged data produce the
// same sequence.
func (t *TransactionsTable) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Transaction, error) {
	rows, err := t.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = $1 ORDER BY transaction_date ASC, id ASC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// List returns transactions matching the filter, newest first. When a limit
// is set the query fetches one extra row so callers can detect a next page.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions"
	var args []any

	if filter != nil {
		where := ""
		if filter.UserID != nil {
			args = append(args, *filter.UserID)
			where = " WHERE user_id = $" + strconv.Itoa(len(args))
		}
		if filter.MaxCreationTime != nil {
			args = append(args, *filter.MaxCreationTime)
			if where == "" {
				where = " WHERE created_at <= $" + strconv.Itoa(len(args))
			} else {
				where += " AND created_at <= $" + strconv.Itoa(len(args))
			}
		}
		query += where
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filter != nil {
		if filter.Limit > 0 {
			args = append(args, filter.Limit+1)
			query += " LIMIT $" + strconv.Itoa(len(args))
		}
		if filter.Offset > 0 {
			args = append(args, filter.Offset)
			query += " OFFSET $" + strconv.Itoa(len(args))
		}
	}

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]*Transaction, error) {
	var result []*Transaction
	for rows.Next() {
		tx := &Transaction{}
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.TransactionDate,
			&tx.Debit,
			&tx.Credit,
			&tx.Reference,
			&tx.Remarks,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}
