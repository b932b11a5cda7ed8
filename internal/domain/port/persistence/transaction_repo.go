package persistence

import (
	"context"
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
)

// TransactionRepository defines persistence operations for transaction records.
type TransactionRepository interface {
	// Create saves a new transaction row, assigning its ID.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update rewrites an existing transaction row.
	//
	// Possible errors:
	// - ErrTransactionNotFound: if the row doesn't exist
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction row.
	//
	// Possible errors:
	// - ErrTransactionNotFound: if the row doesn't exist
	Delete(ctx context.Context, id uint64) error

	// GetByID retrieves a transaction by ID.
	//
	// Possible errors:
	// - ErrTransactionNotFound: if the row doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// SumExpenseCents returns the total amount of expense-type transactions
	// for the user with transaction_date in [from, toExclusive), optionally
	// restricted to one category. A nil categoryID means all categories.
	// This is a read-only aggregation; it never mutates transactions.
	SumExpenseCents(ctx context.Context, userID uint64, from, toExclusive time.Time, categoryID *uint64) (int64, error)
}
