package persistence

import (
	"context"
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
)

// SubscriptionRepository defines persistence operations for subscriptions.
type SubscriptionRepository interface {
	// GetByID retrieves a subscription by ID.
	//
	// Possible errors:
	// - ErrSubscriptionNotFound: if no subscription with the ID exists
	GetByID(ctx context.Context, id uint64) (*entity.Subscription, error)

	// Create persists a new subscription, assigning its ID.
	Create(ctx context.Context, subscription *entity.Subscription) error

	// Update rewrites an existing subscription row.
	Update(ctx context.Context, subscription *entity.Subscription) error

	// ListDue returns active subscriptions whose next billing date is at or
	// before asOf.
	ListDue(ctx context.Context, asOf time.Time) ([]*entity.Subscription, error)
}

// RecurringIncomeRepository defines persistence operations for recurring incomes.
type RecurringIncomeRepository interface {
	// GetByID retrieves a recurring income by ID.
	//
	// Possible errors:
	// - ErrRecurringIncomeNotFound: if no recurring income with the ID exists
	GetByID(ctx context.Context, id uint64) (*entity.RecurringIncome, error)

	// Create persists a new recurring income, assigning its ID.
	Create(ctx context.Context, income *entity.RecurringIncome) error

	// Update rewrites an existing recurring income row.
	Update(ctx context.Context, income *entity.RecurringIncome) error

	// ListDue returns active recurring incomes whose next expected date is at
	// or before asOf.
	ListDue(ctx context.Context, asOf time.Time) ([]*entity.RecurringIncome, error)
}

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	// GetByID retrieves an invoice by ID.
	//
	// Possible errors:
	// - ErrInvoiceNotFound: if no invoice with the ID exists
	GetByID(ctx context.Context, id uint64) (*entity.Invoice, error)

	// Create persists a new invoice, assigning its ID.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// Update rewrites an existing invoice row.
	Update(ctx context.Context, invoice *entity.Invoice) error
}
