package persistence

import (
	"context"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
)

// BudgetRepository defines persistence operations for budgets.
type BudgetRepository interface {
	// GetByID retrieves a budget by ID.
	//
	// Possible errors:
	// - ErrBudgetNotFound: if no budget with the ID exists
	GetByID(ctx context.Context, id uint64) (*entity.Budget, error)

	// Create persists a new budget, assigning its ID.
	Create(ctx context.Context, budget *entity.Budget) error

	// Update rewrites an existing budget row.
	//
	// Possible errors:
	// - ErrBudgetNotFound: if the row doesn't exist
	Update(ctx context.Context, budget *entity.Budget) error

	// ListActive returns all budgets with is_active set, for the periodic
	// rollover sweep.
	ListActive(ctx context.Context) ([]*entity.Budget, error)
}
