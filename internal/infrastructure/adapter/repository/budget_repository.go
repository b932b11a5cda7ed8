package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// BudgetRepository implements the budget persistence port using GORM
type BudgetRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewBudgetRepository creates a new BudgetRepository instance
func NewBudgetRepository(db *gorm.DB, logger coreport.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func budgetEntityToModel(b *entity.Budget) *model.Budget {
	return &model.Budget{
		ID:                      b.ID,
		UserID:                  b.UserID,
		Name:                    b.Name,
		CategoryID:              b.CategoryID,
		AmountCents:             b.AmountCents,
		Period:                  string(b.Period),
		StartDate:               b.StartDate,
		EndDate:                 b.EndDate,
		CurrentPeriodStart:      b.CurrentPeriodStart,
		CurrentPeriodEnd:        b.CurrentPeriodEnd,
		CurrentPeriodSpentCents: b.CurrentPeriodSpentCents,
		RolloverUnused:          b.RolloverUnused,
		RolloverCents:           b.RolloverCents,
		AlertThreshold:          b.AlertThreshold,
		AlertSent:               b.AlertSent,
		IsActive:                b.IsActive,
		CreatedAt:               b.CreatedAt,
		UpdatedAt:               b.UpdatedAt,
	}
}

func budgetModelToEntity(m *model.Budget) *entity.Budget {
	return &entity.Budget{
		ID:                      m.ID,
		UserID:                  m.UserID,
		Name:                    m.Name,
		CategoryID:              m.CategoryID,
		AmountCents:             m.AmountCents,
		Period:                  entity.BudgetPeriod(m.Period),
		StartDate:               m.StartDate,
		EndDate:                 m.EndDate,
		CurrentPeriodStart:      m.CurrentPeriodStart,
		CurrentPeriodEnd:        m.CurrentPeriodEnd,
		CurrentPeriodSpentCents: m.CurrentPeriodSpentCents,
		RolloverUnused:          m.RolloverUnused,
		RolloverCents:           m.RolloverCents,
		AlertThreshold:          m.AlertThreshold,
		AlertSent:               m.AlertSent,
		IsActive:                m.IsActive,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}

func (r *BudgetRepository) handleDatabaseError(operation string, err error, budgetID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Budget not found", map[string]any{
			"budget_id": budgetID,
		})
		return errs.ErrBudgetNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"budget_id": budgetID,
		"error":     err.Error(),
	})

	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a budget by ID
func (r *BudgetRepository) GetByID(ctx context.Context, id uint64) (*entity.Budget, error) {
	var m model.Budget
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting budget", result.Error, id)
	}
	return budgetModelToEntity(&m), nil
}

// Create persists a new budget and assigns its ID
func (r *BudgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	m := budgetEntityToModel(budget)

	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		return r.handleDatabaseError("creating budget", result.Error, budget.ID)
	}

	budget.ID = m.ID
	return nil
}

// Update rewrites an existing budget row
func (r *BudgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	m := budgetEntityToModel(budget)

	result := r.db.WithContext(ctx).Model(&model.Budget{}).
		Where("id = ?", budget.ID).
		Select("*").Omit("id", "created_at").
		Updates(m)

	if result.Error != nil {
		return r.handleDatabaseError("updating budget", result.Error, budget.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrBudgetNotFound
	}
	return nil
}

// ListActive returns all active budgets
func (r *BudgetRepository) ListActive(ctx context.Context) ([]*entity.Budget, error) {
	var models []model.Budget
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&models)
	if result.Error != nil {
		r.logger.Error("Database error when listing active budgets", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	budgets := make([]*entity.Budget, 0, len(models))
	for i := range models {
		budgets = append(budgets, budgetModelToEntity(&models[i]))
	}
	return budgets, nil
}
