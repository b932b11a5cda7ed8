package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// RecurringIncomeRepository implements the recurring income persistence port using GORM
type RecurringIncomeRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewRecurringIncomeRepository creates a new RecurringIncomeRepository instance
func NewRecurringIncomeRepository(db *gorm.DB, logger coreport.Logger) *RecurringIncomeRepository {
	return &RecurringIncomeRepository{db: db, logger: logger}
}

func recurringIncomeEntityToModel(i *entity.RecurringIncome) *model.RecurringIncome {
	return &model.RecurringIncome{
		ID:             i.ID,
		UserID:         i.UserID,
		Name:           i.Name,
		AmountCents:    i.AmountCents,
		Currency:       i.Currency,
		Frequency:      string(i.Frequency),
		NextExpectedAt: i.NextExpectedAt,
		ToAccountID:    i.ToAccountID,
		IsActive:       i.IsActive,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func recurringIncomeModelToEntity(m *model.RecurringIncome) *entity.RecurringIncome {
	return &entity.RecurringIncome{
		ID:             m.ID,
		UserID:         m.UserID,
		Name:           m.Name,
		AmountCents:    m.AmountCents,
		Currency:       m.Currency,
		Frequency:      entity.Frequency(m.Frequency),
		NextExpectedAt: m.NextExpectedAt,
		ToAccountID:    m.ToAccountID,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// GetByID retrieves a recurring income by ID
func (r *RecurringIncomeRepository) GetByID(ctx context.Context, id uint64) (*entity.RecurringIncome, error) {
	var m model.RecurringIncome
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRecurringIncomeNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return recurringIncomeModelToEntity(&m), nil
}

// Create persists a new recurring income and assigns its ID
func (r *RecurringIncomeRepository) Create(ctx context.Context, income *entity.RecurringIncome) error {
	m := recurringIncomeEntityToModel(income)
	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	income.ID = m.ID
	return nil
}

// Update rewrites an existing recurring income row
func (r *RecurringIncomeRepository) Update(ctx context.Context, income *entity.RecurringIncome) error {
	m := recurringIncomeEntityToModel(income)
	result := r.db.WithContext(ctx).Model(&model.RecurringIncome{}).
		Where("id = ?", income.ID).
		Select("*").Omit("id", "created_at").
		Updates(m)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrRecurringIncomeNotFound
	}
	return nil
}

// ListDue returns active recurring incomes whose next expected date is at or before asOf
func (r *RecurringIncomeRepository) ListDue(ctx context.Context, asOf time.Time) ([]*entity.RecurringIncome, error) {
	var models []model.RecurringIncome
	result := r.db.WithContext(ctx).
		Where("is_active = ? AND next_expected_at <= ?", true, asOf).
		Order("next_expected_at").
		Find(&models)
	if result.Error != nil {
		r.logger.Error("Database error when listing due recurring incomes", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	incomes := make([]*entity.RecurringIncome, 0, len(models))
	for i := range models {
		incomes = append(incomes, recurringIncomeModelToEntity(&models[i]))
	}
	return incomes, nil
}
