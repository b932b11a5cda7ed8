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

// SubscriptionRepository implements the subscription persistence port using GORM
type SubscriptionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewSubscriptionRepository creates a new SubscriptionRepository instance
func NewSubscriptionRepository(db *gorm.DB, logger coreport.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{db: db, logger: logger}
}

func subscriptionEntityToModel(s *entity.Subscription) *model.Subscription {
	return &model.Subscription{
		ID:            s.ID,
		UserID:        s.UserID,
		Name:          s.Name,
		AmountCents:   s.AmountCents,
		Currency:      s.Currency,
		Frequency:     string(s.Frequency),
		NextBillingAt: s.NextBillingAt,
		FromAccountID: s.FromAccountID,
		FromCardID:    s.FromCardID,
		CategoryID:    s.CategoryID,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func subscriptionModelToEntity(m *model.Subscription) *entity.Subscription {
	return &entity.Subscription{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		AmountCents:   m.AmountCents,
		Currency:      m.Currency,
		Frequency:     entity.Frequency(m.Frequency),
		NextBillingAt: m.NextBillingAt,
		FromAccountID: m.FromAccountID,
		FromCardID:    m.FromCardID,
		CategoryID:    m.CategoryID,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// GetByID retrieves a subscription by ID
func (r *SubscriptionRepository) GetByID(ctx context.Context, id uint64) (*entity.Subscription, error) {
	var m model.Subscription
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return subscriptionModelToEntity(&m), nil
}

// Create persists a new subscription and assigns its ID
func (r *SubscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	m := subscriptionEntityToModel(subscription)
	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	subscription.ID = m.ID
	return nil
}

// Update rewrites an existing subscription row
func (r *SubscriptionRepository) Update(ctx context.Context, subscription *entity.Subscription) error {
	m := subscriptionEntityToModel(subscription)
	result := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("id = ?", subscription.ID).
		Select("*").Omit("id", "created_at").
		Updates(m)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrSubscriptionNotFound
	}
	return nil
}

// ListDue returns active subscriptions whose next billing date is at or before asOf
func (r *SubscriptionRepository) ListDue(ctx context.Context, asOf time.Time) ([]*entity.Subscription, error) {
	var models []model.Subscription
	result := r.db.WithContext(ctx).
		Where("is_active = ? AND next_billing_at <= ?", true, asOf).
		Order("next_billing_at").
		Find(&models)
	if result.Error != nil {
		r.logger.Error("Database error when listing due subscriptions", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	subscriptions := make([]*entity.Subscription, 0, len(models))
	for i := range models {
		subscriptions = append(subscriptions, subscriptionModelToEntity(&models[i]))
	}
	return subscriptions, nil
}
