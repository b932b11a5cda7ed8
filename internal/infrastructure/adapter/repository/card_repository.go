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
	"gorm.io/gorm/clause"
)

// CardRepository implements the card persistence port using GORM. For credit
// cards AdjustBalance moves the stored debt figure with an atomic in-database
// increment, mirroring the account repository.
type CardRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewCardRepository creates a new CardRepository instance
func NewCardRepository(db *gorm.DB, logger coreport.Logger) *CardRepository {
	return &CardRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func cardModelToEntity(m *model.Card) *entity.Card {
	return &entity.Card{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		Type:             entity.CardType(m.Type),
		BalanceCents:     m.BalanceCents,
		BankAccountID:    m.BankAccountID,
		CreditLimitCents: m.CreditLimitCents,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *CardRepository) handleDatabaseError(operation string, err error, cardID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Card not found", map[string]any{
			"card_id": cardID,
		})
		return errs.ErrCardNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"card_id": cardID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsLockError(err) {
		return errs.ErrRecordLocked
	}
	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a card by ID
func (r *CardRepository) GetByID(ctx context.Context, id uint64) (*entity.Card, error) {
	var m model.Card
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting card", result.Error, id)
	}
	return cardModelToEntity(&m), nil
}

// GetForUpdate retrieves a card under an exclusive row lock
func (r *CardRepository) GetForUpdate(ctx context.Context, id uint64) (*entity.Card, error) {
	var m model.Card
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking card", result.Error, id)
	}
	return cardModelToEntity(&m), nil
}

// Create persists a new card and assigns its ID
func (r *CardRepository) Create(ctx context.Context, card *entity.Card) error {
	m := model.Card{
		UserID:           card.UserID,
		Name:             card.Name,
		Type:             string(card.Type),
		BalanceCents:     card.BalanceCents,
		BankAccountID:    card.BankAccountID,
		CreditLimitCents: card.CreditLimitCents,
		CreatedAt:        card.CreatedAt,
		UpdatedAt:        card.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleDatabaseError("creating card", result.Error, card.UserID)
	}

	card.ID = m.ID
	return nil
}

// AdjustBalance atomically adds deltaCents to the card's balance (debt)
func (r *CardRepository) AdjustBalance(ctx context.Context, id uint64, deltaCents int64) error {
	result := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ?", id).
		UpdateColumn("balance_cents", gorm.Expr("balance_cents + ?", deltaCents))

	if result.Error != nil {
		return r.handleDatabaseError("adjusting card balance", result.Error, id)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Card not found during balance adjustment", map[string]any{
			"card_id": id,
		})
		return errs.ErrCardNotFound
	}

	r.logger.Debug("Card balance adjusted", map[string]any{
		"card_id":     id,
		"delta_cents": deltaCents,
	})
	return nil
}
