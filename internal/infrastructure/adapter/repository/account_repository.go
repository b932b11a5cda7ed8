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

// AccountRepository implements the account persistence port using GORM.
//
// Balance changes go through AdjustBalance, which issues a single atomic
// UPDATE with an in-database increment. The balance value never round-trips
// through application memory on the write path.
type AccountRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func accountModelToEntity(m *model.BankAccount) *entity.BankAccount {
	return &entity.BankAccount{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		BalanceCents: m.BalanceCents,
		Currency:     m.Currency,
		IsDefault:    m.IsDefault,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, accountID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Bank account not found", map[string]any{
			"account_id": accountID,
		})
		return errs.ErrAccountNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"account_id": accountID,
		"error":      err.Error(),
	})

	if r.errorClassifier.IsLockError(err) {
		return errs.ErrRecordLocked
	}
	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*entity.BankAccount, error) {
	var m model.BankAccount
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account", result.Error, id)
	}
	return accountModelToEntity(&m), nil
}

// GetForUpdate retrieves an account under an exclusive row lock. The lock
// lasts until the surrounding store transaction ends, which keeps a funds
// check valid until the debit commits.
func (r *AccountRepository) GetForUpdate(ctx context.Context, id uint64) (*entity.BankAccount, error) {
	var m model.BankAccount
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking account", result.Error, id)
	}
	return accountModelToEntity(&m), nil
}

// Create persists a new account and assigns its ID
func (r *AccountRepository) Create(ctx context.Context, account *entity.BankAccount) error {
	m := model.BankAccount{
		UserID:       account.UserID,
		Name:         account.Name,
		BalanceCents: account.BalanceCents,
		Currency:     account.Currency,
		IsDefault:    account.IsDefault,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleDatabaseError("creating account", result.Error, account.UserID)
	}

	account.ID = m.ID
	return nil
}

// AdjustBalance atomically adds deltaCents to the account's balance. The
// increment happens inside the database, so concurrent adjustments to the
// same account serialize on the row instead of overwriting each other.
func (r *AccountRepository) AdjustBalance(ctx context.Context, id uint64, deltaCents int64) error {
	result := r.db.WithContext(ctx).Model(&model.BankAccount{}).
		Where("id = ?", id).
		UpdateColumn("balance_cents", gorm.Expr("balance_cents + ?", deltaCents))

	if result.Error != nil {
		return r.handleDatabaseError("adjusting account balance", result.Error, id)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Bank account not found during balance adjustment", map[string]any{
			"account_id": id,
		})
		return errs.ErrAccountNotFound
	}

	r.logger.Debug("Account balance adjusted", map[string]any{
		"account_id":  id,
		"delta_cents": deltaCents,
	})
	return nil
}
