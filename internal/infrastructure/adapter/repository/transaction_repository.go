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

// TransactionRepository implements the transaction persistence port using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func transactionEntityToModel(t *entity.Transaction) *model.Transaction {
	m := &model.Transaction{
		ID:              t.ID,
		ReferenceID:     t.ReferenceID,
		UserID:          t.UserID,
		Type:            string(t.Type),
		AmountCents:     t.AmountCents,
		Currency:        t.Currency,
		Title:           t.Title,
		Description:     t.Description,
		FromAccountID:   t.FromAccountID,
		ToAccountID:     t.ToAccountID,
		FromCardID:      t.FromCardID,
		ToCardID:        t.ToCardID,
		CategoryID:      t.CategoryID,
		MerchantID:      t.MerchantID,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
	}
	if t.Origin != nil {
		kind := string(t.Origin.Kind)
		id := t.Origin.ID
		m.OriginKind = &kind
		m.OriginID = &id
	}
	return m
}

func transactionModelToEntity(m *model.Transaction) *entity.Transaction {
	t := &entity.Transaction{
		ID:              m.ID,
		ReferenceID:     m.ReferenceID,
		UserID:          m.UserID,
		Type:            entity.TransactionType(m.Type),
		AmountCents:     m.AmountCents,
		Currency:        m.Currency,
		Title:           m.Title,
		Description:     m.Description,
		FromAccountID:   m.FromAccountID,
		ToAccountID:     m.ToAccountID,
		FromCardID:      m.FromCardID,
		ToCardID:        m.ToCardID,
		CategoryID:      m.CategoryID,
		MerchantID:      m.MerchantID,
		TransactionDate: m.TransactionDate,
		CreatedAt:       m.CreatedAt,
	}
	if m.OriginKind != nil && m.OriginID != nil {
		t.Origin = &entity.OriginRef{
			Kind: entity.OriginKind(*m.OriginKind),
			ID:   *m.OriginID,
		}
	}
	return t
}

func (r *TransactionRepository) handleDatabaseError(operation string, err error, transactionID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Transaction not found", map[string]any{
			"transaction_id": transactionID,
		})
		return errs.ErrTransactionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"transaction_id": transactionID,
		"error":          err.Error(),
	})

	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new transaction row and assigns its ID
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	m := transactionEntityToModel(transaction)

	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		return r.handleDatabaseError("creating transaction", result.Error, transaction.ID)
	}

	transaction.ID = m.ID
	return nil
}

// Update rewrites an existing transaction row
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	m := transactionEntityToModel(transaction)

	// Save with Select("*") rewrites every column, including pointer fields
	// that became nil through the edit.
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", transaction.ID).
		Select("*").Omit("id", "created_at").
		Updates(m)

	if result.Error != nil {
		return r.handleDatabaseError("updating transaction", result.Error, transaction.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction row
func (r *TransactionRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Transaction{}, id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting transaction", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var m model.Transaction
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting transaction", result.Error, id)
	}
	return transactionModelToEntity(&m), nil
}

// SumExpenseCents aggregates expense amounts for the user with
// transaction_date in [from, toExclusive), optionally restricted to one
// category. The aggregation runs in the database; rows are never loaded.
func (r *TransactionRepository) SumExpenseCents(ctx context.Context, userID uint64, from, toExclusive time.Time, categoryID *uint64) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ?", userID).
		Where("type = ?", string(entity.TypeExpense)).
		Where("transaction_date >= ? AND transaction_date < ?", from, toExclusive)

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var total int64
	result := query.Select("COALESCE(SUM(amount_cents), 0)").Scan(&total)
	if result.Error != nil {
		r.logger.Error("Database error when summing expenses", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return total, nil
}
