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

// InvoiceRepository implements the invoice persistence port using GORM
type InvoiceRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewInvoiceRepository creates a new InvoiceRepository instance
func NewInvoiceRepository(db *gorm.DB, logger coreport.Logger) *InvoiceRepository {
	return &InvoiceRepository{db: db, logger: logger}
}

func invoiceEntityToModel(i *entity.Invoice) *model.Invoice {
	return &model.Invoice{
		ID:          i.ID,
		UserID:      i.UserID,
		ClientName:  i.ClientName,
		AmountCents: i.AmountCents,
		Currency:    i.Currency,
		DueDate:     i.DueDate,
		Status:      string(i.Status),
		ToAccountID: i.ToAccountID,
		PaidAt:      i.PaidAt,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func invoiceModelToEntity(m *model.Invoice) *entity.Invoice {
	return &entity.Invoice{
		ID:          m.ID,
		UserID:      m.UserID,
		ClientName:  m.ClientName,
		AmountCents: m.AmountCents,
		Currency:    m.Currency,
		DueDate:     m.DueDate,
		Status:      entity.InvoiceStatus(m.Status),
		ToAccountID: m.ToAccountID,
		PaidAt:      m.PaidAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// GetByID retrieves an invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id uint64) (*entity.Invoice, error) {
	var m model.Invoice
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return invoiceModelToEntity(&m), nil
}

// Create persists a new invoice and assigns its ID
func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	m := invoiceEntityToModel(invoice)
	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	invoice.ID = m.ID
	return nil
}

// Update rewrites an existing invoice row
func (r *InvoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	m := invoiceEntityToModel(invoice)
	result := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("id = ?", invoice.ID).
		Select("*").Omit("id", "created_at").
		Updates(m)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrInvoiceNotFound
	}
	return nil
}
