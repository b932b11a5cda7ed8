package recurring

import (
	"context"
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/domain/port/persistence"
	"github.com/cashfolio/cashfolio/internal/domain/usecase/ledger"
	"github.com/google/uuid"
)

// Biller generates ledger transactions from recurring templates. Every
// generated transaction carries an origin link back to the template that
// produced it, and a template's schedule only advances after its transaction
// posted successfully.
type Biller struct {
	subscriptions persistence.SubscriptionRepository
	incomes       persistence.RecurringIncomeRepository
	invoices      persistence.InvoiceRepository
	ledger        *ledger.Service
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
}

// NewBiller creates a recurring transaction generator.
func NewBiller(
	subscriptions persistence.SubscriptionRepository,
	incomes persistence.RecurringIncomeRepository,
	invoices persistence.InvoiceRepository,
	ledgerService *ledger.Service,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Biller {
	return &Biller{
		subscriptions: subscriptions,
		incomes:       incomes,
		invoices:      invoices,
		ledger:        ledgerService,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// ProcessDueSubscriptions posts an expense for every subscription whose
// billing date has arrived and advances its schedule. A failure on one
// subscription is logged and skipped so the rest of the batch still runs; the
// failed one stays due and is retried on the next sweep.
func (b *Biller) ProcessDueSubscriptions(ctx context.Context, ref time.Time) (int, error) {
	due, err := b.subscriptions.ListDue(ctx, ref)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, sub := range due {
		if err := b.billSubscription(ctx, sub, ref); err != nil {
			b.logger.Error("Subscription billing failed", map[string]any{
				"subscription_id": sub.ID,
				"name":            sub.Name,
				"error":           err.Error(),
			})
			continue
		}
		processed++
	}

	if processed > 0 {
		b.logger.Info("Due subscriptions billed", map[string]any{
			"due":    len(due),
			"billed": processed,
		})
	}
	return processed, nil
}

func (b *Biller) billSubscription(ctx context.Context, sub *entity.Subscription, ref time.Time) error {
	t := &entity.Transaction{
		ReferenceID:     uuid.NewString(),
		UserID:          sub.UserID,
		Type:            entity.TypeExpense,
		AmountCents:     sub.AmountCents,
		Currency:        sub.Currency,
		Title:           sub.Name,
		FromAccountID:   sub.FromAccountID,
		FromCardID:      sub.FromCardID,
		CategoryID:      sub.CategoryID,
		Origin:          &entity.OriginRef{Kind: entity.OriginSubscription, ID: sub.ID},
		TransactionDate: entity.DateOf(sub.NextBillingAt),
		CreatedAt:       b.timeProvider.Now(),
	}
	if _, err := b.ledger.Create(ctx, t); err != nil {
		return err
	}

	next, err := Advance(sub.Frequency, sub.NextBillingAt, ref)
	if err != nil {
		return err
	}
	sub.NextBillingAt = next
	sub.UpdatedAt = b.timeProvider.Now()
	return b.subscriptions.Update(ctx, sub)
}

// ProcessDueIncomes posts an income for every recurring income whose expected
// date has arrived and advances its schedule. Per-item failures are logged
// and skipped like subscription failures.
func (b *Biller) ProcessDueIncomes(ctx context.Context, ref time.Time) (int, error) {
	due, err := b.incomes.ListDue(ctx, ref)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, income := range due {
		if err := b.recordIncome(ctx, income, ref); err != nil {
			b.logger.Error("Recurring income processing failed", map[string]any{
				"recurring_income_id": income.ID,
				"name":                income.Name,
				"error":               err.Error(),
			})
			continue
		}
		processed++
	}

	if processed > 0 {
		b.logger.Info("Due recurring incomes recorded", map[string]any{
			"due":      len(due),
			"recorded": processed,
		})
	}
	return processed, nil
}

func (b *Biller) recordIncome(ctx context.Context, income *entity.RecurringIncome, ref time.Time) error {
	toAccount := income.ToAccountID
	t := &entity.Transaction{
		ReferenceID:     uuid.NewString(),
		UserID:          income.UserID,
		Type:            entity.TypeIncome,
		AmountCents:     income.AmountCents,
		Currency:        income.Currency,
		Title:           income.Name,
		ToAccountID:     &toAccount,
		Origin:          &entity.OriginRef{Kind: entity.OriginRecurringIncome, ID: income.ID},
		TransactionDate: entity.DateOf(income.NextExpectedAt),
		CreatedAt:       b.timeProvider.Now(),
	}
	if _, err := b.ledger.Create(ctx, t); err != nil {
		return err
	}

	next, err := Advance(income.Frequency, income.NextExpectedAt, ref)
	if err != nil {
		return err
	}
	income.NextExpectedAt = next
	income.UpdatedAt = b.timeProvider.Now()
	return b.incomes.Update(ctx, income)
}

// SettleInvoice marks an invoice paid and posts the matching income. An
// already paid invoice is rejected before anything posts, so a settlement can
// never credit the account twice.
func (b *Biller) SettleInvoice(ctx context.Context, invoiceID uint64) (*entity.Invoice, error) {
	invoice, err := b.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	now := b.timeProvider.Now()
	if err := invoice.MarkPaid(now); err != nil {
		return nil, err
	}

	toAccount := invoice.ToAccountID
	t := &entity.Transaction{
		ReferenceID:     uuid.NewString(),
		UserID:          invoice.UserID,
		Type:            entity.TypeIncome,
		AmountCents:     invoice.AmountCents,
		Currency:        invoice.Currency,
		Title:           "Invoice " + invoice.ClientName,
		ToAccountID:     &toAccount,
		Origin:          &entity.OriginRef{Kind: entity.OriginInvoice, ID: invoice.ID},
		TransactionDate: entity.DateOf(now),
		CreatedAt:       now,
	}
	if _, err := b.ledger.Create(ctx, t); err != nil {
		return nil, err
	}

	if err := b.invoices.Update(ctx, invoice); err != nil {
		return nil, err
	}

	b.logger.Info("Invoice settled", map[string]any{
		"invoice_id": invoice.ID,
		"client":     invoice.ClientName,
		"amount":     entity.FormatCents(invoice.AmountCents),
	})
	return invoice, nil
}
