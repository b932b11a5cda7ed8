package budget

import (
	"context"
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/domain/port/persistence"
)

// Tracker maintains each budget's period cursor and cached spend as a derived
// view over the ledger. The cached spend is recomputable at any time and is
// never treated as a source of truth.
type Tracker struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewTracker creates a budget period tracker.
func NewTracker(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Tracker {
	return &Tracker{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create initializes a budget's first period window from its start date and
// persists it. A malformed period fails loudly before anything is stored.
func (t *Tracker) Create(ctx context.Context, b *entity.Budget) (*entity.Budget, error) {
	if b.UserID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if b.AmountCents <= 0 {
		return nil, errs.ErrNonPositiveAmount
	}
	if b.AlertThreshold <= 0 || b.AlertThreshold > 100 {
		b.AlertThreshold = DefaultAlertThreshold
	}
	if b.StartDate.IsZero() {
		b.StartDate = entity.DateOf(t.timeProvider.Now())
	}

	start, end, err := PeriodWindow(b.Period, b.StartDate, b.StartDate)
	if err != nil {
		return nil, err
	}
	b.CurrentPeriodStart = start
	b.CurrentPeriodEnd = end
	b.IsActive = true

	txCtx, err := t.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = t.uow.Rollback(txCtx)
		}
	}()

	spent, err := t.windowSpend(txCtx, b)
	if err != nil {
		return nil, err
	}
	b.CurrentPeriodSpentCents = spent

	if err := t.uow.GetBudgetRepository(txCtx).Create(txCtx, b); err != nil {
		return nil, err
	}
	if err := t.uow.Commit(txCtx); err != nil {
		return nil, err
	}
	committed = true

	t.logger.Info("Budget created", map[string]any{
		"budget_id":    b.ID,
		"user_id":      b.UserID,
		"period":       string(b.Period),
		"window_start": b.CurrentPeriodStart.Format(time.DateOnly),
		"window_end":   b.CurrentPeriodEnd.Format(time.DateOnly),
	})
	return b, nil
}

// Refresh brings one budget up to date as of ref: rolls the period cursor
// forward over any fully elapsed windows, then recomputes the cached spend
// for the current window from the ledger. The whole transition is one atomic
// unit.
func (t *Tracker) Refresh(ctx context.Context, budgetID uint64, ref time.Time) (*entity.Budget, error) {
	txCtx, err := t.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = t.uow.Rollback(txCtx)
		}
	}()

	budgets := t.uow.GetBudgetRepository(txCtx)
	b, err := budgets.GetByID(txCtx, budgetID)
	if err != nil {
		return nil, err
	}

	if err := t.advance(txCtx, b, ref); err != nil {
		return nil, err
	}

	if b.IsActive {
		spent, err := t.windowSpend(txCtx, b)
		if err != nil {
			return nil, err
		}
		b.CurrentPeriodSpentCents = spent
	}
	b.UpdatedAt = t.timeProvider.Now()

	if err := budgets.Update(txCtx, b); err != nil {
		return nil, err
	}
	if err := t.uow.Commit(txCtx); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// Sweep refreshes every active budget. Each budget's transition is its own
// atomic unit so one failure cannot poison the rest; the first error is
// returned after the sweep completes.
func (t *Tracker) Sweep(ctx context.Context, ref time.Time) (int, error) {
	budgets, err := t.uow.GetBudgetRepository(ctx).ListActive(ctx)
	if err != nil {
		return 0, err
	}

	rolled := 0
	var firstErr error
	for _, b := range budgets {
		if !b.Expired(ref) {
			continue
		}
		if _, err := t.Refresh(ctx, b.ID, ref); err != nil {
			t.logger.Error("Budget rollover failed", map[string]any{
				"budget_id": b.ID,
				"error":     err.Error(),
			})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		rolled++
	}
	return rolled, firstErr
}

// advance moves the period cursor forward when the current window has fully
// elapsed. It closes the elapsed window (recomputing its spend from the
// ledger for the rollover), jumps directly to the window containing ref even
// if several periods went by, and resets the alert flag. A budget whose end
// date has passed is deactivated permanently instead.
func (t *Tracker) advance(ctx context.Context, b *entity.Budget, ref time.Time) error {
	if !b.IsActive || !b.Expired(ref) {
		return nil
	}

	if b.Ended(ref) {
		b.IsActive = false
		t.logger.Info("Budget end date passed, deactivating", map[string]any{
			"budget_id": b.ID,
			"end_date":  b.EndDate.Format(time.DateOnly),
		})
		return nil
	}

	if b.RolloverUnused {
		spent, err := t.windowSpend(ctx, b)
		if err != nil {
			return err
		}
		b.RolloverCents = maxCents(0, b.AmountCents-spent)
	} else {
		b.RolloverCents = 0
	}

	start, end, err := PeriodWindow(b.Period, b.StartDate, ref)
	if err != nil {
		return err
	}

	t.logger.Info("Budget period rolled over", map[string]any{
		"budget_id": b.ID,
		"old_start": b.CurrentPeriodStart.Format(time.DateOnly),
		"new_start": start.Format(time.DateOnly),
		"new_end":   end.Format(time.DateOnly),
		"rollover":  entity.FormatCents(b.RolloverCents),
	})

	b.CurrentPeriodStart = start
	b.CurrentPeriodEnd = end
	b.CurrentPeriodSpentCents = 0
	b.AlertSent = false
	return nil
}

// windowSpend recomputes the budget's spend for its current window from the
// ledger: all expense transactions in the window, restricted to the budget's
// category when it is category-scoped.
func (t *Tracker) windowSpend(ctx context.Context, b *entity.Budget) (int64, error) {
	transactions := t.uow.GetTransactionRepository(ctx)
	return transactions.SumExpenseCents(
		ctx,
		b.UserID,
		entity.DateOf(b.CurrentPeriodStart),
		NextPeriodStart(b.CurrentPeriodEnd),
		b.CategoryID,
	)
}

func maxCents(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// DefaultAlertThreshold is applied when a budget is created without one.
const DefaultAlertThreshold = 80
