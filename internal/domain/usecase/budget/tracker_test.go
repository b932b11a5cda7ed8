package budget

import (
	"context"
	"testing"
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	"github.com/cashfolio/cashfolio/internal/domain/port/persistence"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time                  { return p.now }
func (p *fixedTimeProvider) Since(t time.Time) time.Duration { return p.now.Sub(t) }
func (p *fixedTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

type expenseRecord struct {
	userID      uint64
	amountCents int64
	date        time.Time
	categoryID  *uint64
}

// expenseLedger answers spend queries from a fixed list of expense records.
type expenseLedger struct {
	expenses []expenseRecord
}

func (l *expenseLedger) Create(context.Context, *entity.Transaction) error { return nil }
func (l *expenseLedger) Update(context.Context, *entity.Transaction) error { return nil }
func (l *expenseLedger) Delete(context.Context, uint64) error              { return nil }
func (l *expenseLedger) GetByID(context.Context, uint64) (*entity.Transaction, error) {
	return nil, errs.ErrTransactionNotFound
}

func (l *expenseLedger) SumExpenseCents(_ context.Context, userID uint64, from, toExclusive time.Time, categoryID *uint64) (int64, error) {
	var total int64
	for _, e := range l.expenses {
		if e.userID != userID {
			continue
		}
		if e.date.Before(from) || !e.date.Before(toExclusive) {
			continue
		}
		if categoryID != nil {
			if e.categoryID == nil || *e.categoryID != *categoryID {
				continue
			}
		}
		total += e.amountCents
	}
	return total, nil
}

type budgetStore struct {
	budgets map[uint64]*entity.Budget
	ledger  *expenseLedger
	nextID  uint64

	begins    int
	commits   int
	rollbacks int
}

func newBudgetStore() *budgetStore {
	return &budgetStore{
		budgets: make(map[uint64]*entity.Budget),
		ledger:  &expenseLedger{},
	}
}

func (s *budgetStore) Begin(ctx context.Context) (context.Context, error) {
	s.begins++
	return ctx, nil
}

func (s *budgetStore) Commit(context.Context) error {
	s.commits++
	return nil
}

func (s *budgetStore) Rollback(context.Context) error {
	s.rollbacks++
	return nil
}

func (s *budgetStore) GetAccountRepository(context.Context) persistence.AccountRepository { return nil }
func (s *budgetStore) GetCardRepository(context.Context) persistence.CardRepository       { return nil }

func (s *budgetStore) GetTransactionRepository(context.Context) persistence.TransactionRepository {
	return s.ledger
}

func (s *budgetStore) GetBudgetRepository(context.Context) persistence.BudgetRepository {
	return &budgetRepo{store: s}
}

type budgetRepo struct {
	store *budgetStore
}

func (r *budgetRepo) GetByID(_ context.Context, id uint64) (*entity.Budget, error) {
	budget, ok := r.store.budgets[id]
	if !ok {
		return nil, errs.ErrBudgetNotFound
	}
	copied := *budget
	return &copied, nil
}

func (r *budgetRepo) Create(_ context.Context, budget *entity.Budget) error {
	r.store.nextID++
	budget.ID = r.store.nextID
	copied := *budget
	r.store.budgets[budget.ID] = &copied
	return nil
}

func (r *budgetRepo) Update(_ context.Context, budget *entity.Budget) error {
	if _, ok := r.store.budgets[budget.ID]; !ok {
		return errs.ErrBudgetNotFound
	}
	copied := *budget
	r.store.budgets[budget.ID] = &copied
	return nil
}

func (r *budgetRepo) ListActive(_ context.Context) ([]*entity.Budget, error) {
	var active []*entity.Budget
	for _, budget := range r.store.budgets {
		if budget.IsActive {
			copied := *budget
			active = append(active, &copied)
		}
	}
	return active, nil
}

func newTestTracker(store *budgetStore, now time.Time) *Tracker {
	return NewTracker(store, &fixedTimeProvider{now: now}, logger.NewNoopLogger())
}

func TestTrackerCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("initializes the first window from the start date", func(t *testing.T) {
		store := newBudgetStore()
		tracker := newTestTracker(store, date(2025, 3, 10))

		created, err := tracker.Create(ctx, &entity.Budget{
			UserID:      1,
			Name:        "Groceries",
			AmountCents: 50000,
			Period:      entity.PeriodMonthly,
			StartDate:   date(2025, 3, 1),
		})
		require.NoError(t, err)

		assert.Equal(t, date(2025, 3, 1), created.CurrentPeriodStart)
		assert.Equal(t, date(2025, 3, 31), created.CurrentPeriodEnd)
		assert.True(t, created.IsActive)
		assert.Equal(t, DefaultAlertThreshold, created.AlertThreshold)
	})

	t.Run("defaults the start date to today", func(t *testing.T) {
		store := newBudgetStore()
		tracker := newTestTracker(store, date(2025, 3, 10))

		created, err := tracker.Create(ctx, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
		})
		require.NoError(t, err)
		assert.Equal(t, date(2025, 3, 10), created.StartDate)
	})

	t.Run("picks up spend already in the window", func(t *testing.T) {
		store := newBudgetStore()
		store.ledger.expenses = []expenseRecord{
			{userID: 1, amountCents: 12000, date: date(2025, 3, 5)},
			{userID: 1, amountCents: 8000, date: date(2025, 2, 20)}, // outside window
			{userID: 2, amountCents: 9000, date: date(2025, 3, 6)},  // other user
		}
		tracker := newTestTracker(store, date(2025, 3, 10))

		created, err := tracker.Create(ctx, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly, StartDate: date(2025, 3, 1),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(12000), created.CurrentPeriodSpentCents)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		store := newBudgetStore()
		tracker := newTestTracker(store, date(2025, 3, 10))

		_, err := tracker.Create(ctx, &entity.Budget{AmountCents: 100, Period: entity.PeriodMonthly})
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)

		_, err = tracker.Create(ctx, &entity.Budget{UserID: 1, Period: entity.PeriodMonthly})
		assert.ErrorIs(t, err, errs.ErrNonPositiveAmount)

		_, err = tracker.Create(ctx, &entity.Budget{UserID: 1, AmountCents: 100, Period: "weekly"})
		assert.ErrorIs(t, err, errs.ErrInvalidPeriod)
	})
}

func seedBudget(store *budgetStore, b *entity.Budget) *entity.Budget {
	store.nextID++
	b.ID = store.nextID
	copied := *b
	store.budgets[b.ID] = &copied
	return b
}

func TestTrackerRefreshRollover(t *testing.T) {
	ctx := context.Background()

	t.Run("unused amount rolls into the next window", func(t *testing.T) {
		store := newBudgetStore()
		store.ledger.expenses = []expenseRecord{
			{userID: 1, amountCents: 30000, date: date(2025, 3, 12)},
		}
		b := seedBudget(store, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
			StartDate:          date(2025, 3, 1),
			CurrentPeriodStart: date(2025, 3, 1), CurrentPeriodEnd: date(2025, 3, 31),
			CurrentPeriodSpentCents: 30000,
			RolloverUnused:          true, AlertSent: true, IsActive: true,
			AlertThreshold: 80,
		})
		tracker := newTestTracker(store, date(2025, 4, 5))

		refreshed, err := tracker.Refresh(ctx, b.ID, date(2025, 4, 5))
		require.NoError(t, err)

		// 500.00 budgeted, 300.00 spent: 200.00 rolls over.
		assert.Equal(t, int64(20000), refreshed.RolloverCents)
		assert.Equal(t, int64(70000), refreshed.EffectiveAmountCents())
		assert.Equal(t, date(2025, 4, 1), refreshed.CurrentPeriodStart)
		assert.Equal(t, date(2025, 4, 30), refreshed.CurrentPeriodEnd)
		assert.Equal(t, int64(0), refreshed.CurrentPeriodSpentCents)
		assert.False(t, refreshed.AlertSent)
	})

	t.Run("overspend rolls over zero, never debt", func(t *testing.T) {
		store := newBudgetStore()
		store.ledger.expenses = []expenseRecord{
			{userID: 1, amountCents: 60000, date: date(2025, 3, 12)},
		}
		b := seedBudget(store, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
			StartDate:          date(2025, 3, 1),
			CurrentPeriodStart: date(2025, 3, 1), CurrentPeriodEnd: date(2025, 3, 31),
			RolloverUnused: true, IsActive: true, AlertThreshold: 80,
		})
		tracker := newTestTracker(store, date(2025, 4, 5))

		refreshed, err := tracker.Refresh(ctx, b.ID, date(2025, 4, 5))
		require.NoError(t, err)
		assert.Equal(t, int64(0), refreshed.RolloverCents)
	})

	t.Run("rollover disabled resets to the base amount", func(t *testing.T) {
		store := newBudgetStore()
		b := seedBudget(store, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
			StartDate:          date(2025, 3, 1),
			CurrentPeriodStart: date(2025, 3, 1), CurrentPeriodEnd: date(2025, 3, 31),
			RolloverUnused: false, RolloverCents: 12345, IsActive: true, AlertThreshold: 80,
		})
		tracker := newTestTracker(store, date(2025, 4, 5))

		refreshed, err := tracker.Refresh(ctx, b.ID, date(2025, 4, 5))
		require.NoError(t, err)
		assert.Equal(t, int64(0), refreshed.RolloverCents)
		assert.Equal(t, int64(50000), refreshed.EffectiveAmountCents())
	})

	t.Run("rollover is not cumulative across windows", func(t *testing.T) {
		store := newBudgetStore()
		// Nothing spent in March; the April refresh computes the rollover from
		// the March window alone, not March plus older leftovers.
		b := seedBudget(store, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
			StartDate:          date(2025, 2, 1),
			CurrentPeriodStart: date(2025, 3, 1), CurrentPeriodEnd: date(2025, 3, 31),
			RolloverUnused: true, RolloverCents: 20000, IsActive: true, AlertThreshold: 80,
		})
		tracker := newTestTracker(store, date(2025, 4, 5))

		refreshed, err := tracker.Refresh(ctx, b.ID, date(2025, 4, 5))
		require.NoError(t, err)
		assert.Equal(t, int64(50000), refreshed.RolloverCents)
	})

	t.Run("skipping several periods jumps to the current window", func(t *testing.T) {
		store := newBudgetStore()
		b := seedBudget(store, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
			StartDate:          date(2025, 1, 1),
			CurrentPeriodStart: date(2025, 3, 1), CurrentPeriodEnd: date(2025, 3, 31),
			IsActive: true, AlertThreshold: 80,
		})
		tracker := newTestTracker(store, date(2025, 6, 10))

		refreshed, err := tracker.Refresh(ctx, b.ID, date(2025, 6, 10))
		require.NoError(t, err)
		assert.Equal(t, date(2025, 6, 1), refreshed.CurrentPeriodStart)
		assert.Equal(t, date(2025, 6, 30), refreshed.CurrentPeriodEnd)
	})

	t.Run("no rollover mid-day on the window's final day", func(t *testing.T) {
		store := newBudgetStore()
		store.ledger.expenses = []expenseRecord{
			{userID: 1, amountCents: 30000, date: date(2025, 3, 12)},
		}
		b := seedBudget(store, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
			StartDate:          date(2025, 3, 1),
			CurrentPeriodStart: date(2025, 3, 1), CurrentPeriodEnd: date(2025, 3, 31),
			CurrentPeriodSpentCents: 30000,
			RolloverUnused:          true, AlertSent: true, IsActive: true,
			AlertThreshold: 80,
		})
		ref := time.Date(2025, 3, 31, 15, 0, 0, 0, time.UTC)
		tracker := newTestTracker(store, ref)

		refreshed, err := tracker.Refresh(ctx, b.ID, ref)
		require.NoError(t, err)

		// The end date covers its whole day: still inside the March window, so
		// nothing rolls over and the alert state is untouched.
		assert.Equal(t, int64(0), refreshed.RolloverCents)
		assert.Equal(t, int64(50000), refreshed.EffectiveAmountCents())
		assert.Equal(t, date(2025, 3, 1), refreshed.CurrentPeriodStart)
		assert.Equal(t, date(2025, 3, 31), refreshed.CurrentPeriodEnd)
		assert.Equal(t, int64(30000), refreshed.CurrentPeriodSpentCents)
		assert.True(t, refreshed.AlertSent)
	})

	t.Run("no deactivation mid-day on the end date", func(t *testing.T) {
		end := date(2025, 3, 31)
		store := newBudgetStore()
		b := seedBudget(store, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
			StartDate: date(2025, 3, 1), EndDate: &end,
			CurrentPeriodStart: date(2025, 3, 1), CurrentPeriodEnd: date(2025, 3, 31),
			IsActive: true, AlertThreshold: 80,
		})
		ref := time.Date(2025, 3, 31, 9, 0, 0, 0, time.UTC)
		tracker := newTestTracker(store, ref)

		refreshed, err := tracker.Refresh(ctx, b.ID, ref)
		require.NoError(t, err)
		assert.True(t, refreshed.IsActive)
	})

	t.Run("unexpired window only recomputes spend", func(t *testing.T) {
		store := newBudgetStore()
		store.ledger.expenses = []expenseRecord{
			{userID: 1, amountCents: 11100, date: date(2025, 3, 12)},
		}
		b := seedBudget(store, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
			StartDate:          date(2025, 3, 1),
			CurrentPeriodStart: date(2025, 3, 1), CurrentPeriodEnd: date(2025, 3, 31),
			IsActive: true, AlertThreshold: 80,
		})
		tracker := newTestTracker(store, date(2025, 3, 20))

		refreshed, err := tracker.Refresh(ctx, b.ID, date(2025, 3, 20))
		require.NoError(t, err)
		assert.Equal(t, date(2025, 3, 1), refreshed.CurrentPeriodStart)
		assert.Equal(t, int64(11100), refreshed.CurrentPeriodSpentCents)
	})

	t.Run("category scoped budget only counts its category", func(t *testing.T) {
		groceries := uint64(7)
		other := uint64(9)
		store := newBudgetStore()
		store.ledger.expenses = []expenseRecord{
			{userID: 1, amountCents: 10000, date: date(2025, 3, 5), categoryID: &groceries},
			{userID: 1, amountCents: 99900, date: date(2025, 3, 6), categoryID: &other},
			{userID: 1, amountCents: 5000, date: date(2025, 3, 7)},
		}
		b := seedBudget(store, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly, CategoryID: &groceries,
			StartDate:          date(2025, 3, 1),
			CurrentPeriodStart: date(2025, 3, 1), CurrentPeriodEnd: date(2025, 3, 31),
			IsActive: true, AlertThreshold: 80,
		})
		tracker := newTestTracker(store, date(2025, 3, 20))

		refreshed, err := tracker.Refresh(ctx, b.ID, date(2025, 3, 20))
		require.NoError(t, err)
		assert.Equal(t, int64(10000), refreshed.CurrentPeriodSpentCents)
	})

	t.Run("end date passed deactivates the budget", func(t *testing.T) {
		end := date(2025, 3, 31)
		store := newBudgetStore()
		b := seedBudget(store, &entity.Budget{
			UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
			StartDate: date(2025, 3, 1), EndDate: &end,
			CurrentPeriodStart: date(2025, 3, 1), CurrentPeriodEnd: date(2025, 3, 31),
			IsActive: true, AlertThreshold: 80,
		})
		tracker := newTestTracker(store, date(2025, 4, 5))

		refreshed, err := tracker.Refresh(ctx, b.ID, date(2025, 4, 5))
		require.NoError(t, err)
		assert.False(t, refreshed.IsActive)
		assert.False(t, store.budgets[b.ID].IsActive)
		// The stale window is left as is; the budget is done.
		assert.Equal(t, date(2025, 3, 1), refreshed.CurrentPeriodStart)
	})

	t.Run("unknown budget", func(t *testing.T) {
		store := newBudgetStore()
		tracker := newTestTracker(store, date(2025, 4, 5))

		_, err := tracker.Refresh(ctx, 404, date(2025, 4, 5))
		assert.ErrorIs(t, err, errs.ErrBudgetNotFound)
	})
}

func TestTrackerSweep(t *testing.T) {
	ctx := context.Background()

	store := newBudgetStore()
	expired := seedBudget(store, &entity.Budget{
		UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
		StartDate:          date(2025, 3, 1),
		CurrentPeriodStart: date(2025, 3, 1), CurrentPeriodEnd: date(2025, 3, 31),
		IsActive: true, AlertThreshold: 80,
	})
	current := seedBudget(store, &entity.Budget{
		UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
		StartDate:          date(2025, 4, 1),
		CurrentPeriodStart: date(2025, 4, 1), CurrentPeriodEnd: date(2025, 4, 30),
		IsActive: true, AlertThreshold: 80,
	})
	seedBudget(store, &entity.Budget{
		UserID: 1, AmountCents: 50000, Period: entity.PeriodMonthly,
		CurrentPeriodStart: date(2025, 1, 1), CurrentPeriodEnd: date(2025, 1, 31),
		IsActive: false, AlertThreshold: 80,
	})

	tracker := newTestTracker(store, date(2025, 4, 5))

	rolled, err := tracker.Sweep(ctx, date(2025, 4, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, rolled)

	assert.Equal(t, date(2025, 4, 1), store.budgets[expired.ID].CurrentPeriodStart)
	assert.Equal(t, date(2025, 4, 1), store.budgets[current.ID].CurrentPeriodStart)
}
