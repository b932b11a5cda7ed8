package entity

import (
	"time"

	errs "github.com/cashfolio/cashfolio/internal/domain/error"
)

// BudgetPeriod is the recurrence granularity of a budget window.
type BudgetPeriod string

const (
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)

// Months returns the length of one period in months, or an error for an
// unknown period. Unknown periods must fail loudly; silently defaulting to an
// empty or infinite window would misreport budget health.
func (p BudgetPeriod) Months() (int, error) {
	switch p {
	case PeriodMonthly:
		return 1, nil
	case PeriodQuarterly:
		return 3, nil
	case PeriodYearly:
		return 12, nil
	}
	return 0, errs.NewInvalidPeriodError(string(p))
}

// BudgetHealth is a pure classification of spend versus effective budget.
type BudgetHealth string

const (
	// HealthHealthy: spend below the alert threshold.
	HealthHealthy BudgetHealth = "healthy"
	// HealthWarning: spend at or above the alert threshold but below 100%.
	HealthWarning BudgetHealth = "warning"
	// HealthDanger: daily-average extrapolation projects the budget to be
	// exceeded before the period ends.
	HealthDanger BudgetHealth = "danger"
	// HealthExceeded: spend at or above 100% of the effective budget.
	HealthExceeded BudgetHealth = "exceeded"
)

// Budget tracks spending against a cap over recurring date windows.
//
// CurrentPeriodSpentCents is a cached, recomputable projection of the ledger,
// never a source of truth. The period cursor (CurrentPeriodStart/End) advances
// when a window fully elapses.
type Budget struct {
	ID         uint64
	UserID     uint64
	Name       string
	CategoryID *uint64 // nil means all expense categories

	AmountCents int64
	Period      BudgetPeriod
	StartDate   time.Time
	EndDate     *time.Time

	CurrentPeriodStart      time.Time
	CurrentPeriodEnd        time.Time
	CurrentPeriodSpentCents int64

	RolloverUnused bool
	RolloverCents  int64

	AlertThreshold int // percent of effective budget that triggers a warning
	AlertSent      bool
	IsActive       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveAmountCents is the spending cap for the current window: the base
// amount plus whatever rolled over from the previous window.
func (b *Budget) EffectiveAmountCents() int64 {
	return b.AmountCents + b.RolloverCents
}

// Expired reports whether the current window has fully elapsed at ref. The
// end date covers its whole day, so the comparison is between calendar dates,
// not instants: a mid-day ref on the final day is still inside the window.
func (b *Budget) Expired(ref time.Time) bool {
	return DateOf(ref).After(DateOf(b.CurrentPeriodEnd))
}

// Ended reports whether the budget's overall end date has passed at ref. Like
// the window end, the end date covers its whole day.
func (b *Budget) Ended(ref time.Time) bool {
	return b.EndDate != nil && DateOf(ref).After(DateOf(*b.EndDate))
}
