package budget

import (
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
)

// PeriodWindow computes the [start, end] date window of the budget period
// containing ref, aligned to the anchor date. Monthly windows run from the
// anchor's day-of-month to the day before the next occurrence; quarterly and
// yearly windows stretch the same rule over 3 and 12 months. The anchor day
// is preserved across months (clamped in shorter ones), so windows never
// drift.
//
// The function is pure and idempotent: the same (period, anchor, ref) always
// yields the same window. An unknown period is an error, never a default
// window.
func PeriodWindow(period entity.BudgetPeriod, anchor, ref time.Time) (start, end time.Time, err error) {
	months, err := period.Months()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	anchorDate := entity.DateOf(anchor)
	refDate := entity.DateOf(ref)

	// Before the anchor the first window applies; a budget has no windows
	// prior to its start date.
	if refDate.Before(anchorDate) {
		refDate = anchorDate
	}

	// Estimate the window index from month arithmetic, then correct by at
	// most one step in either direction (clamping makes the estimate
	// off-by-one around short months).
	elapsedMonths := (refDate.Year()-anchorDate.Year())*12 + int(refDate.Month()) - int(anchorDate.Month())
	index := elapsedMonths / months

	start = entity.AddMonthsClamped(anchorDate, index*months)
	for start.After(refDate) {
		index--
		start = entity.AddMonthsClamped(anchorDate, index*months)
	}
	for {
		next := entity.AddMonthsClamped(anchorDate, (index+1)*months)
		if refDate.Before(next) {
			end = next.AddDate(0, 0, -1)
			return start, end, nil
		}
		index++
		start = next
	}
}

// NextPeriodStart returns the first day after the window that starts at the
// given index-aligned start. Exposed for spend queries, which need an
// exclusive upper bound: a window's end date covers the whole day.
func NextPeriodStart(end time.Time) time.Time {
	return entity.DateOf(end).AddDate(0, 0, 1)
}
