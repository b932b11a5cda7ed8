package budget

import (
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
)

// Health classifies the budget's cached spend against its effective amount
// (base amount plus rollover) as of ref. Pure; callable repeatedly for
// display with no side effects.
//
// Boundaries: spend at exactly the alert threshold classifies as warning, and
// spend at exactly 100% classifies as exceeded. Danger means the
// daily-average extrapolation projects the budget to be exceeded before the
// window ends, even though it is not yet.
func Health(b *entity.Budget, ref time.Time) entity.BudgetHealth {
	effective := b.EffectiveAmountCents()
	spent := b.CurrentPeriodSpentCents

	if effective <= 0 {
		if spent > 0 {
			return entity.HealthExceeded
		}
		return entity.HealthHealthy
	}

	if spent >= effective {
		return entity.HealthExceeded
	}

	if projectedCents(b, spent, ref) > effective {
		return entity.HealthDanger
	}

	// Integer cross-multiplication keeps the threshold comparison exact.
	if spent*100 >= int64(b.AlertThreshold)*effective {
		return entity.HealthWarning
	}
	return entity.HealthHealthy
}

// projectedCents extrapolates the window's total spend from the daily average
// so far.
func projectedCents(b *entity.Budget, spent int64, ref time.Time) int64 {
	start := entity.DateOf(b.CurrentPeriodStart)
	end := entity.DateOf(b.CurrentPeriodEnd)
	refDate := entity.DateOf(ref)

	totalDays := int64(end.Sub(start).Hours()/24) + 1
	if totalDays <= 0 {
		return spent
	}

	elapsedDays := int64(refDate.Sub(start).Hours()/24) + 1
	if elapsedDays < 1 {
		elapsedDays = 1
	}
	if elapsedDays > totalDays {
		elapsedDays = totalDays
	}

	return spent * totalDays / elapsedDays
}
