package recurring

import (
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
)

// IsDue reports whether a scheduled occurrence at next has arrived by ref.
// An occurrence on ref's own date counts as due.
func IsDue(next, ref time.Time) bool {
	return !entity.DateOf(next).After(entity.DateOf(ref))
}

// NextOccurrence returns the occurrence following from for the given
// frequency. Monthly and longer steps clamp the day-of-month, so a billing
// date of Jan 31 lands on Feb 28 rather than spilling into March.
func NextOccurrence(frequency entity.Frequency, from time.Time) (time.Time, error) {
	switch frequency {
	case entity.FrequencyWeekly:
		return from.AddDate(0, 0, 7), nil
	case entity.FrequencyMonthly:
		return entity.AddMonthsClamped(from, 1), nil
	case entity.FrequencyQuarterly:
		return entity.AddMonthsClamped(from, 3), nil
	case entity.FrequencyYearly:
		return entity.AddMonthsClamped(from, 12), nil
	}
	return time.Time{}, errs.NewInvalidFrequencyError(string(frequency))
}

// Advance steps next forward until it is past ref. A schedule that was left
// unprocessed for several cycles catches up in one call instead of firing
// immediately again on the next sweep.
//
// Each step starts from the previous occurrence, so a clamped day-of-month
// carries forward: a monthly schedule billed on Jan 31 bills on the 28th from
// February on. Schedules follow the last billed date rather than an anchor
// day; only the next date is stored.
func Advance(frequency entity.Frequency, next, ref time.Time) (time.Time, error) {
	for IsDue(next, ref) {
		stepped, err := NextOccurrence(frequency, next)
		if err != nil {
			return time.Time{}, err
		}
		next = stepped
	}
	return next, nil
}
