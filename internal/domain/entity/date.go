package entity

import "time"

// DateOf truncates an instant to its calendar date, midnight in the
// instant's location. Period windows and dueness checks work on dates, not
// instants.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// AddMonthsClamped adds whole months to a date, clamping the day-of-month to
// the target month's length instead of letting it normalize into the next
// month. Jan 31 + 1 month is Feb 28 (or 29), not Mar 2/3.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}
