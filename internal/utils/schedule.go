package utils

import (
	"time"

	"github.com/finbook/ledger-service/internal/models"
)

// NextRunDate computes the due date that follows dueDate for the given
// frequency and interval. The date is treated as a UTC calendar date so
// daylight-savings and local-timezone drift cannot move it. Interval
// values of zero or less step once. An unrecognized frequency steps
// monthly, matching how rules behaved before frequencies were validated;
// the scheduler flags such rules separately.
func NextRunDate(dueDate time.Time, frequency models.Frequency, interval int) time.Time {
	step := interval
	if step <= 0 {
		step = 1
	}

	d := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)

	switch frequency {
	case models.FrequencyDaily:
		return d.AddDate(0, 0, step)
	case models.FrequencyWeekly:
		return d.AddDate(0, 0, 7*step)
	default:
		return addMonthsClamped(d, step)
	}
}

// addMonthsClamped adds calendar months, clamping to the last day of the
// target month instead of letting the date spill over (Jan 31 + 1 month is
// Feb 28, not Mar 3). A rule due monthly on the 31st stays in its month.
func addMonthsClamped(d time.Time, months int) time.Time {
	year, month, day := d.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := lastDayOfMonth(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
