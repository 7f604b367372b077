package models

import "time"

// Recurrence is the repeat interval of a task. The zero value means the task
// does not repeat.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

var Recurrences = []Recurrence{RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly}

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

func (r Recurrence) Label() string {
	switch r {
	case RecurrenceNone:
		return "Does not repeat"
	case RecurrenceDaily:
		return "Daily"
	case RecurrenceWeekly:
		return "Weekly"
	case RecurrenceMonthly:
		return "Monthly"
	case RecurrenceYearly:
		return "Yearly"
	}
	return string(r)
}

// Advance returns the occurrence one interval after d. Monthly and yearly
// steps clamp to the last day of the target month, so Jan 31 becomes Feb 28.
func (r Recurrence) Advance(d time.Time) time.Time {
	d = Date(d)
	switch r {
	case RecurrenceDaily:
		return d.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		return d.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		return addMonths(d, 1)
	case RecurrenceYearly:
		return addMonths(d, 12)
	}
	return d
}

func addMonths(d time.Time, months int) time.Time {
	year, month, day := d.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if last := daysInMonth(first.Month(), first.Year()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(month time.Month, year int) int {
	// Move to next month, roll back a day.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
