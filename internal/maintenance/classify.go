package maintenance

import "time"

// Status is the derived maintenance urgency classification. It is computed at
// read time from the next-maintenance date and never stored.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusOverdue   Status = "Overdue"
	StatusDueSoon   Status = "DueSoon"
	StatusScheduled Status = "Scheduled"
)

// DueSoonDays is the look-ahead window for DueSoon.
const DueSoonDays = 14

// Classify derives the urgency of a maintenance schedule. No next date means
// the work is complete; otherwise a past date is Overdue, a date inside the
// look-ahead window is DueSoon, and anything later is Scheduled. Pure
// function, read-side only.
func Classify(next *time.Time, today time.Time) Status {
	if next == nil {
		return StatusCompleted
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	nextDay := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
	if nextDay.Before(day) {
		return StatusOverdue
	}
	if nextDay.Before(day.AddDate(0, 0, DueSoonDays)) {
		return StatusDueSoon
	}
	return StatusScheduled
}
