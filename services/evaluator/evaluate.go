// Package evaluator decides which reminders are due at a given instant.
package evaluator

import (
	"time"

	"vaxremind/models"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Evaluate returns the pending reminders that are due at now, each tagged overdue or on time.
// Dates and clock times are compared in now's location. Input records are never modified.
func Evaluate(reminders []models.Reminder, now time.Time) []models.DueReminder {
	today := now.Format(DateLayout)
	currentTime := now.Format(ClockLayout)

	due := make([]models.DueReminder, 0)
	for _, r := range reminders {
		if !r.IsPending() {
			continue
		}
		res := Check(r, today, currentTime)
		if !res.Due {
			continue
		}
		due = append(due, models.DueReminder{Reminder: r, Result: res})
	}
	return due
}

// Check compares a reminder against a zero-padded date and clock time.
// ISO dates and HH:MM times order lexicographically the same way they order chronologically.
func Check(r models.Reminder, today, currentTime string) models.DueEvaluation {
	if !r.IsPending() {
		return models.DueEvaluation{}
	}
	overdue := r.ScheduledDate < today
	return models.DueEvaluation{
		Due:       overdue || (r.ScheduledDate == today && r.ScheduledTime <= currentTime),
		IsOverdue: overdue,
	}
}
