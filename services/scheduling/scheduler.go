// Package scheduling delivers foreground-requested reminders after a delay.
// Requests are keyed by reminder id: a new request for the same id replaces the pending one.
package scheduling

import (
	"context"

	"vaxremind/models"
)

// Scheduler defers the display of a reminder.
type Scheduler interface {
	Schedule(ctx context.Context, req models.ScheduleRequest) error
	Cancel(ctx context.Context, reminderID string) error
}

// DeliverFunc is invoked when a deferred reminder fires.
type DeliverFunc func(ctx context.Context, r models.Reminder) error
