package reminderRepo

import (
	"context"

	"vaxremind/models"
)

// ReminderRepository is the read side of the reminder store. This service never writes reminders.
type ReminderRepository interface {
	List(ctx context.Context) ([]models.Reminder, error)
}

// StaticRepo serves a fixed collection.
type StaticRepo []models.Reminder

func (s StaticRepo) List(_ context.Context) ([]models.Reminder, error) {
	return append([]models.Reminder(nil), s...), nil
}
