package models

// ReminderStatus is the lifecycle state of a reminder as written by the foreground app.
type ReminderStatus string

const (
	StatusPending   ReminderStatus = "pending"
	StatusCompleted ReminderStatus = "completed"
	StatusSnoozed   ReminderStatus = "snoozed"
)

// ReminderPriority controls how persistent a displayed notification is.
type ReminderPriority string

const (
	PriorityNormal   ReminderPriority = "normal"
	PriorityCritical ReminderPriority = "critical"
)

// Reminder is a vaccination reminder record. The store owns it; this service only reads it.
type Reminder struct {
	ID            string           `json:"id" bson:"id"`
	Name          string           `json:"name" bson:"name"`
	Description   string           `json:"description,omitempty" bson:"description,omitempty"`
	ScheduledDate string           `json:"scheduledDate" bson:"scheduledDate"` // YYYY-MM-DD
	ScheduledTime string           `json:"scheduledTime" bson:"scheduledTime"` // HH:MM, 24h
	Status        ReminderStatus   `json:"status" bson:"status"`
	Priority      ReminderPriority `json:"priority" bson:"priority"`
}

func (r Reminder) IsPending() bool {
	return r.Status == StatusPending
}

func (r Reminder) IsCritical() bool {
	return r.Priority == PriorityCritical
}

// DueEvaluation is derived on every evaluation pass and never stored.
type DueEvaluation struct {
	Due       bool `json:"due"`
	IsOverdue bool `json:"isOverdue"`
}

// DueReminder pairs a reminder with the result that made it due.
type DueReminder struct {
	Reminder Reminder      `json:"reminder"`
	Result   DueEvaluation `json:"result"`
}
