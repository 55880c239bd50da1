package models

import "time"

// Message kinds accepted from the foreground application.
const (
	MessageActivateNow          = "ACTIVATE_NOW"
	MessageScheduleNotification = "SCHEDULE_NOTIFICATION"
)

// BridgeMessage is the wire form of a foreground message. Delay is in milliseconds.
type BridgeMessage struct {
	Type     string    `json:"type"`
	Reminder *Reminder `json:"reminder,omitempty"`
	Delay    int64     `json:"delay,omitempty"`
}

// ScheduleRequest asks for a reminder to be displayed after Delay.
type ScheduleRequest struct {
	Reminder Reminder
	Delay    time.Duration
}
