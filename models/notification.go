package models

import "time"

// NotificationAction is a button rendered on a displayed notification.
type NotificationAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	Icon   string `json:"icon,omitempty"`
}

// NotificationData travels with a notification and comes back on click.
type NotificationData struct {
	ReminderID string `json:"reminderId"`
	IsOverdue  bool   `json:"isOverdue"`
}

// DisplayedNotification is the display contract handed to a notification surface.
// Tag is the de-duplication key: showing a notification with a live tag replaces it.
type DisplayedNotification struct {
	Title              string               `json:"title"`
	Body               string               `json:"body"`
	Icon               string               `json:"icon"`
	Badge              string               `json:"badge"`
	Tag                string               `json:"tag"`
	RequireInteraction bool                 `json:"requireInteraction"`
	Data               NotificationData     `json:"data"`
	Vibrate            []int                `json:"vibrate,omitempty"`
	Actions            []NotificationAction `json:"actions,omitempty"`
	ShownAt            time.Time            `json:"shownAt"`
}

// PushPayload is the optional content of an externally delivered push message.
type PushPayload struct {
	Title      string `json:"title,omitempty"`
	Body       string `json:"body,omitempty"`
	ReminderID string `json:"reminderId,omitempty"`
	IsOverdue  bool   `json:"isOverdue,omitempty"`
}

// NotificationClick describes a user interaction with a displayed notification.
type NotificationClick struct {
	Action string           `json:"action"`
	Tag    string           `json:"tag,omitempty"`
	Data   NotificationData `json:"data"`
}
