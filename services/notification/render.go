package notification

import (
	"fmt"

	"vaxremind/models"
)

const (
	ActionMarkComplete = "mark-complete"
	ActionSnooze       = "snooze"

	DefaultPushTitle = "Vaccination Reminder"
	DefaultPushBody  = "You have a vaccination reminder."
	DefaultPushTag   = "vaccination-push"

	overdueTitle = "⚠️ Overdue Vaccination"
	onTimeTitle  = "💉 Vaccination Reminder"
)

var defaultVibrate = []int{200, 100, 200}

// Assets are the icon references attached to every notification.
type Assets struct {
	Icon         string
	Badge        string
	CompleteIcon string
	SnoozeIcon   string
}

// BuildReminderNotification renders a due reminder. The tag is the reminder id.
func BuildReminderNotification(r models.Reminder, isOverdue bool, assets Assets) models.DisplayedNotification {
	title := onTimeTitle
	body := fmt.Sprintf("Time for %s at %s", r.Name, r.ScheduledTime)
	if isOverdue {
		title = overdueTitle
		body = fmt.Sprintf("%s was due on %s", r.Name, r.ScheduledDate)
	}

	return models.DisplayedNotification{
		Title:              title,
		Body:               body,
		Icon:               assets.Icon,
		Badge:              assets.Badge,
		Tag:                r.ID,
		RequireInteraction: r.IsCritical(),
		Data: models.NotificationData{
			ReminderID: r.ID,
			IsOverdue:  isOverdue,
		},
		Vibrate: append([]int(nil), defaultVibrate...),
		Actions: []models.NotificationAction{
			{Action: ActionMarkComplete, Title: "Mark as Done", Icon: assets.CompleteIcon},
			{Action: ActionSnooze, Title: "Remind Later", Icon: assets.SnoozeIcon},
		},
	}
}

// BuildPushNotification renders a push message, falling back to the default text.
func BuildPushNotification(p models.PushPayload, assets Assets) models.DisplayedNotification {
	title := p.Title
	if title == "" {
		title = DefaultPushTitle
	}
	body := p.Body
	if body == "" {
		body = DefaultPushBody
	}
	tag := p.ReminderID
	if tag == "" {
		tag = DefaultPushTag
	}

	return models.DisplayedNotification{
		Title: title,
		Body:  body,
		Icon:  assets.Icon,
		Badge: assets.Badge,
		Tag:   tag,
		Data: models.NotificationData{
			ReminderID: p.ReminderID,
			IsOverdue:  p.IsOverdue,
		},
		Vibrate: append([]int(nil), defaultVibrate...),
	}
}
