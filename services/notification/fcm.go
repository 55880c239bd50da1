package notification

import (
	"context"
	"fmt"
	"strconv"

	"vaxremind/models"

	"firebase.google.com/go/v4/messaging"
)

// Sender is the subset of the FCM client the surface uses.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMSurface delivers notifications to every device subscribed to a topic.
// The tag is mapped to the web push tag, the Android tag and the APNs collapse id.
type FCMSurface struct {
	sender Sender
	topic  string
}

func NewFCMSurface(sender Sender, topic string) (*FCMSurface, error) {
	if sender == nil || topic == "" {
		return nil, fmt.Errorf("fcm surface initialization error: sender or topic missing")
	}
	return &FCMSurface{sender: sender, topic: topic}, nil
}

func (s *FCMSurface) Show(ctx context.Context, n models.DisplayedNotification) error {
	if _, err := s.sender.Send(ctx, s.buildMessage(n)); err != nil {
		return fmt.Errorf("FCMSurface.Show: failed to send FCM message: %w", err)
	}
	return nil
}

// Close asks subscribed clients to dismiss the notification; FCM cannot retract a delivered message.
func (s *FCMSurface) Close(ctx context.Context, tag string) error {
	msg := &messaging.Message{
		Topic: s.topic,
		Data: map[string]string{
			"type": "close",
			"tag":  tag,
		},
	}
	if _, err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("FCMSurface.Close: failed to send FCM message: %w", err)
	}
	return nil
}

func (s *FCMSurface) buildMessage(n models.DisplayedNotification) *messaging.Message {
	data := map[string]string{
		"type":       "reminder",
		"tag":        n.Tag,
		"reminderId": n.Data.ReminderID,
		"isOverdue":  strconv.FormatBool(n.Data.IsOverdue),
	}

	actions := make([]*messaging.WebpushNotificationAction, 0, len(n.Actions))
	for _, a := range n.Actions {
		actions = append(actions, &messaging.WebpushNotificationAction{
			Action: a.Action,
			Title:  a.Title,
			Icon:   a.Icon,
		})
	}

	priority := "normal"
	apnsPriority := "5"
	if n.RequireInteraction {
		priority = "high"
		apnsPriority = "10"
	}

	return &messaging.Message{
		Topic: s.topic,
		Data:  data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title:              n.Title,
				Body:               n.Body,
				Icon:               n.Icon,
				Badge:              n.Badge,
				Tag:                n.Tag,
				RequireInteraction: n.RequireInteraction,
				Vibrate:            n.Vibrate,
				Actions:            actions,
				Data:               n.Data,
			},
			Data: data,
		},
		Android: &messaging.AndroidConfig{
			CollapseKey: n.Tag,
			Priority:    priority,
			Notification: &messaging.AndroidNotification{
				Title:     n.Title,
				Body:      n.Body,
				Tag:       n.Tag,
				ChannelID: "vaccination_reminders",
				Sticky:    n.RequireInteraction,
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":    apnsPriority,
				"apns-push-type":   "alert",
				"apns-collapse-id": n.Tag,
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{Title: n.Title, Body: n.Body},
					Sound: "default",
				},
			},
		},
	}
}
