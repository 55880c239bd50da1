package actions

import (
	"context"
	"testing"

	"vaxremind/models"
	"vaxremind/services/notification"

	"go.uber.org/zap"
)

func TestClickNavigation(t *testing.T) {
	cases := []struct {
		action string
		want   string
	}{
		{"mark-complete", "/vaccination-dashboard?action=complete&id=42"},
		{"snooze", "/vaccination-dashboard?action=snooze&id=42"},
		{"", "/vaccination-dashboard"},
		{"dance", "/vaccination-dashboard"},
	}
	for _, tc := range cases {
		surface := notification.NewMemorySurface()
		_ = surface.Show(context.Background(), models.DisplayedNotification{Tag: "42"})
		r := NewRouter(surface, "/vaccination-dashboard", zap.NewNop())

		nav := r.OnNotificationClick(context.Background(), models.NotificationClick{
			Action: tc.action,
			Data:   models.NotificationData{ReminderID: "42"},
		})
		if nav.URL != tc.want {
			t.Fatalf("action %q: expected %q, got %q", tc.action, tc.want, nav.URL)
		}
		if _, ok := surface.Get("42"); ok {
			t.Fatalf("action %q: notification must be closed", tc.action)
		}
	}
}

func TestClickClosesExplicitTag(t *testing.T) {
	surface := notification.NewMemorySurface()
	_ = surface.Show(context.Background(), models.DisplayedNotification{Tag: notification.DefaultPushTag})
	r := NewRouter(surface, "/vaccination-dashboard", zap.NewNop())

	nav := r.OnNotificationClick(context.Background(), models.NotificationClick{Tag: notification.DefaultPushTag})
	if nav.URL != "/vaccination-dashboard" {
		t.Fatalf("unexpected navigation %q", nav.URL)
	}
	if len(surface.Live()) != 0 {
		t.Fatalf("expected push notification closed")
	}
}

func TestClickEscapesReminderID(t *testing.T) {
	r := NewRouter(nil, "/vaccination-dashboard", zap.NewNop())
	nav := r.OnNotificationClick(context.Background(), models.NotificationClick{
		Action: "snooze",
		Data:   models.NotificationData{ReminderID: "a b&c"},
	})
	if nav.URL != "/vaccination-dashboard?action=snooze&id=a+b%26c" {
		t.Fatalf("unexpected navigation %q", nav.URL)
	}
}
