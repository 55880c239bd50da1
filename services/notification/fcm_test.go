package notification

import (
	"context"
	"testing"

	"firebase.google.com/go/v4/messaging"
)

type recordingSender struct {
	messages []*messaging.Message
}

func (s *recordingSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	s.messages = append(s.messages, m)
	return "projects/test/messages/1", nil
}

func TestFCMSurfaceMapsDisplayContract(t *testing.T) {
	sender := &recordingSender{}
	surface, err := NewFCMSurface(sender, "reminders")
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}

	n := BuildReminderNotification(mmr("2024-05-01", "critical"), true, Assets{Icon: "/i.png", Badge: "/b.png"})
	if err := surface.Show(context.Background(), n); err != nil {
		t.Fatalf("show: %v", err)
	}

	if len(sender.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.messages))
	}
	msg := sender.messages[0]
	if msg.Topic != "reminders" {
		t.Fatalf("unexpected topic %q", msg.Topic)
	}
	web := msg.Webpush.Notification
	if web.Tag != "r1" || !web.RequireInteraction || web.Icon != "/i.png" || web.Badge != "/b.png" {
		t.Fatalf("unexpected webpush notification %+v", web)
	}
	if len(web.Actions) != 2 || web.Actions[0].Action != ActionMarkComplete {
		t.Fatalf("unexpected actions %+v", web.Actions)
	}
	if msg.Android.CollapseKey != "r1" || msg.Android.Notification.Tag != "r1" || !msg.Android.Notification.Sticky {
		t.Fatalf("unexpected android config %+v", msg.Android)
	}
	if msg.APNS.Headers["apns-collapse-id"] != "r1" {
		t.Fatalf("unexpected apns headers %+v", msg.APNS.Headers)
	}
	if msg.Data["reminderId"] != "r1" || msg.Data["isOverdue"] != "true" {
		t.Fatalf("unexpected data %+v", msg.Data)
	}
}

func TestFCMSurfaceCloseSendsDismissal(t *testing.T) {
	sender := &recordingSender{}
	surface, _ := NewFCMSurface(sender, "reminders")
	if err := surface.Close(context.Background(), "r1"); err != nil {
		t.Fatalf("close: %v", err)
	}
	msg := sender.messages[0]
	if msg.Data["type"] != "close" || msg.Data["tag"] != "r1" || msg.Webpush != nil {
		t.Fatalf("unexpected close message %+v", msg)
	}
}
