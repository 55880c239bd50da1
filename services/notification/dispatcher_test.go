package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vaxremind/models"
	"vaxremind/services/capability"

	"go.uber.org/zap"
)

func mmr(date, priority string) models.Reminder {
	return models.Reminder{
		ID:            "r1",
		Name:          "MMR Dose",
		ScheduledDate: date,
		ScheduledTime: "09:00",
		Status:        models.StatusPending,
		Priority:      models.ReminderPriority(priority),
	}
}

func newDispatcher(t *testing.T, surface Surface, enabled bool) *DefaultDispatcher {
	t.Helper()
	d, err := NewDefaultDispatcher(surface, Assets{Icon: "/icon.png", Badge: "/badge.png"}, capability.Set{Notifications: enabled}, zap.NewNop())
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	return d
}

func TestDispatchReplacesNotificationWithSameTag(t *testing.T) {
	surface := NewMemorySurface()
	d := newDispatcher(t, surface, true)
	r := mmr("2024-05-03", "normal")

	if err := d.Dispatch(context.Background(), r, false); err != nil {
		t.Fatalf("first dispatch: %v", err)
	}
	if err := d.Dispatch(context.Background(), r, true); err != nil {
		t.Fatalf("second dispatch: %v", err)
	}

	if surface.Shown() != 2 {
		t.Fatalf("expected two show calls, got %d", surface.Shown())
	}
	live := surface.Live()
	if len(live) != 1 {
		t.Fatalf("expected a single live notification, got %d", len(live))
	}
	if live[0].Tag != "r1" || !live[0].Data.IsOverdue {
		t.Fatalf("expected latest notification to replace the first, got %+v", live[0])
	}
}

func TestOverdueRendering(t *testing.T) {
	n := BuildReminderNotification(mmr("2024-05-01", "normal"), true, Assets{})
	if !strings.Contains(n.Title, "Overdue") {
		t.Fatalf("expected overdue title, got %q", n.Title)
	}
	if !strings.Contains(n.Body, "MMR Dose") || !strings.Contains(n.Body, "2024-05-01") {
		t.Fatalf("expected body to mention name and due date, got %q", n.Body)
	}
	if n.Data != (models.NotificationData{ReminderID: "r1", IsOverdue: true}) {
		t.Fatalf("unexpected data %+v", n.Data)
	}
}

func TestOnTimeRendering(t *testing.T) {
	n := BuildReminderNotification(mmr("2024-05-03", "normal"), false, Assets{})
	if strings.Contains(n.Title, "Overdue") || !strings.Contains(n.Title, "Vaccination Reminder") {
		t.Fatalf("expected standard title, got %q", n.Title)
	}
	if !strings.Contains(n.Body, "MMR Dose") || !strings.Contains(n.Body, "09:00") {
		t.Fatalf("expected body to mention name and time, got %q", n.Body)
	}
	if n.Tag != "r1" {
		t.Fatalf("expected tag r1, got %q", n.Tag)
	}
	if len(n.Actions) != 2 || n.Actions[0].Action != ActionMarkComplete || n.Actions[1].Action != ActionSnooze {
		t.Fatalf("unexpected actions %+v", n.Actions)
	}
}

func TestRequireInteractionFollowsPriority(t *testing.T) {
	if !BuildReminderNotification(mmr("2024-05-03", "critical"), false, Assets{}).RequireInteraction {
		t.Fatalf("critical reminder must require interaction")
	}
	if BuildReminderNotification(mmr("2024-05-03", "normal"), false, Assets{}).RequireInteraction {
		t.Fatalf("normal reminder must not require interaction")
	}
}

func TestPushDefaults(t *testing.T) {
	n := BuildPushNotification(models.PushPayload{}, Assets{})
	if n.Title != DefaultPushTitle || n.Body != DefaultPushBody || n.Tag != DefaultPushTag {
		t.Fatalf("unexpected defaults %+v", n)
	}

	custom := BuildPushNotification(models.PushPayload{Title: "Hi", Body: "There", ReminderID: "r9"}, Assets{})
	if custom.Title != "Hi" || custom.Body != "There" || custom.Tag != "r9" {
		t.Fatalf("unexpected push notification %+v", custom)
	}
}

func TestDispatchSkippedWithoutCapability(t *testing.T) {
	surface := NewMemorySurface()
	d := newDispatcher(t, surface, false)
	if err := d.Dispatch(context.Background(), mmr("2024-05-03", "normal"), false); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if err := d.DispatchPush(context.Background(), models.PushPayload{}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if surface.Shown() != 0 {
		t.Fatalf("expected nothing shown, got %d", surface.Shown())
	}
}

type failingSurface struct{}

func (failingSurface) Show(context.Context, models.DisplayedNotification) error {
	return errors.New("surface down")
}
func (failingSurface) Close(context.Context, string) error { return nil }

func TestDispatchWrapsSurfaceErrors(t *testing.T) {
	d := newDispatcher(t, failingSurface{}, true)
	err := d.Dispatch(context.Background(), mmr("2024-05-03", "normal"), false)
	if err == nil || !strings.Contains(err.Error(), "surface down") {
		t.Fatalf("expected wrapped surface error, got %v", err)
	}
}

func TestMultiSurfaceShowsEverywhere(t *testing.T) {
	a, b := NewMemorySurface(), NewMemorySurface()
	multi := MultiSurface{a, b}
	n := BuildReminderNotification(mmr("2024-05-03", "normal"), false, Assets{})
	if err := multi.Show(context.Background(), n); err != nil {
		t.Fatalf("show: %v", err)
	}
	if _, ok := a.Get("r1"); !ok {
		t.Fatalf("expected notification on first surface")
	}
	if err := multi.Close(context.Background(), "r1"); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := b.Get("r1"); ok {
		t.Fatalf("expected notification closed on second surface")
	}
}

func TestNewDispatcherRequiresSurface(t *testing.T) {
	if _, err := NewDefaultDispatcher(nil, Assets{}, capability.Set{Notifications: true}, zap.NewNop()); err == nil {
		t.Fatalf("expected error for nil surface")
	}
}
