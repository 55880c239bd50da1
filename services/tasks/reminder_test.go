package tasks

import (
	"testing"
	"time"

	"vaxremind/models"
)

func TestDeferredReminderTaskRoundTrip(t *testing.T) {
	r := models.Reminder{ID: "r1", Name: "MMR Dose", ScheduledDate: "2024-05-03", ScheduledTime: "09:00", Status: models.StatusPending}
	task, opts, err := NewDeferredReminderTask(r, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TypeDeferredReminder {
		t.Fatalf("unexpected type %q", task.Type())
	}
	if len(opts) != 3 {
		t.Fatalf("expected queue, process-at and task-id options, got %d", len(opts))
	}
	got, err := ParseDeferredReminder(task)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != r {
		t.Fatalf("expected %+v, got %+v", r, got)
	}
}

func TestSyncTaskCarriesTag(t *testing.T) {
	task, _, err := NewSyncTask("vaccination-reminder-sync", false)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	p, err := ParseSyncPayload(task)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Tag != "vaccination-reminder-sync" || p.Periodic {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestDeferredTaskID(t *testing.T) {
	if got := DeferredTaskID("42"); got != "deferred:42" {
		t.Fatalf("unexpected task id %q", got)
	}
}
