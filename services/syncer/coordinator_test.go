package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	reminderRepo "vaxremind/database/repository/reminder"
	"vaxremind/models"
	"vaxremind/services/capability"
	"vaxremind/services/notification"

	"go.uber.org/zap"
)

type errStore struct{ err error }

func (e errStore) List(context.Context) ([]models.Reminder, error) { return nil, e.err }

type panicStore struct{}

func (panicStore) List(context.Context) ([]models.Reminder, error) { panic("store exploded") }

func fixedNow(t *testing.T, value string) func() time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04", value, time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return func() time.Time { return ts }
}

func newCoordinator(t *testing.T, store reminderRepo.ReminderRepository) (*Coordinator, *notification.MemorySurface) {
	t.Helper()
	surface := notification.NewMemorySurface()
	d, err := notification.NewDefaultDispatcher(surface, notification.Assets{}, capability.Set{Notifications: true}, zap.NewNop())
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}
	c := NewCoordinator(store, d, time.UTC, zap.NewNop())
	c.now = fixedNow(t, "2024-05-03T10:00")
	return c, surface
}

var sample = reminderRepo.StaticRepo{
	{ID: "r1", Name: "MMR Dose", ScheduledDate: "2024-05-01", ScheduledTime: "09:00", Status: models.StatusPending, Priority: models.PriorityNormal},
	{ID: "r2", Name: "Polio", ScheduledDate: "2024-05-03", ScheduledTime: "09:00", Status: models.StatusPending, Priority: models.PriorityCritical},
	{ID: "r3", Name: "Hep B", ScheduledDate: "2024-05-03", ScheduledTime: "11:00", Status: models.StatusPending},
	{ID: "r4", Name: "DTaP", ScheduledDate: "2024-04-01", ScheduledTime: "09:00", Status: models.StatusCompleted},
}

func TestOneShotSyncDispatchesDueReminders(t *testing.T) {
	c, surface := newCoordinator(t, sample)
	c.OnOneShotSync(context.Background(), OneShotTag)

	live := surface.Live()
	if len(live) != 2 {
		t.Fatalf("expected two notifications, got %d", len(live))
	}
	r1, _ := surface.Get("r1")
	if !r1.Data.IsOverdue {
		t.Fatalf("expected r1 overdue")
	}
	r2, _ := surface.Get("r2")
	if r2.Data.IsOverdue || !r2.RequireInteraction {
		t.Fatalf("expected r2 on time and sticky, got %+v", r2)
	}
}

func TestPeriodicSyncIsIdempotent(t *testing.T) {
	c, surface := newCoordinator(t, sample)
	c.OnPeriodicSync(context.Background(), PeriodicTag)
	c.OnPeriodicSync(context.Background(), PeriodicTag)

	if len(surface.Live()) != 2 {
		t.Fatalf("expected repeated passes to keep one notification per reminder, got %d", len(surface.Live()))
	}
	if surface.Shown() != 4 {
		t.Fatalf("expected each pass to re-show, got %d", surface.Shown())
	}
}

func TestUnknownTagsIgnored(t *testing.T) {
	c, surface := newCoordinator(t, sample)
	c.OnOneShotSync(context.Background(), PeriodicTag)
	c.OnPeriodicSync(context.Background(), OneShotTag)
	c.OnOneShotSync(context.Background(), "something-else")
	if surface.Shown() != 0 {
		t.Fatalf("expected no dispatch for mismatched tags, got %d", surface.Shown())
	}
}

func TestRunPassCounts(t *testing.T) {
	c, _ := newCoordinator(t, sample)
	res, err := c.RunPass(context.Background())
	if err != nil {
		t.Fatalf("run pass: %v", err)
	}
	want := PassResult{Evaluated: 4, Due: 2, Overdue: 1, Dispatched: 2}
	if res != want {
		t.Fatalf("expected %+v, got %+v", want, res)
	}
}

func TestMissingStoreMeansNothingDue(t *testing.T) {
	c, surface := newCoordinator(t, nil)
	res, err := c.RunPass(context.Background())
	if err != nil || res != (PassResult{}) {
		t.Fatalf("expected empty pass, got %+v %v", res, err)
	}
	c.OnOneShotSync(context.Background(), OneShotTag)
	if surface.Shown() != 0 {
		t.Fatalf("expected nothing shown")
	}
}

func TestStoreFailureIsContained(t *testing.T) {
	c, _ := newCoordinator(t, errStore{err: errors.New("mongo down")})
	_, err := c.RunPass(context.Background())
	if !errors.Is(err, ErrSyncEvaluationFailed) {
		t.Fatalf("expected ErrSyncEvaluationFailed, got %v", err)
	}
	// Must not panic and must leave the coordinator usable.
	c.OnOneShotSync(context.Background(), OneShotTag)
	c.store = sample
	if _, err := c.RunPass(context.Background()); err != nil {
		t.Fatalf("expected later pass to succeed, got %v", err)
	}
}

func TestPanicIsContained(t *testing.T) {
	c, _ := newCoordinator(t, panicStore{})
	_, err := c.RunPass(context.Background())
	if !errors.Is(err, ErrSyncEvaluationFailed) {
		t.Fatalf("expected ErrSyncEvaluationFailed, got %v", err)
	}
	c.OnPeriodicSync(context.Background(), PeriodicTag)
}
