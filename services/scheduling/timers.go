package scheduling

import (
	"context"
	"sync"
	"time"

	"vaxremind/models"

	"go.uber.org/zap"
)

type pendingTimer struct {
	timer *time.Timer
}

// TimerRegistry keeps one in-process timer per reminder id.
// Pending deliveries are lost if the process exits before they fire.
type TimerRegistry struct {
	mu      sync.Mutex
	timers  map[string]*pendingTimer
	deliver DeliverFunc
	baseCtx context.Context
	logger  *zap.Logger
}

// NewTimerRegistry creates a registry whose deliveries run under baseCtx.
func NewTimerRegistry(baseCtx context.Context, deliver DeliverFunc, logger *zap.Logger) *TimerRegistry {
	return &TimerRegistry{
		timers:  make(map[string]*pendingTimer),
		deliver: deliver,
		baseCtx: baseCtx,
		logger:  logger.Named("timers"),
	}
}

func (t *TimerRegistry) Schedule(_ context.Context, req models.ScheduleRequest) error {
	delay := req.Delay
	if delay < 0 {
		delay = 0
	}
	r := req.Reminder

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.timers[r.ID]; ok {
		prev.timer.Stop()
		t.logger.Debug("replacing pending delivery", zap.String("reminderId", r.ID))
	}

	entry := &pendingTimer{}
	entry.timer = time.AfterFunc(delay, func() {
		t.mu.Lock()
		if t.timers[r.ID] != entry {
			t.mu.Unlock()
			return
		}
		delete(t.timers, r.ID)
		t.mu.Unlock()

		if err := t.deliver(t.baseCtx, r); err != nil {
			t.logger.Error("deferred delivery failed", zap.String("reminderId", r.ID), zap.Error(err))
		}
	})
	t.timers[r.ID] = entry
	return nil
}

func (t *TimerRegistry) Cancel(_ context.Context, reminderID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if entry, ok := t.timers[reminderID]; ok {
		entry.timer.Stop()
		delete(t.timers, reminderID)
	}
	return nil
}

// Pending returns the number of deliveries that have not fired yet.
func (t *TimerRegistry) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}

// Stop cancels every pending delivery.
func (t *TimerRegistry) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, entry := range t.timers {
		entry.timer.Stop()
		delete(t.timers, id)
	}
}
