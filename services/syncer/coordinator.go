// Package syncer runs the read-evaluate-dispatch pass on sync triggers.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	reminderRepo "vaxremind/database/repository/reminder"
	"vaxremind/services/evaluator"
	"vaxremind/services/notification"

	"go.uber.org/zap"
)

const (
	OneShotTag  = "vaccination-reminder-sync"
	PeriodicTag = "vaccination-reminder-check"
)

// ErrSyncEvaluationFailed wraps anything that went wrong during a pass.
var ErrSyncEvaluationFailed = errors.New("syncer: sync evaluation failed")

// PassResult summarizes one evaluation pass.
type PassResult struct {
	Evaluated  int
	Due        int
	Overdue    int
	Dispatched int
}

// Coordinator reads the reminder store, evaluates it and dispatches what is due.
type Coordinator struct {
	store      reminderRepo.ReminderRepository
	dispatcher notification.Dispatcher
	location   *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

// NewCoordinator builds a coordinator. A nil store is treated as an empty collection.
func NewCoordinator(store reminderRepo.ReminderRepository, dispatcher notification.Dispatcher, location *time.Location, logger *zap.Logger) *Coordinator {
	if location == nil {
		location = time.Local
	}
	return &Coordinator{
		store:      store,
		dispatcher: dispatcher,
		location:   location,
		now:        time.Now,
		logger:     logger.Named("sync"),
	}
}

// OnOneShotSync runs a pass when tag is the reminder-sync identifier. Failures are logged, never returned.
func (c *Coordinator) OnOneShotSync(ctx context.Context, tag string) {
	if tag != OneShotTag {
		c.logger.Debug("ignoring one-shot sync", zap.String("tag", tag))
		return
	}
	c.runLogged(ctx, tag)
}

// OnPeriodicSync runs a pass when tag is the periodic reminder-check identifier.
func (c *Coordinator) OnPeriodicSync(ctx context.Context, tag string) {
	if tag != PeriodicTag {
		c.logger.Debug("ignoring periodic sync", zap.String("tag", tag))
		return
	}
	c.runLogged(ctx, tag)
}

func (c *Coordinator) runLogged(ctx context.Context, tag string) {
	res, err := c.RunPass(ctx)
	if err != nil {
		c.logger.Error("reminder sync failed", zap.String("tag", tag), zap.Error(err))
		return
	}
	c.logger.Info("reminder sync complete",
		zap.String("tag", tag),
		zap.Int("evaluated", res.Evaluated),
		zap.Int("due", res.Due),
		zap.Int("overdue", res.Overdue),
		zap.Int("dispatched", res.Dispatched),
	)
}

// RunPass performs one pass. Every due reminder is attempted even if an earlier dispatch fails.
func (c *Coordinator) RunPass(ctx context.Context) (res PassResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrSyncEvaluationFailed, r)
		}
	}()

	if c.store == nil {
		return PassResult{}, nil
	}
	reminders, err := c.store.List(ctx)
	if err != nil {
		return PassResult{}, fmt.Errorf("%w: reading reminders: %w", ErrSyncEvaluationFailed, err)
	}

	due := evaluator.Evaluate(reminders, c.now().In(c.location))
	res = PassResult{Evaluated: len(reminders), Due: len(due)}

	var errs []error
	for _, d := range due {
		if d.Result.IsOverdue {
			res.Overdue++
		}
		if err := c.dispatcher.Dispatch(ctx, d.Reminder, d.Result.IsOverdue); err != nil {
			errs = append(errs, err)
			continue
		}
		res.Dispatched++
	}
	if len(errs) > 0 {
		return res, fmt.Errorf("%w: %w", ErrSyncEvaluationFailed, errors.Join(errs...))
	}
	return res, nil
}
