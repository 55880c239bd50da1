package cron

import (
	"context"
	"time"

	"vaxremind/services/events"
	"vaxremind/services/scheduling"
	"vaxremind/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewReminderWorker builds the queue worker for sync triggers and durable deferred deliveries.
func NewReminderWorker(redisOpts asynq.RedisClientOpt, registry *events.Registry, deliver scheduling.DeliverFunc, logger *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				tasks.QueueDefault: 1,
			},
			Logger: logger.Named("asynq").Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderSync, handleSyncTask(registry, logger))
	mux.HandleFunc(tasks.TypeDeferredReminder, handleDeferredTask(deliver, logger))
	return srv, mux
}

// RunReminderWorker starts the worker, retrying startup with backoff, and shuts it down when ctx ends.
func RunReminderWorker(ctx context.Context, srv *asynq.Server, mux *asynq.ServeMux, logger *zap.Logger) {
	const maxAttempts = 5

	started := false
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err := srv.Start(mux); err != nil {
			logger.Warn("failed to start reminder worker", zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
			continue
		}
		started = true
		break
	}
	if !started {
		logger.Error("reminder worker not started, queued syncs and deferred reminders will not run")
		return
	}

	logger.Info("reminder worker started")
	<-ctx.Done()
	srv.Shutdown()
	logger.Info("reminder worker stopped")
}

func handleSyncTask(registry *events.Registry, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseSyncPayload(task)
		if err != nil {
			logger.Warn("dropping sync task", zap.Error(err))
			return asynq.SkipRetry
		}

		kind := events.KindSync
		if p.Periodic {
			kind = events.KindPeriodicSync
		}
		if _, err := registry.Dispatch(ctx, events.Event{Kind: kind, Tag: p.Tag}); err != nil {
			logger.Error("sync task failed", zap.String("tag", p.Tag), zap.Error(err))
		}
		return nil
	}
}

func handleDeferredTask(deliver scheduling.DeliverFunc, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		r, err := tasks.ParseDeferredReminder(task)
		if err != nil {
			logger.Warn("dropping deferred reminder task", zap.Error(err))
			return asynq.SkipRetry
		}
		logger.Info("deferred reminder due", zap.String("reminderId", r.ID))
		return deliver(ctx, r)
	}
}
