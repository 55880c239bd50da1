package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vaxremind/models"
	"vaxremind/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the subset of *asynq.Client used here.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskDeleter is the subset of *asynq.Inspector used here.
type TaskDeleter interface {
	DeleteTask(queue, id string) error
}

// QueueScheduler persists deferred deliveries in the asynq queue so they survive restarts.
type QueueScheduler struct {
	client    Enqueuer
	inspector TaskDeleter
	now       func() time.Time
	logger    *zap.Logger
}

func NewQueueScheduler(client Enqueuer, inspector TaskDeleter, logger *zap.Logger) *QueueScheduler {
	return &QueueScheduler{
		client:    client,
		inspector: inspector,
		now:       time.Now,
		logger:    logger.Named("queue-scheduler"),
	}
}

func (q *QueueScheduler) Schedule(ctx context.Context, req models.ScheduleRequest) error {
	if err := q.Cancel(ctx, req.Reminder.ID); err != nil {
		return err
	}

	delay := req.Delay
	if delay < 0 {
		delay = 0
	}
	task, opts, err := tasks.NewDeferredReminderTask(req.Reminder, q.now().Add(delay))
	if err != nil {
		return fmt.Errorf("QueueScheduler.Schedule: failed to build task: %w", err)
	}
	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("QueueScheduler.Schedule: failed to enqueue reminder %s: %w", req.Reminder.ID, err)
	}
	q.logger.Debug("deferred delivery enqueued", zap.String("reminderId", req.Reminder.ID), zap.Time("processAt", info.NextProcessAt))
	return nil
}

// Cancel removes a pending delivery; a missing task is not an error.
func (q *QueueScheduler) Cancel(_ context.Context, reminderID string) error {
	err := q.inspector.DeleteTask(tasks.QueueDefault, tasks.DeferredTaskID(reminderID))
	if err == nil || errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return fmt.Errorf("QueueScheduler.Cancel: failed to delete pending reminder %s: %w", reminderID, err)
}
