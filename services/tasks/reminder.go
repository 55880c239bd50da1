package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"vaxremind/models"

	"github.com/hibiken/asynq"
)

const (
	TypeReminderSync     = "reminder:sync"
	TypeDeferredReminder = "reminder:deferred"

	QueueDefault = "default"
)

// SyncPayload carries a sync trigger tag through the queue.
type SyncPayload struct {
	Tag      string `json:"tag"`
	Periodic bool   `json:"periodic"`
}

// NewSyncTask builds a one-shot sync trigger. Sync tasks are not retried: the next trigger is the retry.
func NewSyncTask(tag string, periodic bool) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(SyncPayload{Tag: tag, Periodic: periodic})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderSync, b)
	opts := []asynq.Option{asynq.Queue(QueueDefault), asynq.MaxRetry(0)}
	return task, opts, nil
}

// DeferredTaskID is the queue task id for a reminder's deferred delivery.
func DeferredTaskID(reminderID string) string {
	return fmt.Sprintf("deferred:%s", reminderID)
}

// NewDeferredReminderTask builds a delivery of r at fireAt, keyed by reminder id.
func NewDeferredReminderTask(r models.Reminder, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeDeferredReminder, b)
	opts := []asynq.Option{
		asynq.Queue(QueueDefault),
		asynq.ProcessAt(fireAt),
		asynq.TaskID(DeferredTaskID(r.ID)),
	}
	return task, opts, nil
}

func ParseSyncPayload(task *asynq.Task) (SyncPayload, error) {
	var p SyncPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return SyncPayload{}, fmt.Errorf("invalid sync payload: %w", err)
	}
	return p, nil
}

func ParseDeferredReminder(task *asynq.Task) (models.Reminder, error) {
	var r models.Reminder
	if err := json.Unmarshal(task.Payload(), &r); err != nil {
		return models.Reminder{}, fmt.Errorf("invalid deferred reminder payload: %w", err)
	}
	return r, nil
}
