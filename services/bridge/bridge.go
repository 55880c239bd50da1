// Package bridge handles control and scheduling messages sent by the foreground application.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vaxremind/models"
	"vaxremind/services/capability"
	"vaxremind/services/scheduling"

	"go.uber.org/zap"
)

// ErrMalformedMessage marks a message that is ignored.
var ErrMalformedMessage = errors.New("bridge: malformed message")

// Activator lets a waiting version take over immediately.
type Activator interface {
	SkipWaiting(ctx context.Context) error
}

type Bridge struct {
	activator Activator
	scheduler scheduling.Scheduler
	caps      capability.Set
	logger    *zap.Logger
}

func NewBridge(activator Activator, scheduler scheduling.Scheduler, caps capability.Set, logger *zap.Logger) *Bridge {
	return &Bridge{
		activator: activator,
		scheduler: scheduler,
		caps:      caps,
		logger:    logger.Named("bridge"),
	}
}

// OnMessage decodes and handles a raw message. Malformed and unrecognized messages are ignored.
func (b *Bridge) OnMessage(ctx context.Context, raw []byte) error {
	var msg models.BridgeMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		b.logger.Debug("ignoring undecodable message", zap.Error(err))
		return nil
	}
	return b.Handle(ctx, msg)
}

// Handle acts on a decoded message.
func (b *Bridge) Handle(ctx context.Context, msg models.BridgeMessage) error {
	switch msg.Type {
	case models.MessageActivateNow:
		if b.activator == nil {
			return nil
		}
		if err := b.activator.SkipWaiting(ctx); err != nil {
			return fmt.Errorf("Bridge.Handle: activation failed: %w", err)
		}
		b.logger.Info("waiting version activated on request")
		return nil

	case models.MessageScheduleNotification:
		req, err := scheduleRequest(msg)
		if err != nil {
			b.logger.Debug("ignoring schedule message", zap.Error(err))
			return nil
		}
		if !b.caps.DelayedScheduling || b.scheduler == nil {
			b.logger.Info("delayed scheduling unavailable, skipping", zap.String("reminderId", req.Reminder.ID))
			return nil
		}
		if err := b.scheduler.Schedule(ctx, req); err != nil {
			return fmt.Errorf("Bridge.Handle: scheduling reminder %s: %w", req.Reminder.ID, err)
		}
		b.logger.Info("reminder scheduled", zap.String("reminderId", req.Reminder.ID), zap.Duration("delay", req.Delay))
		return nil

	default:
		b.logger.Debug("ignoring unrecognized message", zap.String("type", msg.Type))
		return nil
	}
}

func scheduleRequest(msg models.BridgeMessage) (models.ScheduleRequest, error) {
	if msg.Reminder == nil || msg.Reminder.ID == "" {
		return models.ScheduleRequest{}, fmt.Errorf("%w: schedule request without reminder", ErrMalformedMessage)
	}
	delay := time.Duration(msg.Delay) * time.Millisecond
	if delay < 0 {
		delay = 0
	}
	return models.ScheduleRequest{Reminder: *msg.Reminder, Delay: delay}, nil
}
