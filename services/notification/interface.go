package notification

import (
	"context"
	"fmt"
	"time"

	"vaxremind/models"
	"vaxremind/services/capability"

	"go.uber.org/zap"
)

// Surface displays notifications. Showing a notification whose tag is already live replaces it.
type Surface interface {
	Show(ctx context.Context, n models.DisplayedNotification) error
	Close(ctx context.Context, tag string) error
}

// Dispatcher renders reminders into displayed notifications.
type Dispatcher interface {
	Dispatch(ctx context.Context, r models.Reminder, isOverdue bool) error
	DispatchPush(ctx context.Context, p models.PushPayload) error
}

// DefaultDispatcher is the production implementation.
type DefaultDispatcher struct {
	surface Surface
	assets  Assets
	enabled bool
	logger  *zap.Logger
	now     func() time.Time
}

func NewDefaultDispatcher(surface Surface, assets Assets, caps capability.Set, logger *zap.Logger) (*DefaultDispatcher, error) {
	if caps.Notifications && surface == nil {
		return nil, fmt.Errorf("notification dispatcher initialization error: surface is nil")
	}
	return &DefaultDispatcher{
		surface: surface,
		assets:  assets,
		enabled: caps.Notifications,
		logger:  logger.Named("dispatcher"),
		now:     time.Now,
	}, nil
}

// Dispatch displays the reminder, replacing any live notification for the same reminder.
func (d *DefaultDispatcher) Dispatch(ctx context.Context, r models.Reminder, isOverdue bool) error {
	if !d.enabled {
		d.logger.Debug("notifications unavailable, skipping reminder", zap.String("reminderId", r.ID))
		return nil
	}
	n := BuildReminderNotification(r, isOverdue, d.assets)
	n.ShownAt = d.now()
	if err := d.surface.Show(ctx, n); err != nil {
		return fmt.Errorf("Dispatch: failed to show reminder %s: %w", r.ID, err)
	}
	d.logger.Info("reminder notification shown",
		zap.String("reminderId", r.ID),
		zap.Bool("overdue", isOverdue),
		zap.Bool("requireInteraction", n.RequireInteraction),
	)
	return nil
}

// DispatchPush displays a notification delivered by an external push message.
func (d *DefaultDispatcher) DispatchPush(ctx context.Context, p models.PushPayload) error {
	if !d.enabled {
		d.logger.Debug("notifications unavailable, skipping push")
		return nil
	}
	n := BuildPushNotification(p, d.assets)
	n.ShownAt = d.now()
	if err := d.surface.Show(ctx, n); err != nil {
		return fmt.Errorf("DispatchPush: failed to show push notification: %w", err)
	}
	d.logger.Info("push notification shown", zap.String("tag", n.Tag))
	return nil
}
