package cron

import (
	"context"
	"time"

	"vaxremind/services/events"
	"vaxremind/services/syncer"

	"go.uber.org/zap"
)

// StartPeriodicSync fires the periodic reminder check every interval until ctx is cancelled.
func StartPeriodicSync(ctx context.Context, interval time.Duration, registry *events.Registry, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("periodic reminder check started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("periodic reminder check stopped")
			return
		case <-ticker.C:
			if _, err := registry.Dispatch(ctx, events.Event{Kind: events.KindPeriodicSync, Tag: syncer.PeriodicTag}); err != nil {
				logger.Error("periodic reminder check failed", zap.Error(err))
			}
		}
	}
}
