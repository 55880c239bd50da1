// Package worker binds the background components to the event registry.
package worker

import (
	"context"

	"vaxremind/services/actions"
	"vaxremind/services/bridge"
	"vaxremind/services/events"
	"vaxremind/services/lifecycle"
	"vaxremind/services/notification"
	"vaxremind/services/offline"
	"vaxremind/services/syncer"

	"go.uber.org/zap"
)

// Components are the collaborators the handlers delegate to.
type Components struct {
	CacheName  string
	Manifest   []string
	Lifecycle  *lifecycle.Manager
	Offline    *offline.Manager
	Dispatcher notification.Dispatcher
	Router     *actions.Router
	Sync       *syncer.Coordinator
	Bridge     *bridge.Bridge
}

// NewRegistry builds the handler registry for every event kind.
func NewRegistry(c Components, logger *zap.Logger) *events.Registry {
	return events.NewRegistry(map[events.Kind]events.HandlerFunc{
		events.KindInstall: func(ctx context.Context, _ events.Event) (any, error) {
			c.Lifecycle.Restore(c.CacheName)
			return c.Lifecycle.Install(ctx, c.CacheName, c.Manifest)
		},
		events.KindActivate: func(ctx context.Context, _ events.Event) (any, error) {
			return nil, c.Lifecycle.SkipWaiting(ctx)
		},
		events.KindFetch: func(ctx context.Context, ev events.Event) (any, error) {
			return c.Offline.Serve(ctx, c.Lifecycle.ActiveCacheName(), ev.Path)
		},
		events.KindPush: func(ctx context.Context, ev events.Event) (any, error) {
			return nil, c.Dispatcher.DispatchPush(ctx, ev.Push)
		},
		events.KindNotificationClick: func(ctx context.Context, ev events.Event) (any, error) {
			return c.Router.OnNotificationClick(ctx, ev.Click), nil
		},
		events.KindSync: func(ctx context.Context, ev events.Event) (any, error) {
			c.Sync.OnOneShotSync(ctx, ev.Tag)
			return nil, nil
		},
		events.KindPeriodicSync: func(ctx context.Context, ev events.Event) (any, error) {
			c.Sync.OnPeriodicSync(ctx, ev.Tag)
			return nil, nil
		},
		events.KindMessage: func(ctx context.Context, ev events.Event) (any, error) {
			return nil, c.Bridge.OnMessage(ctx, ev.Message)
		},
	}, logger)
}
