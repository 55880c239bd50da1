// Package events maps host events to their handlers. The registry is built once at startup.
package events

import (
	"context"
	"errors"
	"fmt"

	"vaxremind/models"

	"go.uber.org/zap"
)

type Kind string

const (
	KindInstall           Kind = "install"
	KindActivate          Kind = "activate"
	KindFetch             Kind = "fetch"
	KindPush              Kind = "push"
	KindNotificationClick Kind = "notificationclick"
	KindSync              Kind = "sync"
	KindPeriodicSync      Kind = "periodicsync"
	KindMessage           Kind = "message"
)

var ErrNoHandler = errors.New("events: no handler registered")

// Event carries the payload for one kind; fields unrelated to the kind are empty.
type Event struct {
	Kind    Kind
	Tag     string
	Path    string
	Message []byte
	Click   models.NotificationClick
	Push    models.PushPayload
}

// HandlerFunc runs an event to completion before returning.
type HandlerFunc func(ctx context.Context, ev Event) (any, error)

type Registry struct {
	handlers map[Kind]HandlerFunc
	logger   *zap.Logger
}

// NewRegistry copies handlers; later changes to the map do not affect the registry.
func NewRegistry(handlers map[Kind]HandlerFunc, logger *zap.Logger) *Registry {
	h := make(map[Kind]HandlerFunc, len(handlers))
	for k, fn := range handlers {
		if fn != nil {
			h[k] = fn
		}
	}
	return &Registry{handlers: h, logger: logger.Named("events")}
}

func (r *Registry) Has(kind Kind) bool {
	_, ok := r.handlers[kind]
	return ok
}

// Dispatch runs the handler for ev.Kind. A panicking handler is reported as an error.
func (r *Registry) Dispatch(ctx context.Context, ev Event) (result any, err error) {
	h, ok := r.handlers[ev.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, ev.Kind)
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("event handler panicked", zap.String("kind", string(ev.Kind)), zap.Any("panic", rec))
			result, err = nil, fmt.Errorf("events: %s handler panicked: %v", ev.Kind, rec)
		}
	}()
	return h(ctx, ev)
}
