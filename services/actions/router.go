// Package actions turns notification clicks into navigations back into the application.
package actions

import (
	"context"
	"net/url"

	"vaxremind/models"
	"vaxremind/services/notification"

	"go.uber.org/zap"
)

// Closer dismisses a displayed notification.
type Closer interface {
	Close(ctx context.Context, tag string) error
}

// Navigation is where the foreground application should be opened.
type Navigation struct {
	URL string `json:"navigate"`
}

// Router encodes click intent into a dashboard URL. It never changes reminder state itself.
type Router struct {
	closer    Closer
	dashboard string
	logger    *zap.Logger
}

func NewRouter(closer Closer, dashboardPath string, logger *zap.Logger) *Router {
	return &Router{closer: closer, dashboard: dashboardPath, logger: logger.Named("actions")}
}

// OnNotificationClick closes the clicked notification, then returns the navigation for its action.
// Unknown actions navigate like a body click.
func (r *Router) OnNotificationClick(ctx context.Context, click models.NotificationClick) Navigation {
	tag := click.Tag
	if tag == "" {
		tag = click.Data.ReminderID
	}
	if tag != "" && r.closer != nil {
		if err := r.closer.Close(ctx, tag); err != nil {
			r.logger.Warn("closing notification failed", zap.String("tag", tag), zap.Error(err))
		}
	}

	switch click.Action {
	case notification.ActionMarkComplete:
		return r.withIntent("complete", click.Data.ReminderID)
	case notification.ActionSnooze:
		return r.withIntent("snooze", click.Data.ReminderID)
	case "":
		return Navigation{URL: r.dashboard}
	default:
		r.logger.Debug("unknown notification action", zap.String("action", click.Action))
		return Navigation{URL: r.dashboard}
	}
}

func (r *Router) withIntent(intent, reminderID string) Navigation {
	q := url.Values{}
	q.Set("action", intent)
	q.Set("id", reminderID)
	return Navigation{URL: r.dashboard + "?" + q.Encode()}
}
