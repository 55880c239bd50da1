package handlers

import (
	"context"
	"time"

	"vaxremind/services/capability"
	"vaxremind/services/events"
	"vaxremind/services/lifecycle"
	"vaxremind/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// SyncEnqueuer is the subset of *asynq.Client used to queue one-shot syncs.
type SyncEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// LiveTagLister reports the tags of the notifications currently shown.
type LiveTagLister interface {
	Tags(ctx context.Context) ([]string, error)
}

// WorkerHandler turns HTTP requests into background worker events.
type WorkerHandler struct {
	registry     *events.Registry
	lifecycle    *lifecycle.Manager
	queue        SyncEnqueuer
	health       *utils.HealthMonitor
	liveTags     LiveTagLister
	caps         capability.Set
	clientSecret []byte
	tokenTTL     time.Duration
	logger       *zap.Logger
}

// WorkerHandlerOptions carries the optional collaborators. A nil Queue runs syncs inline.
type WorkerHandlerOptions struct {
	Queue        SyncEnqueuer
	Health       *utils.HealthMonitor
	LiveTags     LiveTagLister
	ClientSecret string
	TokenTTL     time.Duration
}

func NewWorkerHandler(registry *events.Registry, lc *lifecycle.Manager, caps capability.Set, opts WorkerHandlerOptions, logger *zap.Logger) *WorkerHandler {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	var secret []byte
	if opts.ClientSecret != "" {
		secret = []byte(opts.ClientSecret)
	}
	return &WorkerHandler{
		registry:     registry,
		lifecycle:    lc,
		queue:        opts.Queue,
		health:       opts.Health,
		liveTags:     opts.LiveTags,
		caps:         caps,
		clientSecret: secret,
		tokenTTL:     ttl,
		logger:       logger.Named("http"),
	}
}
