package cmd

import (
	"context"
	"fmt"
	"time"

	"vaxremind/config"
	"vaxremind/database"
	reminderRepo "vaxremind/database/repository/reminder"
	"vaxremind/models"
	"vaxremind/services/actions"
	"vaxremind/services/bridge"
	"vaxremind/services/capability"
	"vaxremind/services/events"
	"vaxremind/services/lifecycle"
	"vaxremind/services/notification"
	"vaxremind/services/offline"
	"vaxremind/services/scheduling"
	"vaxremind/services/syncer"
	"vaxremind/services/worker"
	"vaxremind/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	fetchTimeout   = 10 * time.Second
	liveTagTTL     = 24 * time.Hour
	completeIcon   = "/icons/checkmark.png"
	snoozeIcon     = "/icons/snooze.png"
	disconnectWait = 5 * time.Second
)

// app is the fully wired worker.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	caps   capability.Set

	mongo       *mongo.Client
	notifyRedis *redis.Client
	queueRedis  *redis.Client
	queueOpts   asynq.RedisClientOpt
	queue       *asynq.Client
	inspector   *asynq.Inspector

	store      reminderRepo.ReminderRepository
	live       *notification.LiveRegistry
	dispatcher *notification.DefaultDispatcher
	deliver    scheduling.DeliverFunc
	timers     *scheduling.TimerRegistry
	offline    *offline.Manager
	lifecycle  *lifecycle.Manager
	sync       *syncer.Coordinator
	registry   *events.Registry
	health     *utils.HealthMonitor
}

// queueAvailable reports whether the asynq queue is reachable.
func (a *app) queueAvailable() bool {
	return a.queue != nil
}

// connectStore opens the reminder store. An unset or unreachable store leaves a.store nil, so every pass
// finds nothing due; the health monitor keeps pinging the client and reports it down.
func (a *app) connectStore(ctx context.Context) {
	if a.cfg.DatabaseURL == "" {
		a.logger.Warn("DATABASE_URL not set, reminder store unavailable")
		return
	}
	client, err := database.Open(ctx, a.cfg.DatabaseURL)
	if err != nil {
		a.logger.Warn("reminder store unavailable", zap.Error(err))
		return
	}
	a.mongo = client
	if err := database.Ping(ctx, client); err != nil {
		a.logger.Warn("reminder store unreachable, sync passes will find nothing due", zap.Error(err))
		return
	}
	a.store = reminderRepo.NewMongoReminderRepo(client, a.cfg.DatabaseName, a.cfg.ReminderCollection)
}

// connectRedis opens the live-notification registry and the queue. Either may be absent.
func (a *app) connectRedis() {
	if a.cfg.RedisAddr == "" {
		a.logger.Warn("REDIS_ADDR not set, live notification registry and queue unavailable")
		return
	}
	notify, err := utils.NewRedisClient(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisNotifyDB)
	if err != nil {
		a.logger.Warn("live notification registry unavailable", zap.Error(err))
	} else {
		a.notifyRedis = notify
	}

	queueRedis, err := utils.NewRedisClient(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisQueueDB)
	if err != nil {
		a.logger.Warn("task queue unavailable", zap.Error(err))
		return
	}
	a.queueRedis = queueRedis
	a.queueOpts = asynq.RedisClientOpt{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisQueueDB,
	}
	a.queue = asynq.NewClient(a.queueOpts)
	a.inspector = asynq.NewInspector(a.queueOpts)
}

// newApp wires every component. baseCtx bounds the in-process timers.
func newApp(baseCtx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	a.connectStore(baseCtx)
	a.connectRedis()

	a.caps = capability.Probe(capability.HostFeatures{
		FirebaseCredentialsFile:  cfg.FirebaseCredentialsFile,
		FCMTopic:                 cfg.FCMTopic,
		LiveRegistryAvailable:    a.notifyRedis != nil,
		PeriodicSyncEnabled:      cfg.PeriodicSyncEnabled,
		PeriodicSyncInterval:     cfg.PeriodicSyncInterval,
		DelayedSchedulingEnabled: cfg.DelayedSchedulingEnabled,
		QueueAvailable:           a.queueAvailable(),
		DurableScheduling:        cfg.DurableScheduling,
	})
	logger.Info("capabilities probed",
		zap.Bool("notifications", a.caps.Notifications),
		zap.Bool("push", a.caps.Push),
		zap.Bool("periodicSync", a.caps.PeriodicSync),
		zap.Bool("delayedScheduling", a.caps.DelayedScheduling),
	)

	surface, err := a.buildSurface(baseCtx)
	if err != nil {
		return nil, err
	}
	assets := notification.Assets{
		Icon:         cfg.IconPath,
		Badge:        cfg.BadgePath,
		CompleteIcon: completeIcon,
		SnoozeIcon:   snoozeIcon,
	}
	a.dispatcher, err = notification.NewDefaultDispatcher(surface, assets, a.caps, logger)
	if err != nil {
		return nil, err
	}
	a.deliver = func(ctx context.Context, r models.Reminder) error {
		return a.dispatcher.Dispatch(ctx, r, false)
	}

	a.offline, err = offline.NewManager(cfg.CacheDir, offline.NewHTTPFetcher(cfg.AssetOrigin, fetchTimeout), logger)
	if err != nil {
		return nil, err
	}
	a.lifecycle = lifecycle.NewManager(a.offline, logger)
	a.sync = syncer.NewCoordinator(a.store, a.dispatcher, location, logger)

	var closer actions.Closer
	if surface != nil {
		closer = surface
	}

	a.registry = worker.NewRegistry(worker.Components{
		CacheName:  cfg.CacheName,
		Manifest:   cfg.CacheManifest,
		Lifecycle:  a.lifecycle,
		Offline:    a.offline,
		Dispatcher: a.dispatcher,
		Router:     actions.NewRouter(closer, cfg.DashboardPath, logger),
		Sync:       a.sync,
		Bridge:     bridge.NewBridge(a.lifecycle, a.buildScheduler(baseCtx), a.caps, logger),
	}, logger)

	var redisClients []*redis.Client
	for _, c := range []*redis.Client{a.notifyRedis, a.queueRedis} {
		if c != nil {
			redisClients = append(redisClients, c)
		}
	}
	a.health = utils.NewHealthMonitor(redisClients, a.mongo, logger.Named("health"))
	return a, nil
}

// buildSurface combines the live registry and FCM delivery. Nil when neither is available.
func (a *app) buildSurface(ctx context.Context) (notification.Surface, error) {
	var surfaces notification.MultiSurface
	if a.notifyRedis != nil {
		a.live = notification.NewLiveRegistry(a.notifyRedis, liveTagTTL)
		surfaces = append(surfaces, a.live)
	}
	if a.caps.Push {
		client, err := utils.NewMessagingClient(ctx, a.cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		fcm, err := notification.NewFCMSurface(client, a.cfg.FCMTopic)
		if err != nil {
			return nil, err
		}
		surfaces = append(surfaces, fcm)
	}
	if len(surfaces) == 0 {
		return nil, nil
	}
	return surfaces, nil
}

// buildScheduler picks durable queue delivery or in-process timers. Nil when delayed scheduling is unavailable.
func (a *app) buildScheduler(ctx context.Context) scheduling.Scheduler {
	if !a.caps.DelayedScheduling {
		return nil
	}
	if a.cfg.DurableScheduling && a.queueAvailable() {
		return scheduling.NewQueueScheduler(a.queue, a.inspector, a.logger)
	}
	a.timers = scheduling.NewTimerRegistry(ctx, a.deliver, a.logger)
	return a.timers
}

// installShell runs the install event for the configured cache.
func (a *app) installShell(ctx context.Context) (lifecycle.Version, error) {
	res, err := a.registry.Dispatch(ctx, events.Event{Kind: events.KindInstall})
	if err != nil {
		return lifecycle.Version{}, err
	}
	v, ok := res.(lifecycle.Version)
	if !ok {
		return lifecycle.Version{}, fmt.Errorf("install: unexpected result %T", res)
	}
	return v, nil
}

// close releases every connection. Errors are logged.
func (a *app) close() {
	if a.timers != nil {
		a.timers.Stop()
	}
	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			a.logger.Warn("closing queue client", zap.Error(err))
		}
	}
	if a.inspector != nil {
		if err := a.inspector.Close(); err != nil {
			a.logger.Warn("closing queue inspector", zap.Error(err))
		}
	}
	for _, c := range []*redis.Client{a.notifyRedis, a.queueRedis} {
		if c != nil {
			_ = c.Close()
		}
	}
	if a.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), disconnectWait)
		defer cancel()
		if err := a.mongo.Disconnect(ctx); err != nil {
			a.logger.Warn("disconnecting from MongoDB", zap.Error(err))
		}
	}
}
