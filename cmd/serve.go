package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vaxremind/cron"
	"vaxremind/handlers"
	"vaxremind/middleware"
	"vaxremind/routes"
	"vaxremind/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	healthInterval  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

func addServe(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reminder worker and its HTTP endpoints.",
		Example: `
vaxremind serve --config ./config/config.yaml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runServe(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize worker", zap.Error(err))
		return err
	}
	defer a.close()

	if v, err := a.installShell(ctx); err != nil {
		logger.Error("app shell install failed, serving from network only", zap.Error(err))
	} else {
		logger.Info("app shell installed", zap.String("version", v.ID), zap.String("cache", v.CacheName))
	}

	go a.health.Run(ctx, healthInterval)

	if a.queueAvailable() {
		srv, mux := cron.NewReminderWorker(a.queueOpts, a.registry, a.deliver, logger)
		go cron.RunReminderWorker(ctx, srv, mux, logger)
	}
	if a.caps.PeriodicSync {
		go cron.StartPeriodicSync(ctx, cfg.PeriodicSyncInterval, a.registry, logger)
	} else {
		logger.Info("periodic sync unavailable, relying on one-shot syncs")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	opts := handlers.WorkerHandlerOptions{
		Health:       a.health,
		ClientSecret: cfg.ClientJWTSecret,
	}
	if a.queueAvailable() {
		opts.Queue = a.queue
	}
	if a.live != nil {
		opts.LiveTags = a.live
	}
	h := handlers.NewWorkerHandler(a.registry, a.lifecycle, a.caps, opts, logger)
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(h))

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("server failed", zap.Error(err))
		return err
	case <-ctx.Done():
	}
	logger.Info("server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}
