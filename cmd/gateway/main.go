package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/resolveit/complaint-sync/internal/api/http"
	"github.com/resolveit/complaint-sync/internal/api/http/handlers"
	"github.com/resolveit/complaint-sync/internal/auth"
	"github.com/resolveit/complaint-sync/internal/config"
	"github.com/resolveit/complaint-sync/internal/observability"
	"github.com/resolveit/complaint-sync/internal/persistence"
	"github.com/resolveit/complaint-sync/internal/remote"
	"github.com/resolveit/complaint-sync/internal/service"
	"github.com/resolveit/complaint-sync/internal/worker"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	snapshots := persistence.NewSnapshotCache(redis, cfg.Redis.SnapshotTTL(), logger)

	metrics := observability.NewMetrics()
	client := remote.NewClient(cfg.Remote.BaseURL,
		remote.WithTimeout(cfg.Remote.Timeout()),
		remote.WithLogger(logger),
		remote.WithMetrics(metrics))

	sessions := service.NewSessionService(client, worker.NewTickerScheduler(ctx), cfg.Sync,
		service.WithSnapshots(snapshots),
		service.WithSessionLogger(logger))
	stopSweeper := sessions.StartSweeper(sweepInterval)
	defer stopSweeper()
	defer sessions.Close()

	var cache handlers.CachePinger
	if redis != nil {
		cache = redis
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cache, sessions),
		Metrics:        handlers.NewMetricsHandler(metrics),
		Auth:           handlers.NewAuthHandler(sessions),
		Dashboard:      handlers.NewDashboardHandler(sessions),
		Alerts:         handlers.NewAlertsHandler(sessions),
		Complaints:     handlers.NewComplaintsHandler(sessions),
		Officers:       handlers.NewOfficersHandler(sessions),
		Analytics:      handlers.NewAnalyticsHandler(sessions),
		AuthMiddleware: auth.NewAuthMiddleware(sessions),
	})

	go func() {
		logger.Info("gateway listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("remote", cfg.Remote.BaseURL))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
