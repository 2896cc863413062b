package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"court-watcher/core/cache"
	"court-watcher/core/config"
	"court-watcher/core/constants"
	"court-watcher/core/database"
	"court-watcher/core/logger"
	"court-watcher/core/middleware"
	"court-watcher/modules/notification"
	"court-watcher/modules/openings"
	"court-watcher/modules/scanner"
	"court-watcher/modules/subscription"
	subscriptionservice "court-watcher/modules/subscription/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Run boots the API server, the scan worker and the interval scheduler, and
// blocks until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Server.Environment)
	defer logger.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	c, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}

	codec, err := subscriptionservice.NewTokenCodec(cfg.Scan.FernetKey)
	if err != nil {
		return err
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	client := asynq.NewClient(redisOpt)
	defer client.Close()

	e := echo.New()
	e.HideBanner = true
	middleware.NewMiddleware().Setup(e)

	group := e.Group("")
	openingRepo := openings.Init(group, &db)
	subscriptionRepo := subscription.Init(group, &db, codec)
	notifier := notification.Init(&db, codec)
	scannerSvc := scanner.Init(group, cfg, openingRepo, subscriptionRepo, notifier, c, client)

	// One worker, one queue: scan runs never overlap.
	worker := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{constants.ScanQueueName: 1},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.ScanTaskTypeName, scannerSvc.HandleScanTask)

	scheduler := asynq.NewScheduler(redisOpt, nil)
	cronspec := fmt.Sprintf("@every %ds", cfg.Scan.IntervalSeconds)
	if _, err := scheduler.Register(cronspec, asynq.NewTask(constants.ScanTaskTypeName, nil), asynq.Queue(constants.ScanQueueName)); err != nil {
		return fmt.Errorf("failed to register scan schedule: %w", err)
	}

	errCh := make(chan error, 3)
	go func() {
		if err := worker.Run(mux); err != nil {
			errCh <- fmt.Errorf("scan worker stopped: %w", err)
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			errCh <- fmt.Errorf("scan scheduler stopped: %w", err)
		}
	}()
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Server listening", "addr", addr, "scan_interval_seconds", cfg.Scan.IntervalSeconds)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server stopped: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	scheduler.Shutdown()
	// Lets an in-flight scan drain; it skips the baseline swap if cancelled.
	worker.Shutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	return nil
}
