package main

import (
	"Touchline/internal/api/config"
	"Touchline/internal/pkg/database"
	"Touchline/internal/pkg/es"
	"Touchline/internal/pkg/logger"
	"Touchline/internal/pkg/mongo"
	"Touchline/internal/pkg/redis"
	"Touchline/internal/pkg/security"
	"Touchline/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	cronStopTimeout     = 30 * time.Second
	httpShutdownTimeout = 5 * time.Second
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger.InitLogger()
	gin.SetMode(gin.ReleaseMode)

	if err := run(config.Cfg); err != nil {
		log.Error("App exited with error", "err", err)
		os.Exit(1)
	}
	log.Info("App exited successfully.")
}

func run(cfg *config.Config) error {
	db, err := database.NewGormDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connect mysql: %w", err)
	}
	rdb, err := redis.NewClient(cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	mongoDB, err := mongo.InitMongo(cfg.Mongo)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() { _ = mongoDB.Client().Disconnect(context.Background()) }()

	if err = es.InitClient(); err != nil {
		return fmt.Errorf("connect elasticsearch: %w", err)
	}
	security.InitJWT(cfg.Server)

	app, err := wire.BuildApplication(db, rdb, mongoDB, cfg)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	defer func() { _ = app.PushProducer.Close() }()

	if err = app.CronMgr.RegisterJobs(); err != nil {
		return fmt.Errorf("register cron jobs: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	app.CronMgr.Start()
	g.Go(func() error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), cronStopTimeout)
		defer cancel()
		app.CronMgr.Stop(stopCtx)
		return nil
	})

	// 推送消费
	g.Go(func() error {
		return app.KafkaManager.Start(ctx)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
