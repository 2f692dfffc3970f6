package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/intraworks/dochub/internal/api"
	"github.com/intraworks/dochub/internal/core/service"
	mongodb "github.com/intraworks/dochub/internal/infrastructure/db/mongo"
	redisdb "github.com/intraworks/dochub/internal/infrastructure/db/redis"
	"github.com/intraworks/dochub/internal/infrastructure/notify"
	"github.com/intraworks/dochub/internal/infrastructure/storage/s3"
	"github.com/intraworks/dochub/internal/pkg/config"
	"github.com/intraworks/dochub/pkg/logger"
)

// @title          DocHub API
// @version        1.0
// @description    Internal document, training and license management service.
// @BasePath       /
//
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	store, err := s3.New(ctx, s3.Config{
		Endpoint:     cfg.S3.Endpoint,
		Region:       cfg.S3.Region,
		Bucket:       cfg.S3.Bucket,
		AccessKey:    cfg.S3.AccessKey,
		SecretKey:    cfg.S3.SecretKey,
		UsePathStyle: cfg.S3.UsePathStyle,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object store unavailable")
	}

	// --- Expiration notifier ---
	if cfg.Notifier.Enabled {
		notifier := service.NewExpirationNotifier(
			mongodb.NewToolRepository(db),
			redisdb.NewNotifyGuard(rdb),
			notify.NewSMTPMailer(notify.SMTPConfig{
				Host:     cfg.SMTP.Host,
				Port:     cfg.SMTP.Port,
				From:     cfg.SMTP.From,
				Username: cfg.SMTP.Username,
				Password: cfg.SMTP.Password,
			}),
			log,
		)

		scheduler, err := notify.NewScheduler(cfg.Notifier.Schedule, notifier, log)
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.Notifier.Schedule).Msg("invalid notifier schedule")
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// --- HTTP server ---
	e := api.NewRouter(cfg, db, rdb, store, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
