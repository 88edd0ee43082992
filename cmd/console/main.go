package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smd-system/console/internal/api"
	"github.com/smd-system/console/internal/backend"
	"github.com/smd-system/console/internal/core/service"
	"github.com/smd-system/console/internal/infrastructure/config"
	mongodb "github.com/smd-system/console/internal/infrastructure/db/mongo"
	redisdb "github.com/smd-system/console/internal/infrastructure/db/redis"
	"github.com/smd-system/console/internal/infrastructure/queue"
	"github.com/smd-system/console/pkg/logger"

	_ "github.com/smd-system/console/docs"
)

// @title        SMD Console API
// @version      1.0
// @description  Server-side console for the Syllabus Management Dashboard.
// @host         localhost:3000
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level: cfg.LogLevel,
		Env:   cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	client := backend.NewClient(backend.Options{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
	}, log)

	tokens := redisdb.NewTokenStore(rdb, cfg.SessionTTL)
	sessions := service.NewSessionStore(client.Auth, tokens, cfg.DemoMode, log)

	auditRepo := mongodb.NewAuditRepository(db)
	auditWriter := queue.NewAuditWriter(0, auditRepo, log)
	auditWriter.Start(ctx)

	if cfg.DemoMode {
		log.Warn().Msg("demo mode enabled, login bypass active")
	}

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Backend:  client,
		Auditor:  auditWriter,
		AuditLog: auditRepo,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
