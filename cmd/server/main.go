package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xxtryitxx/horizontos/internal/api"
	"github.com/xxtryitxx/horizontos/internal/infrastructure/assistant"
	"github.com/xxtryitxx/horizontos/internal/infrastructure/config"
	mongorepo "github.com/xxtryitxx/horizontos/internal/infrastructure/db/mongo"
	redisinfra "github.com/xxtryitxx/horizontos/internal/infrastructure/db/redis"
	"github.com/xxtryitxx/horizontos/internal/infrastructure/email"
	"github.com/xxtryitxx/horizontos/internal/infrastructure/storage"
	"github.com/xxtryitxx/horizontos/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := mongorepo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("users index creation failed")
	}
	if err := mongorepo.NewMessageRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("messages index creation failed")
	}

	store, err := storage.NewCloudinaryStore(cfg.Cloudinary.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("object store initialisation failed")
	}

	collab := api.Collaborators{
		Mailer:    email.NewSendGridMailer(cfg.Mail.APIKey, cfg.Mail.From),
		Assistant: assistant.NewGeminiClient(cfg.Assistant.APIKey, cfg.Assistant.Model),
		Store:     store,
	}

	e, dispatcher := api.NewRouter(db, rdb, cfg, collab, log)
	dispatcher.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
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
	log.Info().Msg("server stopped")
}
