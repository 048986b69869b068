package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/userhub/user-directory/internal/api"
	"github.com/userhub/user-directory/internal/api/middleware"
	"github.com/userhub/user-directory/internal/core/ports"
	"github.com/userhub/user-directory/internal/core/service"
	"github.com/userhub/user-directory/internal/infrastructure/config"
	"github.com/userhub/user-directory/internal/infrastructure/crypto"
	mongodb "github.com/userhub/user-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/userhub/user-directory/internal/infrastructure/db/redis"
	"github.com/userhub/user-directory/internal/infrastructure/queue"
	"github.com/userhub/user-directory/internal/infrastructure/token"
	"github.com/userhub/user-directory/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Missing signing secret is fatal here, before any request is served.
	issuer, err := token.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		// Redis only backs the optional denylist and readiness detail; the
		// directory itself works without it.
		log.Warn().Err(err).Msg("redis unavailable, token denylist disabled")
		rdb = nil
	}

	var denylist middleware.TokenDenylist
	var revoker *redisdb.Denylist
	if cfg.TokenDenylist && rdb != nil {
		revoker = redisdb.NewDenylist(rdb, cfg.TokenTTL)
		denylist = revoker
	}

	auditRecorder := service.NewAuditService(mongodb.NewAuditRepository(db), revokerOrNil(revoker), log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRecorder, log)
	dispatcher.Start(ctx)

	users := service.NewUserService(userRepo, crypto.NewBcryptHasher(), issuer, dispatcher, log)
	e := api.NewRouter(users, issuer, denylist, db, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("user directory listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// revokerOrNil keeps a nil *Denylist from becoming a non-nil interface.
func revokerOrNil(r *redisdb.Denylist) ports.TokenRevoker {
	if r == nil {
		return nil
	}
	return r
}
