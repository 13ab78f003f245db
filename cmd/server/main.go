package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/civicvoice/participation/internal/api"
	"github.com/civicvoice/participation/internal/api/handler"
	"github.com/civicvoice/participation/internal/core/authz"
	"github.com/civicvoice/participation/internal/core/service"
	"github.com/civicvoice/participation/internal/infrastructure/config"
	mongostore "github.com/civicvoice/participation/internal/infrastructure/db/mongo"
	redisstore "github.com/civicvoice/participation/internal/infrastructure/db/redis"
	"github.com/civicvoice/participation/internal/infrastructure/queue"
	"github.com/civicvoice/participation/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is fine: the environment may already carry everything.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "participation",
	})
	log.Info().Str("env", cfg.Env).Msg("starting participation service")

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("service stopped with error")
	}
	log.Info().Msg("service stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// --- Infrastructure ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	// --- Core ---
	key, err := service.NewSigningKey()
	if err != nil {
		return err
	}
	policy := authz.DefaultPolicy()
	hasher := service.NewBcryptHasher(0)
	tokens := service.NewTokenService(key, cfg.TokenTTL)

	userRepo := mongostore.NewUserRepository(db)
	proposalRepo := redisstore.NewProposalCache(
		mongostore.NewProposalRepository(db), rdb, cfg.Redis.CacheTTL, logger.Component("proposal_cache"))

	activity := service.NewActivityService(mongostore.NewActivityRepository(db), logger.Component("activity"))
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activity, logger.Component("activity"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	svcLog := logger.Component("service")
	router := api.NewRouter(api.Dependencies{
		Auth:         service.NewAuthService(userRepo, hasher, tokens, svcLog),
		Users:        service.NewUserService(userRepo, hasher, policy, svcLog),
		Proposals:    service.NewProposalService(proposalRepo, dispatcher, policy, svcLog),
		Tokens:       tokens,
		Policy:       policy,
		PublicRoutes: cfg.PublicRoutes,
		Readiness: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Log: logger.Component("http"),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(sctx)
}
