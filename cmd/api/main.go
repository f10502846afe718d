// Command api serves the job board HTTP API.
//
// @title                       Job Board API
// @version                     1.0
// @description                 Jobs, industries, applications and profiles with role-based access.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/easework/jobboard-api/internal/api"
	"github.com/easework/jobboard-api/internal/core/authz"
	"github.com/easework/jobboard-api/internal/core/paginate"
	"github.com/easework/jobboard-api/internal/core/service"
	"github.com/easework/jobboard-api/internal/infrastructure/cache"
	"github.com/easework/jobboard-api/internal/infrastructure/config"
	mongodb "github.com/easework/jobboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/easework/jobboard-api/internal/infrastructure/db/redis"
	"github.com/easework/jobboard-api/internal/infrastructure/http/handlers"
	"github.com/easework/jobboard-api/internal/infrastructure/queue"
	"github.com/easework/jobboard-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "jobboard-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty && !cfg.IsProduction(),
	})

	// ── MongoDB ─────────────────────────────────────────────────────────────
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	// ── Redis ───────────────────────────────────────────────────────────────
	redisCfg := redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	var cacheClient *redis.Client
	rdb, err := redisdb.Connect(ctx, redisCfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable at startup")
		rdb = redisdb.NewClient(redisCfg)
	} else {
		cacheClient = rdb
	}
	defer rdb.Close()

	store, err := cache.NewStore(ctx, cacheClient, cfg.Cache.MemorySize, logger.Component("cache"))
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	queryCache := cache.New(store, cache.TTLs{
		List:      cfg.Cache.ListTTL,
		Detail:    cfg.Cache.DetailTTL,
		Aggregate: cfg.Cache.AggregateTTL,
	}, logger.Component("cache"))

	// ── Task queue ──────────────────────────────────────────────────────────
	dispatcher := queue.NewDispatcher(redisdb.NewOutbox(rdb), queue.Options{
		Workers:     cfg.Queue.Workers,
		MaxRetries:  cfg.Queue.MaxRetries,
		BackoffBase: cfg.Queue.BackoffBase,
	}, logger.Component("queue"))
	workerCtx, stopWorkers := context.WithCancel(ctx)
	dispatcher.Start(workerCtx)

	// ── Services ────────────────────────────────────────────────────────────
	engine := authz.NewEngine(authz.Options{EmployerStatusUpdates: cfg.Authz.EmployerStatusUpdates})
	limits := paginate.Limits{Default: cfg.Page.DefaultSize, Max: cfg.Page.MaxSize}

	users := mongodb.NewUserRepository(db)
	profiles := mongodb.NewProfileRepository(db)
	jobs := mongodb.NewJobRepository(db)
	industries := mongodb.NewIndustryRepository(db)
	applications := mongodb.NewApplicationRepository(db)

	svcLog := logger.Component("service")
	router := api.NewRouter(api.Dependencies{
		Auth:         service.NewAuthService(users, profiles, queryCache, dispatcher, cfg.JWTSecret, cfg.JWTTTL, svcLog),
		Jobs:         service.NewJobService(jobs, industries, applications, queryCache, engine, limits, svcLog),
		Industries:   service.NewIndustryService(industries, jobs, queryCache, engine, limits, svcLog),
		Applications: service.NewApplicationService(applications, jobs, users, queryCache, dispatcher, engine, limits, svcLog),
		Users:        service.NewUserService(users, profiles, queryCache, engine, limits, svcLog),
		Engine:       engine,
		JWTSecret:    cfg.JWTSecret,
		Health:       []handlers.Check{handlers.MongoCheck(db), handlers.RedisCheck(rdb)},
		Log:          logger.Component("http"),
	})

	// ── HTTP server ─────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// ── Graceful shutdown ───────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serveErr:
		if err != nil {
			stopWorkers()
			dispatcher.Wait()
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("stopped")
	return nil
}
