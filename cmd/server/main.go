package main

import (
	stdlog "log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/visolab/viso-tracker/internal/auth"
	"github.com/visolab/viso-tracker/internal/config"
	"github.com/visolab/viso-tracker/internal/database"
	"github.com/visolab/viso-tracker/internal/handler"
	appmw "github.com/visolab/viso-tracker/internal/middleware"
	"github.com/visolab/viso-tracker/internal/queue"
	"github.com/visolab/viso-tracker/internal/repository"
	"github.com/visolab/viso-tracker/internal/router"
	queue_publisher "github.com/visolab/viso-tracker/internal/service"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		stdlog.Fatalf("database: %v", err)
	}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	logger := log.New("viso")

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	objects := repository.NewObjectRepo(db)
	classes := repository.NewClassRepo(db)
	interactions := repository.NewInteractionRepo(db)
	environments := repository.NewEnvironmentRepo(db)
	rankings := repository.NewRankingRepo(db)
	stats := repository.NewStatsRepo(db)

	// Auth and event plumbing
	authSvc := auth.NewService(users, cfg.BcryptCost, logger)
	publisher := queue_publisher.NewPublisher(queue.BrokerURL(), logger)

	// Redis-backed middleware; both degrade to pass-throughs when Redis is
	// unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable; cache and rate limiting disabled")
	}
	limiter := appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := appmw.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, authSvc, tokens), cfg.JWTSecret, limiter)
	router.RegisterAPI(e, router.APIHandlers{
		Objects:      handler.NewObjectHandler(objects),
		Classes:      handler.NewClassHandler(classes, objects),
		Interactions: handler.NewInteractionHandler(interactions, publisher),
		Environments: handler.NewEnvironmentHandler(environments, objects),
		Rankings:     handler.NewRankingHandler(rankings),
		Stats:        handler.NewStatsHandler(stats),
	}, cfg.JWTSecret, cache)

	// Ranking maintenance runs off the request path; the consumer keeps its
	// own reconnect loop.
	go func() {
		if err := queue.NewRankingConsumer(rankings, logger).Start(); err != nil {
			logger.Errorf("ranking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	stdlog.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		stdlog.Fatal(err)
	}
}
