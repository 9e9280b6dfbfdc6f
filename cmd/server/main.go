package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/railway-seat-reservation/internal/allocation"
	"github.com/iliyamo/railway-seat-reservation/internal/config"
	"github.com/iliyamo/railway-seat-reservation/internal/database"
	"github.com/iliyamo/railway-seat-reservation/internal/handler"
	"github.com/iliyamo/railway-seat-reservation/internal/middleware"
	"github.com/iliyamo/railway-seat-reservation/internal/queue"
	"github.com/iliyamo/railway-seat-reservation/internal/repository"
	"github.com/iliyamo/railway-seat-reservation/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}

	// Persistence and the allocation engine.
	trainRepo := repository.NewTrainRepo(db)
	store := repository.NewAllocationStore(db)
	alloc := allocation.NewService(store, allocation.SystemClock(),
		allocation.WithHoldTTL(time.Duration(cfg.HoldTTLMin)*time.Minute))

	// Background lock-event consumer and expiry sweeper.
	go func() {
		if err := queue.StartLockConsumer(); err != nil {
			log.Printf("lock consumer stopped: %v", err)
		}
	}()
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go allocation.RunSweeper(sweepCtx, alloc, cfg.SweepInterval)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterSeats(e, handler.NewSeatHandler(alloc))
	router.RegisterOperator(e, handler.NewTrainHandler(trainRepo), handler.NewMaintenanceHandler(alloc), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
