package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignitefit/class-booking/internal/config"
	"github.com/ignitefit/class-booking/internal/database"
	"github.com/ignitefit/class-booking/internal/events"
	"github.com/ignitefit/class-booking/internal/handler"
	"github.com/ignitefit/class-booking/internal/logger"
	"github.com/ignitefit/class-booking/internal/repository"
	"github.com/ignitefit/class-booking/internal/router"
	"github.com/ignitefit/class-booking/internal/service"
	"github.com/ignitefit/class-booking/internal/validator"
	"github.com/ignitefit/class-booking/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Bool("audit", cfg.AuditEnabled()).
		Msg("Starting class booking API")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Optional Audit Infrastructure ─────────────────────────────────
	var (
		rdb       *redis.Client
		pool      *pgxpool.Pool
		publisher events.Publisher = events.NopPublisher{}
		reader    service.EventReader
	)

	if cfg.RedisURL != "" {
		var err error
		rdb, err = database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		publisher = events.NewRedisPublisher(rdb, config.WorkerKey.BookingEventsQueue)
	}

	var eventRepo *repository.EventRepository
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		eventRepo = repository.NewEventRepository(pool)
		reader = eventRepo
	}

	// ─── Initialize Services ──────────────────────────────────────────
	bookingService := service.NewBookingService(publisher, cfg.MaxRangeDays, log)
	auditService := service.NewAuditService(reader, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Class:   handler.NewClassHandler(bookingService),
		Booking: handler.NewBookingHandler(bookingService),
		Event:   handler.NewEventHandler(auditService),
		System:  handler.NewSystemHandler(bookingService, rdb, pool, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})

	if cfg.AuditEnabled() {
		auditWorker := worker.NewAuditWorker(rdb, eventRepo, config.WorkerKey.BookingEventsQueue, log)
		go func() {
			defer close(workerDone)
			auditWorker.Start(workerCtx)
		}()
	} else {
		close(workerDone)
		if cfg.RedisURL != "" {
			log.Warn().Msg("REDIS_URL set without DATABASE_URL; events will queue until a worker with a database runs")
		}
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, handlers, cfg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the audit worker once it has drained the queue.
	workerCancel()
	select {
	case <-workerDone:
	case <-time.After(10 * time.Second):
		log.Warn().Msg("Audit worker did not stop in time")
	}

	log.Info().Msg("Shutdown complete")
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
