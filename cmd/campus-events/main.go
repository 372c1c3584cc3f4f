package main

import (
	"campusEvents/internal/config"
	"campusEvents/internal/http-server/middleware/ratelimit"
	"campusEvents/internal/http-server/router"
	"campusEvents/internal/lib/logger/handlers/slogpretty"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/services/events"
	"campusEvents/internal/services/profile"
	"campusEvents/internal/storage/postgres"
	"campusEvents/internal/storage/sqlite"
	"campusEvents/internal/storage/sqlstore"
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting campus events", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage.Driver))
	log.Debug("Debug messages are enabled")

	storage, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	eventService := events.New(log, storage)
	profileService := profile.New(log, storage)

	var limiter func(http.Handler) http.Handler
	var rdb *redis.Client

	if cfg.RateLimit.RedisAddress != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddress,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		limiter = ratelimit.New(log, rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)

		log.Info("rate limiting enabled",
			slog.String("redis", cfg.RateLimit.RedisAddress),
			slog.Int64("limit", cfg.RateLimit.Limit),
			slog.Duration("window", cfg.RateLimit.Window),
		)
	}

	handler := router.New(log, router.Deps{
		Events:    eventService,
		Profiles:  profileService,
		Storage:   storage,
		JWTSecret: []byte(cfg.Auth.JWTSecret),
		RateLimit: limiter,
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	jobsCtx, stopJobs := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(cfg.Jobs.RegistrationSweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := eventService.CompletePastRegistrations(jobsCtx); err != nil {
					log.Error("failed to complete past registrations", sl.Err(err))
				}
			case <-jobsCtx.Done():
				return
			}
		}
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	stopJobs()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if rdb != nil {
		if err = rdb.Close(); err != nil {
			log.Error("failed to close redis connection", sl.Err(err))
		}
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func openStorage(cfg *config.Config) (*sqlstore.Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return postgres.InitDB(&cfg.Database)
	case "sqlite":
		return sqlite.New(cfg.Storage.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
