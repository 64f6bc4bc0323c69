package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/UnknownOlympus/athena/internal/auth"
	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/UnknownOlympus/athena/internal/server"
	"github.com/UnknownOlympus/athena/internal/services/employees"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	var wgr sync.WaitGroup
	delta := 2

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)
	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(ctx,
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	// revocation and the cache health check stay off without a Redis address
	var revoker auth.Revoker
	var cache server.Pinger
	if cfg.Redis.Address != "" {
		redisClient := auth.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TLS)
		defer redisClient.Close()

		redisRevoker := auth.NewRedisRevoker(redisClient)
		if err = redisRevoker.Ping(ctx); err != nil {
			logger.WarnContext(ctx, "Revocation store is not reachable yet", sl.Err(err))
		}
		revoker, cache = redisRevoker, redisRevoker
	} else {
		logger.InfoContext(ctx, "No Redis configured, logout only clears the client cookie")
	}

	adminRepo := repository.NewAdminRepository(dtb, appMetrics)
	employeeRepo := repository.NewEmployeeRepository(dtb, appMetrics)

	authService, err := auth.NewService(logger, adminRepo, auth.NewTokenManager(cfg.Auth.JWTSecret), revoker,
		appMetrics, auth.Options{
			RegisterTTL: cfg.Auth.RegisterTTL,
			LoginTTL:    cfg.Auth.LoginTTL,
			BcryptCost:  cfg.Auth.BcryptCost,
		})
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}
	staff := employees.NewStaff(logger, employeeRepo, appMetrics)

	api := server.NewAPI(logger, authService, staff, appMetrics, server.Options{
		AllowedOrigin:         cfg.HTTP.AllowedOrigin,
		UploadsDir:            cfg.HTTP.UploadsDir,
		CookieSecure:          cfg.HTTP.CookieSecure,
		ProtectEmployeeRoutes: cfg.Auth.ProtectEmployeeRoutes,
	})

	wgr.Add(delta)

	go func() {
		defer wgr.Done()
		health := server.NewHealthChecker(dtb, cache, logger)
		if monErr := server.StartMonitoringServer(ctx, logger, reg, health, cfg.Monitoring.Port); monErr != nil {
			logger.ErrorContext(ctx, "Monitoring server failed", sl.Err(monErr))
		}
	}()

	go func() {
		defer wgr.Done()
		if apiErr := server.StartAPIServer(ctx, logger, api.Router(), cfg.HTTP); apiErr != nil {
			logger.ErrorContext(ctx, "API server failed", sl.Err(apiErr))
			stop()
		}
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	wgr.Wait()

	logger.InfoContext(ctx, "Application stopped gracefully...")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{Key: "", Value: slog.Value{}}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{Key: "", Value: slog.Value{}}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}
