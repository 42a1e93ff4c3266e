package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/rimmelzwaan/salon-booking/cmd/mainconfig"
	"github.com/rimmelzwaan/salon-booking/internal/api/router"
	"github.com/rimmelzwaan/salon-booking/internal/appointments"
	"github.com/rimmelzwaan/salon-booking/internal/catalog"
	"github.com/rimmelzwaan/salon-booking/internal/clients"
	appconfig "github.com/rimmelzwaan/salon-booking/internal/config"
	"github.com/rimmelzwaan/salon-booking/internal/http/handlers"
	"github.com/rimmelzwaan/salon-booking/internal/notify"
	"github.com/rimmelzwaan/salon-booking/internal/observability/metrics"
	"github.com/rimmelzwaan/salon-booking/internal/scheduling"
	"github.com/rimmelzwaan/salon-booking/internal/settings"
	"github.com/rimmelzwaan/salon-booking/pkg/logging"
)

func main() {
	// Local development reads .env; production sets real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting salon-booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	loc, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		logger.Error("invalid business timezone", "timezone", cfg.BusinessTimezone, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, continuing without cache and outbox queue", "error", err)
			redisClient = nil
		}
	}

	// Repositories
	catalogRepo := catalog.NewPostgresRepository(pool)
	clientsRepo := clients.NewPostgresRepository(pool)
	apptRepo := appointments.NewPostgresRepository(pool)
	hoursStore := scheduling.NewPostgresHoursStore(pool)
	settingsStore := settings.NewStore(pool, redisClient, 5*time.Minute, logger)

	// Scheduling
	hours := scheduling.NewOpeningHoursProvider(hoursStore, loc)
	checker := scheduling.NewConflictChecker(apptRepo)
	slots := scheduling.NewSlotGenerator(hours, catalog.NewDurationResolver(catalogRepo), checker, logger)

	// Email delivery
	sender := buildEmailSender(ctx, cfg, logger)
	mailer := notify.NewConfirmationMailer(cfg.SalonName, cfg.PublicBaseURL)
	outbox := notify.NewOutbox(redisClient, sender, mailer, logger).
		WithMaxAttempts(cfg.EmailRetryMaxAttempts).
		WithBaseDelay(cfg.EmailRetryBaseDelay).
		WithInterval(cfg.EmailRetryInterval)

	// Booking workflows
	booker := appointments.NewBooker(clientsRepo, catalogRepo, apptRepo, loc, outbox, logger)
	workflow := appointments.NewConfirmationWorkflow(apptRepo, logger)

	bookingMetrics := metrics.NewBookingMetrics(prometheus.DefaultRegisterer)

	booking := handlers.NewBookingHandler(handlers.BookingHandlerConfig{
		Slots:    slots,
		Booker:   booker,
		Workflow: workflow,
		Catalog:  catalogRepo,
		Settings: settingsStore,
		Metrics:  bookingMetrics,
		Location: loc,
		BaseURL:  cfg.PublicBaseURL,
		Logger:   logger,
	})

	r := router.New(&router.Config{
		Logger:             logger,
		Booking:            booking,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Drain the email outbox in the background for as long as the server runs.
	outboxCtx, stopOutbox := context.WithCancel(ctx)
	defer stopOutbox()
	go outbox.Run(outboxCtx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stopOutbox()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildEmailSender picks the configured delivery backend. Anything
// unrecognized falls back to the stub, which only logs.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			return sender
		}
		logger.Warn("sendgrid selected but not configured, using stub sender")
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			break
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SalonName,
		}, logger)
		if sender != nil {
			return sender
		}
		logger.Warn("ses selected but not configured, using stub sender")
	}
	return notify.NewStubEmailSender(logger)
}
