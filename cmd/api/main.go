package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/drganeshcs/clinic-booking-platform/internal/api/router"
	"github.com/drganeshcs/clinic-booking-platform/internal/appointments"
	"github.com/drganeshcs/clinic-booking-platform/internal/booking"
	"github.com/drganeshcs/clinic-booking-platform/internal/clinicapi"
	appconfig "github.com/drganeshcs/clinic-booking-platform/internal/config"
	"github.com/drganeshcs/clinic-booking-platform/internal/content"
	httpmiddleware "github.com/drganeshcs/clinic-booking-platform/internal/http/middleware"
	"github.com/drganeshcs/clinic-booking-platform/internal/marketing"
	"github.com/drganeshcs/clinic-booking-platform/internal/notify"
	"github.com/drganeshcs/clinic-booking-platform/internal/observability/metrics"
	"github.com/drganeshcs/clinic-booking-platform/internal/session"
	"github.com/drganeshcs/clinic-booking-platform/internal/slots"
	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

func main() {
	// .env is optional: real deployments use environment variables.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic booking gateway",
		"env", cfg.Env,
		"port", cfg.Port,
		"clinic_api", cfg.ClinicAPIBaseURL,
	)

	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)

	client := clinicapi.New(clinicapi.Config{
		BaseURL: cfg.ClinicAPIBaseURL,
		Timeout: cfg.ClinicAPITimeout,
		Logger:  logger,
		Metrics: bookingMetrics,
	})

	sessionStore, err := buildSessionStore(cfg, logger)
	if err != nil {
		logger.Error("failed to connect session store", "error", err)
		os.Exit(1)
	}

	if cfg.SessionSecret == "" {
		logger.Error("SESSION_SECRET is required")
		os.Exit(1)
	}
	gate := session.NewGate(client, sessionStore, cfg.SessionSecret, cfg.SessionTTL, logger)

	notifier := buildNotifier(cfg, logger)

	calc := slots.NewCalculator(slots.CalculatorConfig{Fetcher: client, Logger: logger})
	bookingSvc := booking.NewService(client, bookingMetrics, logger)
	apptSvc := appointments.NewService(client, notifier, bookingMetrics, logger)
	contentCache := content.NewCache(client, cfg.ContentRefreshInterval, logger)

	loginLimiter := httpmiddleware.NewRateLimiter(cfg.LoginRatePerSec, cfg.LoginBurst)
	defer loginLimiter.Close()

	routerCfg := &router.Config{
		Logger:              logger,
		SlotsHandler:        slots.NewHandler(calc, bookingMetrics, logger),
		BookingHandler:      booking.NewHandler(bookingSvc, client, logger),
		AppointmentsHandler: appointments.NewHandler(apptSvc, logger),
		SessionHandler:      session.NewHandler(gate, logger),
		ContentHandler:      content.NewHandler(contentCache, client, logger),
		MarketingHandler:    marketing.NewHandler(client, logger),
		Gate:                gate,
		Upstream:            client,
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		LoginLimiter:        loginLimiter,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	go contentCache.Run(refreshCtx)

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
	logger.Info("shutting down server")

	stopRefresh()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// buildSessionStore picks Redis unless the deployment opts into the
// in-process store.
func buildSessionStore(cfg *appconfig.Config, logger *logging.Logger) (session.Store, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.UseMemoryStore {
		logger.Warn("using in-memory session store; sessions do not survive restarts")
		return session.NewMemoryStore(), nil
	}

	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return session.NewRedisStore(rdb), nil
}

// buildNotifier assembles the patient notifier from configuration. The
// default logs only; email and SMS channels are added when configured.
func buildNotifier(cfg *appconfig.Config, logger *logging.Logger) notify.Notifier {
	switch cfg.Notifier {
	case "email":
		return notify.NewEmailNotifier(buildEmailSender(cfg, logger), cfg.SendGridFromName, logger)
	case "sms":
		return notify.NewTwilioSMSNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger)
	case "multi":
		return notify.NewMulti(logger,
			notify.NewEmailNotifier(buildEmailSender(cfg, logger), cfg.SendGridFromName, logger),
			notify.NewTwilioSMSNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger),
		)
	default:
		return notify.NewLogNotifier(logger)
	}
}

func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.EmailProvider == "ses" {
		awsCfg, err := loadAWSConfig(cfg)
		if err != nil {
			logger.Error("failed to load AWS config, falling back to stub email sender", "error", err)
			return notify.NewStubEmailSender(logger)
		}
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
	}
	if cfg.SendGridAPIKey == "" {
		logger.Warn("SENDGRID_API_KEY not set, using stub email sender")
		return notify.NewStubEmailSender(logger)
	}
	return notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)
}

func loadAWSConfig(cfg *appconfig.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	if cfg.AWSEndpointOverride != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.AWSEndpointOverride))
	}
	return awsconfig.LoadDefaultConfig(context.Background(), opts...)
}
