// Package main provides the entry point for the analytics service.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/health"
	"github.com/yourusername/diamond-edge/internal/logger"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/repository"
	"github.com/yourusername/diamond-edge/internal/scheduler"
	"github.com/yourusername/diamond-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Diamond Edge analytics service starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to ensure database schema")
	}
	appLog.Info("Database connection established")

	// Initialize repositories
	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	// Initialize data feed clients
	statsHTTP := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           cfg.StatsAPITimeout(),
		MaxRetries:        cfg.StatsAPI.MaxRetries,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         cfg.StatsAPI.RequestsPerSecond,
		CircuitBreakerMax: 5,
	}, appLog)
	defer statsHTTP.Close()

	oddsHTTP := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           cfg.OddsAPITimeout(),
		MaxRetries:        cfg.OddsAPI.MaxRetries,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         cfg.OddsAPI.RequestsPerSecond,
		CircuitBreakerMax: 5,
	}, appLog)
	defer oddsHTTP.Close()

	statsClient := datasource.NewStatsAPIClient(statsHTTP, cfg.StatsAPI.BaseURL, cfg.StatsAPI.APIKey, appLog)
	oddsClient := datasource.NewOddsAPIClient(oddsHTTP, cfg.OddsAPI.BaseURL, cfg.OddsAPI.APIKey, appLog)

	// Initialize services
	ingestionSvc := service.NewIngestionService(statsClient, repos.Game, appLog)
	profileBuilder := service.NewProfileBuilder(repos.Game, repos.TeamProfile,
		cfg.Analytics.ProfileWindowDays, cfg.ProfileCacheTTL(), appLog)
	scanner := service.NewValueScanner(oddsClient, profileBuilder, repos.Game,
		repos.Prediction, repos.ValueBet, service.ScannerConfig{
			MaxRuns:          cfg.Analytics.MaxRuns,
			ModelName:        cfg.Analytics.ModelName,
			MinExpectedValue: cfg.Analytics.MinExpectedValue,
			DefaultStake:     cfg.Analytics.DefaultStake,
		}, appLog)
	validationSvc := service.NewValidationService(repos.Game, repos.Prediction,
		cfg.Analytics.ModelName, cfg.Analytics.ProfileWindowDays, appLog)

	// Start health check server
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
		Checks: map[string]health.Pinger{
			"database": db,
		},
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Start metrics server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer := &http.Server{
			Addr:    ":" + strconv.Itoa(cfg.Metrics.Port),
			Handler: metricsMux,
		}
		go func() {
			appLog.WithField("port", cfg.Metrics.Port).Info("Metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server error")
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			metricsServer.Shutdown(shutdownCtx)
		}()
	}

	// Schedule automation jobs
	sched := scheduler.NewScheduler(ingestionSvc, profileBuilder, scanner, validationSvc,
		cfg.StatsAPI.HistoricalSyncDays, appLog)
	if err := sched.ScheduleMorningUpdate(cfg.Schedule.MorningUpdate); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule morning update")
	}
	if err := sched.SchedulePreGameScan(cfg.Schedule.PreGameScan); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule pre-game scan")
	}
	if err := sched.SchedulePostGameSettle(cfg.Schedule.PostGameSettle); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule post-game settlement")
	}
	if err := sched.ScheduleWeeklyBackfill(cfg.Schedule.WeeklyBackfill); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule weekly backfill")
	}

	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	healthServer.SetReady(true)
	appLog.WithField("next_run", sched.GetNextRun()).Info("Analytics service is running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthServer.SetReady(false)
	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}

	appLog.Info("Diamond Edge analytics service shut down successfully")
}
