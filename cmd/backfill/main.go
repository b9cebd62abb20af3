// Package main provides the entry point for the historical backfill tool.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/logger"
	"github.com/yourusername/diamond-edge/internal/repository"
	"github.com/yourusername/diamond-edge/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		startDate  = flag.String("start-date", "", "Start date (YYYY-MM-DD), defaults to historical_sync_days ago")
		endDate    = flag.String("end-date", "", "End date (YYYY-MM-DD), defaults to today")
		rebuild    = flag.Bool("rebuild-profiles", true, "Rebuild team run profiles after the backfill")
	)
	flag.Parse()

	appLog := logrus.New()
	appLog.SetFormatter(&logrus.JSONFormatter{})

	cfg := loadConfigWithSecrets(*configPath, appLog)
	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	ctx := context.Background()
	start, end := resolveRange(cfg, *startDate, *endDate, appLog)

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		appLog.Fatalf("Failed to ensure database schema: %v", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.Fatalf("Failed to initialize repositories: %v", err)
	}

	statsHTTP := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           cfg.StatsAPITimeout(),
		MaxRetries:        cfg.StatsAPI.MaxRetries,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         cfg.StatsAPI.RequestsPerSecond,
		CircuitBreakerMax: 5,
	}, appLog)
	defer statsHTTP.Close()

	statsClient := datasource.NewStatsAPIClient(statsHTTP, cfg.StatsAPI.BaseURL, cfg.StatsAPI.APIKey, appLog)
	ingestionSvc := service.NewIngestionService(statsClient, repos.Game, appLog)

	appLog.WithFields(logrus.Fields{
		"start": start.Format("2006-01-02"),
		"end":   end.Format("2006-01-02"),
	}).Info("Starting historical backfill")

	stats, err := ingestionSvc.IngestDateRange(ctx, start, end)
	if err != nil {
		appLog.Fatalf("Backfill failed: %v", err)
	}
	appLog.Infof("Backfill completed: %s", stats.String())

	if *rebuild {
		profiles := service.NewProfileBuilder(repos.Game, repos.TeamProfile,
			cfg.Analytics.ProfileWindowDays, cfg.ProfileCacheTTL(), appLog)
		count, err := profiles.RebuildProfiles(ctx)
		if err != nil {
			appLog.Fatalf("Profile rebuild failed: %v", err)
		}
		appLog.WithField("teams", count).Info("Team run profiles rebuilt")
	}
}

func loadConfigWithSecrets(path string, appLog *logrus.Logger) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		appLog.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			appLog.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			appLog.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		appLog.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func resolveRange(cfg *config.Config, startOverride, endOverride string, appLog *logrus.Logger) (time.Time, time.Time) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if endOverride != "" {
		parsed, err := time.Parse("2006-01-02", endOverride)
		if err != nil {
			appLog.Fatalf("Invalid end date: %v", err)
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -cfg.StatsAPI.HistoricalSyncDays)
	if startOverride != "" {
		parsed, err := time.Parse("2006-01-02", startOverride)
		if err != nil {
			appLog.Fatalf("Invalid start date: %v", err)
		}
		start = parsed
	}

	if end.Before(start) {
		appLog.Fatalf("End date %s precedes start date %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	return start, end
}
