// Package config provides configuration management for the Diamond Edge analytics service.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	StatsAPI  StatsAPIConfig  `mapstructure:"stats_api" validate:"required"`
	OddsAPI   OddsAPIConfig   `mapstructure:"odds_api" validate:"required"`
	Analytics AnalyticsConfig `mapstructure:"analytics" validate:"required"`
	Schedule  ScheduleConfig  `mapstructure:"schedule" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// StatsAPIConfig represents the MLB schedule/results feed configuration
type StatsAPIConfig struct {
	BaseURL            string  `mapstructure:"base_url" validate:"required,url"`
	APIKey             string  `mapstructure:"api_key" validate:"required"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RequestsPerSecond  float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	MaxRetries         int     `mapstructure:"max_retries" validate:"gte=0"`
	HistoricalSyncDays int     `mapstructure:"historical_sync_days" validate:"required,gt=0"`
}

// OddsAPIConfig represents the moneyline odds feed configuration
type OddsAPIConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key" validate:"required"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
}

// AnalyticsConfig represents run estimation and value scanning configuration
type AnalyticsConfig struct {
	MaxRuns                int     `mapstructure:"max_runs" validate:"required,gte=0"`
	ModelName              string  `mapstructure:"model_name" validate:"required"`
	MinExpectedValue       float64 `mapstructure:"min_expected_value" validate:"gte=0"`
	DefaultStake           float64 `mapstructure:"default_stake" validate:"required,gt=0"`
	ProfileCacheTTLSeconds int     `mapstructure:"profile_cache_ttl_seconds" validate:"required,gt=0"`
	ProfileWindowDays      int     `mapstructure:"profile_window_days" validate:"required,gt=0"`
}

// ScheduleConfig represents cron scheduling for the automation jobs
type ScheduleConfig struct {
	MorningUpdate  string `mapstructure:"morning_update" validate:"required"`
	PreGameScan    string `mapstructure:"pre_game_scan" validate:"required"`
	PostGameSettle string `mapstructure:"post_game_settle" validate:"required"`
	WeeklyBackfill string `mapstructure:"weekly_backfill" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// StatsAPITimeout returns the stats feed request timeout
func (c *Config) StatsAPITimeout() time.Duration {
	return time.Duration(c.StatsAPI.TimeoutSeconds) * time.Second
}

// OddsAPITimeout returns the odds feed request timeout
func (c *Config) OddsAPITimeout() time.Duration {
	return time.Duration(c.OddsAPI.TimeoutSeconds) * time.Second
}

// ProfileCacheTTL returns the team profile cache lifetime
func (c *Config) ProfileCacheTTL() time.Duration {
	return time.Duration(c.Analytics.ProfileCacheTTLSeconds) * time.Second
}
