package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Slack configuration
	SlackToken     string `envconfig:"SLACK_BOT_USER_OAUTH_ACCESS_TOKEN"`
	SlackBotUserID string `envconfig:"SLACK_BOT_USER_ID"`

	// Database configuration
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Scoring configuration
	DailyVoteLimit int `envconfig:"DAILY_VOTE_LIMIT" default:"300"`
	UndoTimeLimit  int `envconfig:"UNDO_TIME_LIMIT" default:"300"` // seconds

	// Query configuration
	DefaultPageSize int `envconfig:"DEFAULT_PAGE_SIZE" default:"20"`

	// Web configuration
	HTTPPort       string `envconfig:"SCOREBOT_PORT" default:"8080"`
	LeaderboardURL string `envconfig:"SCOREBOT_LEADERBOARD_URL"`

	// How often the cached Slack user directory is refreshed
	UserCacheRefresh time.Duration `envconfig:"USER_CACHE_REFRESH" default:"1h"`

	// Environment: "development", "production" or "test"
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.Environment != "test" {
		if cfg.SlackToken == "" {
			return nil, fmt.Errorf("SLACK_BOT_USER_OAUTH_ACCESS_TOKEN is required")
		}
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return &cfg, nil
}

// UndoWindow returns the undo time limit as a duration.
func (c *Config) UndoWindow() time.Duration {
	return time.Duration(c.UndoTimeLimit) * time.Second
}
