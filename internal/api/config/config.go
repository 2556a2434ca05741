package config

import (
	"time"

	"stock-portfolio-service/pkg/common"
	"stock-portfolio-service/pkg/config"
)

// Finnhub holds the configuration for the Finnhub market-data API.
type Finnhub struct {
	BaseURL             string        `mapstructure:"base_url"`
	Token               string        `mapstructure:"token"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	// MaxResponseBytes caps one upstream body; larger responses fail with 502.
	MaxResponseBytes    int64         `mapstructure:"max_response_bytes"`
}

// Portfolio holds ledger specific configuration.
type Portfolio struct {
	// RefreshCron is a 5 field cron expression; empty disables the background refresh.
	RefreshCron                string        `mapstructure:"refresh_cron"`
	RefreshOverwritesCostBasis bool          `mapstructure:"refresh_overwrites_cost_basis"`
	LockTTL                    time.Duration `mapstructure:"lock_ttl"`
	LockRetryInterval          time.Duration `mapstructure:"lock_retry_interval"`
}

// Auth holds password hashing configuration.
type Auth struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Finnhub   Finnhub         `mapstructure:"finnhub"`
	Portfolio Portfolio       `mapstructure:"portfolio"`
	Auth      Auth            `mapstructure:"auth"`
}

// Load loads the API configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	err := config.Load(path, &cfg,
		config.WithEnv("finnhub.token", common.FinnhubTokenEnv),
		config.WithDefault("app.name", "stock-portfolio-service"),
		config.WithDefault("logger.level", "info"),
		config.WithDefault("logger.encoding", "json"),
		config.WithDefault("api.port", 8000),
		config.WithDefault("finnhub.base_url", common.FinnhubDefaultURL),
		config.WithDefault("finnhub.timeout", "15s"),
		config.WithDefault("finnhub.max_request_per_minute", 0),
		config.WithDefault("finnhub.max_response_bytes", 64<<20),
		config.WithDefault("portfolio.refresh_cron", ""),
		config.WithDefault("portfolio.refresh_overwrites_cost_basis", true),
		config.WithDefault("portfolio.lock_ttl", "10s"),
		config.WithDefault("portfolio.lock_retry_interval", "50ms"),
		config.WithDefault("auth.bcrypt_cost", 0),
	)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
