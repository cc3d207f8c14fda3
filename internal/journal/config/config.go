package config

import (
	"time"

	"trading-journal/pkg/config"
)

// Spreadsheet holds the remote spreadsheet web app settings.
type Spreadsheet struct {
	BaseURL              string        `mapstructure:"base_url"`
	Timeout              time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute  int           `mapstructure:"max_request_per_minute"`
	ConnectivityProbeURL string        `mapstructure:"connectivity_probe_url"`
}

// Store selects the persistence backend for trades and portfolio.
type Store struct {
	// Backend is "spreadsheet" or "postgres".
	Backend string `mapstructure:"backend"`
}

// Pending configures the durable pending queue.
type Pending struct {
	// Driver is "file" or "redis".
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	MaxBytes int    `mapstructure:"max_bytes"`
}

// Sync configures the connectivity watcher and retry scheduler.
type Sync struct {
	CheckInterval  time.Duration `mapstructure:"check_interval"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
	RetryCron      string        `mapstructure:"retry_cron"`
	RetryTimeout   time.Duration `mapstructure:"retry_timeout"`
}

// Portfolio configures portfolio summary syncing.
type Portfolio struct {
	SmartSyncThreshold int64 `mapstructure:"smart_sync_threshold"`
}

// Telegram configures the optional Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
	// ReportCron schedules the portfolio summary message. Empty disables it.
	ReportCron string `mapstructure:"report_cron"`
}

// Config holds the full configuration for the journal service.
type Config struct {
	App         config.App      `mapstructure:"app"`
	Logger      config.Logger   `mapstructure:"logger"`
	Database    config.Database `mapstructure:"database"`
	Redis       config.Redis    `mapstructure:"redis"`
	API         config.API      `mapstructure:"api"`
	Spreadsheet Spreadsheet     `mapstructure:"spreadsheet"`
	Store       Store           `mapstructure:"store"`
	Pending     Pending         `mapstructure:"pending"`
	Sync        Sync            `mapstructure:"sync"`
	Portfolio   Portfolio       `mapstructure:"portfolio"`
	Telegram    Telegram        `mapstructure:"telegram"`
}

// Load loads the journal configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Spreadsheet.Timeout <= 0 {
		c.Spreadsheet.Timeout = 10 * time.Second
	}
	if c.Spreadsheet.MaxRequestPerMinute <= 0 {
		c.Spreadsheet.MaxRequestPerMinute = 60
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "spreadsheet"
	}
	if c.Pending.Driver == "" {
		c.Pending.Driver = "file"
	}
	if c.Pending.Path == "" {
		c.Pending.Path = "data/pending.gob"
	}
	if c.Sync.CheckInterval <= 0 {
		c.Sync.CheckInterval = 15 * time.Second
	}
	if c.Sync.ReconnectDelay <= 0 {
		c.Sync.ReconnectDelay = 2 * time.Second
	}
	if c.Sync.RetryCron == "" {
		c.Sync.RetryCron = "@every 5m"
	}
	if c.Sync.RetryTimeout <= 0 {
		c.Sync.RetryTimeout = 30 * time.Second
	}
	if c.Portfolio.SmartSyncThreshold <= 0 {
		c.Portfolio.SmartSyncThreshold = 100
	}
}
