// Package config loads aurorawatch configuration from a YAML file with
// environment variable overrides and validates it before anything else runs.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Location   LocationConfig   `mapstructure:"location"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Alerts     AlertsConfig     `mapstructure:"alerts"`
	Feeds      FeedsConfig      `mapstructure:"feeds"`
	Email      EmailConfig      `mapstructure:"email"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// LocationConfig identifies the observation site.
type LocationConfig struct {
	Name      string  `mapstructure:"name"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Timezone  string  `mapstructure:"timezone"`
}

// ThresholdsConfig holds the activity and sky thresholds.
type ThresholdsConfig struct {
	NowMinIndex      float64 `mapstructure:"now_min_index"`
	ForecastMinIndex float64 `mapstructure:"forecast_min_index"`
	MaxCloudCover    int     `mapstructure:"max_cloud_cover"`
}

// AlertsConfig holds cooldowns and window sizing.
type AlertsConfig struct {
	NowCooldownSeconds      int64 `mapstructure:"now_cooldown_seconds"`
	ForecastCooldownSeconds int64 `mapstructure:"forecast_cooldown_seconds"`
	ForecastHorizonHours    int   `mapstructure:"forecast_horizon_hours"`
	PeakWindowHours         int   `mapstructure:"peak_window_hours"`
	NowcastEnabled          bool  `mapstructure:"nowcast_enabled"`
}

// FeedsConfig holds upstream endpoints. Empty URLs use the public defaults;
// overriding them is mostly a test affordance.
type FeedsConfig struct {
	CurrentURL   string        `mapstructure:"current_url"`
	ForecastURL  string        `mapstructure:"forecast_url"`
	NowcastURL   string        `mapstructure:"nowcast_url"`
	OpenMeteoURL string        `mapstructure:"openmeteo_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// EmailConfig holds SMTP notification configuration.
type EmailConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Host       string   `mapstructure:"host"`
	Port       int      `mapstructure:"port"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	From       string   `mapstructure:"from"`
	Recipients []string `mapstructure:"recipients"`
}

// TelegramConfig holds Telegram notification configuration.
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// LedgerConfig holds persistence configuration for the last-sent ledger.
type LedgerConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	setDefaults(v)

	v.SetEnvPrefix("AURORAWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
// Numeric defaults mirror the long-standing operational values: alert at
// Kp 6, up to 70% cloud, 2h/6h cooldowns, 24h horizon, ±2h peak window.
func setDefaults(v *viper.Viper) {
	v.SetDefault("location.name", "Wałbrzych")
	v.SetDefault("location.latitude", 50.77)
	v.SetDefault("location.longitude", 16.28)
	v.SetDefault("location.timezone", "Europe/Warsaw")

	v.SetDefault("thresholds.now_min_index", 6.0)
	v.SetDefault("thresholds.forecast_min_index", 6.0)
	v.SetDefault("thresholds.max_cloud_cover", 70)

	v.SetDefault("alerts.now_cooldown_seconds", 7200)
	v.SetDefault("alerts.forecast_cooldown_seconds", 21600)
	v.SetDefault("alerts.forecast_horizon_hours", 24)
	v.SetDefault("alerts.peak_window_hours", 2)
	v.SetDefault("alerts.nowcast_enabled", false)

	v.SetDefault("feeds.timeout", "20s")

	v.SetDefault("email.enabled", true)
	v.SetDefault("email.host", "smtp.gmail.com")
	v.SetDefault("email.port", 465)

	v.SetDefault("telegram.enabled", false)

	v.SetDefault("ledger.path", "alert_state.json")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid. Configuration
// errors are fatal and must surface before any feed is fetched.
func (c *Config) Validate() error {
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("location.latitude must be between -90 and 90")
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("location.longitude must be between -180 and 180")
	}
	if c.Location.Timezone == "" {
		return fmt.Errorf("location.timezone is required")
	}

	if c.Thresholds.NowMinIndex < 0 || c.Thresholds.NowMinIndex > 9 {
		return fmt.Errorf("thresholds.now_min_index must be between 0 and 9")
	}
	if c.Thresholds.ForecastMinIndex < 0 || c.Thresholds.ForecastMinIndex > 9 {
		return fmt.Errorf("thresholds.forecast_min_index must be between 0 and 9")
	}
	if c.Thresholds.MaxCloudCover < 0 || c.Thresholds.MaxCloudCover > 100 {
		return fmt.Errorf("thresholds.max_cloud_cover must be between 0 and 100")
	}

	if c.Alerts.NowCooldownSeconds < 0 {
		return fmt.Errorf("alerts.now_cooldown_seconds must not be negative")
	}
	if c.Alerts.ForecastCooldownSeconds < 0 {
		return fmt.Errorf("alerts.forecast_cooldown_seconds must not be negative")
	}
	if c.Alerts.ForecastHorizonHours < 1 {
		return fmt.Errorf("alerts.forecast_horizon_hours must be at least 1")
	}
	if c.Alerts.PeakWindowHours < 0 {
		return fmt.Errorf("alerts.peak_window_hours must not be negative")
	}

	if c.Feeds.Timeout < time.Second {
		return fmt.Errorf("feeds.timeout must be at least 1 second")
	}

	if !c.Email.Enabled && !c.Telegram.Enabled {
		return fmt.Errorf("at least one notification channel must be enabled")
	}
	if c.Email.Enabled {
		if c.Email.Username == "" || c.Email.Password == "" {
			return fmt.Errorf("email.username and email.password are required when email is enabled")
		}
		if len(c.Email.Recipients) == 0 {
			return fmt.Errorf("email.recipients must contain at least one address when email is enabled")
		}
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
