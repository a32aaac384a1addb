// Package config provides configuration management for the farm advisory application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Market      MarketConfig  `mapstructure:"market"`
	Weather     WeatherConfig `mapstructure:"weather"`
	UI          UIConfig      `mapstructure:"ui"`
	Credentials Credentials   `mapstructure:"-"` // Loaded separately
}

// MarketConfig holds price sourcing and forecasting configuration.
type MarketConfig struct {
	DatasetPath     string        `mapstructure:"dataset_path"`     // fallback CSV
	FeedURL         string        `mapstructure:"feed_url"`         // live mandi feed base URL
	FeedTimeout     time.Duration `mapstructure:"feed_timeout"`     // per-request hard timeout
	ForecastHorizon int           `mapstructure:"forecast_horizon"` // periods ahead
}

// WeatherConfig holds weather provider configuration.
type WeatherConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenWeather OpenWeatherCredentials `mapstructure:"openweather"`
}

// OpenWeatherCredentials holds the OpenWeather API credentials.
type OpenWeatherCredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/farm-manager"
	}
	return filepath.Join(home, ".config", "farm-manager")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	// Load main config
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Load credentials
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("market.feed_timeout", "5s")
	v.SetDefault("market.forecast_horizon", 7)
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("weather.timeout", "10s")
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template
			if terr := createTemplateConfig(configDir, name); terr != nil {
				return terr
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.Credentials.OpenWeather.APIKey = v
	}
	if v := os.Getenv("MANDI_FEED_URL"); v != "" {
		cfg.Market.FeedURL = v
	}
	if v := os.Getenv("FARM_DATASET_PATH"); v != "" {
		cfg.Market.DatasetPath = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Market.FeedTimeout <= 0 {
		cfg.Market.FeedTimeout = 5 * time.Second
	}
	if cfg.Market.ForecastHorizon <= 0 {
		cfg.Market.ForecastHorizon = 7
	}
	if cfg.Weather.Timeout <= 0 {
		cfg.Weather.Timeout = 10 * time.Second
	}
	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = "https://api.openweathermap.org/data/2.5/weather"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Market.ForecastHorizon < 1 {
		return fmt.Errorf("forecast_horizon must be at least 1")
	}
	if c.Market.FeedTimeout < time.Second {
		return fmt.Errorf("feed_timeout must be at least 1s")
	}
	if c.Weather.Timeout < time.Second {
		return fmt.Errorf("weather timeout must be at least 1s")
	}
	return nil
}

// HasWeatherCredentials returns true if an OpenWeather API key is configured.
func (c *Config) HasWeatherCredentials() bool {
	return c.Credentials.OpenWeather.APIKey != ""
}

// HasLiveFeed returns true if a live mandi feed URL is configured.
func (c *Config) HasLiveFeed() bool {
	return c.Market.FeedURL != ""
}
