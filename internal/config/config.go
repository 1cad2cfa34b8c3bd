package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Version is injected at build time via ldflags.
var Version = "dev"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Metadata MetadataConfig `mapstructure:"metadata" yaml:"metadata"`
	Search   SearchConfig   `mapstructure:"search" yaml:"search"`
	Catalog  CatalogConfig  `mapstructure:"catalog" yaml:"catalog"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	Path       string `mapstructure:"path" yaml:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// MetadataConfig holds remote catalog provider configuration.
type MetadataConfig struct {
	TMDB TMDBConfig `mapstructure:"tmdb" yaml:"tmdb"`
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	// Token is the v4 read access token sent as a bearer credential.
	Token             string  `mapstructure:"token" yaml:"token"`
	BaseURL           string  `mapstructure:"base_url" yaml:"base_url"`
	ImageBaseURL      string  `mapstructure:"image_base_url" yaml:"image_base_url"`
	Language          string  `mapstructure:"language" yaml:"language"`
	Timeout           int     `mapstructure:"timeout" yaml:"timeout"` // seconds
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
}

// SearchConfig tunes the search coordinator.
type SearchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
	MaxResults int `mapstructure:"max_results" yaml:"max_results"`
	Timeout    int `mapstructure:"timeout" yaml:"timeout"` // seconds
}

// CatalogConfig controls background collection refreshes.
type CatalogConfig struct {
	RefreshCron    string `mapstructure:"refresh_cron" yaml:"refresh_cron"`
	RefreshOnStart bool   `mapstructure:"refresh_on_start" yaml:"refresh_on_start"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8484,
		},
		Database: DatabaseConfig{
			Path: "./data/marquee.db",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
		},
		Metadata: MetadataConfig{
			TMDB: TMDBConfig{
				Token:             EmbeddedTMDBToken,
				BaseURL:           "https://api.themoviedb.org/3",
				ImageBaseURL:      "https://image.tmdb.org/t/p",
				Language:          "en-US",
				Timeout:           10,
				RequestsPerSecond: 20,
			},
		},
		Search: SearchConfig{
			DebounceMS: 500,
			MaxResults: 20,
			Timeout:    10,
		},
		Catalog: CatalogConfig{
			RefreshCron:    "0 */6 * * *",
			RefreshOnStart: true,
		},
	}
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.marquee")
	}

	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)

	v.SetDefault("database.path", d.Database.Path)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", d.Logging.Path)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", d.Logging.Compress)

	v.SetDefault("metadata.tmdb.token", d.Metadata.TMDB.Token)
	v.SetDefault("metadata.tmdb.base_url", d.Metadata.TMDB.BaseURL)
	v.SetDefault("metadata.tmdb.image_base_url", d.Metadata.TMDB.ImageBaseURL)
	v.SetDefault("metadata.tmdb.language", d.Metadata.TMDB.Language)
	v.SetDefault("metadata.tmdb.timeout", d.Metadata.TMDB.Timeout)
	v.SetDefault("metadata.tmdb.requests_per_second", d.Metadata.TMDB.RequestsPerSecond)

	v.SetDefault("search.debounce_ms", d.Search.DebounceMS)
	v.SetDefault("search.max_results", d.Search.MaxResults)
	v.SetDefault("search.timeout", d.Search.Timeout)

	v.SetDefault("catalog.refresh_cron", d.Catalog.RefreshCron)
	v.SetDefault("catalog.refresh_on_start", d.Catalog.RefreshOnStart)
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TimeoutDuration returns the per-request timeout.
func (c TMDBConfig) TimeoutDuration() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// Debounce returns the quiescence window applied to query edits.
func (c SearchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// TimeoutDuration returns the bound applied to a single remote search.
func (c SearchConfig) TimeoutDuration() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Metadata.TMDB.Token != "" {
		c.Metadata.TMDB.Token = "********"
	}
	return c
}
