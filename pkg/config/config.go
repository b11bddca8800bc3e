// ABOUTME: Configuration management with YAML file, .env and environment variable support
// ABOUTME: Defines configuration structures for the feed, HTTP client, cache and logging

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	feederrors "github.com/OlhaTymoshenko/rssreader/core/errors"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFeedURL is the news feed loaded when nothing else is configured
	DefaultFeedURL = "http://feeds.abcnews.com/abcnews/topstories"

	// BodyFileName is the cached feed body file inside the cache directory
	BodyFileName = "news"

	// TimestampDBName is the SQLite timestamp store inside the cache directory
	TimestampDBName = "last_feed_update.db"

	appName = "rssreader"
)

// Cache backends
const (
	CacheTypeSQLite = "sqlite"
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	// Feed contains the feed source and freshness policy
	Feed FeedConfig `yaml:"feed"`

	// HTTP contains HTTP client configuration
	HTTP HTTPConfig `yaml:"http"`

	// Cache contains cache backend configuration
	Cache CacheConfig `yaml:"cache"`

	// Log contains logging configuration
	Log LogConfig `yaml:"log"`
}

// FeedConfig holds the feed source configuration
type FeedConfig struct {
	// URL is the RSS feed address
	URL string `yaml:"url"`

	// FreshnessWindow is how long a cached body is served, e.g. "24h"
	FreshnessWindow string `yaml:"freshness_window"`
}

// HTTPConfig holds HTTP client configuration
type HTTPConfig struct {
	// Timeout is the overall request timeout, e.g. "30s"
	Timeout string `yaml:"timeout"`

	// RateLimit is the maximum requests per second; 0 disables limiting
	RateLimit float64 `yaml:"rate_limit"`

	// Burst is the rate limiter burst size
	Burst int `yaml:"burst"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Dir holds the cached body and the SQLite timestamp store
	Dir string `yaml:"dir"`

	// Type specifies the timestamp backend (sqlite/memory/redis)
	Type string `yaml:"type"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `yaml:"address"`

	// Password is the Redis authentication password
	Password string `yaml:"password"`

	// DB is the Redis database number
	DB int `yaml:"db"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level"`

	// Format is text or json
	Format string `yaml:"format"`

	// File is the log file; empty logs to stderr
	File string `yaml:"file"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Feed: FeedConfig{
			URL:             DefaultFeedURL,
			FreshnessWindow: "24h",
		},
		HTTP: HTTPConfig{
			Timeout:   "30s",
			RateLimit: 1,
			Burst:     2,
		},
		Cache: CacheConfig{
			Type: CacheTypeSQLite,
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultConfigPath returns the YAML config location
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// DefaultCacheDir returns the default cache directory
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, appName)
}

// DefaultLogPath returns the log file used when the terminal UI owns the screen
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// Load builds the configuration from defaults, the YAML file at path, a .env
// file in the working directory and the environment, in that order.
// An empty path means DefaultConfigPath, which may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from defaults and environment variables only
func LoadFromEnv() (*Config, error) {
	cfg := Default()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Feed.URL = getEnvOrDefault("RSS_FEED_URL", c.Feed.URL)
	c.Feed.FreshnessWindow = getEnvOrDefault("RSS_FRESHNESS_WINDOW", c.Feed.FreshnessWindow)

	c.HTTP.Timeout = getEnvOrDefault("HTTP_TIMEOUT", c.HTTP.Timeout)
	c.HTTP.RateLimit = getEnvAsFloatOrDefault("HTTP_RATE_LIMIT", c.HTTP.RateLimit)
	c.HTTP.Burst = getEnvAsIntOrDefault("HTTP_BURST", c.HTTP.Burst)

	c.Cache.Dir = getEnvOrDefault("CACHE_DIR", c.Cache.Dir)
	c.Cache.Type = getEnvOrDefault("CACHE_TYPE", c.Cache.Type)
	c.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Cache.Redis.Address)
	c.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Cache.Redis.Password)
	c.Cache.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", c.Cache.Redis.DB)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnvOrDefault("LOG_FILE", c.Log.File)
}

// FreshnessWindow returns the parsed freshness window
func (c *Config) FreshnessWindow() time.Duration {
	d, err := time.ParseDuration(c.Feed.FreshnessWindow)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Timeout returns the parsed HTTP timeout
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// CacheDir returns the configured cache directory or the default one
func (c *Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	return DefaultCacheDir()
}

// BodyPath returns the cached feed body file
func (c *Config) BodyPath() string {
	return filepath.Join(c.CacheDir(), BodyFileName)
}

// TimestampDBPath returns the SQLite timestamp store file
func (c *Config) TimestampDBPath() string {
	return filepath.Join(c.CacheDir(), TimestampDBName)
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	u, err := url.Parse(c.Feed.URL)
	if c.Feed.URL == "" || err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &feederrors.ValidationError{Field: "feed.url", Message: "must be an absolute http(s) URL"}
	}

	if d, err := time.ParseDuration(c.Feed.FreshnessWindow); err != nil || d <= 0 {
		return &feederrors.ValidationError{Field: "feed.freshness_window", Message: "must be a positive duration such as 24h"}
	}

	if d, err := time.ParseDuration(c.HTTP.Timeout); err != nil || d <= 0 {
		return &feederrors.ValidationError{Field: "http.timeout", Message: "must be a positive duration such as 30s"}
	}

	if c.HTTP.RateLimit < 0 {
		return &feederrors.ValidationError{Field: "http.rate_limit", Message: "cannot be negative"}
	}

	switch c.Cache.Type {
	case CacheTypeSQLite, CacheTypeMemory:
	case CacheTypeRedis:
		if c.Cache.Redis.Address == "" {
			return &feederrors.ValidationError{Field: "cache.redis.address", Message: "cannot be empty when using redis cache"}
		}
	default:
		return &feederrors.ValidationError{Field: "cache.type", Message: "must be 'sqlite', 'memory' or 'redis'"}
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return &feederrors.ValidationError{Field: "log.format", Message: "must be 'text' or 'json'"}
	}

	return nil
}
