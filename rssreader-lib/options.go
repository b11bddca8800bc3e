// ABOUTME: Configuration options for the rssreader library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package rssreader

import (
	"time"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
	"github.com/OlhaTymoshenko/rssreader/core/interfaces"
	"github.com/OlhaTymoshenko/rssreader/infrastructure/storage/file"
	"github.com/OlhaTymoshenko/rssreader/pkg/config"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithFeedURL sets the feed to load
func WithFeedURL(url string) Option {
	return func(c *Config) error {
		c.FeedURL = url
		return nil
	}
}

// WithCache sets the store that keeps the fetch timestamp
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithBlobStore sets the store that keeps the raw feed body
func WithBlobStore(blob interfaces.BlobStore) Option {
	return func(c *Config) error {
		c.Blob = blob
		return nil
	}
}

// WithBodyFile stores the raw feed body at path
func WithBodyFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewError(ErrorTypeValidation, "body file path cannot be empty")
		}
		c.Blob = file.NewBlobStore(path)
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithFreshnessWindow sets how long a cached body is served
func WithFreshnessWindow(window time.Duration) Option {
	return func(c *Config) error {
		if window <= 0 {
			return NewError(ErrorTypeValidation, "freshness window must be positive")
		}
		c.FreshnessWindow = window
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		FeedURL:         config.DefaultFeedURL,
		FreshnessWindow: domain.DefaultFreshnessWindow,
	}
}

// validateConfig fills in missing dependencies
func validateConfig(c *Config) error {
	if c.FeedURL == "" {
		return ErrNoFeedURL
	}
	if c.Cache == nil {
		c.Cache = DefaultMemoryCache()
	}
	if c.Blob == nil {
		c.Blob = DefaultBlobStore()
	}
	if c.HTTPClient == nil {
		c.HTTPClient = DefaultHTTPClient()
	}
	if c.Logger == nil {
		c.Logger = QuietLogger()
	}
	return nil
}
