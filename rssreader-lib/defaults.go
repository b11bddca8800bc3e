// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for creating default storage, transport and loggers

package rssreader

import (
	"path/filepath"
	"time"

	"github.com/OlhaTymoshenko/rssreader/core/interfaces"
	"github.com/OlhaTymoshenko/rssreader/infrastructure/cache/memory"
	"github.com/OlhaTymoshenko/rssreader/infrastructure/cache/sqlite"
	httpInfra "github.com/OlhaTymoshenko/rssreader/infrastructure/http/standard"
	loggerInfra "github.com/OlhaTymoshenko/rssreader/infrastructure/logger/standard"
	"github.com/OlhaTymoshenko/rssreader/infrastructure/storage/file"
	"github.com/OlhaTymoshenko/rssreader/pkg/config"
)

// DefaultHTTPClient creates a default HTTP client with sensible timeouts
func DefaultHTTPClient() interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(30 * time.Second)
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultSQLiteCache creates a SQLite cache with the given file path
func DefaultSQLiteCache(filePath string) (interfaces.Cache, error) {
	return sqlite.NewSQLiteCache(filePath, nil)
}

// DefaultBlobStore stores the feed body in the user cache directory
func DefaultBlobStore() interfaces.BlobStore {
	return file.NewBlobStore(filepath.Join(config.DefaultCacheDir(), config.BodyFileName))
}

// DefaultLogger creates a logger that writes warnings and errors to stderr
func DefaultLogger() interfaces.Logger {
	return loggerInfra.NewStandardLogger(loggerInfra.Config{Level: "warn", Format: "text"})
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return interfaces.NopLogger{}
}

// CacheOption represents cache configuration options
type CacheOption struct {
	Type     CacheType
	FilePath string // For SQLite cache
}

// CacheType represents the type of cache
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeSQLite CacheType = "sqlite"
)

// WithCacheOption creates a cache based on the provided options
func WithCacheOption(opt CacheOption) Option {
	return func(c *Config) error {
		switch opt.Type {
		case CacheTypeMemory:
			c.Cache = DefaultMemoryCache()
		case CacheTypeSQLite:
			path := opt.FilePath
			if path == "" {
				path = filepath.Join(config.DefaultCacheDir(), config.TimestampDBName)
			}
			cache, err := DefaultSQLiteCache(path)
			if err != nil {
				return NewError(ErrorTypeConfiguration, "failed to open SQLite cache").WithCause(err)
			}
			c.Cache = cache
		default:
			return NewError(ErrorTypeConfiguration, "unknown cache type").WithContext("type", string(opt.Type))
		}
		return nil
	}
}
