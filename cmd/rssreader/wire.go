// ABOUTME: Wires configuration, storage, transport and workers into the news pipeline
// ABOUTME: Shared by every command so the TUI and the console see the same cache

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/OlhaTymoshenko/rssreader/core/feed"
	"github.com/OlhaTymoshenko/rssreader/core/interfaces"
	"github.com/OlhaTymoshenko/rssreader/core/news"
	"github.com/OlhaTymoshenko/rssreader/core/reader"
	"github.com/OlhaTymoshenko/rssreader/core/workers"
	"github.com/OlhaTymoshenko/rssreader/infrastructure/cache/memory"
	"github.com/OlhaTymoshenko/rssreader/infrastructure/cache/redis"
	"github.com/OlhaTymoshenko/rssreader/infrastructure/cache/sqlite"
	stdhttp "github.com/OlhaTymoshenko/rssreader/infrastructure/http/standard"
	stdlogger "github.com/OlhaTymoshenko/rssreader/infrastructure/logger/standard"
	"github.com/OlhaTymoshenko/rssreader/infrastructure/storage/file"
	"github.com/OlhaTymoshenko/rssreader/pkg/config"
	"github.com/OlhaTymoshenko/rssreader/pkg/featureflags"
)

// app holds the wired components of one command invocation
type app struct {
	cfg        *config.Config
	flags      featureflags.Manager
	logger     *stdlogger.StandardLogger
	kv         interfaces.Cache
	kvType     string
	blob       *file.BlobStore
	service    *feed.Service
	parser     *feed.RSSParser
	reader     *reader.Service
	dispatcher *workers.Dispatcher
}

// newApp loads configuration and builds every component.
// logToFile forces file logging so the terminal UI owns the screen.
func newApp(configPath string, logToFile bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logFile := cfg.Log.File
	if logToFile && logFile == "" {
		logFile = config.DefaultLogPath()
	}
	logger := stdlogger.NewStandardLogger(stdlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   logFile,
	})

	if err := os.MkdirAll(cfg.CacheDir(), 0o755); err != nil {
		logger.Close()
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	kv, kvType := openKV(cfg, logger)
	blob := file.NewBlobStore(cfg.BodyPath())

	flags := featureflags.NewEnvManager("")
	httpOpts := []stdhttp.Option{stdhttp.WithLogger(logger)}
	if flags.IsEnabled(context.Background(), featureflags.RateLimitEnabled) {
		httpOpts = append(httpOpts, stdhttp.WithRateLimit(cfg.HTTP.RateLimit, cfg.HTTP.Burst))
	}
	httpClient := stdhttp.NewStandardHTTPClient(cfg.Timeout(), httpOpts...)

	deps := interfaces.Dependencies{
		Cache:      kv,
		Blob:       blob,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	a := &app{
		cfg:        cfg,
		flags:      flags,
		logger:     logger,
		kv:         kv,
		kvType:     kvType,
		blob:       blob,
		service:    feed.NewServiceFromDeps(cfg.Feed.URL, deps, feed.WithWindow(cfg.FreshnessWindow())),
		parser:     feed.NewRSSParser(),
		reader:     reader.NewService(httpClient, memory.NewMemoryCache(), logger),
		dispatcher: workers.NewDispatcher(logger),
	}

	logger.Info("Starting rssreader", map[string]interface{}{
		"feed_url":         cfg.Feed.URL,
		"cache_type":       kvType,
		"freshness_window": cfg.FreshnessWindow().String(),
	})
	return a, nil
}

// openKV creates the timestamp store, falling back to memory when the
// configured backend is unavailable
func openKV(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, string) {
	switch cfg.Cache.Type {
	case config.CacheTypeRedis:
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), config.CacheTypeMemory
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache, config.CacheTypeRedis

	case config.CacheTypeMemory:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(), config.CacheTypeMemory

	default:
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.TimestampDBPath(), logger)
		if err != nil {
			logger.Error("Failed to open SQLite cache, falling back to memory", map[string]interface{}{
				"path":  cfg.TimestampDBPath(),
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), config.CacheTypeMemory
		}
		logger.Debug("Using SQLite cache", map[string]interface{}{
			"path": cfg.TimestampDBPath(),
		})
		return sqliteCache, config.CacheTypeSQLite
	}
}

// readerService returns the reader view service, or nil when the feature is off
func (a *app) readerService() interfaces.ReaderService {
	if !a.flags.IsEnabled(context.Background(), featureflags.ReaderView) {
		return nil
	}
	return a.reader
}

// newController starts the delivery dispatcher and binds a controller to display
func (a *app) newController(ctx context.Context, display news.Display) (*news.Controller, error) {
	if err := a.dispatcher.Start(); err != nil {
		return nil, fmt.Errorf("starting dispatcher: %w", err)
	}
	return a.bindController(ctx, display, a.dispatcher), nil
}

// bindController binds a controller that delivers to display through executor
func (a *app) bindController(ctx context.Context, display news.Display, executor interfaces.Executor) *news.Controller {
	return news.NewController(a.service, a.parser, display, executor,
		news.WithLogger(a.logger),
		news.WithContext(ctx),
	)
}

// Close stops the dispatcher and releases storage and log handles
func (a *app) Close() {
	if err := a.dispatcher.Stop(); err != nil {
		a.logger.Warn("Failed to stop dispatcher", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if closer, ok := a.kv.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warn("Failed to close cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	a.logger.Close()
}
