// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/sqlite: SQLite key-value store, the default home of the fetch timestamp
// - cache/memory: in-memory store backed by go-cache
// - cache/redis: Redis store
// - storage/file: atomic file storage for the raw feed body
// - http/standard: net/http client with an optional rate limiter
// - logger/standard: logrus logger with optional lumberjack file rotation
//
// # Cache Implementations
//
//	kv, err := sqlite.NewSQLiteCache(cfg.TimestampDBPath(), logger)
//	err = kv.Set(ctx, "key", []byte("value"), 0) // 0 never expires
//	value, err := kv.Get(ctx, "key")
//
// # HTTP Client
//
// The client performs exactly one attempt per call:
//
//	client := standard.NewStandardHTTPClient(30*time.Second,
//	    standard.WithRateLimit(1, 2),
//	)
//	resp, err := client.Get(ctx, "https://example.com/rss", nil)
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := standard.NewStandardLogger(standard.Config{Level: "info", Format: "text"})
//	logger.Info("Feed fetched", map[string]interface{}{
//	    "bytes": 5120,
//	})
package infrastructure
