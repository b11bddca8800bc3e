// ABOUTME: CacheStore persists the last fetched feed body and its fetch time
// ABOUTME: Body lives in a blob store, the timestamp in a key/value cache

package feed

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
	feederrors "github.com/OlhaTymoshenko/rssreader/core/errors"
	"github.com/OlhaTymoshenko/rssreader/core/interfaces"
)

// TimestampKey is the key under which the last successful fetch time is stored
const TimestampKey = "last_feed_update:timestamp"

var errEmptyBody = errors.New("cached body is empty")

// CacheStore is the single cache slot for the raw feed document
type CacheStore struct {
	blob   interfaces.BlobStore
	kv     interfaces.Cache
	logger interfaces.Logger
	now    func() time.Time
	window time.Duration
}

// StoreOption configures a CacheStore
type StoreOption func(*CacheStore)

// WithClock replaces the wall clock used for timestamps and freshness
func WithClock(now func() time.Time) StoreOption {
	return func(s *CacheStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithWindow sets the freshness window
func WithWindow(window time.Duration) StoreOption {
	return func(s *CacheStore) {
		if window > 0 {
			s.window = window
		}
	}
}

// WithStoreLogger sets the logger used for absorbed cache failures
func WithStoreLogger(logger interfaces.Logger) StoreOption {
	return func(s *CacheStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCacheStore creates a cache store over the given body and timestamp backends
func NewCacheStore(blob interfaces.BlobStore, kv interfaces.Cache, opts ...StoreOption) *CacheStore {
	s := &CacheStore{
		blob:   blob,
		kv:     kv,
		logger: interfaces.NopLogger{},
		now:    time.Now,
		window: domain.DefaultFreshnessWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window returns the freshness window in use
func (s *CacheStore) Window() time.Duration {
	return s.window
}

// Read returns the cached body. Any failure is logged and reported as a miss.
func (s *CacheStore) Read(ctx context.Context) (string, bool) {
	data, err := s.blob.Read(ctx)
	if err == nil && len(data) == 0 {
		err = errEmptyBody
	}
	if err != nil {
		readErr := &feederrors.CacheReadError{Op: "body", Cause: err}
		s.logger.Warn("Failed to read cached feed", map[string]interface{}{
			"error": readErr.Error(),
		})
		return "", false
	}
	return string(data), true
}

// Write persists body and then records the current time.
// The timestamp is only touched once the body is safely stored.
func (s *CacheStore) Write(ctx context.Context, body string) error {
	if err := s.blob.Write(ctx, []byte(body)); err != nil {
		return &feederrors.CacheWriteError{Op: "body", Cause: err}
	}

	ts := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.kv.Set(ctx, TimestampKey, []byte(ts), 0); err != nil {
		return &feederrors.CacheWriteError{Op: "timestamp", Cause: err}
	}

	s.logger.Debug("Cached feed body", map[string]interface{}{
		"bytes":     len(body),
		"timestamp": ts,
	})
	return nil
}

// IsFresh reports whether the last successful write is inside the freshness window
func (s *CacheStore) IsFresh(ctx context.Context) bool {
	fetchedAt, ok := s.lastUpdate(ctx)
	if !ok {
		return false
	}
	return domain.IsFresh(fetchedAt, s.now(), s.window)
}

// Entry returns the cached body together with its fetch time
func (s *CacheStore) Entry(ctx context.Context) (domain.CacheEntry, bool) {
	fetchedAt, ok := s.lastUpdate(ctx)
	if !ok {
		return domain.CacheEntry{}, false
	}
	body, _ := s.Read(ctx)
	return domain.CacheEntry{RawBody: body, FetchedAt: fetchedAt}, true
}

// lastUpdate loads the stored timestamp. Missing or corrupt records yield false.
func (s *CacheStore) lastUpdate(ctx context.Context) (time.Time, bool) {
	raw, err := s.kv.Get(ctx, TimestampKey)
	if err != nil || len(raw) == 0 {
		return time.Time{}, false
	}

	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || ms <= 0 {
		s.logger.Warn("Ignoring corrupt cache timestamp", map[string]interface{}{
			"value": string(raw),
		})
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
