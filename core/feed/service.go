// ABOUTME: Feed service decides between the cached body and a network fetch
// ABOUTME: Provides the raw feed document to callers independent of the UI layer

package feed

import (
	"context"

	"github.com/OlhaTymoshenko/rssreader/core/interfaces"
)

// Service produces the raw feed body, preferring a fresh cache
type Service struct {
	store   *CacheStore
	fetcher *Fetcher
	logger  interfaces.Logger
}

// NewService creates a new feed service instance
func NewService(store *CacheStore, fetcher *Fetcher, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Service{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
	}
}

// NewServiceFromDeps wires a store, fetcher and service from a dependency container
func NewServiceFromDeps(feedURL string, deps interfaces.Dependencies, opts ...StoreOption) *Service {
	logger := deps.LoggerOrNop()
	opts = append([]StoreOption{WithStoreLogger(logger)}, opts...)
	store := NewCacheStore(deps.Blob, deps.Cache, opts...)
	fetcher := NewFetcher(feedURL, deps.HTTPClient, store, logger)
	return NewService(store, fetcher, logger)
}

// Store returns the cache store backing the service
func (s *Service) Store() *CacheStore {
	return s.store
}

// GetFeedBody returns the feed document.
// With forceRefresh it always goes to the network. Otherwise a fresh, readable
// cache is returned without any request. Only network errors are returned.
func (s *Service) GetFeedBody(ctx context.Context, forceRefresh bool) (string, error) {
	if forceRefresh {
		s.logger.Debug("Forced refresh, skipping cache", nil)
		return s.fetcher.Fetch(ctx)
	}

	if s.store.IsFresh(ctx) {
		if body, ok := s.store.Read(ctx); ok {
			s.logger.Debug("Serving feed from cache", map[string]interface{}{
				"bytes": len(body),
			})
			return body, nil
		}
		s.logger.Info("Fresh cache unreadable, fetching feed", nil)
		return s.fetcher.Fetch(ctx)
	}

	return s.fetcher.Fetch(ctx)
}
