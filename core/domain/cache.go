// ABOUTME: Cache entry domain model for the last fetched raw feed body
// ABOUTME: Holds the freshness rule shared by the cache store and diagnostics

package domain

import "time"

// DefaultFreshnessWindow is how long a cached feed body is served without
// going back to the network.
const DefaultFreshnessWindow = 24 * time.Hour

// CacheEntry is the persisted result of the last successful network fetch.
// FetchedAt is only set when RawBody was written successfully.
type CacheEntry struct {
	// RawBody is the feed document exactly as received
	RawBody string

	// FetchedAt is when RawBody was persisted
	FetchedAt time.Time
}

// IsFreshAt reports whether the entry is still valid at now for the given window.
// An entry without a timestamp is never fresh.
func (e CacheEntry) IsFreshAt(now time.Time, window time.Duration) bool {
	return IsFresh(e.FetchedAt, now, window)
}

// Age returns how old the entry is at now
func (e CacheEntry) Age(now time.Time) time.Duration {
	if e.FetchedAt.IsZero() {
		return 0
	}
	return now.Sub(e.FetchedAt)
}

// IsFresh implements the freshness rule: now - fetchedAt < window.
func IsFresh(fetchedAt, now time.Time, window time.Duration) bool {
	if fetchedAt.IsZero() {
		return false
	}
	return now.Sub(fetchedAt) < window
}
