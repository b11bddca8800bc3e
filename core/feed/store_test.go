package feed

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	feederrors "github.com/OlhaTymoshenko/rssreader/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestStore(blob *mockBlob, kv *mockCache, clock *fakeClock, logger *mockLogger) *CacheStore {
	return NewCacheStore(blob, kv, WithClock(clock.Now), WithStoreLogger(logger))
}

func TestCacheStore_EmptyCache(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(&mockBlob{}, newMockCache(), &fakeClock{now: testNow}, &mockLogger{})

	body, ok := store.Read(ctx)
	assert.False(t, ok)
	assert.Empty(t, body)
	assert.False(t, store.IsFresh(ctx))

	_, ok = store.Entry(ctx)
	assert.False(t, ok)
}

func TestCacheStore_WriteThenRead(t *testing.T) {
	ctx := context.Background()
	kv := newMockCache()
	store := newTestStore(&mockBlob{}, kv, &fakeClock{now: testNow}, &mockLogger{})

	require.NoError(t, store.Write(ctx, "<rss>...</rss>"))

	body, ok := store.Read(ctx)
	assert.True(t, ok)
	assert.Equal(t, "<rss>...</rss>", body)

	raw, err := kv.Get(ctx, TimestampKey)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(testNow.UnixMilli(), 10), string(raw))
}

func TestCacheStore_FreshnessWindow(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: testNow}
	store := newTestStore(&mockBlob{}, newMockCache(), clock, &mockLogger{})

	require.NoError(t, store.Write(ctx, "<rss/>"))
	assert.True(t, store.IsFresh(ctx))

	clock.Advance(23 * time.Hour)
	assert.True(t, store.IsFresh(ctx))

	clock.Advance(time.Hour - time.Millisecond)
	assert.True(t, store.IsFresh(ctx))

	clock.Advance(time.Millisecond)
	assert.False(t, store.IsFresh(ctx), "exactly one window old is stale")

	clock.Advance(24 * time.Hour)
	assert.False(t, store.IsFresh(ctx))
}

func TestCacheStore_CustomWindow(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: testNow}
	store := NewCacheStore(&mockBlob{}, newMockCache(), WithClock(clock.Now), WithWindow(time.Hour))

	require.NoError(t, store.Write(ctx, "<rss/>"))
	assert.Equal(t, time.Hour, store.Window())

	clock.Advance(59 * time.Minute)
	assert.True(t, store.IsFresh(ctx))
	clock.Advance(time.Minute)
	assert.False(t, store.IsFresh(ctx))
}

func TestCacheStore_BodyWriteFailureLeavesTimestamp(t *testing.T) {
	ctx := context.Background()
	kv := newMockCache()
	blob := &mockBlob{writeFunc: func(ctx context.Context, data []byte) error {
		return errors.New("disk full")
	}}
	store := newTestStore(blob, kv, &fakeClock{now: testNow}, &mockLogger{})

	err := store.Write(ctx, "<rss/>")
	require.Error(t, err)

	var writeErr *feederrors.CacheWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "body", writeErr.Op)

	_, err = kv.Get(ctx, TimestampKey)
	assert.Error(t, err, "timestamp must not be recorded")
	assert.False(t, store.IsFresh(ctx))
}

func TestCacheStore_BodyWriteFailureKeepsOldTimestamp(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: testNow}
	kv := newMockCache()
	blob := &mockBlob{}
	store := newTestStore(blob, kv, clock, &mockLogger{})

	require.NoError(t, store.Write(ctx, "<rss>old</rss>"))
	before, _ := kv.Get(ctx, TimestampKey)

	blob.writeFunc = func(ctx context.Context, data []byte) error {
		return errors.New("read-only filesystem")
	}
	clock.Advance(time.Hour)
	require.Error(t, store.Write(ctx, "<rss>new</rss>"))

	after, _ := kv.Get(ctx, TimestampKey)
	assert.Equal(t, before, after)
}

func TestCacheStore_TimestampWriteFailure(t *testing.T) {
	ctx := context.Background()
	kv := newMockCache()
	kv.setFunc = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		return errors.New("database is locked")
	}
	store := newTestStore(&mockBlob{}, kv, &fakeClock{now: testNow}, &mockLogger{})

	err := store.Write(ctx, "<rss/>")
	var writeErr *feederrors.CacheWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "timestamp", writeErr.Op)
	assert.False(t, store.IsFresh(ctx))
}

func TestCacheStore_ReadFailureIsMiss(t *testing.T) {
	ctx := context.Background()
	logger := &mockLogger{}
	blob := &mockBlob{readFunc: func(ctx context.Context) ([]byte, error) {
		return nil, errors.New("permission denied")
	}}
	store := newTestStore(blob, newMockCache(), &fakeClock{now: testNow}, logger)

	body, ok := store.Read(ctx)
	assert.False(t, ok)
	assert.Empty(t, body)
	assert.Equal(t, 1, logger.warnCount())
}

func TestCacheStore_EmptyBodyIsMiss(t *testing.T) {
	ctx := context.Background()
	blob := &mockBlob{data: []byte{}, present: true}
	store := newTestStore(blob, newMockCache(), &fakeClock{now: testNow}, &mockLogger{})

	_, ok := store.Read(ctx)
	assert.False(t, ok)
}

func TestCacheStore_CorruptTimestamp(t *testing.T) {
	ctx := context.Background()
	kv := newMockCache()
	require.NoError(t, kv.Set(ctx, TimestampKey, []byte("yesterday"), 0))
	logger := &mockLogger{}
	store := newTestStore(&mockBlob{}, kv, &fakeClock{now: testNow}, logger)

	assert.False(t, store.IsFresh(ctx))
	assert.Equal(t, 1, logger.warnCount())
}

func TestCacheStore_Entry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: testNow}
	store := newTestStore(&mockBlob{}, newMockCache(), clock, &mockLogger{})

	require.NoError(t, store.Write(ctx, "<rss/>"))
	clock.Advance(90 * time.Minute)

	entry, ok := store.Entry(ctx)
	require.True(t, ok)
	assert.Equal(t, "<rss/>", entry.RawBody)
	assert.True(t, testNow.Equal(entry.FetchedAt))
	assert.Equal(t, 90*time.Minute, entry.Age(clock.Now()))
}
