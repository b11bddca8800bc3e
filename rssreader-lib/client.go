// ABOUTME: Main client for the rssreader library providing cached feed loading
// ABOUTME: Offers the news pipeline without the terminal UI or the command line

package rssreader

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/OlhaTymoshenko/rssreader/core/feed"
	"github.com/OlhaTymoshenko/rssreader/core/interfaces"
	"github.com/OlhaTymoshenko/rssreader/core/news"
	"github.com/OlhaTymoshenko/rssreader/core/reader"
	"github.com/OlhaTymoshenko/rssreader/core/workers"
	"github.com/OlhaTymoshenko/rssreader/infrastructure/cache/memory"
)

// Client is the main entry point for the rssreader library
type Client struct {
	service    *feed.Service
	parser     feed.Parser
	reader     *reader.Service
	dispatcher *workers.Dispatcher
	config     Config
	now        func() time.Time

	mu     sync.Mutex
	closed bool
}

// Config holds the configuration for the client
type Config struct {
	// FeedURL is the feed to load
	FeedURL string

	// Cache keeps the fetch timestamp
	Cache interfaces.Cache

	// Blob keeps the raw feed body
	Blob interfaces.BlobStore

	// HTTPClient performs feed and article requests
	HTTPClient interfaces.HTTPClient

	// Logger receives pipeline logs
	Logger interfaces.Logger

	// FreshnessWindow is how long a cached body is served
	FreshnessWindow time.Duration
}

// NewClient creates a new client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	if u, err := url.Parse(config.FeedURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, NewError(ErrorTypeValidation, "feed URL must be an absolute http(s) URL").
			WithContext("url", config.FeedURL)
	}

	deps := interfaces.Dependencies{
		Cache:      config.Cache,
		Blob:       config.Blob,
		HTTPClient: config.HTTPClient,
		Logger:     config.Logger,
	}

	return &Client{
		service:    feed.NewServiceFromDeps(config.FeedURL, deps, feed.WithWindow(config.FreshnessWindow)),
		parser:     feed.NewRSSParser(),
		reader:     reader.NewService(config.HTTPClient, memory.NewMemoryCache(), config.Logger),
		dispatcher: workers.NewDispatcher(config.Logger),
		config:     config,
		now:        time.Now,
	}, nil
}

// Close stops the delivery dispatcher used by Watch
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.dispatcher.Stop()
}

func (c *Client) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Articles loads and parses the feed.
// Without forceRefresh a fresh cached body is used instead of the network.
func (c *Client) Articles(ctx context.Context, forceRefresh bool) ([]Article, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	body, err := c.service.GetFeedBody(ctx, forceRefresh)
	if err != nil {
		return nil, classify("loading feed", err)
	}

	articles, err := c.parser.Parse(body)
	if err != nil {
		return nil, classify("parsing feed", err)
	}
	return articlesToPublic(articles), nil
}

// Status reports what is cached and whether it is still fresh
func (c *Client) Status(ctx context.Context) (*CacheStatus, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	store := c.service.Store()
	status := &CacheStatus{Window: store.Window()}

	entry, ok := store.Entry(ctx)
	if !ok {
		return status, nil
	}

	now := c.now()
	status.Cached = true
	status.FetchedAt = entry.FetchedAt
	status.Age = entry.Age(now)
	status.Size = len(entry.RawBody)
	status.Fresh = entry.IsFreshAt(now, store.Window())
	return status, nil
}

// ReaderView extracts the readable content of an article page
func (c *Client) ReaderView(ctx context.Context, pageURL string) (*ReaderView, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	view, err := c.reader.Extract(ctx, pageURL)
	if err != nil {
		return nil, classify("extracting article", err)
	}
	return readerViewToPublic(view), nil
}

// Watch binds a news controller to display. Results are delivered one at a
// time on the client's dispatcher, which Close stops.
func (c *Client) Watch(ctx context.Context, display news.Display) (*news.Controller, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	if err := c.dispatcher.Start(); err != nil {
		return nil, classify("starting dispatcher", err)
	}
	return news.NewController(c.service, c.parser, display, c.dispatcher,
		news.WithLogger(c.config.Logger),
		news.WithContext(ctx),
	), nil
}
