// Package core contains the news pipeline of rssreader.
// It has no knowledge of terminals, files or sockets; every external
// dependency is injected through the interfaces package.
//
// Sub-packages:
//
// - domain: Article, CacheEntry and ReaderView values
// - feed: cache store, network fetcher, feed service and RSS parser
// - news: the controller that runs one cancellable fetch-parse-deliver task
// - reader: readable article extraction for the reader view
// - workers: the single-goroutine dispatcher results are delivered on
// - errors: typed errors for network, parse, cache and validation failures
// - interfaces: contracts for cache, blob storage, HTTP, logging and execution
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      kv,         // implements interfaces.Cache
//	    Blob:       blob,       // implements interfaces.BlobStore
//	    HTTPClient: httpClient, // implements interfaces.HTTPClient
//	    Logger:     logger,     // implements interfaces.Logger
//	}
//
//	service := feed.NewServiceFromDeps(feedURL, deps)
//	dispatcher := workers.NewDispatcher(logger)
//	_ = dispatcher.Start()
//
//	ctrl := news.NewController(service, feed.NewRSSParser(), display, dispatcher)
//	ctrl.OnStart()
//	defer ctrl.Close()
package core
