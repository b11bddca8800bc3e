// ABOUTME: Fetcher downloads the feed document with a single network request
// ABOUTME: Successful responses are written to the cache store before returning

package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"unicode/utf8"

	feederrors "github.com/OlhaTymoshenko/rssreader/core/errors"
	"github.com/OlhaTymoshenko/rssreader/core/interfaces"
	"golang.org/x/net/html/charset"
)

// noCacheHeaders force the request past any intermediate HTTP cache
var noCacheHeaders = map[string]string{
	"Cache-Control": "no-cache",
	"Pragma":        "no-cache",
}

// Fetcher retrieves the raw feed from the network
type Fetcher struct {
	url    string
	client interfaces.HTTPClient
	store  *CacheStore
	logger interfaces.Logger
}

// NewFetcher creates a fetcher for url that records successful bodies in store
func NewFetcher(url string, client interfaces.HTTPClient, store *CacheStore, logger interfaces.Logger) *Fetcher {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Fetcher{
		url:    url,
		client: client,
		store:  store,
		logger: logger,
	}
}

// URL returns the feed address
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch performs one GET of the feed URL.
// Failures are returned as *errors.NetworkError and leave the cache untouched.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	resp, err := f.client.Get(ctx, f.url, noCacheHeaders)
	if err != nil {
		return "", &feederrors.NetworkError{URL: f.url, Cause: err}
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return "", &feederrors.NetworkError{
			URL:        f.url,
			StatusCode: resp.StatusCode(),
			Cause:      fmt.Errorf("unexpected status %d", resp.StatusCode()),
		}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", &feederrors.NetworkError{URL: f.url, Cause: err}
	}
	text, err := decodeBody(data, resp.Header("Content-Type"))
	if err != nil {
		return "", &feederrors.NetworkError{URL: f.url, Cause: err}
	}

	if f.store != nil {
		if err := f.store.Write(ctx, text); err != nil {
			f.logger.Warn("Failed to cache fetched feed", map[string]interface{}{
				"url":   f.url,
				"error": err.Error(),
			})
		}
	}

	f.logger.Info("Feed fetched", map[string]interface{}{
		"url":   f.url,
		"bytes": len(data),
	})
	return text, nil
}

// decodeBody converts data to UTF-8 text. A charset named in the Content-Type
// wins; otherwise valid UTF-8 is kept as is and anything else is sniffed.
func decodeBody(data []byte, contentType string) (string, error) {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if label := params["charset"]; label != "" {
			if r, err := charset.NewReaderLabel(label, bytes.NewReader(data)); err == nil {
				out, err := io.ReadAll(r)
				return string(out), err
			}
		}
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	r, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(r)
	return string(out), err
}
