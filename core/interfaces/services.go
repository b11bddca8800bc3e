// ABOUTME: Execution and service interfaces for the core business logic
// ABOUTME: Defines the delivery context contract and the reader view service

package interfaces

import (
	"context"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
)

// Executor runs functions on a specific execution context.
// Functions posted to one Executor run one at a time, in posting order.
type Executor interface {
	// Post schedules fn. It returns an error if the executor no longer accepts work.
	Post(fn func()) error
}

// ReaderService extracts a readable version of an article page
type ReaderService interface {
	Extract(ctx context.Context, url string) (domain.ReaderView, error)
}
