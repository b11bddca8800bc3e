// ABOUTME: Storage interfaces for persisting the raw feed body
// ABOUTME: Defines the single-slot blob contract used by the cache store

package interfaces

import "context"

// BlobStore persists one opaque document.
type BlobStore interface {
	// Read returns the stored document.
	// Returns an error if nothing was stored or the data cannot be read.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored document.
	// A failed Write must leave the previous document intact.
	Write(ctx context.Context, data []byte) error
}
