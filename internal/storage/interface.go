package storage

import "context"

// Backend persists the encoded bytes of a single document
type Backend interface {
	// Load returns the stored bytes, or nil if nothing has been saved yet
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored bytes. A failed Save must leave the previous
	// successful Save readable.
	Save(ctx context.Context, data []byte) error
}
