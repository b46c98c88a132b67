package memory

import (
	"context"
	"sync"

	"github.com/mcoot/mixplugin-go/internal/storage"
)

// Backend is an in-memory implementation of the storage backend.
// It keeps the encoded bytes so documents go through the same encoding as
// the durable backends.
type Backend struct {
	mu sync.RWMutex

	data    []byte
	saves   int
	saveErr error
}

// New creates a new, empty in-memory backend
func New() *Backend {
	return &Backend{}
}

// Ensure Backend implements the interface
var _ storage.Backend = (*Backend)(nil)

func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.data == nil {
		return nil, nil
	}
	result := make([]byte, len(b.data))
	copy(result, b.data)
	return result, nil
}

func (b *Backend) Save(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return b.saveErr
	}
	b.data = make([]byte, len(data))
	copy(b.data, data)
	b.saves++
	return nil
}

// Bytes returns the last saved bytes
func (b *Backend) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]byte(nil), b.data...)
}

// SetBytes replaces the stored bytes, as if another writer had saved them
func (b *Backend) SetBytes(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
}

// Saves returns the number of successful saves
func (b *Backend) Saves() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.saves
}

// FailSaves makes every following Save return err. Pass nil to recover.
func (b *Backend) FailSaves(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveErr = err
}
