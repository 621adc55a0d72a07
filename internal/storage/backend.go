// Package storage persists the item collection as a whole.
package storage

import (
	"context"

	"github.com/zhouzirui/items-api/backend/internal/model/item"
)

// Backend loads and saves the full item collection.
// Implementations are not safe for concurrent use; callers serialize access.
type Backend interface {
	Load(ctx context.Context) ([]item.Item, error)
	Save(ctx context.Context, items []item.Item) error
}

// MemoryBackend keeps the collection in process memory for the process lifetime.
type MemoryBackend struct {
	items []item.Item
}

// NewMemoryBackend returns a MemoryBackend preloaded with the supplied items.
func NewMemoryBackend(items []item.Item) *MemoryBackend {
	return &MemoryBackend{items: clone(items)}
}

// Load returns a copy of the stored collection.
func (b *MemoryBackend) Load(ctx context.Context) ([]item.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return clone(b.items), nil
}

// Save replaces the stored collection.
func (b *MemoryBackend) Save(ctx context.Context, items []item.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.items = clone(items)
	return nil
}

func clone(items []item.Item) []item.Item {
	return append(make([]item.Item, 0, len(items)), items...)
}
