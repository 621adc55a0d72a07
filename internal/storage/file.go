package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/zhouzirui/items-api/backend/internal/model/item"
)

var (
	ErrFileMissing = errors.New("backing file does not exist")
	ErrFileCorrupt = errors.New("backing file is not a JSON array of items")
)

// FileBackend stores the collection as a JSON array in a single file.
// Every Load re-reads the whole file and every Save rewrites it.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend reading and writing path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file location.
func (b *FileBackend) Path() string {
	return b.path
}

// Init writes seed to the backing file when it does not exist yet.
// It reports whether the file was created.
func (b *FileBackend) Init(ctx context.Context, seed []item.Item) (bool, error) {
	if _, err := os.Stat(b.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to access %s: %w", b.path, err)
	}

	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := b.Save(ctx, seed); err != nil {
		return false, err
	}
	return true, nil
}

// Load decodes the backing file.
func (b *FileBackend) Load(ctx context.Context) ([]item.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, b.path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}

	var items []item.Item
	if err := sonic.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileCorrupt, b.path, err)
	}
	if items == nil {
		items = []item.Item{}
	}
	return items, nil
}

// Save encodes items and replaces the backing file with the result.
// The data goes to a sibling temp file first so readers never see a partial write.
func (b *FileBackend) Save(ctx context.Context, items []item.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []item.Item{}
	}

	data, err := sonic.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	tmp := b.path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", b.path, err)
	}
	return nil
}
