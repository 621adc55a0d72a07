package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/items-api/backend/internal/model/item"
)

var testItems = []item.Item{
	{Name: "popsicle", Price: 1.45},
	{Name: "cheerios", Price: 3.40},
}

func TestMemoryBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("load returns a copy", func(t *testing.T) {
		b := NewMemoryBackend(testItems)

		loaded, err := b.Load(ctx)
		require.NoError(t, err)
		loaded[0].Name = "changed"

		again, err := b.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, testItems, again)
	})

	t.Run("save replaces the collection", func(t *testing.T) {
		b := NewMemoryBackend(nil)

		loaded, err := b.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
		assert.NotNil(t, loaded)

		require.NoError(t, b.Save(ctx, testItems[:1]))
		loaded, err = b.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, testItems[:1], loaded)
	})

	t.Run("cancelled context", func(t *testing.T) {
		b := NewMemoryBackend(testItems)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := b.Load(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, b.Save(cancelled, nil), context.Canceled)
	})
}

func TestFileBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("init creates the file with seed items", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "fakeDb.json")
		b := NewFileBackend(path)

		created, err := b.Init(ctx, testItems)
		require.NoError(t, err)
		assert.True(t, created)

		loaded, err := b.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, testItems, loaded)
	})

	t.Run("init leaves an existing file alone", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fakeDb.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"name":"kept","price":2}]`), 0644))
		b := NewFileBackend(path)

		created, err := b.Init(ctx, testItems)
		require.NoError(t, err)
		assert.False(t, created)

		loaded, err := b.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []item.Item{{Name: "kept", Price: 2}}, loaded)
	})

	t.Run("init without seed writes an empty array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fakeDb.json")
		_, err := NewFileBackend(path).Init(ctx, nil)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("save preserves order and leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "fakeDb.json")
		b := NewFileBackend(path)

		reversed := []item.Item{testItems[1], testItems[0]}
		require.NoError(t, b.Save(ctx, reversed))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"name":"cheerios","price":3.4},{"name":"popsicle","price":1.45}]`, string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		b := NewFileBackend(filepath.Join(t.TempDir(), "missing.json"))

		_, err := b.Load(ctx)
		assert.ErrorIs(t, err, ErrFileMissing)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fakeDb.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":`), 0644))

		_, err := NewFileBackend(path).Load(ctx)
		assert.ErrorIs(t, err, ErrFileCorrupt)
	})

	t.Run("null file loads as empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fakeDb.json")
		require.NoError(t, os.WriteFile(path, []byte(`null`), 0644))

		loaded, err := NewFileBackend(path).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []item.Item{}, loaded)
	})
}

func TestLoadSeed(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("valid seed", func(t *testing.T) {
		path := write(t, "items:\n  - name: popsicle\n    price: 1.45\n  - name: cheerios\n    price: 3.40\n")

		seed, err := LoadSeed(path)
		require.NoError(t, err)
		assert.Equal(t, testItems, seed)
	})

	t.Run("duplicate names are rejected", func(t *testing.T) {
		path := write(t, "items:\n  - name: popsicle\n    price: 1.45\n  - name: popsicle\n    price: 2\n")

		_, err := LoadSeed(path)
		assert.ErrorContains(t, err, "duplicate name")
	})

	t.Run("items need a name and price", func(t *testing.T) {
		path := write(t, "items:\n  - name: popsicle\n")

		_, err := LoadSeed(path)
		assert.ErrorIs(t, err, item.ErrMissingFields)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := write(t, "items: [\n")

		_, err := LoadSeed(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
