package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/apperr"
)

func TestDiskStorage_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStorage(dir)
	require.NoError(t, err)

	content := []byte("fake image bytes")

	name, err := store.Save(context.Background(), "photo.png", bytes.NewReader(content), int64(len(content)), 1000)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "photo"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, "photo.png", name)

	written, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestDiskStorage_Save_TooLarge(t *testing.T) {
	store, err := NewDiskStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "big.png", bytes.NewReader(nil), 1001, 1000)

	assert.True(t, apperr.IsKind(err, apperr.PayloadTooLarge))
}

func TestDiskStorage_Save_ExactLimit(t *testing.T) {
	store, err := NewDiskStorage(t.TempDir())
	require.NoError(t, err)

	content := bytes.Repeat([]byte("a"), 1000)

	_, err = store.Save(context.Background(), "edge.png", bytes.NewReader(content), 1000, 1000)

	assert.NoError(t, err)
}

func TestDiskStorage_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStorage(dir)
	require.NoError(t, err)

	content := []byte("bytes")
	name, err := store.Save(context.Background(), "photo.jpg", bytes.NewReader(content), int64(len(content)), 1000)
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), name))

	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStorage_Delete_Missing(t *testing.T) {
	store, err := NewDiskStorage(t.TempDir())
	require.NoError(t, err)

	err = store.Delete(context.Background(), "never-existed.png")

	assert.True(t, apperr.IsKind(err, apperr.IO))
}

func TestStoredFileName_Unique(t *testing.T) {
	first := StoredFileName("photo.png")
	second := StoredFileName("photo.png")

	assert.NotEqual(t, first, second)
}
