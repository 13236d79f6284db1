package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage persists uploaded files (post thumbnails, user avatars) under
// generated names. Implementations: local disk (default) and MinIO.
type Storage interface {
	// Save writes the file and returns the stored name. It fails with a
	// PayloadTooLarge error when size exceeds maxSize and an IO error when
	// the write fails.
	Save(ctx context.Context, originalName string, file io.Reader, size, maxSize int64) (string, error)

	// Delete removes a stored file. Best-effort: a failure surfaces as an
	// IO error but callers do not roll back state already committed.
	Delete(ctx context.Context, storedName string) error
}

// StoredFileName combines the original base name with a random unique suffix
// and the original extension, so repeated uploads of the same file never
// collide.
func StoredFileName(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	return base + uuid.New().String() + ext
}
