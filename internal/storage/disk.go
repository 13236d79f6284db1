package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"blogapi/internal/apperr"
)

type diskStorage struct {
	dir string
}

// NewDiskStorage stores files in dir, creating it if needed. Files are later
// served statically by filename under /uploads/.
func NewDiskStorage(dir string) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.IO, "failed to create upload directory", err)
	}
	return &diskStorage{dir: dir}, nil
}

func (s *diskStorage) Save(ctx context.Context, originalName string, file io.Reader, size, maxSize int64) (string, error) {
	if size > maxSize {
		return "", apperr.New(apperr.PayloadTooLarge, "file too big")
	}

	storedName := StoredFileName(originalName)

	dst, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", apperr.Wrap(apperr.IO, "failed to create file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", apperr.Wrap(apperr.IO, "failed to write file", err)
	}

	return storedName, nil
}

func (s *diskStorage) Delete(ctx context.Context, storedName string) error {
	// Base guards against path traversal in names read back from the store.
	err := os.Remove(filepath.Join(s.dir, filepath.Base(storedName)))
	if err != nil {
		return apperr.Wrap(apperr.IO, "failed to delete file", err)
	}
	return nil
}
