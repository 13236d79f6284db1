package storage

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"blogapi/internal/apperr"
	"blogapi/internal/config"
)

type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorage is the S3-compatible alternative to the disk backend,
// selected with STORAGE_BACKEND=minio.
func NewMinIOStorage(cfg *config.Config) (Storage, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.IO, "failed to create MinIO client", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, apperr.Wrap(apperr.IO, "failed to check MinIO bucket", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, apperr.Wrap(apperr.IO, "failed to create MinIO bucket", err)
		}
	}

	return &minioStorage{client: client, bucket: cfg.MinIO.BucketName}, nil
}

func (s *minioStorage) Save(ctx context.Context, originalName string, file io.Reader, size, maxSize int64) (string, error) {
	if size > maxSize {
		return "", apperr.New(apperr.PayloadTooLarge, "file too big")
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(originalName)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	storedName := StoredFileName(originalName)

	_, err := s.client.PutObject(ctx, s.bucket, storedName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": originalName,
			},
		})
	if err != nil {
		return "", apperr.Wrap(apperr.IO, "failed to upload to MinIO", err)
	}

	return storedName, nil
}

func (s *minioStorage) Delete(ctx context.Context, storedName string) error {
	err := s.client.RemoveObject(ctx, s.bucket, storedName, minio.RemoveObjectOptions{})
	if err != nil {
		return apperr.Wrap(apperr.IO, "failed to delete from MinIO", err)
	}
	return nil
}
