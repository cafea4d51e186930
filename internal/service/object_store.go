package service

import (
	"context"
	"io"
)

// ObjectStore is the remote blob store behind note files. Both
// pkg/garage-storage-s3 and pkg/minio-storage satisfy it.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64, onProgress func(transferred, total int64)) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
