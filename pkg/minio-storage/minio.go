package miniostorage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"studyshare-be/pkg/progress"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	UseSSL        bool
	PublicBaseURL string
	PartSize      uint64
}

type MinioStorage struct {
	client *minio.Client
	cfg    Config
}

// NewMinioStorage connects to MinIO and creates the bucket if it is missing.
func NewMinioStorage(ctx context.Context, cfg Config, log *zap.Logger) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info("created bucket", zap.String("bucket", cfg.Bucket))
	}

	return &MinioStorage{client: client, cfg: cfg}, nil
}

func (m *MinioStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64, onProgress func(transferred, total int64)) (string, error) {
	opts := minio.PutObjectOptions{
		ContentType: contentType,
		PartSize:    m.cfg.PartSize,
	}
	if onProgress != nil {
		opts.Progress = progress.NewSink(size, onProgress)
	}

	if _, err := m.client.PutObject(ctx, m.cfg.Bucket, key, body, size, opts); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return objectURL(m.baseURL(), m.cfg.Bucket, key, m.cfg.PublicBaseURL != "")
}

func (m *MinioStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download file from minio: %w", err)
	}
	return obj, nil
}

func (m *MinioStorage) Delete(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.cfg.Bucket, key, minio.RemoveObjectOptions{})
}

func (m *MinioStorage) baseURL() string {
	if m.cfg.PublicBaseURL != "" {
		return m.cfg.PublicBaseURL
	}
	return m.client.EndpointURL().String()
}

func objectURL(base, bucket, key string, public bool) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid storage base url: %w", err)
	}
	if public {
		return u.JoinPath(key).String(), nil
	}
	return u.JoinPath(bucket, key).String(), nil
}
