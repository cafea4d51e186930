package garagestorages3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"studyshare-be/pkg/progress"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type GarageS3 struct {
	Client   *s3.Client
	uploader *manager.Uploader
	cfg      Config
}

type Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	// PublicBaseURL, when set, is used instead of Endpoint/Bucket to build
	// retrieval URLs (e.g. a CDN or a public website endpoint).
	PublicBaseURL string
	PartSize      int64
}

// NewGarageClient builds a path-style S3 client for Garage or any other
// S3-compatible endpoint.
func NewGarageClient(cfg Config) (*GarageS3, error) {
	staticResolver := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(staticResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load sdk config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return newGarage(client, cfg), nil
}

func newGarage(client *s3.Client, cfg Config) *GarageS3 {
	if cfg.PartSize < manager.MinUploadPartSize {
		cfg.PartSize = manager.MinUploadPartSize
	}

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = cfg.PartSize
		// parts go out in order so progress grows steadily
		u.Concurrency = 1
	})

	return &GarageS3{Client: client, uploader: uploader, cfg: cfg}
}

// Upload streams body to key as a multipart upload and returns the object's
// retrieval URL. onProgress may be nil.
func (g *GarageS3) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64, onProgress func(transferred, total int64)) (string, error) {
	reader := io.Reader(body)
	if onProgress != nil {
		reader = progress.NewReader(body, size, onProgress)
	}

	out, err := g.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.cfg.Bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if g.cfg.PublicBaseURL == "" && out.Location != "" {
		return out.Location, nil
	}

	return g.ObjectURL(key)
}

// ObjectURL builds the retrieval URL for key without contacting the store.
func (g *GarageS3) ObjectURL(key string) (string, error) {
	base := g.cfg.PublicBaseURL
	parts := []string{key}
	if base == "" {
		base = g.cfg.Endpoint
		parts = []string{g.cfg.Bucket, key}
	}

	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid storage base url: %w", err)
	}

	return u.JoinPath(parts...).String(), nil
}

func (g *GarageS3) Delete(ctx context.Context, key string) error {
	_, err := g.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.cfg.Bucket),
		Key:    aws.String(key),
	})
	return err
}

// Download returns the object body; the caller closes it.
func (g *GarageS3) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	result, err := g.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.cfg.Bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to download file from s3: %w", err)
	}

	return result.Body, nil
}
