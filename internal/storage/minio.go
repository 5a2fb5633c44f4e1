package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"tuneful/internal/config"
	"tuneful/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Minio stores files as objects in a MinIO or S3 bucket
type Minio struct {
	client *minio.Client
	bucket string
}

// NewMinio connects to the endpoint and makes sure the bucket exists
func NewMinio(ctx context.Context, cfg config.MinioConfig) (*Minio, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio storage needs an endpoint and a bucket")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("Created minio bucket", logger.String("bucket", cfg.Bucket))
	}

	return &Minio{client: client, bucket: cfg.Bucket}, nil
}

// Save uploads r as object name
func (m *Minio) Save(ctx context.Context, name string, r io.Reader, size int64) error {
	if !flat(name) {
		return fmt.Errorf("invalid object name %q", name)
	}

	_, err := m.client.PutObject(ctx, m.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType(name),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

// Open fetches object name
func (m *Minio) Open(ctx context.Context, name string) (*Object, error) {
	if !flat(name) {
		return nil, ErrNotExist
	}

	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, m.translate(name, err)
	}

	// GetObject is lazy; Stat surfaces a missing key
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, m.translate(name, err)
	}

	ct := info.ContentType
	if ct == "" {
		ct = contentType(name)
	}
	return &Object{ReadCloser: obj, Size: info.Size, ContentType: ct}, nil
}

// Exists reports whether object name is stored
func (m *Minio) Exists(ctx context.Context, name string) (bool, error) {
	if !flat(name) {
		return false, nil
	}

	if _, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{}); err != nil {
		if m.translate(name, err) == ErrNotExist {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *Minio) translate(name string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotExist
	}
	return fmt.Errorf("failed to read %s: %w", name, err)
}
