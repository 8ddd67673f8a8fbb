package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioMirror uploads collection snapshots to a bucket, one object per write:
// <collection>/<UTC timestamp>.json
type MinioMirror struct {
	client *minio.Client
	bucket string
}

func NewMinioMirror(ctx context.Context, cfg MinioConfig, l *zap.Logger) (*MinioMirror, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Create the bucket on first use
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		l.Warn("failed to check bucket existence", zap.String("bucket", cfg.Bucket), zap.Error(err))
	} else if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		l.Info("created snapshot bucket", zap.String("bucket", cfg.Bucket))
	}

	return &MinioMirror{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func objectName(collection string, at time.Time) string {
	return path.Join(collection, at.UTC().Format("20060102T150405.000000000Z")+".json")
}

func (m *MinioMirror) Put(ctx context.Context, collection string, at time.Time, data []byte) error {
	_, err := m.client.PutObject(
		ctx,
		m.bucket,
		objectName(collection, at),
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	return err
}
