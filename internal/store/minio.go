package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"post-stats-pipeline/internal/config"
	"post-stats-pipeline/internal/model"
)

// MinIOBlobStore keeps blobs as objects in one bucket.
type MinIOBlobStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOBlobStore connects to MinIO and creates the bucket when missing.
func NewMinIOBlobStore(ctx context.Context, cfg config.MinIO) (*MinIOBlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		log.Printf("🪣 Store: created bucket %s", cfg.Bucket)
	}

	return &MinIOBlobStore{client: client, bucket: cfg.Bucket}, nil
}

func (m *MinIOBlobStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return model.NewPersistenceError("put blob", key, err)
	}
	return nil
}

func (m *MinIOBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, false, model.NewPersistenceError("get blob", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, false, nil
		}
		return nil, false, model.NewPersistenceError("get blob", key, err)
	}
	return data, true, nil
}

func (m *MinIOBlobStore) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return model.NewPersistenceError("delete blob", key, err)
	}
	return nil
}

func (m *MinIOBlobStore) Clear(ctx context.Context) error {
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return model.NewPersistenceError("list blobs", "", obj.Err)
		}
		if err := m.Delete(ctx, obj.Key); err != nil {
			return err
		}
	}
	return nil
}
