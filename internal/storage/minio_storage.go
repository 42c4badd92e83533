package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"jobplus/internal/config"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioStorage struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIOStorage 初始化 MinIO 客户端，并确保目标 Bucket 存在。
func NewMinIOStorage(cfg config.Config) (Storage, error) {
	endpoint := strings.TrimSpace(cfg.StorageMinIOEndpoint)
	if endpoint == "" {
		return nil, errors.New("storage: missing MinIO endpoint")
	}
	bucket := strings.TrimSpace(cfg.StorageMinIOBucket)
	if bucket == "" {
		return nil, errors.New("storage: missing MinIO bucket")
	}
	accessKey := strings.TrimSpace(cfg.StorageMinIOAccessKeyID)
	secretKey := strings.TrimSpace(cfg.StorageMinIOSecretAccessKey)
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("storage: missing MinIO credentials")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: cfg.StorageMinIOUseSSL,
		Region: strings.TrimSpace(cfg.StorageMinIORegion),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: check bucket %q: %w", bucket, err)
	}
	if !exists {
		if !cfg.StorageMinIOAutoCreate {
			return nil, fmt.Errorf("storage: bucket %q does not exist (auto create disabled)", bucket)
		}
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: cfg.StorageMinIORegion}); err != nil {
			return nil, fmt.Errorf("storage: make bucket %q: %w", bucket, err)
		}
	}

	return &minioStorage{
		client: client,
		bucket: bucket,
		prefix: trimPrefix(cfg.StorageMinIOPrefix),
	}, nil
}

func (s *minioStorage) Save(ctx context.Context, data []byte, opts SaveOptions) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty payload")
	}

	key := remoteKey(s.prefix, opts)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: detectContentType(opts.Extension),
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}
	return key, nil
}

func (s *minioStorage) Delete(ctx context.Context, key string) error {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return errors.New("empty object key")
	}
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err == nil {
		return nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return nil
	}
	return fmt.Errorf("remove object %q: %w", key, err)
}

var _ Storage = (*minioStorage)(nil)
