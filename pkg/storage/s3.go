package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sampark-ngo/placement-tracker/pkg/config"
)

// ObjectStore wraps an S3-compatible client scoped to a single bucket.
// Uploads and downloads never pass through this process; the store only
// issues presigned authorizations and deletes objects by key.
type ObjectStore struct {
	client *minio.Client
	bucket string
}

// NewObjectStore builds a client from storage configuration.
func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init object store client: %w", err)
	}

	return &ObjectStore{client: client, bucket: cfg.Bucket}, nil
}

// PresignUpload issues a time-boxed POST policy for one direct upload of the
// given key. The policy constrains content type to the requested prefix and
// caps the payload at maxBytes.
func (s *ObjectStore) PresignUpload(ctx context.Context, key, contentType string, maxBytes int64, ttl time.Duration) (string, map[string]string, error) {
	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(s.bucket); err != nil {
		return "", nil, fmt.Errorf("post policy bucket: %w", err)
	}
	if err := policy.SetKey(key); err != nil {
		return "", nil, fmt.Errorf("post policy key: %w", err)
	}
	if err := policy.SetExpires(time.Now().UTC().Add(ttl)); err != nil {
		return "", nil, fmt.Errorf("post policy expiry: %w", err)
	}
	if err := policy.SetContentLengthRange(0, maxBytes); err != nil {
		return "", nil, fmt.Errorf("post policy size range: %w", err)
	}
	if contentType != "" {
		if err := policy.SetContentTypeStartsWith(contentType); err != nil {
			return "", nil, fmt.Errorf("post policy content type: %w", err)
		}
	}

	postURL, fields, err := s.client.PresignedPostPolicy(ctx, policy)
	if err != nil {
		return "", nil, fmt.Errorf("presign upload: %w", err)
	}
	return postURL.String(), fields, nil
}

// PresignDownload issues a time-boxed GET URL for the named object.
func (s *ObjectStore) PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error) {
	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return signed.String(), nil
}

// Remove deletes the object; removing an absent key is not an error.
func (s *ObjectStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}
