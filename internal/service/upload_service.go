package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/sampark-ngo/placement-tracker/pkg/errors"
)

// objectPresigner is the slice of the object store the broker needs.
type objectPresigner interface {
	PresignUpload(ctx context.Context, key, contentType string, maxBytes int64, ttl time.Duration) (string, map[string]string, error)
	PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)
	Remove(ctx context.Context, key string) error
}

// UploadTarget is a one-shot authorization for a direct client upload.
type UploadTarget struct {
	PostURL    string            `json:"post_url"`
	PostFields map[string]string `json:"post_fields"`
	ObjectKey  string            `json:"object_key"`
}

// KeyOutcome records the result of one object deletion attempt.
type KeyOutcome struct {
	Key string
	Err error
}

// UploadServiceConfig bounds presigned authorizations.
type UploadServiceConfig struct {
	UploadTTL      time.Duration
	DownloadTTL    time.Duration
	MaxUploadBytes int64
}

// UploadService brokers presigned access to the document store. Record
// mutations never touch object bytes; they hold only key strings, and this
// service is the sole component that talks to the store.
type UploadService struct {
	store  objectPresigner
	logger *zap.Logger
	cfg    UploadServiceConfig
}

// NewUploadService constructs the broker with sane bounds.
func NewUploadService(store objectPresigner, logger *zap.Logger, cfg UploadServiceConfig) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UploadTTL <= 0 {
		cfg.UploadTTL = 10 * time.Minute
	}
	if cfg.DownloadTTL <= 0 {
		cfg.DownloadTTL = time.Hour
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 * 1024 * 1024
	}
	return &UploadService{store: store, logger: logger, cfg: cfg}
}

// RequestUploadTarget mints a fresh object key and issues a time-boxed POST
// policy for it, constrained to the requested content-type prefix and the
// configured size cap.
func (s *UploadService) RequestUploadTarget(ctx context.Context, contentType string) (*UploadTarget, error) {
	key := uuid.NewString()
	postURL, fields, err := s.store.PresignUpload(ctx, key, contentType, s.cfg.MaxUploadBytes, s.cfg.UploadTTL)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExternalService.Code, appErrors.ErrExternalService.Status, "failed to create upload target")
	}
	return &UploadTarget{PostURL: postURL, PostFields: fields, ObjectKey: key}, nil
}

// RequestDownloadTarget issues a time-boxed GET URL for the named object.
func (s *UploadService) RequestDownloadTarget(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "missing file key")
	}
	signed, err := s.store.PresignDownload(ctx, objectKey, s.cfg.DownloadTTL)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrExternalService.Code, appErrors.ErrExternalService.Status, "failed to create download target")
	}
	return signed, nil
}

// DeleteObject removes one object. Deleting an absent key is not an error.
func (s *UploadService) DeleteObject(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return appErrors.Clone(appErrors.ErrValidation, "missing file key")
	}
	if err := s.store.Remove(ctx, objectKey); err != nil {
		return appErrors.Wrap(err, appErrors.ErrExternalService.Code, appErrors.ErrExternalService.Status, "failed to delete object")
	}
	return nil
}

// DeleteObjects fans deletion out over all keys concurrently and waits for
// every attempt to settle. Individual failures are logged and reported in
// the outcome list; they never abort sibling deletions.
func (s *UploadService) DeleteObjects(ctx context.Context, objectKeys []string) []KeyOutcome {
	keys := make([]string, 0, len(objectKeys))
	for _, key := range objectKeys {
		if key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}

	outcomes := make([]KeyOutcome, len(keys))
	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			err := s.store.Remove(ctx, key)
			if err != nil {
				s.logger.Warn("object deletion failed", zap.String("key", key), zap.Error(err))
			}
			outcomes[i] = KeyOutcome{Key: key, Err: err}
		}(i, key)
	}
	wg.Wait()
	return outcomes
}
