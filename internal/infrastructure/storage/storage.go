// Package storage provides object storage implementations for uploaded
// images and exported documents.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/portfolio/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ObjectStorage stores a blob under a key and returns its public URL
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Ping(ctx context.Context) error
}

// NewObjectStorage creates the provider selected by cfg.Provider
func NewObjectStorage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (ObjectStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch strings.ToLower(cfg.Provider) {
	case config.StorageProviderS3:
		s3Storage, err := NewS3ObjectStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			logger.Warn("Failed to ensure storage bucket", zap.String("bucket", cfg.Bucket), zap.Error(err))
		}
		logger.Info("Using S3 object storage", zap.String("bucket", cfg.Bucket), zap.String("endpoint", cfg.Endpoint))
		return s3Storage, nil
	case config.StorageProviderCloudinary:
		cld, err := NewCloudinaryStorage(cfg, WithCloudinaryLogger(logger))
		if err != nil {
			return nil, err
		}
		logger.Info("Using Cloudinary object storage", zap.String("folder", cfg.CloudinaryFolder))
		return cld, nil
	case config.StorageProviderStub, "":
		logger.Warn("Using stub object storage, uploads are discarded")
		return NewStubObjectStorage(cfg.PublicURL), nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}
