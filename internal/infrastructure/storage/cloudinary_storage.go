package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	infraconfig "github.com/portfolio/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ ObjectStorage = (*CloudinaryStorage)(nil)

// CloudinaryStorage uploads to a Cloudinary media library
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

// CloudinaryOption configures CloudinaryStorage
type CloudinaryOption func(*CloudinaryStorage)

// WithCloudinaryLogger sets the logger
func WithCloudinaryLogger(logger *zap.Logger) CloudinaryOption {
	return func(s *CloudinaryStorage) {
		s.logger = logger
	}
}

// NewCloudinaryStorage creates storage from a cloudinary:// URL
func NewCloudinaryStorage(cfg *infraconfig.StorageConfig, opts ...CloudinaryOption) (*CloudinaryStorage, error) {
	if cfg == nil || cfg.CloudinaryURL == "" {
		return nil, errors.New("cloudinary url is required")
	}
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	s := &CloudinaryStorage{
		cld:    cld,
		folder: strings.Trim(cfg.CloudinaryFolder, "/"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// publicID maps an object key to a Cloudinary public ID. Cloudinary adds
// the extension itself for images, so it is removed here.
func (s *CloudinaryStorage) publicID(key string) string {
	id := strings.TrimSuffix(key, path.Ext(key))
	if s.folder != "" {
		id = s.folder + "/" + id
	}
	return id
}

// Upload sends body to Cloudinary and returns its secure URL
func (s *CloudinaryStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, _ int64) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	params := uploader.UploadParams{
		PublicID:     s.publicID(key),
		ResourceType: "auto",
	}
	if !strings.HasPrefix(contentType, "image/") {
		// raw assets keep their extension in the public ID
		params.PublicID = strings.TrimPrefix(path.Join(s.folder, key), "/")
		params.ResourceType = "raw"
	}

	result, err := s.cld.Upload.Upload(ctx, body, params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}

	s.logger.Debug("Object uploaded to Cloudinary", zap.String("public_id", result.PublicID))
	return result.SecureURL, nil
}

// Ping checks the Cloudinary credentials
func (s *CloudinaryStorage) Ping(ctx context.Context) error {
	if _, err := s.cld.Admin.Ping(ctx); err != nil {
		return fmt.Errorf("cloudinary unreachable: %w", err)
	}
	return nil
}
