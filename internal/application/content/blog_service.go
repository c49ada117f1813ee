package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BlogImagePrefix is the storage folder for blog cover images
const BlogImagePrefix = "blogImages"

// KeyFunc builds the object key for an uploaded file
type KeyFunc func(prefix, filename string, at time.Time) string

// ImageUpload is a file attached to a blog post form
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// BlogService saves blog posts, uploading an attached cover image before
// the post is written. A failed upload leaves the store untouched. The
// image a post previously pointed at is not deleted.
type BlogService struct {
	posts   *Manager[content.BlogPost]
	storage ObjectStorage
	keys    KeyFunc
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewBlogService creates a blog service on top of the posts manager
func NewBlogService(posts *Manager[content.BlogPost], storage ObjectStorage, keys KeyFunc, opts ...ManagerOption) *BlogService {
	o := buildOptions(opts)
	return &BlogService{
		posts:   posts,
		storage: storage,
		keys:    keys,
		metrics: o.metrics,
		logger:  o.logger,
		now:     o.now,
	}
}

// Posts returns the underlying manager
func (s *BlogService) Posts() *Manager[content.BlogPost] {
	return s.posts
}

// Save creates or updates the post described by draft. When image is not
// nil it is uploaded first and its URL replaces the draft's image field.
func (s *BlogService) Save(ctx context.Context, draft *content.Draft, image *ImageUpload) (content.BlogPost, error) {
	var zero content.BlogPost

	err := draft.Validate()
	if image != nil {
		err = withoutMissing(err, "image")
	}
	if err != nil {
		return zero, err
	}

	if image != nil {
		url, err := s.upload(ctx, image)
		if err != nil {
			return zero, err
		}
		if err := draft.Set("image", url); err != nil {
			return zero, err
		}
	}

	if draft.Mode() == content.ModeUpdate {
		return s.posts.Update(ctx, draft)
	}
	return s.posts.Create(ctx, draft)
}

func (s *BlogService) upload(ctx context.Context, image *ImageUpload) (string, error) {
	key := s.keys(BlogImagePrefix, image.Filename, s.now())
	url, err := s.storage.Upload(ctx, key, image.ContentType, image.Body, image.Size)
	s.metrics.RecordUpload(ctx, "blog_image", err)
	if err != nil {
		s.logger.Error("Failed to upload blog image", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: %w", shared.ErrUploadFailed, err)
	}
	s.logger.Info("Uploaded blog image", zap.String("key", key))
	return url, nil
}

// withoutMissing drops field from a validation error's missing list,
// returning nil when nothing else is wrong.
func withoutMissing(err error, field string) error {
	var verr *content.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	out := &content.ValidationError{
		Missing: slices.DeleteFunc(slices.Clone(verr.Missing), func(f string) bool { return f == field }),
		Invalid: verr.Invalid,
	}
	if len(out.Missing) == 0 && len(out.Invalid) == 0 {
		return nil
	}
	return out
}
