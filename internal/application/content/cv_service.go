package content

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CVPrefix is the storage folder for exported CVs
const CVPrefix = "cv"

// PageSource produces the HTML of the public portfolio page
type PageSource interface {
	PortfolioHTML(ctx context.Context) (string, error)
}

// PDFRenderer turns an HTML document into a PDF
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// CVService exports the public portfolio as a PDF and links it from the
// about document.
type CVService struct {
	pages    PageSource
	renderer PDFRenderer
	storage  ObjectStorage
	keys     KeyFunc
	about    *SingletonService[content.About]
	metrics  Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewCVService creates the CV export service
func NewCVService(
	pages PageSource,
	renderer PDFRenderer,
	storage ObjectStorage,
	keys KeyFunc,
	about *SingletonService[content.About],
	opts ...ManagerOption,
) *CVService {
	o := buildOptions(opts)
	return &CVService{
		pages:    pages,
		renderer: renderer,
		storage:  storage,
		keys:     keys,
		about:    about,
		metrics:  o.metrics,
		logger:   o.logger,
		now:      o.now,
	}
}

// Export renders, uploads and records the CV. The about document is only
// touched once the upload has succeeded.
func (s *CVService) Export(ctx context.Context) (content.About, error) {
	var zero content.About

	html, err := s.pages.PortfolioHTML(ctx)
	if err != nil {
		return zero, fmt.Errorf("render portfolio page: %w", err)
	}
	pdf, err := s.renderer.RenderPDF(ctx, html)
	if err != nil {
		return zero, fmt.Errorf("render cv pdf: %w", err)
	}

	key := s.keys(CVPrefix, "portfolio.pdf", s.now())
	url, err := s.storage.Upload(ctx, key, "application/pdf", bytes.NewReader(pdf), int64(len(pdf)))
	s.metrics.RecordUpload(ctx, "cv", err)
	if err != nil {
		s.logger.Error("Failed to upload CV", zap.String("key", key), zap.Error(err))
		return zero, fmt.Errorf("%w: %w", shared.ErrUploadFailed, err)
	}

	about, err := s.about.Merge(ctx, document.Fields{"cvUrl": url})
	if err != nil {
		return zero, err
	}
	s.logger.Info("CV exported", zap.String("url", url), zap.Int("bytes", len(pdf)))
	return about, nil
}
