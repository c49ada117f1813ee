package content

import (
	"context"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/document"
	"go.uber.org/zap"
)

// PublicService serves the read-only public site. Reads never fail: an
// unreachable store or an empty collection yields the collection's
// fallback set. Successful reads are cached until the next admin write.
type PublicService struct {
	store     document.Store
	cache     ContentCache
	about     *SingletonService[content.About]
	biography *SingletonService[content.Biography]
	logger    *zap.Logger
}

// NewPublicService creates the public read service. cache may be nil.
func NewPublicService(
	store document.Store,
	about *SingletonService[content.About],
	biography *SingletonService[content.Biography],
	cache ContentCache,
	logger *zap.Logger,
) *PublicService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicService{
		store:     store,
		cache:     cache,
		about:     about,
		biography: biography,
		logger:    logger,
	}
}

// About returns the about document or its defaults
func (s *PublicService) About(ctx context.Context) content.About {
	return readSingleton(ctx, s, s.about)
}

// Biography returns the hero biography or its defaults
func (s *PublicService) Biography(ctx context.Context) content.Biography {
	return readSingleton(ctx, s, s.biography)
}

// WorkExperiences returns the experience timeline
func (s *PublicService) WorkExperiences(ctx context.Context) []content.WorkExperience {
	return readCollection[content.WorkExperience](ctx, s, content.CollectionWorkExperiences, nil)
}

// Projects returns the portfolio projects
func (s *PublicService) Projects(ctx context.Context) []content.Project {
	return readCollection[content.Project](ctx, s, content.CollectionProjects, nil)
}

// Certificates returns the certificates
func (s *PublicService) Certificates(ctx context.Context) []content.Certificate {
	return readCollection[content.Certificate](ctx, s, content.CollectionCertificates, nil)
}

// BlogPosts returns the blog posts
func (s *PublicService) BlogPosts(ctx context.Context) []content.BlogPost {
	return readCollection[content.BlogPost](ctx, s, content.CollectionBlogPosts, nil)
}

// Skills returns the skills, or the built-in set when none are stored
func (s *PublicService) Skills(ctx context.Context) []content.Skill {
	return readCollection(ctx, s, content.CollectionSkills, content.FallbackSkills)
}

func readSingleton[T any](ctx context.Context, s *PublicService, svc *SingletonService[T]) T {
	key := svc.Collection()
	var cached T
	if s.cacheGet(ctx, key, &cached) {
		return cached
	}

	v, err := svc.Read(ctx)
	if err != nil {
		s.logger.Warn("Serving default content", zap.String("collection", key), zap.Error(err))
		return svc.Defaults()
	}
	s.cacheSet(ctx, key, v)
	return v
}

func readCollection[T any](ctx context.Context, s *PublicService, collection string, fallback func() []T) []T {
	var cached []T
	if s.cacheGet(ctx, collection, &cached) {
		return cached
	}

	docs, err := s.store.List(ctx, collection)
	var items []T
	if err == nil {
		items, err = document.DecodeAll[T](docs)
	}
	if err != nil {
		s.logger.Warn("Serving fallback content", zap.String("collection", collection), zap.Error(err))
		return fallbackOrEmpty(fallback)
	}
	if len(items) == 0 {
		return fallbackOrEmpty(fallback)
	}

	s.cacheSet(ctx, collection, items)
	return items
}

func fallbackOrEmpty[T any](fallback func() []T) []T {
	if fallback == nil {
		return []T{}
	}
	return fallback()
}

func (s *PublicService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Debug("Content cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

func (s *PublicService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Debug("Content cache write failed", zap.String("key", key), zap.Error(err))
	}
}
