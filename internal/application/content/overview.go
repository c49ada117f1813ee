package content

import (
	"context"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/document"
)

// Overview holds the dashboard's headline counts
type Overview struct {
	ContactMessages int64 `json:"contactMessages"`
	BlogPosts       int64 `json:"blogPosts"`
	Certificates    int64 `json:"certificates"`
	HireRequests    int64 `json:"hireRequests"`
	Projects        int64 `json:"projects"`
}

// OverviewService counts the collections shown on the dashboard home
type OverviewService struct {
	store document.Store
}

// NewOverviewService creates an overview service
func NewOverviewService(store document.Store) *OverviewService {
	return &OverviewService{store: store}
}

// Counts reads the size of every overview collection
func (s *OverviewService) Counts(ctx context.Context) (*Overview, error) {
	out := &Overview{}
	targets := []struct {
		collection string
		dest       *int64
	}{
		{content.CollectionContactMessages, &out.ContactMessages},
		{content.CollectionBlogPosts, &out.BlogPosts},
		{content.CollectionCertificates, &out.Certificates},
		{content.CollectionHireRequests, &out.HireRequests},
		{content.CollectionProjects, &out.Projects},
	}
	for _, t := range targets {
		n, err := s.store.Count(ctx, t.collection)
		if err != nil {
			return nil, err
		}
		*t.dest = n
	}
	return out, nil
}
