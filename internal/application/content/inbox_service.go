package content

import (
	"context"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/document"
	"go.uber.org/zap"
)

// Notifier tells the site owner about a new inbox entry
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// InboxService accepts contact messages and hire requests from visitors.
type InboxService struct {
	store    document.Store
	notifier Notifier
	metrics  Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewInboxService creates the inbox service. notifier may be nil.
func NewInboxService(store document.Store, notifier Notifier, opts ...ManagerOption) *InboxService {
	o := buildOptions(opts)
	return &InboxService{
		store:    store,
		notifier: notifier,
		metrics:  o.metrics,
		logger:   o.logger,
		now:      o.now,
	}
}

// ContactInput is a visitor's contact form
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// HireInput is a visitor's hire-me form
type HireInput struct {
	Name           string
	Email          string
	ProjectDetails string
}

// SubmitContact stores a contact message as unseen
func (s *InboxService) SubmitContact(ctx context.Context, in ContactInput) (content.ContactMessage, error) {
	doc, err := s.submit(ctx, content.ContactMessageSchema, map[string]string{
		"name":    in.Name,
		"email":   in.Email,
		"message": in.Message,
	})
	if err != nil {
		return content.ContactMessage{}, err
	}
	msg, err := document.Decode[content.ContactMessage](doc)
	if err != nil {
		return content.ContactMessage{}, err
	}

	s.notify(ctx, "New contact message from "+msg.Name,
		"From: "+msg.Name+" <"+msg.Email+">\n\n"+msg.Message)
	return msg, nil
}

// SubmitHire stores a hire request as unseen
func (s *InboxService) SubmitHire(ctx context.Context, in HireInput) (content.HireRequest, error) {
	doc, err := s.submit(ctx, content.HireRequestSchema, map[string]string{
		"name":           in.Name,
		"email":          in.Email,
		"projectDetails": in.ProjectDetails,
	})
	if err != nil {
		return content.HireRequest{}, err
	}
	req, err := document.Decode[content.HireRequest](doc)
	if err != nil {
		return content.HireRequest{}, err
	}

	s.notify(ctx, "New hire request from "+req.Name,
		"From: "+req.Name+" <"+req.Email+">\n\n"+req.ProjectDetails)
	return req, nil
}

func (s *InboxService) submit(ctx context.Context, schema *content.Schema, values map[string]string) (*document.Document, error) {
	draft := content.NewDraft(schema)
	if err := draft.Apply(values); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	fields := draft.Fields()
	schema.OnCreate(fields, content.CreateContext{Now: s.now()})

	doc, err := s.store.Create(ctx, schema.Collection, fields)
	s.metrics.RecordOperation(ctx, schema.Collection, "submit", err)
	if err != nil {
		s.logger.Error("Failed to store submission", zap.String("collection", schema.Collection), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Submission received", zap.String("collection", schema.Collection), zap.String("id", doc.ID))
	return doc, nil
}

func (s *InboxService) notify(ctx context.Context, subject, body string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, subject, body); err != nil {
		s.logger.Warn("Failed to notify owner", zap.String("subject", subject), zap.Error(err))
	}
}
