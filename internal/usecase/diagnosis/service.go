// Package diagnosis classifies submitted cell measurements and records the outcome.
package diagnosis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cancerdx/internal/domain"
	"github.com/kailas-cloud/cancerdx/internal/domain/feature"
	domrec "github.com/kailas-cloud/cancerdx/internal/domain/record"
)

// Outcome is the result of a prediction request.
// Label is set whenever classification succeeded, even if persisting failed.
type Outcome struct {
	Label  domain.Label
	Record domrec.Record
}

// Service implements diagnosis business logic.
type Service struct {
	classifier Classifier
	repo       Repository
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a diagnosis service. repo is nil when no record store is configured.
func New(classifier Classifier, repo Repository, logger *zap.Logger) *Service {
	return &Service{
		classifier: classifier,
		repo:       repo,
		logger:     logger,
		now:        time.Now,
	}
}

// StoreConfigured reports whether records can be persisted.
func (s *Service) StoreConfigured() bool {
	return s.repo != nil
}

// Predict encodes raw, classifies it, and stores the transaction.
// Without a store it returns the label together with domain.ErrStoreNotConfigured.
func (s *Service) Predict(ctx context.Context, raw map[string]any) (Outcome, error) {
	x, err := feature.Encode(raw)
	if err != nil {
		return Outcome{}, fmt.Errorf("encode features: %w", err)
	}

	label, err := s.classifier.Classify(ctx, x)
	if err != nil {
		return Outcome{}, err //nolint:wrapcheck // classifier errors are already wrapped
	}
	out := Outcome{Label: label}

	if s.repo == nil {
		s.logger.Warn("Prediction not recorded, record store is not configured",
			zap.String("label", label.String()))
		return out, domain.ErrStoreNotConfigured
	}

	rec := domrec.New(domrec.PersonalFrom(raw), raw, label, s.now())
	id, err := s.repo.Insert(ctx, &rec)
	if err != nil {
		return out, fmt.Errorf("store record: %w", err)
	}
	out.Record = rec.WithID(id)

	return out, nil
}

// List returns summaries of all stored records.
func (s *Service) List(ctx context.Context) ([]domrec.Summary, error) {
	if s.repo == nil {
		return nil, domain.ErrStoreNotConfigured
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return list, nil
}

// Get returns one stored record by id.
func (s *Service) Get(ctx context.Context, id string) (domrec.Record, error) {
	if s.repo == nil {
		return domrec.Record{}, domain.ErrStoreNotConfigured
	}
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}
