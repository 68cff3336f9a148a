package diagnosis

import (
	"context"

	"github.com/kailas-cloud/cancerdx/internal/domain"
	"github.com/kailas-cloud/cancerdx/internal/domain/feature"
	domrec "github.com/kailas-cloud/cancerdx/internal/domain/record"
)

// Repository persists diagnosis records.
type Repository interface {
	Insert(ctx context.Context, rec *domrec.Record) (string, error)
	List(ctx context.Context) ([]domrec.Summary, error)
	Get(ctx context.Context, id string) (domrec.Record, error)
}

// Classifier maps an encoded feature vector to a diagnosis label.
type Classifier interface {
	Classify(ctx context.Context, x feature.Vector) (domain.Label, error)
}
