// Package record persists diagnosis records in a document store.
package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/cancerdx/internal/db"
	"github.com/kailas-cloud/cancerdx/internal/domain"
	domrec "github.com/kailas-cloud/cancerdx/internal/domain/record"
)

// summaryProjection keeps only the fields returned by List.
var summaryProjection = []string{"personal.name", "personal.age", "personal.gender", "prediction"}

// documentStore is the consumer interface for MongoDB (ISP).
type documentStore interface {
	InsertDocument(ctx context.Context, collection string, doc any) (string, error)
	FindDocuments(ctx context.Context, collection string, projection []string, out any) error
	FindDocument(ctx context.Context, collection, id string, out any) error
}

// MongoRepo implements usecase/diagnosis.Repository on a MongoDB collection.
type MongoRepo struct {
	store      documentStore
	collection string
}

// NewMongo creates a repository over the given collection.
func NewMongo(s documentStore, collection string) *MongoRepo {
	return &MongoRepo{store: s, collection: collection}
}

// Insert stores the record and returns its ObjectID hex.
func (r *MongoRepo) Insert(ctx context.Context, rec *domrec.Record) (string, error) {
	id, err := r.store.InsertDocument(ctx, r.collection, toMongoDoc(rec))
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	return id, nil
}

// List returns summaries of all records.
func (r *MongoRepo) List(ctx context.Context) ([]domrec.Summary, error) {
	var docs []mongoDoc
	if err := r.store.FindDocuments(ctx, r.collection, summaryProjection, &docs); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	out := make([]domrec.Summary, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toSummary())
	}
	return out, nil
}

// Get returns a record by ObjectID hex.
func (r *MongoRepo) Get(ctx context.Context, id string) (domrec.Record, error) {
	var doc mongoDoc
	if err := r.store.FindDocument(ctx, r.collection, id, &doc); err != nil {
		return domrec.Record{}, mapStoreError(id, err)
	}
	return doc.toDomain(), nil
}

func mapStoreError(id string, err error) error {
	switch {
	case errors.Is(err, db.ErrInvalidID):
		return fmt.Errorf("%w: %q", domain.ErrInvalidRecordID, id)
	case errors.Is(err, db.ErrKeyNotFound):
		return domain.ErrRecordNotFound
	default:
		return fmt.Errorf("get record %s: %w", id, err)
	}
}
