package record

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/cancerdx/internal/db"
	"github.com/kailas-cloud/cancerdx/internal/domain"
	domrec "github.com/kailas-cloud/cancerdx/internal/domain/record"
)

// mockDocumentStore implements documentStore for tests.
type mockDocumentStore struct {
	insertFn   func(ctx context.Context, collection string, doc any) (string, error)
	findAllFn  func(ctx context.Context, collection string, projection []string, out any) error
	findByIDFn func(ctx context.Context, collection, id string, out any) error
}

func (m *mockDocumentStore) InsertDocument(ctx context.Context, collection string, doc any) (string, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, collection, doc)
	}
	return "", nil
}

func (m *mockDocumentStore) FindDocuments(
	ctx context.Context, collection string, projection []string, out any,
) error {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, collection, projection, out)
	}
	return nil
}

func (m *mockDocumentStore) FindDocument(ctx context.Context, collection, id string, out any) error {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, collection, id, out)
	}
	return db.ErrKeyNotFound
}

// mockJSONStore implements jsonStore for tests.
type mockJSONStore struct {
	setFn  func(ctx context.Context, key, path string, data []byte) error
	getFn  func(ctx context.Context, key string, paths ...string) ([]byte, error)
	mgetFn func(ctx context.Context, keys []string, path string) ([][]byte, error)
	scanFn func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockJSONStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockJSONStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockJSONStore) JSONMGet(ctx context.Context, keys []string, path string) ([][]byte, error) {
	if m.mgetFn != nil {
		return m.mgetFn(ctx, keys, path)
	}
	return make([][]byte, len(keys)), nil
}

func (m *mockJSONStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

var testTime = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func testRecord(t *testing.T) domrec.Record {
	t.Helper()
	return domrec.New(
		domrec.Personal{Name: "Jane Doe", Age: 45, Gender: "F"},
		map[string]any{"mean_radius": 17.99, "mean_texture": "10.38"},
		domain.Malignant,
		testTime,
	)
}
