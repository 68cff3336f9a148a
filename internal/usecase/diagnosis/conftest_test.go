package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/cancerdx/internal/domain"
	"github.com/kailas-cloud/cancerdx/internal/domain/feature"
	domrec "github.com/kailas-cloud/cancerdx/internal/domain/record"
	"github.com/kailas-cloud/cancerdx/internal/model/forest"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	insertFn func(ctx context.Context, rec *domrec.Record) (string, error)
	listFn   func(ctx context.Context) ([]domrec.Summary, error)
	getFn    func(ctx context.Context, id string) (domrec.Record, error)

	inserted []domrec.Record
}

func (m *mockRepo) Insert(ctx context.Context, rec *domrec.Record) (string, error) {
	m.inserted = append(m.inserted, *rec)
	if m.insertFn != nil {
		return m.insertFn(ctx, rec)
	}
	return "rec-1", nil
}

func (m *mockRepo) List(ctx context.Context) ([]domrec.Summary, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []domrec.Summary{}, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domrec.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domrec.Record{}, domain.ErrRecordNotFound
}

// mockClassifier implements Classifier for tests.
type mockClassifier struct {
	label domain.Label
	err   error
	calls int
	last  feature.Vector
}

func (m *mockClassifier) Classify(_ context.Context, x feature.Vector) (domain.Label, error) {
	m.calls++
	m.last = x
	return m.label, m.err
}

func loadTestForest(t *testing.T) *forest.Forest {
	t.Helper()
	f, err := forest.Load(filepath.Join("testdata", "cancer_model.json"))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	return f
}

func loadRequest(t *testing.T, name string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return raw
}
