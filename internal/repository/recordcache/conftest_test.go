package recordcache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cancerdx/internal/domain"
	domrec "github.com/kailas-cloud/cancerdx/internal/domain/record"
)

type mockRepo struct {
	insertFn func(ctx context.Context, rec *domrec.Record) (string, error)
	listFn   func(ctx context.Context) ([]domrec.Summary, error)
	getFn    func(ctx context.Context, id string) (domrec.Record, error)

	getCalls  int
	listCalls int
}

func (m *mockRepo) Insert(ctx context.Context, rec *domrec.Record) (string, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, rec)
	}
	return "id-1", nil
}

func (m *mockRepo) List(ctx context.Context) ([]domrec.Summary, error) {
	m.listCalls++
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []domrec.Summary{}, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domrec.Record, error) {
	m.getCalls++
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domrec.Record{}, domain.ErrRecordNotFound
}

func newTestRepo(t *testing.T, inner *mockRepo, size int) (*Repo, *prometheus.CounterVec) {
	t.Helper()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_record_cache_total"}, []string{"result"})
	repo, err := New(inner, size, counter, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return repo, counter
}

func storedRecord(id string) domrec.Record {
	return domrec.Reconstruct(
		id,
		domrec.Personal{Name: "Jane", Age: "N/A", Gender: "N/A"},
		map[string]any{"mean_radius": 1.0},
		domain.Benign,
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	)
}
