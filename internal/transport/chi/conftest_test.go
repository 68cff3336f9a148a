package chi

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cancerdx/internal/domain"
	domrec "github.com/kailas-cloud/cancerdx/internal/domain/record"
	"github.com/kailas-cloud/cancerdx/internal/model/forest"
	"github.com/kailas-cloud/cancerdx/internal/transport/api"
	diagnosisuc "github.com/kailas-cloud/cancerdx/internal/usecase/diagnosis"
	healthuc "github.com/kailas-cloud/cancerdx/internal/usecase/health"
)

// memRepo is an in-memory diagnosis.Repository with 24-hex ids.
type memRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]domrec.Record
	order   []string

	insertErr error
	listErr   error
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[string]domrec.Record)}
}

func (m *memRepo) Insert(_ context.Context, rec *domrec.Record) (string, error) {
	if m.insertErr != nil {
		return "", m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("%024x", m.seq)
	m.records[id] = rec.WithID(id)
	m.order = append(m.order, id)
	return id, nil
}

func (m *memRepo) List(_ context.Context) ([]domrec.Summary, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domrec.Summary, 0, len(m.order))
	for _, id := range m.order {
		rec := m.records[id]
		out = append(out, rec.Summary())
	}
	return out, nil
}

func (m *memRepo) Get(_ context.Context, id string) (domrec.Record, error) {
	if b, err := hex.DecodeString(id); err != nil || len(b) != 12 {
		return domrec.Record{}, domain.ErrInvalidRecordID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return domrec.Record{}, domain.ErrRecordNotFound
	}
	return rec, nil
}

type pingOK struct{}

func (pingOK) Ping(context.Context) error { return nil }

// newTestRouter wires the server the way main does, minus the outer middleware.
// repo may be nil to simulate an unconfigured store.
func newTestRouter(t *testing.T, repo diagnosisuc.Repository, exposeErrors bool) http.Handler {
	t.Helper()

	f, err := forest.Load(filepath.Join("testdata", "cancer_model.json"))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	classifier, err := diagnosisuc.NewForestClassifier(f)
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}

	var pinger healthuc.DBPinger
	if repo != nil {
		pinger = pingOK{}
	}

	svc := diagnosisuc.New(classifier, repo, zap.NewNop())
	srv := NewServer(svc, healthuc.New(pinger, classifier), zap.NewNop()).WithExposeErrors(exposeErrors)

	return api.HandlerWithOptions(srv, api.ChiServerOptions{BaseRouter: gochi.NewRouter()})
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}
