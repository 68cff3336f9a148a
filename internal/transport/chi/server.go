package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cancerdx/internal/domain"
	"github.com/kailas-cloud/cancerdx/internal/domain/feature"
	domrec "github.com/kailas-cloud/cancerdx/internal/domain/record"
	logpkg "github.com/kailas-cloud/cancerdx/internal/logger"
	"github.com/kailas-cloud/cancerdx/internal/transport/api"
	diagnosisuc "github.com/kailas-cloud/cancerdx/internal/usecase/diagnosis"
	healthuc "github.com/kailas-cloud/cancerdx/internal/usecase/health"
	"github.com/kailas-cloud/cancerdx/internal/version"
)

// HomeMessage is the body of GET /.
const HomeMessage = "Cancer Classification API is running successfully!"

// NotFoundMessage is the body of GET /records/{id} for an unknown id.
const NotFoundMessage = "No record found"

const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements api.ServerInterface for the chi router.
type Server struct {
	api.Unimplemented
	diagnosis     *diagnosisuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	exposeErrors  bool
	errorHandlers []errorHandler
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	diagnosis *diagnosisuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		diagnosis: diagnosis,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		coercionHandler,
		notFoundHandler,
		sentinelHandler(domain.ErrInvalidFeature, http.StatusBadRequest),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest),
		sentinelHandler(domain.ErrInvalidRecordID, http.StatusBadRequest),
		sentinelHandler(domain.ErrStoreNotConfigured, http.StatusServiceUnavailable),
	}
	return s
}

// WithExposeErrors makes 500 responses carry the underlying error text.
func (s *Server) WithExposeErrors(expose bool) *Server {
	s.exposeErrors = expose
	return s
}

// Home handles GET /.
func (s *Server) Home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.HomeResponse{Message: HomeMessage})
}

// Predict handles POST /predict.
func (s *Server) Predict(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeObject(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	out, err := s.diagnosis.Predict(r.Context(), raw)
	if err != nil {
		if !s.diagnosis.StoreConfigured() && out.Label.Valid() {
			s.log(r).Warn("prediction not saved", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, api.PredictionUnsavedResponse{
				Error:      err.Error(),
				Prediction: out.Label.String(),
			})
			return
		}
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.PredictResponse{
		Prediction: out.Label.String(),
		Id:         out.Record.ID(),
	})
}

// ListRecords handles GET /records.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	list, err := s.diagnosis.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]api.RecordSummary, len(list))
	for i, sum := range list {
		items[i] = summaryToAPI(sum)
	}
	writeJSON(w, http.StatusOK, api.RecordListResponse{Patients: items})
}

// GetRecord handles GET /records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request, id api.RecordId) {
	rec, err := s.diagnosis.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.RecordResponse{Patient: recordToAPI(&rec)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]api.HealthResponseChecks)
	for k, v := range report.Checks {
		checks[k] = api.HealthResponseChecks(v)
	}

	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:  api.HealthResponseStatus(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decodeObject reads a single JSON object, keeping numbers exact.
func decodeObject(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err //nolint:wrapcheck // reported to the client as is
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, domain.ErrInvalidRequest
	}
	return obj, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.ErrorResponse{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, sentinel.Error())
		return true
	}
}

// coercionHandler reports which feature could not be converted.
func coercionHandler(w http.ResponseWriter, err error) bool {
	var ce *feature.CoercionError
	if !errors.As(err, &ce) {
		return false
	}
	writeError(w, http.StatusBadRequest, ce.Error())
	return true
}

// notFoundHandler keeps the historical {"message": ...} body for missing records.
func notFoundHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return false
	}
	writeJSON(w, http.StatusNotFound, api.MessageResponse{Message: NotFoundMessage})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.log(r)
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	msg := "internal error"
	if s.exposeErrors {
		msg = err.Error()
	}
	writeError(w, http.StatusInternalServerError, msg)
}

func (s *Server) log(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}

func personalToAPI(p domrec.Personal) api.Personal {
	return api.Personal{Name: p.Name, Age: p.Age, Gender: p.Gender}
}

func summaryToAPI(s domrec.Summary) api.RecordSummary {
	return api.RecordSummary{
		Id:         s.ID,
		Personal:   personalToAPI(s.Personal),
		Prediction: s.Prediction.String(),
	}
}

func recordToAPI(rec *domrec.Record) api.Record {
	return api.Record{
		Id:         rec.ID(),
		Personal:   personalToAPI(rec.Personal()),
		Features:   rec.Features(),
		Prediction: rec.Prediction().String(),
		Timestamp:  rec.Timestamp(),
	}
}
