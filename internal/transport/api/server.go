package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Service banner
	// (GET /)
	Home(w http.ResponseWriter, r *http.Request)
	// Classify one sample and record it
	// (POST /predict)
	Predict(w http.ResponseWriter, r *http.Request)
	// List record summaries
	// (GET /records)
	ListRecords(w http.ResponseWriter, r *http.Request)
	// Get one record
	// (GET /records/{id})
	GetRecord(w http.ResponseWriter, r *http.Request, id RecordId)
	// Component health
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// Prometheus metrics
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// Unimplemented responds with http.StatusNotImplemented for every operation.
type Unimplemented struct{}

// Home handles GET /.
func (Unimplemented) Home(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Predict handles POST /predict.
func (Unimplemented) Predict(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// ListRecords handles GET /records.
func (Unimplemented) ListRecords(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// GetRecord handles GET /records/{id}.
func (Unimplemented) GetRecord(w http.ResponseWriter, _ *http.Request, _ RecordId) {
	w.WriteHeader(http.StatusNotImplemented)
}

// HealthCheck handles GET /health.
func (Unimplemented) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Metrics handles GET /metrics.
func (Unimplemented) Metrics(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// MiddlewareFunc wraps a single operation handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts requests to typed handler calls.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) wrap(h http.Handler) http.Handler {
	for _, middleware := range siw.HandlerMiddlewares {
		h = middleware(h)
	}
	return h
}

// Home operation middleware.
func (siw *ServerInterfaceWrapper) Home(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.Home)).ServeHTTP(w, r)
}

// Predict operation middleware.
func (siw *ServerInterfaceWrapper) Predict(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.Predict)).ServeHTTP(w, r)
}

// ListRecords operation middleware.
func (siw *ServerInterfaceWrapper) ListRecords(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.ListRecords)).ServeHTTP(w, r)
}

// GetRecord operation middleware.
func (siw *ServerInterfaceWrapper) GetRecord(w http.ResponseWriter, r *http.Request) {
	var id RecordId

	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetRecord(w, r, id)
	})).ServeHTTP(w, r)
}

// HealthCheck operation middleware.
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.HealthCheck)).ServeHTTP(w, r)
}

// Metrics operation middleware.
func (siw *ServerInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.Metrics)).ServeHTTP(w, r)
}

// InvalidParamFormatError reports a path or query parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates an http.Handler with routing matching the contract.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions creates an http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/", wrapper.Home)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/predict", wrapper.Predict)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/records", wrapper.ListRecords)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/records/{id}", wrapper.GetRecord)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health", wrapper.HealthCheck)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/metrics", wrapper.Metrics)
	})

	return r
}
