package cancerdx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values of cancerdx_client_requests_total.
const (
	outcomeOK          = "ok"
	outcomeClientError = "client_error" // 4xx
	outcomeServerError = "server_error" // 5xx
	outcomeTransport   = "transport"    // no HTTP response
)

type clientMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cancerdx",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Client calls by operation and outcome.",
	}, []string{"operation", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cancerdx",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Client call latency including response decoding.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})

	var err error
	if requests, err = registerOrReuse(reg, requests); err != nil {
		return nil, err
	}
	if latency, err = registerOrReuse(reg, latency); err != nil {
		return nil, err
	}
	return &clientMetrics{requests: requests, latency: latency}, nil
}

// registerOrReuse lets several clients share one registerer.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("cancerdx: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("cancerdx: metric already registered as %T", are.ExistingCollector)
	}
	return existing, nil
}

// observer records every call; a nil observer or nil members are no-ops.
type observer struct {
	logger  *slog.Logger
	metrics *clientMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newClientMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)
	outcome, status := classify(err)

	if o.metrics != nil {
		o.metrics.requests.WithLabelValues(op, outcome).Inc()
		o.metrics.latency.WithLabelValues(op).Observe(elapsed.Seconds())
	}
	if o.logger == nil {
		return
	}
	if err == nil {
		o.logger.Debug("cancerdx call", "op", op, "elapsed", elapsed)
		return
	}
	o.logger.Warn("cancerdx call failed",
		"op", op, "outcome", outcome, "status", status, "elapsed", elapsed, "error", err)
}

func classify(err error) (outcome string, status int) {
	if err == nil {
		return outcomeOK, http.StatusOK
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return outcomeTransport, 0
	}
	if apiErr.Status >= http.StatusInternalServerError {
		return outcomeServerError, apiErr.Status
	}
	return outcomeClientError, apiErr.Status
}
