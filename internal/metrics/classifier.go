package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "cancerdx"

// Classifier and record cache Prometheus metrics.
var (
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Total number of classifications by resulting label",
		},
		[]string{"label"}, // "Malignant" / "Benign"
	)

	PredictionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_errors_total",
			Help:      "Total classification failures",
		},
		[]string{"error_type"},
	)

	PredictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Model evaluation duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	RecordCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_cache_total",
			Help:      "Record cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var classifierMetricsRegistered bool

// RegisterClassifierMetrics registers classifier and cache metrics. Must be called once from main.
func RegisterClassifierMetrics() {
	if classifierMetricsRegistered {
		return
	}
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(PredictionErrorsTotal)
	prometheus.MustRegister(PredictionDuration)
	prometheus.MustRegister(RecordCacheTotal)
	classifierMetricsRegistered = true
}
