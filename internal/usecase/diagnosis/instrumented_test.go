package diagnosis

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cancerdx/internal/domain"
	"github.com/kailas-cloud/cancerdx/internal/domain/feature"
	"github.com/kailas-cloud/cancerdx/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterClassifierMetrics()
	os.Exit(m.Run())
}

func TestInstrumentedClassifier_Success(t *testing.T) {
	inner := &mockClassifier{label: domain.Malignant}
	c := NewInstrumentedClassifier(inner, zap.NewNop())

	before := testutil.ToFloat64(metrics.PredictionsTotal.WithLabelValues("Malignant"))

	x := feature.Vector{0: 17.99}
	got, err := c.Classify(context.Background(), x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != domain.Malignant {
		t.Errorf("got %q, want Malignant", got)
	}
	if inner.last != x {
		t.Error("vector not passed through")
	}

	after := testutil.ToFloat64(metrics.PredictionsTotal.WithLabelValues("Malignant"))
	if after-before != 1 {
		t.Errorf("expected predictions_total to grow by 1, got %f", after-before)
	}
}

func TestInstrumentedClassifier_Error(t *testing.T) {
	inner := &mockClassifier{err: domain.ErrModelOutput}
	c := NewInstrumentedClassifier(inner, zap.NewNop())

	before := testutil.ToFloat64(metrics.PredictionErrorsTotal.WithLabelValues("model_output"))

	_, err := c.Classify(context.Background(), feature.Vector{})
	if !errors.Is(err, domain.ErrModelOutput) {
		t.Fatalf("expected ErrModelOutput, got %v", err)
	}

	after := testutil.ToFloat64(metrics.PredictionErrorsTotal.WithLabelValues("model_output"))
	if after-before != 1 {
		t.Errorf("expected prediction_errors_total to grow by 1, got %f", after-before)
	}
}

func TestErrorType(t *testing.T) {
	if got := errorType(domain.ErrModelOutput); got != "model_output" {
		t.Errorf("got %q", got)
	}
	if got := errorType(errors.New("boom")); got != "other" {
		t.Errorf("got %q", got)
	}
}
