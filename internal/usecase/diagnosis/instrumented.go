package diagnosis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cancerdx/internal/domain"
	"github.com/kailas-cloud/cancerdx/internal/domain/feature"
	"github.com/kailas-cloud/cancerdx/internal/metrics"
)

// InstrumentedClassifier wraps Classifier with Prometheus metrics and logging.
type InstrumentedClassifier struct {
	inner  Classifier
	logger *zap.Logger
}

// NewInstrumentedClassifier wraps a classifier with observability.
func NewInstrumentedClassifier(inner Classifier, logger *zap.Logger) *InstrumentedClassifier {
	return &InstrumentedClassifier{inner: inner, logger: logger}
}

// Classify delegates to the inner classifier and records the outcome.
func (c *InstrumentedClassifier) Classify(ctx context.Context, x feature.Vector) (domain.Label, error) {
	start := time.Now()

	label, err := c.inner.Classify(ctx, x)

	duration := time.Since(start)
	metrics.PredictionDuration.Observe(duration.Seconds())

	if err != nil {
		metrics.PredictionErrorsTotal.WithLabelValues(errorType(err)).Inc()
		c.logger.Error("Classification failed",
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return "", fmt.Errorf("classify: %w", err)
	}

	metrics.PredictionsTotal.WithLabelValues(label.String()).Inc()
	c.logger.Debug("Classification completed",
		zap.String("label", label.String()),
		zap.Duration("duration", duration),
	)

	return label, nil
}

func errorType(err error) string {
	if errors.Is(err, domain.ErrModelOutput) {
		return "model_output"
	}
	return "other"
}
