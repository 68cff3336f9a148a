package diagnosis

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/cancerdx/internal/domain"
	"github.com/kailas-cloud/cancerdx/internal/domain/feature"
	"github.com/kailas-cloud/cancerdx/internal/model/forest"
)

// ForestClassifier adapts a tree ensemble to Classifier.
type ForestClassifier struct {
	forest *forest.Forest
}

// NewForestClassifier checks that the model was trained on the canonical feature layout.
func NewForestClassifier(f *forest.Forest) (*ForestClassifier, error) {
	if f.NFeatures() != feature.Count {
		return nil, fmt.Errorf("model expects %d features, want %d", f.NFeatures(), feature.Count)
	}
	if names := f.FeatureNames(); len(names) > 0 {
		for i, name := range feature.Names() {
			if names[i] != name {
				return nil, fmt.Errorf("model feature %d is %q, want %q", i, names[i], name)
			}
		}
	}
	return &ForestClassifier{forest: f}, nil
}

// Classify evaluates the ensemble. Class 1 is Malignant, class 0 is Benign.
func (c *ForestClassifier) Classify(_ context.Context, x feature.Vector) (domain.Label, error) {
	class, err := c.forest.Predict(x[:])
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrModelOutput, err)
	}
	label, err := domain.LabelFromClass(class)
	if err != nil {
		return "", err //nolint:wrapcheck // already wraps ErrModelOutput
	}
	return label, nil
}

// Ready reports whether a model is loaded.
func (c *ForestClassifier) Ready() bool {
	return c != nil && c.forest != nil
}
