package domain

import "fmt"

// Label is the diagnosis produced by the classifier.
type Label string

const (
	// Malignant is reported for model class 1.
	Malignant Label = "Malignant"
	// Benign is reported for model class 0.
	Benign Label = "Benign"
)

// LabelFromClass maps a binary model class to its label.
func LabelFromClass(class int) (Label, error) {
	switch class {
	case 1:
		return Malignant, nil
	case 0:
		return Benign, nil
	default:
		return "", fmt.Errorf("class %d: %w", class, ErrModelOutput)
	}
}

// Valid reports whether l is one of the two known labels.
func (l Label) Valid() bool {
	return l == Malignant || l == Benign
}

// String implements fmt.Stringer.
func (l Label) String() string { return string(l) }
