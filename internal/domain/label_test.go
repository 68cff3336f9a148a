package domain

import (
	"errors"
	"testing"
)

func TestLabelFromClass(t *testing.T) {
	tests := []struct {
		class int
		want  Label
	}{
		{1, Malignant},
		{0, Benign},
	}
	for _, tc := range tests {
		got, err := LabelFromClass(tc.class)
		if err != nil {
			t.Fatalf("class %d: unexpected error: %v", tc.class, err)
		}
		if got != tc.want {
			t.Errorf("class %d: got %q, want %q", tc.class, got, tc.want)
		}
		if !got.Valid() {
			t.Errorf("class %d: label %q should be valid", tc.class, got)
		}
	}
}

func TestLabelFromClass_Unknown(t *testing.T) {
	_, err := LabelFromClass(2)
	if !errors.Is(err, ErrModelOutput) {
		t.Fatalf("expected ErrModelOutput, got %v", err)
	}
}

func TestLabel_Valid(t *testing.T) {
	if Label("Benious").Valid() {
		t.Error("unknown label must not be valid")
	}
	if Label("").Valid() {
		t.Error("empty label must not be valid")
	}
}
