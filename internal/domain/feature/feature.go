// Package feature converts untyped diagnosis input into the fixed-order
// numeric vector the classifier is trained on.
package feature

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/cancerdx/internal/domain"
)

// Count is the number of features the classifier consumes.
const Count = 30

// names is the canonical feature order: mean tier, error tier, worst tier.
var names = [Count]string{
	"mean_radius", "mean_texture", "mean_perimeter", "mean_area", "mean_smoothness",
	"mean_compactness", "mean_concavity", "mean_concave_points", "mean_symmetry", "mean_fractal_dimension",
	"radius_error", "texture_error", "perimeter_error", "area_error", "smoothness_error",
	"compactness_error", "concavity_error", "concave_points_error", "symmetry_error", "fractal_dimension_error",
	"worst_radius", "worst_texture", "worst_perimeter", "worst_area", "worst_smoothness",
	"worst_compactness", "worst_concavity", "worst_concave_points", "worst_symmetry", "worst_fractal_dimension",
}

var indexByName = func() map[string]int {
	m := make(map[string]int, Count)
	for i, n := range names {
		m[n] = i
	}
	return m
}()

// Vector is an encoded feature vector in canonical order.
type Vector [Count]float64

// Names returns the feature names in canonical order.
func Names() []string {
	out := make([]string, Count)
	copy(out, names[:])
	return out
}

// Index returns the canonical position of a feature name.
func Index(name string) (int, bool) {
	i, ok := indexByName[name]
	return i, ok
}

// CoercionError reports a feature value that is neither falsy nor numeric.
type CoercionError struct {
	Feature string
	Value   any
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: could not convert %v to float: %s", domain.ErrInvalidFeature, e.Value, e.Feature)
}

func (e *CoercionError) Unwrap() error { return domain.ErrInvalidFeature }

// Encode builds the classifier vector from a raw request record.
//
// Absent keys, null and falsy values (false, 0, "", empty array or object)
// all encode as 0.0. This conflates a legitimate zero measurement with a
// missing one; the behavior is inherited from the deployed service and kept
// so that stored predictions stay reproducible.
func Encode(raw map[string]any) (Vector, error) {
	var v Vector
	for i, name := range names {
		f, err := coerce(raw[name])
		if err != nil {
			return Vector{}, &CoercionError{Feature: name, Value: raw[name]}
		}
		v[i] = f
	}
	return v, nil
}

// Raw returns the submitted value of every feature, with nil for absent keys.
func Raw(raw map[string]any) map[string]any {
	out := make(map[string]any, Count)
	for _, name := range names {
		out[name] = raw[name]
	}
	return out
}

func coerce(val any) (float64, error) {
	switch x := val.(type) {
	case nil:
		return 0, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		return parseNumeric(string(x))
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		if x == "" {
			return 0, nil
		}
		return parseNumeric(x)
	case []any:
		if len(x) == 0 {
			return 0, nil
		}
	case map[string]any:
		if len(x) == 0 {
			return 0, nil
		}
	}
	return 0, fmt.Errorf("unsupported type %T", val)
}

func parseNumeric(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return f, nil
}
