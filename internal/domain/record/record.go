// Package record holds the persisted diagnosis record.
package record

import (
	"encoding/json"
	"time"

	"github.com/kailas-cloud/cancerdx/internal/domain"
	"github.com/kailas-cloud/cancerdx/internal/domain/feature"
)

// Personal field defaults applied when a key is absent from the request.
const (
	DefaultName   = "Unknown"
	DefaultAge    = "N/A"
	DefaultGender = "N/A"
)

// Personal is unvalidated patient information, stored as submitted.
// Age may be a string or a number.
type Personal struct {
	Name   any
	Age    any
	Gender any
}

// PersonalFrom extracts personal fields from a raw request record.
// Only absent keys get defaults; an explicit null is kept.
func PersonalFrom(raw map[string]any) Personal {
	return Personal{
		Name:   valueOr(raw, "name", DefaultName),
		Age:    valueOr(raw, "age", DefaultAge),
		Gender: valueOr(raw, "gender", DefaultGender),
	}
}

func valueOr(raw map[string]any, key string, def any) any {
	if v, ok := raw[key]; ok {
		return v
	}
	return def
}

// Record is an immutable diagnosis transaction.
type Record struct {
	id         string
	personal   Personal
	features   map[string]any
	prediction domain.Label
	timestamp  time.Time
}

// StoredPrecision is the timestamp resolution kept by the document stores.
const StoredPrecision = time.Millisecond

// New creates a record that has not been persisted yet.
// Every canonical feature name is present. Decoded json.Number values become
// int64 or float64; a literal outside the float64 range keeps its text.
// The timestamp is UTC, truncated to StoredPrecision.
func New(personal Personal, features map[string]any, prediction domain.Label, ts time.Time) Record {
	raw := feature.Raw(features)
	for k, v := range raw {
		raw[k] = storedValue(v)
	}
	return Record{
		personal: Personal{
			Name:   storedValue(personal.Name),
			Age:    storedValue(personal.Age),
			Gender: storedValue(personal.Gender),
		},
		features:   raw,
		prediction: prediction,
		timestamp:  ts.UTC().Truncate(StoredPrecision),
	}
}

func storedValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = storedValue(e)
		}
		return m
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = storedValue(e)
		}
		return out
	default:
		return v
	}
}

// Reconstruct creates a Record without normalization (storage hydration).
func Reconstruct(
	id string, personal Personal, features map[string]any, prediction domain.Label, ts time.Time,
) Record {
	return Record{id: id, personal: personal, features: features, prediction: prediction, timestamp: ts}
}

// WithID returns a copy carrying the store-assigned id.
// The id is assigned once; a record that already has one is returned unchanged.
func (r Record) WithID(id string) Record {
	if r.id != "" {
		return r
	}
	r.id = id
	return r
}

// ID returns the store-assigned identifier, empty before insert.
func (r *Record) ID() string { return r.id }

// Personal returns the patient information.
func (r *Record) Personal() Personal { return r.personal }

// Features returns the raw submitted feature values.
func (r *Record) Features() map[string]any { return r.features }

// Prediction returns the diagnosis label.
func (r *Record) Prediction() domain.Label { return r.prediction }

// Timestamp returns the creation time in UTC.
func (r *Record) Timestamp() time.Time { return r.timestamp }

// Summary is the projection returned by listing: id, personal, prediction.
type Summary struct {
	ID         string
	Personal   Personal
	Prediction domain.Label
}

// Summary projects the record for listing.
func (r *Record) Summary() Summary {
	return Summary{ID: r.id, Personal: r.personal, Prediction: r.prediction}
}
