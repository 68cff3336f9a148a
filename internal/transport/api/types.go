// Package api defines the HTTP contract of the classification service:
// wire types, the ServerInterface and its chi router binding.
package api

import "time"

// HealthResponseStatus is the aggregated health status.
type HealthResponseStatus string

// HealthResponseStatus values.
const (
	HealthResponseStatusOk       HealthResponseStatus = "ok"
	HealthResponseStatusDegraded HealthResponseStatus = "degraded"
)

// HealthResponseChecks is the outcome of a single component check.
type HealthResponseChecks string

// HealthResponseChecks values.
const (
	HealthResponseChecksOk            HealthResponseChecks = "ok"
	HealthResponseChecksError         HealthResponseChecks = "error"
	HealthResponseChecksNotConfigured HealthResponseChecks = "not_configured"
)

// RecordId is the store-assigned record identifier.
type RecordId = string //nolint:revive // matches the wire parameter name

// HomeResponse is returned by GET /.
type HomeResponse struct {
	Message string `json:"message"`
}

// PredictResponse is returned by POST /predict.
type PredictResponse struct {
	Prediction string `json:"prediction"`
	Id         string `json:"id,omitempty"` //nolint:revive // wire name
}

// ErrorResponse is the body of every 4xx/5xx except record-not-found.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PredictionUnsavedResponse is the 503 body of POST /predict: the label is still reported.
type PredictionUnsavedResponse struct {
	Error      string `json:"error"`
	Prediction string `json:"prediction"`
}

// MessageResponse is the 404 body of GET /records/{id}.
type MessageResponse struct {
	Message string `json:"message"`
}

// Personal is the patient information block, values passed through unvalidated.
type Personal struct {
	Name   any `json:"name"`
	Age    any `json:"age"`
	Gender any `json:"gender"`
}

// RecordSummary is one entry of GET /records.
type RecordSummary struct {
	Id         string   `json:"_id"` //nolint:revive // wire name
	Personal   Personal `json:"personal"`
	Prediction string   `json:"prediction"`
}

// Record is a full diagnosis record.
type Record struct {
	Id         string         `json:"_id"` //nolint:revive // wire name
	Personal   Personal       `json:"personal"`
	Features   map[string]any `json:"features"`
	Prediction string         `json:"prediction"`
	Timestamp  time.Time      `json:"timestamp"`
}

// RecordListResponse is returned by GET /records.
type RecordListResponse struct {
	Patients []RecordSummary `json:"Patients"`
}

// RecordResponse is returned by GET /records/{id}.
type RecordResponse struct {
	Patient Record `json:"Patient"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  HealthResponseStatus            `json:"status"`
	Checks  map[string]HealthResponseChecks `json:"checks"`
	Version string                          `json:"version"`
}
