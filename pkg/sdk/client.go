package cancerdx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/cancerdx/internal/transport/api"
	"github.com/kailas-cloud/cancerdx/internal/version"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// Wire types shared with the server.
type (
	Personal      = api.Personal
	RecordSummary = api.RecordSummary
	Record        = api.Record
	HealthStatus  = api.HealthResponse
)

// Prediction is the outcome of a classification request.
// ID is empty when the service did not persist the record.
type Prediction struct {
	Label string
	ID    string
}

// Client talks to a cancerdx service over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	obs       *observer
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout:   defaultTimeout,
		userAgent: "cancerdx-go/" + version.Version,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if baseURL == "" {
		return nil, errors.New("cancerdx: base URL is required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("cancerdx: parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("cancerdx: unsupported scheme %q", u.Scheme)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{baseURL: u, http: hc, userAgent: cfg.userAgent, obs: obs}, nil
}

// Home returns the service welcome message.
func (c *Client) Home(ctx context.Context) (string, error) {
	start := time.Now()
	var resp api.HomeResponse
	err := c.do(ctx, http.MethodGet, "/", nil, &resp)
	c.obs.observe("home", start, err)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Predict classifies one feature set. When the service classified the input
// but could not save it, the label is returned together with an *APIError.
func (c *Client) Predict(ctx context.Context, features map[string]any) (Prediction, error) {
	start := time.Now()
	var resp api.PredictResponse
	err := c.do(ctx, http.MethodPost, "/predict", features, &resp)
	c.obs.observe("predict", start, err)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusServiceUnavailable {
			var unsaved api.PredictionUnsavedResponse
			if json.Unmarshal(apiErr.body, &unsaved) == nil && unsaved.Prediction != "" {
				return Prediction{Label: unsaved.Prediction}, err
			}
		}
		return Prediction{}, err
	}
	return Prediction{Label: resp.Prediction, ID: resp.Id}, nil
}

// ListRecords returns summaries of all stored records.
func (c *Client) ListRecords(ctx context.Context) ([]RecordSummary, error) {
	start := time.Now()
	var resp api.RecordListResponse
	err := c.do(ctx, http.MethodGet, "/records", nil, &resp)
	c.obs.observe("list_records", start, err)
	if err != nil {
		return nil, err
	}
	if resp.Patients == nil {
		return []RecordSummary{}, nil
	}
	return resp.Patients, nil
}

// GetRecord fetches one full record by id.
func (c *Client) GetRecord(ctx context.Context, id string) (Record, error) {
	start := time.Now()
	var resp api.RecordResponse
	err := c.do(ctx, http.MethodGet, "/records/"+url.PathEscape(id), nil, &resp)
	c.obs.observe("get_record", start, err)
	if err != nil {
		return Record{}, err
	}
	return resp.Patient, nil
}

// Health returns the service health report.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	start := time.Now()
	var resp api.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &resp)
	c.obs.observe("health", start, err)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("cancerdx: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("cancerdx: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cancerdx: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("cancerdx: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("cancerdx: decode response: %w", err)
	}
	return nil
}

func newAPIError(status int, raw []byte) *APIError {
	e := &APIError{Status: status, body: raw}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		switch {
		case payload.Error != "":
			e.Message = payload.Error
		case payload.Message != "":
			e.Message = payload.Message
		}
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(raw))
	}
	return e
}
