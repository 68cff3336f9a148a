package health

import (
	"context"
	"time"
)

// DefaultPingTimeout bounds the store check so /health answers promptly.
const DefaultPingTimeout = 2 * time.Second

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckNotConfigured indicates an optional component that is switched off.
	CheckNotConfigured CheckResult = "not_configured"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db          DBPinger
	model       ModelChecker
	pingTimeout time.Duration
}

// New creates a Service. db is nil when no record store is configured.
func New(db DBPinger, model ModelChecker) *Service {
	return &Service{db: db, model: model, pingTimeout: DefaultPingTimeout}
}

// Check runs health checks against all components.
// An unconfigured store does not degrade the service; a failing one does.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	switch {
	case s.db == nil:
		checks["database"] = CheckNotConfigured
	case s.ping(ctx) != nil:
		checks["database"] = CheckError
	default:
		checks["database"] = CheckOK
	}

	if s.model != nil && s.model.Ready() {
		checks["model"] = CheckOK
	} else {
		checks["model"] = CheckError
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.pingTimeout)
	defer cancel()
	return s.db.Ping(ctx)
}
