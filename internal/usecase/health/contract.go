package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ModelChecker reports whether the classifier is loaded.
type ModelChecker interface {
	Ready() bool
}
