package db

import (
	"context"
	"time"
)

// Store is the lifecycle surface every record store driver provides.
type Store interface {
	Pinger
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentStore provides collection-oriented document operations (MongoDB).
type DocumentStore interface {
	// InsertDocument stores doc and returns the store-assigned id.
	InsertDocument(ctx context.Context, collection string, doc any) (string, error)
	// FindDocuments decodes every document of a collection into out (a pointer to a slice),
	// keeping only the projected fields plus the id.
	FindDocuments(ctx context.Context, collection string, projection []string, out any) error
	// FindDocument decodes the document with the given id into out.
	FindDocument(ctx context.Context, collection, id string, out any) error
}

// JSONStore provides key-addressed JSON document operations (RedisJSON).
type JSONStore interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	// JSONMGet returns one entry per key, nil where the key does not exist.
	JSONMGet(ctx context.Context, keys []string, path string) ([][]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}
