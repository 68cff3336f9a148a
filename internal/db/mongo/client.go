// Package mongo implements the document record store on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/kailas-cloud/cancerdx/internal/db"
)

// Compile-time checks.
var (
	_ db.Store         = (*Store)(nil)
	_ db.DocumentStore = (*Store)(nil)
)

const disconnectTimeout = 5 * time.Second

// Config holds connection parameters for a MongoDB store.
type Config struct {
	URI      string
	Database string
	// TLSCAFile is an optional PEM bundle replacing the system roots.
	TLSCAFile string
}

// Store implements db.DocumentStore via the official driver.
// The driver client pools connections and is safe for concurrent use.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore creates a client. The driver connects lazily; use WaitForReady to verify.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database is required")
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.TLSCAFile != "" {
		tlsCfg, err := db.LoadTLSConfig(cfg.TLSCAFile)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Ping checks connectivity against the primary.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

// WaitForReady polls Ping until the server responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
