// Package redis implements the JSON record store on Redis with the RedisJSON module.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/cancerdx/internal/db"
)

// Compile-time checks.
var (
	_ db.Store     = (*Store)(nil)
	_ db.JSONStore = (*Store)(nil)
)

const (
	clientName   = "cancerdx"
	pollInterval = 100 * time.Millisecond
	// probeKey is never written; JSON.TYPE on it only proves the module is loaded.
	probeKey = "cancerdx:probe"
)

// ErrJSONModuleMissing means the server answers but has no RedisJSON commands.
var ErrJSONModuleMissing = errors.New("redis: RedisJSON module is not loaded")

// Config holds connection parameters for a Redis store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	// TLSCAFile enables TLS with the given PEM bundle as the only trusted roots.
	TLSCAFile string
}

// Store implements db.JSONStore via rueidis.
type Store struct {
	client rueidis.Client
}

// NewStore creates a Redis store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	opt := rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		ClientName:   clientName,
		DisableCache: true,
	}
	if cfg.TLSCAFile != "" {
		tlsCfg, err := db.LoadTLSConfig(cfg.TLSCAFile)
		if err != nil {
			return nil, err
		}
		opt.TLSConfig = tlsCfg
	}

	client, err := rueidis.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.do(ctx, s.b().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// CheckJSON verifies that RedisJSON commands are available.
func (s *Store) CheckJSON(ctx context.Context) error {
	cmd := s.b().Arbitrary("JSON.TYPE").Keys(probeKey).Build()
	err := s.do(ctx, cmd).Error()
	if err == nil || rueidis.IsRedisNil(err) {
		return nil
	}
	var redisErr *rueidis.RedisError
	if errors.As(err, &redisErr) {
		return fmt.Errorf("%w: %s", ErrJSONModuleMissing, redisErr.Error())
	}
	return &db.Error{Op: db.OpJSONType, Err: err}
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until the server responds, then requires RedisJSON.
// A server without the module is reported at once instead of waiting out the timeout.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err != nil {
				continue
			}
			return s.CheckJSON(ctx)
		}
	}
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}
