// Package recordcache caches diagnosis records read by id.
package recordcache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	domrec "github.com/kailas-cloud/cancerdx/internal/domain/record"
)

// repository is the decorated record store.
type repository interface {
	Insert(ctx context.Context, rec *domrec.Record) (string, error)
	List(ctx context.Context) ([]domrec.Summary, error)
	Get(ctx context.Context, id string) (domrec.Record, error)
}

// Repo is a read-through LRU over Get. Records are never updated, so entries do not go stale.
type Repo struct {
	inner      repository
	cache      *lru.Cache[string, domrec.Record]
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New wraps inner with a cache holding up to size records.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), may be nil.
func New(
	inner repository,
	size int,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) (*Repo, error) {
	cache, err := lru.New[string, domrec.Record](size)
	if err != nil {
		return nil, fmt.Errorf("create record cache: %w", err)
	}
	return &Repo{inner: inner, cache: cache, cacheTotal: cacheTotal, logger: logger}, nil
}

// Insert stores the record and warms the cache with it.
func (r *Repo) Insert(ctx context.Context, rec *domrec.Record) (string, error) {
	id, err := r.inner.Insert(ctx, rec)
	if err != nil {
		return "", err //nolint:wrapcheck // decorator is transparent
	}
	r.cache.Add(id, rec.WithID(id))
	return id, nil
}

// List always reads through; the listing is not cached.
func (r *Repo) List(ctx context.Context) ([]domrec.Summary, error) {
	return r.inner.List(ctx) //nolint:wrapcheck // decorator is transparent
}

// Get returns a cached record or loads it from the inner store.
// Errors, including not-found, are never cached.
func (r *Repo) Get(ctx context.Context, id string) (domrec.Record, error) {
	if rec, ok := r.cache.Get(id); ok {
		r.inc("hit")
		return rec, nil
	}
	r.inc("miss")

	rec, err := r.inner.Get(ctx, id)
	if err != nil {
		return domrec.Record{}, err //nolint:wrapcheck // decorator is transparent
	}
	if evicted := r.cache.Add(id, rec); evicted {
		r.logger.Debug("record cache eviction", zap.Int("size", r.cache.Len()))
	}
	return rec, nil
}

// Len returns the number of cached records.
func (r *Repo) Len() int {
	return r.cache.Len()
}

func (r *Repo) inc(result string) {
	if r.cacheTotal != nil {
		r.cacheTotal.WithLabelValues(result).Inc()
	}
}
