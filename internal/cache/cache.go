// Package cache provides a best-effort id-to-entity cache used by the domain
// services to avoid re-reading rows the process just loaded. It is never
// authoritative: a miss always falls back to the persistence gateway, and a
// hit can be stale relative to external modification of the store. Services
// must not let a cached value decide a correctness-sensitive path such as a
// stock check or a status transition.
package cache

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/medisys/hospital-api/pkg/metrics"
)

// EntityCache maps store-assigned ids to last-known entity snapshots.
type EntityCache[T any] struct {
	c      *gocache.Cache
	hits   prometheus.Counter
	misses prometheus.Counter
}

func New[T any](ttl, cleanupInterval time.Duration) *EntityCache[T] {
	return &EntityCache[T]{c: gocache.New(ttl, cleanupInterval)}
}

// WithMetrics attaches hit/miss counters labelled with the entity name.
func (e *EntityCache[T]) WithMetrics(m *metrics.Metrics, entity string) *EntityCache[T] {
	e.hits = m.CacheHits.WithLabelValues(entity)
	e.misses = m.CacheMisses.WithLabelValues(entity)
	return e
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (e *EntityCache[T]) Get(id int64) (T, bool) {
	var zero T
	v, ok := e.c.Get(key(id))
	if !ok {
		e.miss()
		return zero, false
	}
	entity, ok := v.(T)
	if !ok {
		e.miss()
		return zero, false
	}
	e.hit()
	return entity, true
}

func (e *EntityCache[T]) Put(id int64, entity T) {
	e.c.SetDefault(key(id), entity)
}

func (e *EntityCache[T]) Invalidate(id int64) {
	e.c.Delete(key(id))
}

func (e *EntityCache[T]) Clear() {
	e.c.Flush()
}

func (e *EntityCache[T]) hit() {
	if e.hits != nil {
		e.hits.Inc()
	}
}

func (e *EntityCache[T]) miss() {
	if e.misses != nil {
		e.misses.Inc()
	}
}
