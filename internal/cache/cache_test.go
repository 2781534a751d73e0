package cache

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/pkg/metrics"
)

func TestEntityCacheGetPut(t *testing.T) {
	c := New[*model.Department](time.Minute, time.Minute)

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Put(1, &model.Department{ID: 1, Name: "Cardiology", FloorNumber: 2})

	dept, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "Cardiology", dept.Name)
}

func TestEntityCacheInvalidate(t *testing.T) {
	c := New[*model.Department](time.Minute, time.Minute)
	c.Put(1, &model.Department{ID: 1, Name: "Cardiology"})
	c.Put(2, &model.Department{ID: 2, Name: "Neurology"})

	c.Invalidate(1)

	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(2)
	assert.True(t, ok)
}

func TestEntityCacheClear(t *testing.T) {
	c := New[*model.Department](time.Minute, time.Minute)
	c.Put(1, &model.Department{ID: 1})
	c.Put(2, &model.Department{ID: 2})

	c.Clear()

	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(2)
	assert.False(t, ok)
}

func TestEntityCacheCountsHitsAndMisses(t *testing.T) {
	m := metrics.New("cache_test")
	c := New[*model.Department](time.Minute, time.Minute).WithMetrics(m, "department")

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Put(1, &model.Department{ID: 1, Name: "Cardiology"})
	c.Get(1)
	c.Get(1)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheHits.WithLabelValues("department")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheMisses.WithLabelValues("department")))
}

func TestEntityCacheExpiry(t *testing.T) {
	c := New[*model.Department](10*time.Millisecond, time.Minute)
	c.Put(1, &model.Department{ID: 1})

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(1)
	assert.False(t, ok)
}
