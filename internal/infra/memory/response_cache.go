package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"survey-assessment-service/internal/domain"

	"golang.org/x/sync/singleflight"
)

// ResponseLister fetches the full response list from the backing store.
type ResponseLister interface {
	ListResponses(ctx context.Context) ([]domain.SurveyResponse, error)
}

// ResponseCache caches the dashboard response list with a TTL to avoid
// re-reading the full table on every admin page load. Invalidate backs the
// manual refresh action.
type ResponseCache struct {
	loader ResponseLister
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	rows      []domain.SurveyResponse
	expiresAt time.Time
	valid     bool
}

func NewResponseCache(loader ResponseLister, ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *ResponseCache) ListResponses(ctx context.Context) ([]domain.SurveyResponse, error) {
	now := c.clock()

	c.mu.RLock()
	if c.valid && c.expiresAt.After(now) {
		rows := c.rows
		c.mu.RUnlock()
		return rows, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("responses", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.valid && c.expiresAt.After(now) {
			rows := c.rows
			c.mu.RUnlock()
			return rows, nil
		}
		c.mu.RUnlock()

		rows, err := c.loader.ListResponses(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.rows = rows
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.valid = true
		c.mu.Unlock()
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.SurveyResponse), nil
}

func (c *ResponseCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.rows = nil
	return nil
}

func (c *ResponseCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
