package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"survey-assessment-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ResponseLister fetches the full response list from the backing store.
type ResponseLister interface {
	ListResponses(ctx context.Context) ([]domain.SurveyResponse, error)
}

// ResponseCache caches the dashboard response list in Redis as one JSON value
// with a TTL, falling back to the loader on a miss. Cache fills are coalesced
// so concurrent dashboard loads trigger a single store read.
type ResponseCache struct {
	client *redis.Client
	loader ResponseLister
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

const responseCacheKey = "survey:responses"

func NewResponseCache(client *redis.Client, loader ResponseLister, ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *ResponseCache) ListResponses(ctx context.Context) ([]domain.SurveyResponse, error) {
	if rows, ok := c.cached(ctx); ok {
		return rows, nil
	}

	result, err, _ := c.sf.Do(responseCacheKey, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if rows, ok := c.cached(ctx); ok {
			return rows, nil
		}

		rows, err := c.loader.ListResponses(ctx)
		if err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(rows); err == nil {
			// Best effort; a failed cache write only costs a reload.
			_ = c.client.Set(ctx, responseCacheKey, raw, c.ttlWithJitter()).Err()
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.SurveyResponse), nil
}

func (c *ResponseCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, responseCacheKey).Err()
}

func (c *ResponseCache) cached(ctx context.Context) ([]domain.SurveyResponse, bool) {
	raw, err := c.client.Get(ctx, responseCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var rows []domain.SurveyResponse
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (c *ResponseCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
