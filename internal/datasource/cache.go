package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache keeps recent provider payloads in Redis so a burst of dashboard
// loads does not hammer the upstream feeds. It is strictly advisory: every
// failure degrades to a live fetch.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCache builds a provider payload cache. A nil client or zero TTL
// disables caching entirely.
func NewCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

func cacheKey(dataset, airportCode string) string {
	return fmt.Sprintf("datasource:%s:%s", dataset, airportCode)
}

// Get returns a cached payload when present.
func (c *Cache) Get(ctx context.Context, dataset, airportCode string) (Payload, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.client.Get(ctx, cacheKey(dataset, airportCode)).Bytes()
	if err != nil {
		return nil, false
	}
	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	return payload, true
}

// Set stores a payload with the configured TTL.
func (c *Cache) Set(ctx context.Context, dataset, airportCode string, payload Payload) {
	if !c.enabled() {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(dataset, airportCode), raw, c.ttl).Err(); err != nil {
		c.logger.Debug("provider cache write failed", zap.Error(err))
	}
}
