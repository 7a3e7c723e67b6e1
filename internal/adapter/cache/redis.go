package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/fxreport/internal/domain"
	"github.com/iho/fxreport/internal/infrastructure/metrics"
)

// Redis is a session-scoped detail cache backed by Redis, for
// deployments running more than one instance behind a balancer. Keys
// are namespaced per session and tracked in a per-session index set so
// InvalidateAll can drop the whole namespace.
type Redis struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
	metrics   *metrics.Metrics
}

// NewRedis creates a Redis-backed detail cache. m may be nil.
func NewRedis(client *redis.Client, sessionID string, ttl time.Duration, m *metrics.Metrics) *Redis {
	return &Redis{
		client:    client,
		sessionID: sessionID,
		ttl:       ttl,
		metrics:   m,
	}
}

func (c *Redis) key(accountID string) string {
	return fmt.Sprintf("detail:%s:%s", c.sessionID, accountID)
}

func (c *Redis) indexKey() string {
	return fmt.Sprintf("detail:%s:keys", c.sessionID)
}

// Get returns the cached rows for an account.
func (c *Redis) Get(ctx context.Context, accountID string) ([]domain.DetailRow, bool, error) {
	payload, err := c.client.Get(ctx, c.key(accountID)).Bytes()
	if errors.Is(err, redis.Nil) {
		if c.metrics != nil {
			c.metrics.CacheMisses.Inc()
		}
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("detail cache get: %w", err)
	}

	var rows []domain.DetailRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("detail cache decode: %w", err)
	}

	if c.metrics != nil {
		c.metrics.CacheHits.Inc()
	}
	if rows == nil {
		rows = []domain.DetailRow{}
	}
	return rows, true, nil
}

// Put stores the rows for one account, overwriting any existing entry.
func (c *Redis) Put(ctx context.Context, accountID string, rows []domain.DetailRow) error {
	return c.PutBatch(ctx, map[string][]domain.DetailRow{accountID: rows})
}

// PutBatch stores a full preload cycle's result in one transaction.
func (c *Redis) PutBatch(ctx context.Context, entries map[string][]domain.DetailRow) error {
	pipe := c.client.TxPipeline()
	for id, rows := range entries {
		if rows == nil {
			rows = []domain.DetailRow{}
		}
		payload, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("detail cache encode: %w", err)
		}
		pipe.Set(ctx, c.key(id), payload, c.ttl)
		pipe.SAdd(ctx, c.indexKey(), c.key(id))
	}
	pipe.Expire(ctx, c.indexKey(), c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("detail cache put: %w", err)
	}
	return nil
}

// InvalidateAll deletes every key in the session namespace.
func (c *Redis) InvalidateAll(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, c.indexKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("detail cache invalidate: %w", err)
	}

	keys = append(keys, c.indexKey())
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("detail cache invalidate: %w", err)
	}

	if c.metrics != nil {
		c.metrics.CacheInvalidations.Inc()
	}
	return nil
}
