package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"pautas-radio/internal/core/domain"
)

const (
	orderKeyPrefix  = "pauta:"
	defaultCacheTTL = 5 * time.Minute
)

// OrderCache implements port.OrderCache on Redis. Orders are stored as JSON
// under "pauta:<folio>" and expire after ttl.
type OrderCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewOrderCache wraps an existing client. A zero ttl uses five minutes.
func NewOrderCache(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *OrderCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &OrderCache{client: client, ttl: ttl, logger: logger.With(slog.String("component", "order-cache"))}
}

// NewClient builds a client for addr and checks it with PING.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Get returns the cached order, or (nil, nil) on a miss.
func (c *OrderCache) Get(ctx context.Context, folio string) (*domain.Order, error) {
	data, err := c.client.Get(ctx, orderKeyPrefix+folio).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("cache miss", slog.String("folio", folio))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var order domain.Order
	if err = json.Unmarshal(data, &order); err != nil {
		// A stale layout is treated as a miss and dropped.
		c.logger.Warn("cache entry unreadable", slog.String("folio", folio), slog.Any("error", err))
		_ = c.client.Del(ctx, orderKeyPrefix+folio).Err()
		return nil, nil
	}
	c.logger.Debug("cache hit", slog.String("folio", folio))
	return &order, nil
}

// Set stores order under its folio.
func (c *OrderCache) Set(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, orderKeyPrefix+order.Folio, data, c.ttl).Err()
}

// Delete evicts the order with the given folio.
func (c *OrderCache) Delete(ctx context.Context, folio string) error {
	return c.client.Del(ctx, orderKeyPrefix+folio).Err()
}
