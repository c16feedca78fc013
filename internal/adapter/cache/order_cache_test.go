package cache

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pautas-radio/internal/core/domain"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestOrderCacheUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	cache := NewOrderCache(client, 0, discard)
	assert.Equal(t, defaultCacheTTL, cache.ttl)

	order, err := cache.Get(context.Background(), "FOLIO-001")
	assert.Error(t, err, "a connection failure must not look like a miss")
	assert.Nil(t, order)
}

func TestOrderCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS not set")
	}
	ctx := context.Background()
	client, err := NewClient(ctx, addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	cache := NewOrderCache(client, time.Minute, discard)
	start, _ := domain.ParseDate("2025-12-01")
	row := domain.ExampleLineItem()
	row.DailyCounts["2025-12-01"] = "3"
	in := &domain.Order{
		Folio:     "FOLIO-TEST",
		Client:    "POLLO LOCO",
		StartDate: start,
		EndDate:   start,
		Schedule:  []domain.LineItem{row},
		Status:    domain.StatusDraft,
	}

	require.NoError(t, cache.Set(ctx, in))
	got, err := cache.Get(ctx, "FOLIO-TEST")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "POLLO LOCO", got.Client)
	assert.Equal(t, "2025-12-01", got.StartDate.String())
	assert.Equal(t, domain.Cell("3"), got.Schedule[0].DailyCounts["2025-12-01"])

	require.NoError(t, cache.Delete(ctx, "FOLIO-TEST"))
	got, err = cache.Get(ctx, "FOLIO-TEST")
	require.NoError(t, err)
	assert.Nil(t, got)
}
