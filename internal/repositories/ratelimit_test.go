package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"ledger-service/internal/logger"
)

func setupRedis(t *testing.T) (*redis.Client, func()) {
	logger.Initialize("debug")
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	return rdb, func() {
		rdb.Close()
		redisC.Terminate(ctx)
	}
}

func TestRateLimitRepository_Allow(t *testing.T) {
	rdb, cleanup := setupRedis(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewRateLimitRepository(rdb, 2, 60*time.Second, 5*time.Second)

	t.Run("limit of two admits two then rejects", func(t *testing.T) {
		allowed, err := repo.Allow(ctx, "test-a")
		assert.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = repo.Allow(ctx, "test-a")
		assert.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = repo.Allow(ctx, "test-a")
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("rejection does not consume budget", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			allowed, err := repo.Allow(ctx, "test-b")
			assert.NoError(t, err)
			assert.Equal(t, i < 2, allowed)
		}

		// The counter stayed at the limit; still exactly one key per bucket
		keys, err := rdb.Keys(ctx, "ratelimit:test-b:*").Result()
		assert.NoError(t, err)
		assert.Len(t, keys, 1)
	})

	t.Run("scopes are tracked independently", func(t *testing.T) {
		allowed, err := repo.Allow(ctx, "test-c")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestRateLimitRepository_WindowRollsForward(t *testing.T) {
	rdb, cleanup := setupRedis(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewRateLimitRepository(rdb, 2, time.Second, 5*time.Second)

	allowed, err := repo.Allow(ctx, "rollover")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = repo.Allow(ctx, "rollover")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = repo.Allow(ctx, "rollover")
	assert.NoError(t, err)
	assert.False(t, allowed)

	// After the window fully elapses the budget is available again
	time.Sleep(2100 * time.Millisecond)

	allowed, err = repo.Allow(ctx, "rollover")
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitRepository_ConcurrentCallersNeverOvercount(t *testing.T) {
	rdb, cleanup := setupRedis(t)
	defer cleanup()
	ctx := context.Background()

	const limit = 10
	repo := NewRateLimitRepository(rdb, limit, 60*time.Second, 5*time.Second)

	var wg sync.WaitGroup
	results := make(chan bool, limit*3)
	for i := 0; i < limit*3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, err := repo.Allow(ctx, "concurrent")
			assert.NoError(t, err)
			results <- allowed
		}()
	}
	wg.Wait()
	close(results)

	accepted := 0
	for allowed := range results {
		if allowed {
			accepted++
		}
	}
	assert.Equal(t, limit, accepted)
}

func TestRateLimitRepository_FailsClosedWhenStoreUnavailable(t *testing.T) {
	rdb, cleanup := setupRedis(t)
	cleanup() // tear the store down before the check

	repo := NewRateLimitRepository(rdb, 2, 60*time.Second, time.Second)

	allowed, err := repo.Allow(context.Background(), "down")
	assert.Error(t, err)
	assert.False(t, allowed)
}
