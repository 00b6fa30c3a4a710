package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ledger-service/internal/logger"
)

// slidingWindowScript checks the weighted request count for the trailing
// window and increments the current bucket only when the request is accepted.
// Running it as a single script keeps the check-and-increment atomic, so
// concurrent callers cannot jointly exceed the limit.
var slidingWindowScript = redis.NewScript(`
local curr = KEYS[1]
local prev = KEYS[2]
local limit = tonumber(ARGV[1])
local weight = tonumber(ARGV[2])
local ttl = tonumber(ARGV[3])

local currCount = tonumber(redis.call("GET", curr) or "0")
local prevCount = tonumber(redis.call("GET", prev) or "0")

if prevCount * weight + currCount >= limit then
	return 0
end

redis.call("INCR", curr)
redis.call("PEXPIRE", curr, ttl)
return 1
`)

// RateLimitRepository implements a sliding-window request counter on Redis.
// Counts live in per-bucket keys that expire on their own; a new window
// simply starts once the previous bucket's TTL runs out.
type RateLimitRepository struct {
	client  *redis.Client
	limit   int
	window  time.Duration
	timeout time.Duration
}

// NewRateLimitRepository creates a repository allowing up to limit accepted
// requests per window, with a bounded timeout per Redis call.
func NewRateLimitRepository(client *redis.Client, limit int, window, timeout time.Duration) *RateLimitRepository {
	return &RateLimitRepository{
		client:  client,
		limit:   limit,
		window:  window,
		timeout: timeout,
	}
}

// Allow reports whether a request under the given scope fits the budget.
// The previous bucket's count is weighted by how much of it still overlaps
// the trailing window, which avoids the burst-doubling of fixed windows.
// A Redis failure returns an error so the caller can fail the request closed.
func (r *RateLimitRepository) Allow(ctx context.Context, scope string) (bool, error) {
	now := time.Now()
	bucket := now.Truncate(r.window)
	elapsed := now.Sub(bucket)
	weight := 1 - float64(elapsed)/float64(r.window)

	currKey := fmt.Sprintf("ratelimit:%s:%d", scope, bucket.UnixMilli())
	prevKey := fmt.Sprintf("ratelimit:%s:%d", scope, bucket.Add(-r.window).UnixMilli())

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// TTL of two windows keeps the previous bucket alive while it still
	// carries weight.
	res, err := slidingWindowScript.Run(ctx, r.client,
		[]string{currKey, prevKey},
		r.limit, weight, (2 * r.window).Milliseconds(),
	).Int()

	logger.Log.Infow(
		"key", currKey,
		"scope", scope,
		"limit", r.limit,
		"result", res,
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return res == 1, nil
}
