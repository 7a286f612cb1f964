package data

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestCheckRateLimitFailsOpen(t *testing.T) {
	// Nothing listens here; every command errors out and the limiter must
	// let the request through rather than block traffic.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	defer rdb.Close()

	allowed := CheckRateLimit(context.Background(), rdb, "tenant:customer", 10, time.Minute)
	assert.True(t, allowed)
}
