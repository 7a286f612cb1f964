package data

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// CheckRateLimit enforces a sliding window of at most limit events per
// window for the given key. Timestamps live in a sorted set scored by unix
// milliseconds; entries older than the window are expired on every check.
// A backing-store error fails open: the guard is not worth an outage.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, key string, limit int, window time.Duration) bool {
	now := time.Now().UnixMilli()
	windowStart := now - window.Milliseconds()
	rkey := rateLimitPrefix + key

	if err := rdb.ZRemRangeByScore(ctx, rkey, "0", strconv.FormatInt(windowStart, 10)).Err(); err != nil {
		log.Printf("rate limit check failed: %v", err)
		return true
	}

	count, err := rdb.ZCard(ctx, rkey).Result()
	if err != nil {
		log.Printf("rate limit check failed: %v", err)
		return true
	}
	if count >= int64(limit) {
		return false
	}

	member := strconv.FormatInt(now, 10)
	if err := rdb.ZAdd(ctx, rkey, redis.Z{Score: float64(now), Member: member}).Err(); err != nil {
		log.Printf("rate limit check failed: %v", err)
		return true
	}
	_ = rdb.Expire(ctx, rkey, window).Err()

	return true
}
