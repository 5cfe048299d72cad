package redis

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"crm-booking-service/logger"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

const (
	dayKeyPrefix = "schedule:day:"
	dayCacheTTL  = 5 * time.Minute
)

// Init connects to Redis. The cache is optional: when REDIS_ADDR is unset or
// the server is unreachable, Client stays nil and every lookup misses.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logger.L.Warn("REDIS_ADDR not set, schedule cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		logger.L.Warnw("redis unreachable, schedule cache disabled", "error", err)
		return
	}

	Client = client
	logger.L.Info("connected to redis")
}

// GetDay returns the cached resolved schedule for a date, if any.
func GetDay(date string) ([]byte, bool) {
	if Client == nil {
		return nil, false
	}
	payload, err := Client.Get(Ctx, dayKeyPrefix+date).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetDay caches the resolved schedule for a date.
func SetDay(date string, payload []byte) {
	if Client == nil {
		return
	}
	if err := Client.Set(Ctx, dayKeyPrefix+date, payload, dayCacheTTL).Err(); err != nil {
		logger.L.Warnw("failed to cache day schedule", "date", date, "error", err)
	}
}

// InvalidateDay drops the cached schedule for one date, after a booking or
// cancellation touched it.
func InvalidateDay(date string) {
	if Client == nil {
		return
	}
	if err := Client.Del(Ctx, dayKeyPrefix+date).Err(); err != nil {
		logger.L.Warnw("failed to invalidate day cache", "date", date, "error", err)
	}
}

// InvalidateSchedule drops every cached day. Called after configuration
// writes, which can change any date's resolution.
func InvalidateSchedule() {
	if Client == nil {
		return
	}
	iter := Client.Scan(Ctx, 0, dayKeyPrefix+"*", 0).Iterator()
	for iter.Next(Ctx) {
		if err := Client.Del(Ctx, iter.Val()).Err(); err != nil {
			logger.L.Warnw("failed to invalidate cache key", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		logger.L.Warnw("schedule cache scan failed", "error", err)
	}
}
