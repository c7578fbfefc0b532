package common

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var RedisEnabled = false

// InitRedisClient connects the optional Redis backend used for shared
// rate-limit counters. An empty connection string leaves Redis disabled and
// the limiter on its in-process cache.
func InitRedisClient(connString string) error {
	if connString == "" {
		SysLog("REDIS_CONN_STRING not set, Redis is not enabled")
		return nil
	}
	opt, err := redis.ParseURL(connString)
	if err != nil {
		return err
	}
	RDB = redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		return err
	}
	RedisEnabled = true
	SysLog("Redis is enabled")
	return nil
}
