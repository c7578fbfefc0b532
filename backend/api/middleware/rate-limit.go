package middleware

import (
	"fmt"
	"net/http"
	"time"

	"cadvault/backend/common"

	"github.com/burugo/thing"
	"github.com/gin-gonic/gin"
)

// redisRateLimiter counts requests in Redis so limits hold across replicas.
func redisRateLimiter(c *gin.Context, maxRequestNum int, durationSeconds int64, mark string) {
	key := "rateLimit:" + mark + c.ClientIP()
	ctx := c.Request.Context()

	count, err := common.RDB.Incr(ctx, key).Result()
	if err != nil {
		common.SysError(fmt.Sprintf("[RateLimit] Error incrementing redis key %s: %v", key, err))
		c.Status(http.StatusInternalServerError)
		c.Abort()
		return
	}
	if count == 1 {
		if expireErr := common.RDB.Expire(ctx, key, time.Duration(durationSeconds)*time.Second).Err(); expireErr != nil {
			common.SysError(fmt.Sprintf("[RateLimit] Error setting expiration for key %s: %v", key, expireErr))
		}
	}
	if count > int64(maxRequestNum) {
		c.Status(http.StatusTooManyRequests)
		c.Abort()
	}
}

// cacheRateLimiter is the in-process fallback using the ORM's cache client.
func cacheRateLimiter(c *gin.Context, maxRequestNum int, durationSeconds int64, mark string) {
	cacheClient := thing.Cache()
	if cacheClient == nil {
		common.SysError("[RateLimit] thing.Cache() returned nil, rate limiting cannot proceed.")
		c.Status(http.StatusInternalServerError)
		c.Abort()
		return
	}

	key := "rateLimit:" + mark + c.ClientIP()
	ctx := c.Request.Context()

	count, err := cacheClient.Incr(ctx, key)
	if err != nil {
		common.SysError(fmt.Sprintf("[RateLimit] Error incrementing cache for key %s: %v", key, err))
		c.Status(http.StatusInternalServerError)
		c.Abort()
		return
	}
	if count == 1 {
		if expireErr := cacheClient.Expire(ctx, key, time.Duration(durationSeconds)*time.Second); expireErr != nil {
			common.SysError(fmt.Sprintf("[RateLimit] Error setting expiration for key %s: %v", key, expireErr))
		}
	}
	if count > int64(maxRequestNum) {
		c.Status(http.StatusTooManyRequests)
		c.Abort()
	}
}

func rateLimitFactory(maxRequestNum int, duration int64, mark string) func(c *gin.Context) {
	return func(c *gin.Context) {
		if common.RedisEnabled {
			redisRateLimiter(c, maxRequestNum, duration, mark)
			return
		}
		cacheRateLimiter(c, maxRequestNum, duration, mark)
	}
}

func GlobalAPIRateLimit() func(c *gin.Context) {
	return rateLimitFactory(common.GlobalAPIRateLimitNum, common.GlobalAPIRateLimitDuration, "GA")
}

// CriticalRateLimit guards registration and login, which are the cheapest
// endpoints to abuse.
func CriticalRateLimit() func(c *gin.Context) {
	return rateLimitFactory(common.CriticalRateLimitNum, common.CriticalRateLimitDuration, "CT")
}

func UploadRateLimit() func(c *gin.Context) {
	return rateLimitFactory(common.UploadRateLimitNum, common.UploadRateLimitDuration, "UP")
}

func DownloadRateLimit() func(c *gin.Context) {
	return rateLimitFactory(common.DownloadRateLimitNum, common.DownloadRateLimitDuration, "DW")
}
