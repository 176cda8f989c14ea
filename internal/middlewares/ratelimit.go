package middlewares

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyedLimiter 按请求者键维护进程内令牌桶；键空间超限时整体重置，
// 避免长时间运行后 map 无界增长。
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func (kl *keyedLimiter) get(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	if len(kl.limiters) > 10000 {
		kl.limiters = make(map[string]*rate.Limiter)
	}
	l, ok := kl.limiters[key]
	if !ok {
		l = rate.NewLimiter(kl.rate, kl.burst)
		kl.limiters[key] = l
	}
	return l
}

// RateLimit 返回进程内限流中间件：每个键在 window 内最多 limit 次请求。
// keyFn 用于构建请求者唯一键（如按 IP）。
func RateLimit(limit int, window time.Duration, keyFn func(*gin.Context) string) gin.HandlerFunc {
	if window <= 0 {
		window = time.Minute
	}
	if limit <= 0 {
		limit = 1
	}
	kl := &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Every(window / time.Duration(limit)),
		burst:    limit,
	}
	return func(c *gin.Context) {
		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}
		if !kl.get(key).Allow() {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests from this IP, please try again later.",
			})
			return
		}
		c.Next()
	}
}

// ByClientIP 是最常用的限流键函数。
func ByClientIP(c *gin.Context) string { return c.ClientIP() }
