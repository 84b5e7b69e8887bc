package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RateLimit limits requests per client IP. Websocket upgrades count once.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		lc, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			log.Printf("[http][ratelimit] store failed ip=%s err=%v", ip, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "message": "Rate limit check failed"})
			return
		}
		if lc.Reached {
			log.Printf("[http][ratelimit] limit reached ip=%s limit=%d", ip, lc.Limit)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"code": "TOO_MANY_REQUESTS", "message": "Too many requests"})
			return
		}
		c.Next()
	}
}
