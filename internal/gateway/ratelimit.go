package gateway

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// rateLimitMiddleware ограничивает частоту двумя рубежами: локальный
// token bucket на клиента и оконный счетчик в redis (с фолбэком в память).
func (g *Gateway) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := clientKey(c)

		if g.cfg.RateLimitRPS > 0 && !g.localLimiter(key).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		if g.limiter != nil {
			if userID, err := strconv.ParseInt(strings.TrimSpace(c.GetHeader(headerUserID)), 10, 64); err == nil && userID > 0 {
				allowed, err := g.limiter.CheckRateLimit(
					c.Request.Context(),
					userID,
					g.cfg.RateLimitRequests,
					time.Duration(g.cfg.RateLimitWindow)*time.Second,
				)
				if err != nil {
					// Лимитер недоступен — пропускаем, не роняя трафик.
					g.logger.Error().Err(err).Int64("user_id", userID).Msg("rate limit check failed")
				} else if !allowed {
					c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
					return
				}
			}
		}

		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	if userID := strings.TrimSpace(c.GetHeader(headerUserID)); userID != "" {
		return userID
	}
	return c.ClientIP()
}

func (g *Gateway) localLimiter(key string) *rate.Limiter {
	if v, ok := g.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := g.cfg.RateLimitBurst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(g.cfg.RateLimitRPS), burst)
	actual, loaded := g.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}
