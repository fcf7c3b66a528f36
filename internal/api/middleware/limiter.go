package middleware

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/pkg/redis"
	"Touchline/internal/pkg/response"
	"Touchline/internal/service"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoginRateLimit 登录限流：超过上限直接拒绝且不计数；打开登录页只检查，提交登录才计数
func LoginRateLimit(limiter *redis.LoginLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()

		ok, err := limiter.Allow(ctx, ip)
		if err != nil {
			log.ErrorContext(ctx, "login limiter check error", "ip", ip, "err", err)
			response.Error(c, err)
			c.Abort()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Response{
				Code:    response.TooManyRequests,
				Message: service.ErrTooManyAttempts.Error(),
			})
			return
		}

		if c.Request.Method != http.MethodGet {
			if _, err = limiter.Hit(ctx, ip); err != nil {
				log.ErrorContext(ctx, "login limiter hit error", "ip", ip, "err", err)
			}
		}
		c.Next()
	}
}
