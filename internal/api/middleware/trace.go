package middleware

import (
	"Touchline/internal/pkg/logger"
	"regexp"

	"github.com/gin-gonic/gin"
)

const TraceHeader = "X-Trace-ID"

// 上游传入的 id 只接受常见字符，其余情况重新生成
var traceIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{8,64}$`)

func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		incoming := c.GetHeader(TraceHeader)
		if incoming == "" {
			incoming = c.GetHeader("X-Request-ID")
		}
		if !traceIDPattern.MatchString(incoming) {
			incoming = ""
		}

		ctx := logger.WithTraceID(c.Request.Context(), incoming)
		traceID := logger.TraceID(ctx)
		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
