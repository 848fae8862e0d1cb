package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger emits one slog line per completed request. The path is
// the route pattern, not the raw URL, so order and profile ids don't
// explode the log cardinality; the account id is attached whenever the
// auth middleware resolved one.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", c.Writer.Status()),
			slog.Int("bytes", c.Writer.Size()),
			slog.Duration("latency", time.Since(start)),
		}
		if v, ok := c.Get(UserIDContextKey); ok {
			if id, ok := v.(int64); ok {
				attrs = append(attrs, slog.Int64("user", id))
			}
		}
		logger.Info("http request", attrs...)
	}
}
