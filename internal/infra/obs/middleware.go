package obs

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Middleware struct {
	Logger *slog.Logger
}

// RequestID tags every request with an identifier, honoring one
// supplied by the caller so widget and backend logs correlate.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, id)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

// LoggerMiddleware emits one access line per request. Health probes
// are skipped to keep uptime checks out of the log.
func (m Middleware) LoggerMiddleware() gin.HandlerFunc {
	log := m.Logger
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if log == nil {
			return
		}
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if path == "/livez" || path == "/readyz" {
			return
		}
		log.Info("http request",
			"method", c.Request.Method,
			"route", path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
			"request_id", c.GetString("request_id"))
	}
}

type requestIDKey struct{}

// RequestIDFromContext recovers the request identifier for log lines
// written below the HTTP layer.
func RequestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDKey{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
