package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tasksphere/server/ctxutil"
	"github.com/tasksphere/server/logging/logger"
)

// Logging assigns each request a generated ID, echoes it in the
// X-Request-ID response header, and logs method, path, status and
// duration on completion.
func Logging(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		ctx := ctxutil.SetTraceID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		log.Infof(ctx, "request started: %s %s", c.Request.Method, c.Request.URL.Path)

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)
		if status >= 500 {
			log.Errorf(ctx, "request failed: %s %s status=%d elapsed=%s",
				c.Request.Method, c.Request.URL.Path, status, elapsed)
			return
		}
		log.Infof(ctx, "request completed: %s %s status=%d elapsed=%s",
			c.Request.Method, c.Request.URL.Path, status, elapsed)
	}
}
