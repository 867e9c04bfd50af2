package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/omopgraph/omopgraph/internal/middleware"
)

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}
		if route := c.FullPath(); route != "" {
			fields["route"] = route
		}
		log.WithFields(fields).Info("request")
	}
}

// allowAllOrigins reports whether origins is the permissive wildcard.
func allowAllOrigins(origins []string) bool {
	return len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
}
