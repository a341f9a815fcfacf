package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	loggerpkg "github.com/Habid-Marun/getsemani-vivo/pkg/logger"
)

func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		startedAt := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("raw_path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("latency", time.Since(startedAt)),
		}

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			fields = append(fields, zap.String("authorization", authHeader))
		}
		if user, ok := CurrentUser(c); ok {
			fields = append(fields, zap.Int64("user_id", user.ID))
		}

		sanitized := loggerpkg.SanitizeFields(fields)
		if c.Writer.Status() >= 500 {
			logger.Error("http request completed", sanitized...)
			return
		}
		if c.Writer.Status() >= 400 {
			logger.Warn("http request completed", sanitized...)
			return
		}
		logger.Info("http request completed", sanitized...)
	}
}
