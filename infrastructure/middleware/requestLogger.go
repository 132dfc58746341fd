package middlewares

import (
	"time"

	"facegate.io/infrastructure/logger"
	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware emits one structured log line per request.
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		logger.Info("request completed", logger.LoggerOptions{
			Key:  "method",
			Data: ctx.Request.Method,
		}, logger.LoggerOptions{
			Key:  "path",
			Data: ctx.Request.URL.Path,
		}, logger.LoggerOptions{
			Key:  "status",
			Data: ctx.Writer.Status(),
		}, logger.LoggerOptions{
			Key:  "latencyMs",
			Data: time.Since(start).Milliseconds(),
		})
	}
}
