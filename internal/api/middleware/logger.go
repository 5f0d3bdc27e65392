package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const requestLoggerKey = "requestLogger"

// RequestLogger 为每个请求派生一个绑定了 Correlation ID、方法与路径的
// slog.Logger，写入上下文供下游处理器复用，并在请求结束时输出访问日志。
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		reqLog := base.With(
			slog.String("correlation_id", GetCorrelationID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", route),
		)
		c.Set(requestLoggerKey, reqLog)

		start := time.Now()
		c.Next()

		reqLog.Info("request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// LoggerFromContext 取回请求级 logger；中间件未挂载时退回默认 logger。
func LoggerFromContext(c *gin.Context) *slog.Logger {
	value, ok := c.Get(requestLoggerKey)
	if !ok {
		return slog.Default()
	}
	reqLog, ok := value.(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return reqLog
}
