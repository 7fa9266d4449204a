package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/tracing"
)

// HeaderRequestID 请求ID响应头
const HeaderRequestID = "X-Request-ID"

// slowRequestThreshold 超过该耗时记录慢请求警告
const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
//
// 1. 生成请求ID（客户端已携带X-Request-ID时复用），写回响应头
// 2. 把带request_id的logger放入请求Context，下游用logger.FromContext取出
// 3. 请求结束后记录方法、路径、状态码、耗时、客户端IP、TraceID
//
// 不记录请求体，避免把大对象和敏感信息写进日志
func Logger(base *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		reqLog := base.With("request_id", requestID)
		ctx := logger.IntoContext(c.Request.Context(), reqLog)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			attrs = append(attrs, "trace_id", traceID)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case latency > slowRequestThreshold:
			reqLog.Warn("慢请求", attrs...)
		case c.Writer.Status() >= 500:
			reqLog.Error("请求失败", attrs...)
		default:
			reqLog.Info("请求完成", attrs...)
		}
	}
}
