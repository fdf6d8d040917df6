package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())
		if respSize < 0 {
			respSize = 0
		}

		metrics.RecordHTTPRequest(method, path, status, duration, reqSize, respSize)
	}
}

// Timer measures one filesystem operation.
type Timer struct {
	start     time.Time
	metrics   *Metrics
	operation string
}

// NewTimer starts a timer for an operation.
func NewTimer(metrics *Metrics, operation string) *Timer {
	return &Timer{start: time.Now(), metrics: metrics, operation: operation}
}

// Stop records the operation with the given status.
func (t *Timer) Stop(status string) {
	t.metrics.RecordFileOp(t.operation, status, time.Since(t.start))
}
