package handlers

import (
	"net/http"
	"strconv"
	"time"

	"legalprompt-backend/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes carried in the error envelope
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func badRequest(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
}

func notFound(c *gin.Context, message string) {
	respondError(c, http.StatusNotFound, CodeNotFound, message)
}

func internalError(c *gin.Context, err error) {
	respondError(c, http.StatusInternalServerError, CodeInternal, err.Error())
}

// RequestLogger logs every request with its status and latency
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// RequestMetrics records request counts and durations by route
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
