package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID reuses the caller's X-Request-ID or generates one, and echoes it
// on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger writes one line per request: Info on success, Error for each
// error attached with c.Error, and Error for a 5xx with nothing attached.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			logger.F("request_id", c.GetString(requestIDKey)),
			logger.F("method", c.Request.Method),
			logger.F("path", c.FullPath()),
			logger.F("status", c.Writer.Status()),
			logger.F("latency", time.Since(start)),
		}
		switch {
		case len(c.Errors) > 0:
			for _, e := range c.Errors {
				log.Error("request failed", append(fields, logger.Err(e.Err))...)
			}
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request failed", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
