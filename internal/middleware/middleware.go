package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ArowuTest/mystery-message-backend/internal/apperrors"
	"github.com/ArowuTest/mystery-message-backend/internal/metrics"
)

// Context keys set by the middleware chain
const (
	RequestIDKey = "RequestID"
	LoggerKey    = "logger"
)

// CORSMiddleware echoes the request origin when it is allowed. "*" allows any origin.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; origin != "" && (allowAll || ok) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
			h.Set("Access-Control-Expose-Headers", "X-Request-ID")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware keeps an incoming X-Request-ID or assigns a new one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggerMiddleware stores a request-scoped entry in the context and logs each
// request once it completes.
func LoggerMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		entry := logger.WithField("request_id", c.GetString(RequestIDKey))
		c.Set(LoggerKey, entry)

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case status >= http.StatusInternalServerError:
			entry.WithFields(fields).Error("request failed")
		case status >= http.StatusBadRequest:
			entry.WithFields(fields).Warn("request rejected")
		default:
			entry.WithFields(fields).Info("request completed")
		}
	}
}

// MetricsMiddleware records request counts and latency by route template
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.RequestStarted()
		defer done()

		start := time.Now()
		c.Next()

		metrics.ObserveRequest(c.Request.Method, c.FullPath(), strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}

// TimeoutMiddleware bounds the whole request context, outbound calls included
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Logger returns the request-scoped logger, or the standard logger outside a request
func Logger(c *gin.Context) logrus.FieldLogger {
	if v, ok := c.Get(LoggerKey); ok {
		if l, ok := v.(logrus.FieldLogger); ok {
			return l
		}
	}
	return logrus.StandardLogger()
}

// AbortWithError writes the error envelope {success:false, message[, errors]}
// and stops the chain. Causes are logged, never returned.
func AbortWithError(c *gin.Context, err error) {
	appErr := apperrors.As(err)
	status := appErr.HTTPStatus()

	if appErr.Cause != nil {
		log := Logger(c).WithError(appErr.Cause).WithField("kind", appErr.Kind)
		if status >= http.StatusInternalServerError {
			log.Error(appErr.Message)
		} else {
			log.Warn(appErr.Message)
		}
	}
	_ = c.Error(err)

	body := gin.H{"success": false, "message": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	c.AbortWithStatusJSON(status, body)
}
