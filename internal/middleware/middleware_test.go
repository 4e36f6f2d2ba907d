package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/mystery-message-backend/internal/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware([]string{"https://app.example.com"}))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestCORSMiddleware_Wildcard(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware([]string{"*"}))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get("X-Request-ID"))
}

func TestLoggerMiddleware(t *testing.T) {
	logger, hook := test.NewNullLogger()
	router := gin.New()
	router.Use(RequestIDMiddleware(), LoggerMiddleware(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, 200, hook.LastEntry().Data["status"])
	assert.NotEmpty(t, hook.LastEntry().Data["request_id"])

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestTimeoutMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(TimeoutMiddleware(50 * time.Millisecond))
	var deadline time.Time
	var hasDeadline bool
	router.GET("/slow", func(c *gin.Context) {
		deadline, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now(), deadline, time.Second)
}

func TestAbortWithError(t *testing.T) {
	logger, hook := test.NewNullLogger()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantFields bool
	}{
		{"not found", apperrors.NotFound("User not found"), http.StatusNotFound, "User not found", false},
		{"forbidden", apperrors.Forbidden("User is not accepting messages"), http.StatusForbidden, "User is not accepting messages", false},
		{"validation", apperrors.Validation("", apperrors.FieldError{Field: "content", Message: "Content must be at least 10 characters"}), http.StatusBadRequest, "Content must be at least 10 characters", true},
		{"internal hides cause", apperrors.Internal("Error adding message", errors.New("connection reset")), http.StatusInternalServerError, "Error adding message", false},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Set(LoggerKey, logger.WithField("request_id", "r1"))

			AbortWithError(c, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.True(t, c.IsAborted())
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["message"])
			_, hasFields := body["errors"]
			assert.Equal(t, tt.wantFields, hasFields)
			assert.NotContains(t, rec.Body.String(), "connection reset")
		})
	}

	// Only errors with a cause are logged by the helper.
	found := false
	for _, e := range hook.AllEntries() {
		if e.Message == "Error adding message" {
			found = true
			assert.Equal(t, logrus.ErrorLevel, e.Level)
		}
	}
	assert.True(t, found)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	router := gin.New()
	router.Use(rl.Middleware())
	router.POST("/send", func(c *gin.Context) { c.Status(http.StatusCreated) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/send", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusCreated, send("10.0.0.1").Code)

	limited := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	assert.Equal(t, false, decode(t, limited)["success"])

	assert.Equal(t, http.StatusCreated, send("10.0.0.2").Code, "budgets are per client")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusCreated, send("10.0.0.1").Code, "tokens refill")
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.allow("a")
	now = now.Add(2 * time.Minute)
	rl.allow("b")

	rl.Cleanup(time.Minute)
	assert.Equal(t, 1, rl.size())
}

func TestRateLimiter_StartCleanupStops(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	rl.StartCleanup(ctx, 10*time.Millisecond)
	cancel()
}
