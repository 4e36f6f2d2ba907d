package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth_AllOK(t *testing.T) {
	handler := NewHealthHandler(map[string]HealthCheck{
		"store": func(context.Context) error { return nil },
	})

	w, c := createTestContext(http.MethodGet, "/api/health", nil)
	handler.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["components"].(map[string]any)["store"])
}

func TestHealth_Degraded(t *testing.T) {
	handler := NewHealthHandler(map[string]HealthCheck{
		"store":       func(context.Context) error { return nil },
		"revocations": func(context.Context) error { return errors.New("dial tcp: refused") },
	})

	w, c := createTestContext(http.MethodGet, "/api/health", nil)
	handler.Health(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeBody(w)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "unavailable", body["components"].(map[string]any)["revocations"])
	assert.NotContains(t, w.Body.String(), "refused")
}
