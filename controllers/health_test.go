package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthRouter(probes map[string]func(context.Context) error) *gin.Engine {
	r := gin.New()
	r.GET("/health", NewHealthController(probes).Health)
	return r
}

func TestHealthAllDependenciesUp(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	r := healthRouter(map[string]func(context.Context) error{"mongodb": ok, "redis": ok})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "ok", deps["mongodb"])
	assert.Equal(t, "ok", deps["redis"])
}

func TestHealthDependencyDown(t *testing.T) {
	t.Parallel()

	r := healthRouter(map[string]func(context.Context) error{
		"mongodb": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return errors.New("connection refused") },
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode(t, w)
	assert.Equal(t, "degraded", body["status"])
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "unreachable", deps["redis"])
}
