package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog-backend/internal/config"
	"microblog-backend/internal/infrastructure/cache"
	"microblog-backend/pkg/container"
)

func newHealthRouter(c *container.Container) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/health", healthCheckHandler(c))
	return router
}

func getHealth(t *testing.T, router *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheckOK(t *testing.T) {
	router := newHealthRouter(&container.Container{
		Config: &config.Config{
			App:     config.AppConfig{Version: "1.0.0"},
			Storage: config.StorageConfig{DataDir: t.TempDir()},
		},
	})

	w := getHealth(t, router)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"registry":"memory"`)
}

func TestHealthCheckUnreachableRedisIs503(t *testing.T) {
	router := newHealthRouter(&container.Container{
		Config: &config.Config{
			App:     config.AppConfig{Version: "1.0.0"},
			Storage: config.StorageConfig{DataDir: t.TempDir()},
		},
		// Nothing listens on this port, so the probe fails.
		Redis: cache.NewRedisClient("127.0.0.1:1", "", 0),
	})

	w := getHealth(t, router)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestHealthCheckUnusableDataDirIs503(t *testing.T) {
	// A regular file where the data directory should be makes
	// MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	router := newHealthRouter(&container.Container{
		Config: &config.Config{
			App:     config.AppConfig{Version: "1.0.0"},
			Storage: config.StorageConfig{DataDir: filepath.Join(blocker, "data")},
		},
	})

	w := getHealth(t, router)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}
