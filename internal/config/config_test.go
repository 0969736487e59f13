package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "") // registers the restore
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "PORT", "DB_SSLMODE", "MAX_ITERATIONS", "JWT_TTL_HOURS", "LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, 1_000_000, cfg.MaxIterations)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL())
	assert.Same(t, cfg, Cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "sim")
	t.Setenv("DB_NAME", "odds")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("MAX_ITERATIONS", "5000")
	t.Setenv("JWT_TTL_HOURS", "2")
	unsetenv(t, "DB_SSLMODE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5000, cfg.MaxIterations)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL())
	assert.Equal(t, "host=db user=sim password=pw dbname=odds port=5432 sslmode=disable", cfg.DSN())
}

func TestLoad_RejectsBadLimits(t *testing.T) {
	t.Setenv("MAX_ITERATIONS", "-1")
	_, err := Load()
	assert.Error(t, err)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(&AppConfig{FrontendURL: "https://odds.example, https://admin.example"}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://admin.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://admin.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSMiddleware_PreflightWriteMethods(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(&AppConfig{FrontendURL: "https://odds.example"}))
	r.DELETE("/simulations/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(http.MethodOptions, "/simulations/1", nil)
		req.Header.Set("Origin", "https://odds.example")
		req.Header.Set("Access-Control-Request-Method", method)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code, method)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), method)
	}
}
