package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"workpanel-api/internal/metrics"
)

// setupTestRouter creates a test router with minimal configuration
func setupTestRouter(basePath string, m *metrics.Metrics) Config {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}

	return Config{
		DB:        db,
		Logger:    zap.NewNop(),
		JWTSecret: "test-secret",
		BasePath:  basePath,
		Metrics:   m,
	}
}

func TestMetricsEndpoint_RootPath(t *testing.T) {
	registry := prometheus.NewRegistry()
	logger := zap.NewNop()
	m := metrics.NewWithRegistry(registry, logger)

	cfg := setupTestRouter("", m)
	router := Setup(cfg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Expected status 200")

	contentType := w.Header().Get("Content-Type")
	assert.Contains(t, contentType, "text/plain", "Expected Content-Type to contain text/plain")

	body := w.Body.String()
	assert.NotEmpty(t, body, "Response body should not be empty")
	assert.Contains(t, body, "# HELP", "Response should contain Prometheus HELP comments")
	assert.Contains(t, body, "# TYPE", "Response should contain Prometheus TYPE comments")
	assert.Contains(t, body, "go_goroutines", "Response should contain Go runtime metrics")
}

func TestMetricsEndpoint_NoAuthentication(t *testing.T) {
	registry := prometheus.NewRegistry()
	logger := zap.NewNop()
	m := metrics.NewWithRegistry(registry, logger)

	cfg := setupTestRouter("", m)
	router := Setup(cfg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Metrics endpoint should be accessible without authentication")
}

func TestMetricsEndpoint_WithBasePath(t *testing.T) {
	registry := prometheus.NewRegistry()
	logger := zap.NewNop()
	m := metrics.NewWithRegistry(registry, logger)

	basePath := "/api/workpanels"
	cfg := setupTestRouter(basePath, m)
	router := Setup(cfg)

	t.Run("root path /metrics works", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "Root /metrics should work")
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("base path /api/workpanels/metrics works", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, basePath+"/metrics", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "Base path /api/workpanels/metrics should work")
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	})
}

func TestMetricsEndpoint_ContainsAllMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	logger := zap.NewNop()
	_ = metrics.NewWithRegistry(registry, logger)

	metricFamilies, err := registry.Gather()
	require.NoError(t, err)

	metricNames := make(map[string]bool)
	for _, mf := range metricFamilies {
		metricNames[mf.GetName()] = true
	}

	// Gauges and counters register at construction, histograms only after
	// the first observation
	expectedGaugeMetrics := []string{
		"workpanel_service_db_connections_open",
		"workpanel_service_db_connections_in_use",
		"workpanel_service_db_connections_idle",
		"workpanel_service_db_connections_max",
		"workpanel_service_workpanels_total",
		"workpanel_service_boards_total",
		"workpanel_service_tasks_total",
	}

	for _, metric := range expectedGaugeMetrics {
		assert.True(t, metricNames[metric], "Registry should contain metric: %s", metric)
	}

	expectedCounterMetrics := []string{
		"workpanel_service_db_connection_wait_total",
		"workpanel_service_db_connection_wait_duration_seconds_total",
		"workpanel_service_board_created_total",
		"workpanel_service_task_created_total",
		"workpanel_service_task_moved_total",
		"workpanel_service_group_reordered_total",
		"workpanel_service_reorder_conflicts_total",
	}

	for _, metric := range expectedCounterMetrics {
		assert.True(t, metricNames[metric], "Registry should contain metric: %s", metric)
	}
}

func TestMetricsEndpoint_PrometheusFormat(t *testing.T) {
	registry := prometheus.NewRegistry()
	logger := zap.NewNop()
	m := metrics.NewWithRegistry(registry, logger)

	cfg := setupTestRouter("", m)
	router := Setup(cfg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	lines := strings.Split(body, "\n")

	hasHelpLine := false
	hasTypeLine := false
	hasMetricLine := false

	for _, line := range lines {
		if strings.HasPrefix(line, "# HELP") {
			hasHelpLine = true
		}
		if strings.HasPrefix(line, "# TYPE") {
			hasTypeLine = true
		}
		if !strings.HasPrefix(line, "#") && strings.Contains(line, " ") && line != "" {
			hasMetricLine = true
		}
	}

	assert.True(t, hasHelpLine, "Should have at least one HELP line")
	assert.True(t, hasTypeLine, "Should have at least one TYPE line")
	assert.True(t, hasMetricLine, "Should have at least one metric line with value")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	registry := prometheus.NewRegistry()
	logger := zap.NewNop()
	m := metrics.NewWithRegistry(registry, logger)

	cfg := setupTestRouter("/api/workpanels", m)
	router := Setup(cfg)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/workpanels"},
		{http.MethodPost, "/api/workpanels/boards"},
		{http.MethodGet, "/api/workpanels/notifications"},
		{http.MethodPost, "/api/workpanels/tasks"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code,
			"%s %s should require authentication", p.method, p.path)
	}
}

func TestHealthEndpoints(t *testing.T) {
	registry := prometheus.NewRegistry()
	logger := zap.NewNop()
	m := metrics.NewWithRegistry(registry, logger)

	cfg := setupTestRouter("/api/workpanels", m)
	router := Setup(cfg)

	for _, path := range []string{"/health", "/api/workpanels/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "%s should respond without auth", path)
		assert.Contains(t, w.Body.String(), "ok")
	}
}
