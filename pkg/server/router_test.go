package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	config "agrofusion-api/configs"
	"agrofusion-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "8080",
		Environment:    "test",
		GinMode:        gin.TestMode,
		Market:         config.MarketConfig{FluctuationLow: -0.08, FluctuationHigh: 0.12, PriceDivisor: 75, RandomSeed: 1},
		AllowedOrigins: []string{"*"},
	}
}

func TestLoadDependenciesEmbedded(t *testing.T) {
	deps, err := LoadDependencies(testConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, deps.Catalog.Len())
	assert.Greater(t, deps.Weather.Len(), 0)
	assert.Greater(t, deps.Prices.Len(), 0)
	assert.NotNil(t, deps.Forecaster)
	assert.NotNil(t, deps.Monitoring)
}

func TestLoadDependenciesFailsOnBadCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.CropCatalogPath = filepath.Join(t.TempDir(), "missing.csv")

	_, err := LoadDependencies(cfg)
	assert.ErrorIs(t, err, services.ErrConfiguration)

	cfg = testConfig()
	cfg.PricesDataPath = filepath.Join(t.TempDir(), "missing.csv")
	_, err = LoadDependencies(cfg)
	assert.ErrorIs(t, err, services.ErrConfiguration)
}

func TestLoadDependenciesFromFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crops.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,soil,season,water_need,base_yield,price\nWheat,loam,Rabi,medium,30,1700\n"), 0o644))

	cfg := testConfig()
	cfg.CropCatalogPath = path
	deps, err := LoadDependencies(cfg)
	require.NoError(t, err)
	assert.Equal(t, path, deps.Catalog.Source())
	assert.Equal(t, 1, deps.Catalog.Len())
}

func TestRouterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps, err := LoadDependencies(testConfig())
	require.NoError(t, err)
	r := NewRouter(testConfig(), deps)

	plan := []byte(`{"location":"X","land_size":2,"soil_type":"loam","water_availability":"high","season":"Kharif","rainfall":100,"temperature":30,"humidity":60}`)

	testCases := []struct {
		method string
		path   string
		body   []byte
		status int
	}{
		{"GET", "/", nil, http.StatusOK},
		{"GET", "/test", nil, http.StatusOK},
		{"GET", "/health", nil, http.StatusOK},
		{"POST", "/plan", plan, http.StatusOK},
		{"POST", "/api/v1/plan", plan, http.StatusOK},
		{"POST", "/plan", []byte(`{}`), http.StatusBadRequest},
		{"GET", "/api/v1/crops", nil, http.StatusOK},
		{"GET", "/api/v1/weather?location=Pune&season=Kharif", nil, http.StatusOK},
		{"GET", "/api/v1/market/price?crop=Rice", nil, http.StatusOK},
		{"GET", "/api/v1/monitoring/logs", nil, http.StatusOK},
	}

	for _, tc := range testCases {
		req, _ := http.NewRequest(tc.method, tc.path, bytes.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
		assert.NotEmpty(t, w.Header().Get(services.RequestIDHeader), "%s %s", tc.method, tc.path)
	}

	// モニタリングにはplanリクエストが記録されている
	data := deps.Monitoring.GetDashboardData(1)
	assert.Equal(t, 2, data.Endpoints["/plan"])
}

func TestRouterRecordsRecoveredPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps, err := LoadDependencies(testConfig())
	require.NoError(t, err)

	r := NewRouter(testConfig(), deps)
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	req, _ := http.NewRequest("GET", "/panic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
	assert.NotEmpty(t, w.Header().Get(services.RequestIDHeader))

	data := deps.Monitoring.GetDashboardData(1)
	assert.Equal(t, 1, data.Endpoints["/panic"])
	require.Len(t, data.RecentErrors, 1)
	assert.Equal(t, http.StatusInternalServerError, data.RecentErrors[0].StatusCode)
	assert.Equal(t, "/panic", data.RecentErrors[0].Path)
}

func TestRouterCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps, err := LoadDependencies(testConfig())
	require.NoError(t, err)

	r := NewRouter(testConfig(), deps)
	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://farm.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	cfg := testConfig()
	cfg.AllowedOrigins = []string{"https://app.example"}
	r = NewRouter(cfg, deps)

	req, _ = http.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://app.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
