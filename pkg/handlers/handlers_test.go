package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agrofusion-api/pkg/models"
	"agrofusion-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := services.LoadCatalog("")
	require.NoError(t, err)
	weather, err := services.LoadWeatherTable("")
	require.NoError(t, err)
	prices, err := services.LoadPriceTable("")
	require.NoError(t, err)
	forecaster := services.NewMarketForecaster(services.FixedSource(0), -0.08, 0.12, 75)

	planHandler := NewPlanHandler(services.NewPlanService(catalog, forecaster))
	referenceHandler := NewReferenceHandler(weather, prices, forecaster)

	router := gin.New()
	router.Use(gin.CustomRecovery(RecoveryHandler))
	router.GET("/health", HealthCheck)
	router.GET("/", Home)
	router.GET("/test", Hello)
	router.POST("/plan", planHandler.GeneratePlan)
	router.GET("/crops", planHandler.ListCrops)
	router.GET("/weather", referenceHandler.GetWeather)
	router.GET("/market/price", referenceHandler.GetMarketPrice)
	router.GET("/panic", func(c *gin.Context) { panic("boom") })
	return router
}

func doRequest(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := doRequest(newTestRouter(t), "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLivenessMessages(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, "GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AgroFusion backend running")

	w = doRequest(router, "GET", "/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello from backend")
}

func TestGeneratePlanEndpoint(t *testing.T) {
	body := []byte(`{"location":"X","land_size":2,"soil_type":"loam","water_availability":"high","season":"Kharif","rainfall":100,"temperature":30,"humidity":60}`)

	w := doRequest(newTestRouter(t), "POST", "/plan", body)
	require.Equal(t, http.StatusOK, w.Code)

	var plan models.PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, "Rice", plan.RecommendedCrop)
	assert.Equal(t, 1.0, plan.ConfidenceScore)
	assert.Equal(t, "77.0 quintal", plan.ExpectedYield)
	assert.Equal(t, "Low Risk", plan.WeatherRisk)
	assert.Equal(t, "stable", plan.MarketAdvice.Trend)

	// 空のアラートは null ではなく [] で返す
	assert.Contains(t, w.Body.String(), `"prevention_alerts":[]`)
}

func TestGeneratePlanEndpointFungalAlert(t *testing.T) {
	body := []byte(`{"location":"X","land_size":1,"soil_type":"clay","water_availability":"high","season":"Kharif","humidity":80,"budget":"50000","previous_crop":"Wheat"}`)

	w := doRequest(newTestRouter(t), "POST", "/plan", body)
	require.Equal(t, http.StatusOK, w.Code)

	var plan models.PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	require.Len(t, plan.PreventionAlerts, 1)
	assert.Equal(t, "Fungal Risk", plan.PreventionAlerts[0].Type)
	assert.Equal(t, models.WeatherSummary{AvgTemp: 28, TotalRain: 120}, plan.WeatherSummary)
}

func TestGeneratePlanEndpointValidation(t *testing.T) {
	testCases := map[string]string{
		"missing season":   `{"location":"X","land_size":2,"soil_type":"loam","water_availability":"high"}`,
		"missing location": `{"land_size":2,"soil_type":"loam","water_availability":"high","season":"Kharif"}`,
		"zero land size":   `{"location":"X","land_size":0,"soil_type":"loam","water_availability":"high","season":"Kharif"}`,
		"negative land":    `{"location":"X","land_size":-1,"soil_type":"loam","water_availability":"high","season":"Kharif"}`,
		"wrong type":       `{"location":"X","land_size":"big","soil_type":"loam","water_availability":"high","season":"Kharif"}`,
		"malformed json":   `{"location":`,
		"rainfall as text": `{"location":"X","land_size":2,"soil_type":"loam","water_availability":"high","season":"Kharif","rainfall":"lots"}`,
	}

	router := newTestRouter(t)
	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			w := doRequest(router, "POST", "/plan", []byte(body))
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestGeneratePlanEndpointEmptyCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	forecaster := services.NewMarketForecaster(services.FixedSource(0), -0.08, 0.12, 75)
	handler := NewPlanHandler(services.NewPlanService(&services.Catalog{}, forecaster))

	router := gin.New()
	router.POST("/plan", handler.GeneratePlan)

	body := []byte(`{"location":"X","land_size":2,"soil_type":"loam","water_availability":"high","season":"Kharif"}`)
	w := doRequest(router, "POST", "/plan", body)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "crop catalog is empty")
}

func TestListCrops(t *testing.T) {
	w := doRequest(newTestRouter(t), "GET", "/crops", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":3`)
	assert.Contains(t, w.Body.String(), "Groundnut")
}

func TestGetWeather(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, "GET", "/weather?location=Jaipur&season=Rabi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"table"`)
	assert.Contains(t, w.Body.String(), `"risk":"Medium Risk"`)

	w = doRequest(router, "GET", "/weather?location=Nowhere&season=Rabi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"default"`)

	w = doRequest(router, "GET", "/weather?location=Pune", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMarketPrice(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, "GET", "/market/price?crop=Maize&market=Nagpur", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price":1825`)
	assert.Contains(t, w.Body.String(), `"trend":"stable"`)

	w = doRequest(router, "GET", "/market/price?crop=Saffron", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no market data available for Saffron")

	w = doRequest(router, "GET", "/market/price", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecoveryHandler(t *testing.T) {
	w := doRequest(newTestRouter(t), "GET", "/panic", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error: boom"}`, w.Body.String())
}
