package services

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"agrofusion-api/pkg/models"
)

// 気象値が送られなかった場合のサマリー既定値
const (
	defaultAvgTemp   = 28.0
	defaultTotalRain = 120.0
)

// PlanService は作物推薦パイプライン全体を組み立てるサービスです。
type PlanService struct {
	catalog    *Catalog
	forecaster *MarketForecaster
}

// NewPlanService creates a PlanService over an immutable catalog.
func NewPlanService(catalog *Catalog, forecaster *MarketForecaster) *PlanService {
	return &PlanService{
		catalog:    catalog,
		forecaster: forecaster,
	}
}

// Catalog returns the catalog the service scores against.
func (ps *PlanService) Catalog() *Catalog {
	return ps.catalog
}

// Forecaster returns the market forecaster used for plans.
func (ps *PlanService) Forecaster() *MarketForecaster {
	return ps.forecaster
}

// GeneratePlan runs selection, yield, risk, alerts and market forecast for
// one request. The result is all-or-nothing.
func (ps *PlanService) GeneratePlan(ctx context.Context, req models.FarmRequest) (*models.PlanResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	crop, confidence, err := SelectCrop(ps.catalog, req.SoilType, req.Season, req.WaterAvailability)
	if err != nil {
		return nil, fmt.Errorf("crop selection failed: %w", err)
	}

	expectedYield := EstimateYield(crop.BaseYield, req.LandSize, req.Rainfall, req.WaterAvailability)
	risk := ClassifyRisk(req.Temperature, req.Rainfall)

	summary := models.WeatherSummary{AvgTemp: defaultAvgTemp, TotalRain: defaultTotalRain}
	if req.Temperature != nil {
		summary.AvgTemp = *req.Temperature
	}
	if req.Rainfall != nil {
		summary.TotalRain = *req.Rainfall
	}

	alerts := GenerateAlerts(crop.Name, req.Humidity, req.Rainfall)
	market := ps.forecaster.Forecast(crop.Price)

	return &models.PlanResponse{
		RecommendedCrop:          crop.Name,
		ExpectedYield:            formatQuantity(expectedYield) + " quintal",
		EstimatedPricePerQuintal: "₹" + strconv.FormatFloat(crop.Price, 'f', -1, 64),
		ConfidenceScore:          confidence,
		WeatherRisk:              risk,
		WeatherSummary:           summary,
		PreventionAlerts:         alerts,
		MarketAdvice:             market,
		Advice:                   fmt.Sprintf("Based on your soil and water conditions, %s is recommended for your farm.", crop.Name),
	}, nil
}

// formatQuantity prints whole numbers with one decimal ("77.0") and keeps
// the shortest representation otherwise ("80.85").
func formatQuantity(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v == math.Trunc(v) {
		s += ".0"
	}
	return s
}
