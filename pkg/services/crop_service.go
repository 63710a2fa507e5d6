package services

import (
	"math"
	"strings"

	"agrofusion-api/pkg/models"
)

// 水の利用可能量
const (
	WaterLow    = "low"
	WaterMedium = "medium"
	WaterHigh   = "high"
)

// マッチングの重み（合計 1.0）
const (
	soilWeight   = 0.4
	seasonWeight = 0.3
	waterWeight  = 0.3
)

// ScoreCrop returns the additive match score of one crop against the request
// attributes. Soil is compared case-insensitively, season and water exactly.
func ScoreCrop(crop models.Crop, soil, season, water string) float64 {
	score := 0.0
	if containsFold(crop.Soils, soil) {
		score += soilWeight
	}
	if contains(crop.Seasons, season) {
		score += seasonWeight
	}
	if water == crop.WaterNeed {
		score += waterWeight
	}
	return score
}

// SelectCrop scans the catalog and returns the highest-scoring crop together
// with its score rounded to 2 decimals. Ties keep the earlier catalog entry.
func SelectCrop(catalog *Catalog, soil, season, water string) (models.Crop, float64, error) {
	if catalog.Len() == 0 {
		return models.Crop{}, 0, ErrEmptyCatalog
	}

	best := -1
	bestScore := -1.0
	for i, crop := range catalog.crops {
		if s := ScoreCrop(crop, soil, season, water); s > bestScore {
			best = i
			bestScore = s
		}
	}
	return catalog.crops[best], round2(bestScore), nil
}

// EstimateYield returns baseYield × landSize × multiplier, rounded to 2
// decimals. The multiplier starts at 1.0 and is adjusted by rainfall band and
// water availability; the result is clamped at zero.
func EstimateYield(baseYield, landSize float64, rainfall *float64, water string) float64 {
	multiplier := 1.0

	if rainfall != nil {
		if *rainfall < 80 {
			multiplier -= 0.2
		} else if *rainfall > 400 {
			multiplier += 0.1
		}
	}

	switch water {
	case WaterHigh:
		multiplier += 0.1
	case WaterLow:
		multiplier -= 0.15
	}

	y := round2(baseYield * landSize * multiplier)
	if y < 0 {
		return 0
	}
	return y
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
