package services

import "agrofusion-api/pkg/models"

// リスクラベル
const (
	RiskLow    = "Low Risk"
	RiskMedium = "Medium Risk"
	RiskHigh   = "High Risk"
)

// ClassifyRisk maps temperature and rainfall to a risk label. First match
// wins; absent values never escalate the risk.
func ClassifyRisk(temperature, rainfall *float64) string {
	if temperature != nil && *temperature > 36 {
		return RiskHigh
	}
	if rainfall != nil && *rainfall < 60 {
		return RiskMedium
	}
	return RiskLow
}

// AssessWeather scores a full weather record. Rainfall, temperature and
// humidity each add points; 4+ is high risk, 2-3 medium.
func AssessWeather(temperature, rainfall, humidity float64) models.WeatherAssessment {
	score := 0
	factors := []string{}

	switch {
	case rainfall < 50:
		score += 2
		factors = append(factors, "very low rainfall")
	case rainfall < 100:
		score++
		factors = append(factors, "low rainfall")
	}

	switch {
	case temperature > 40 || temperature < 15:
		score += 2
		factors = append(factors, "extreme temperature")
	case temperature > 35:
		score++
		factors = append(factors, "high temperature")
	}

	if humidity > 85 {
		score++
		factors = append(factors, "high humidity")
	}

	risk := RiskLow
	if score >= 4 {
		risk = RiskHigh
	} else if score >= 2 {
		risk = RiskMedium
	}

	return models.WeatherAssessment{Risk: risk, Score: score, Factors: factors}
}
