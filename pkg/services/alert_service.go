package services

import "agrofusion-api/pkg/models"

// alertRule is a crop-specific prevention check.
type alertRule struct {
	crop  string
	fires func(humidity, rainfall *float64) bool
	alert models.Alert
}

var alertRules = []alertRule{
	{
		crop: "Rice",
		fires: func(humidity, _ *float64) bool {
			return humidity != nil && *humidity > 75
		},
		alert: models.Alert{
			Type:    "Fungal Risk",
			Message: "High chance of fungal infection in Rice",
			Action:  "Spray neem oil or recommended fungicide",
		},
	},
	{
		crop: "Groundnut",
		fires: func(_, rainfall *float64) bool {
			return rainfall != nil && *rainfall > 500
		},
		alert: models.Alert{
			Type:    "Rot Risk",
			Message: "Excess moisture may cause pod rot",
			Action:  "Improve field drainage",
		},
	},
}

// GenerateAlerts returns the prevention alerts for a crop. When no rule fires
// the result is an empty, non-nil slice; there is no "safe" placeholder alert.
func GenerateAlerts(cropName string, humidity, rainfall *float64) []models.Alert {
	alerts := []models.Alert{}
	for _, rule := range alertRules {
		if rule.crop == cropName && rule.fires(humidity, rainfall) {
			alerts = append(alerts, rule.alert)
		}
	}
	return alerts
}
