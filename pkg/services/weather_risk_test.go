package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRisk(t *testing.T) {
	testCases := []struct {
		name     string
		temp     *float64
		rain     *float64
		expected string
	}{
		{"hot, no rain reading", float(40), nil, RiskHigh},
		{"dry, no temperature reading", nil, float(40), RiskMedium},
		{"mild", float(20), float(200), RiskLow},
		{"heat wins over drought", float(38), float(10), RiskHigh},
		{"36 is not above threshold", float(36), float(200), RiskLow},
		{"60 is not below threshold", float(30), float(60), RiskLow},
		{"zero rain is a reading", float(30), float(0), RiskMedium},
		{"nothing reported", nil, nil, RiskLow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyRisk(tc.temp, tc.rain))
		})
	}
}

func TestAssessWeather(t *testing.T) {
	testCases := []struct {
		name          string
		temp, rain, h float64
		risk          string
		score         int
	}{
		{"static forecast", 30, 100, 70, RiskLow, 0},
		{"slightly dry", 30, 90, 70, RiskLow, 1},
		{"very dry", 30, 40, 70, RiskMedium, 2},
		{"hot and humid", 37, 120, 90, RiskMedium, 2},
		{"extreme heat and drought", 42, 20, 50, RiskHigh, 4},
		{"cold, dry and humid", 10, 20, 90, RiskHigh, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := AssessWeather(tc.temp, tc.rain, tc.h)
			assert.Equal(t, tc.risk, got.Risk)
			assert.Equal(t, tc.score, got.Score)
			assert.NotNil(t, got.Factors)
		})
	}
}
