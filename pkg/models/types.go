package models

// Crop はカタログ上の作物1件を表します。ロード後は変更されません。
type Crop struct {
	Name      string   `json:"name" yaml:"name"`
	Soils     []string `json:"soils" yaml:"soils"`
	Seasons   []string `json:"seasons" yaml:"seasons"`
	WaterNeed string   `json:"water_need" yaml:"water_need"`
	BaseYield float64  `json:"base_yield" yaml:"base_yield"` // quintal / land unit
	Price     float64  `json:"price" yaml:"price"`           // currency / quintal
}

// FarmRequest represents an incoming /plan request.
// Optional weather fields are pointers; nil means the caller did not send them.
type FarmRequest struct {
	Location          string   `json:"location" binding:"required"`
	LandSize          float64  `json:"land_size" binding:"required,gt=0"`
	SoilType          string   `json:"soil_type" binding:"required"`
	WaterAvailability string   `json:"water_availability" binding:"required"`
	Season            string   `json:"season" binding:"required"`
	PreviousCrop      *string  `json:"previous_crop,omitempty"`
	Budget            *string  `json:"budget,omitempty"`
	Temperature       *float64 `json:"temperature,omitempty"`
	Rainfall          *float64 `json:"rainfall,omitempty"`
	Humidity          *float64 `json:"humidity,omitempty"`
}

// WeatherSummary 気象サマリー
type WeatherSummary struct {
	AvgTemp   float64 `json:"avg_temp"`
	TotalRain float64 `json:"total_rain"`
}

// Alert 予防アラート
type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// MarketAdvice 市場価格の見通し
type MarketAdvice struct {
	TodayPrice     float64 `json:"today_price"`
	FuturePrice    float64 `json:"future_price"`
	Trend          string  `json:"trend"`
	Recommendation string  `json:"recommendation"`
}

// PlanResponse represents the response from the /plan API
type PlanResponse struct {
	RecommendedCrop          string         `json:"recommended_crop"`
	ExpectedYield            string         `json:"expected_yield"`
	EstimatedPricePerQuintal string         `json:"estimated_price_per_quintal"`
	ConfidenceScore          float64        `json:"confidence_score"`
	WeatherRisk              string         `json:"weather_risk"`
	WeatherSummary           WeatherSummary `json:"weather_summary"`
	PreventionAlerts         []Alert        `json:"prevention_alerts"`
	MarketAdvice             MarketAdvice   `json:"market_advice"`
	Advice                   string         `json:"advice"`
}

// ErrorResponse is the single error payload shape used by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WeatherRecord 地域・季節ごとの気象参照データ
type WeatherRecord struct {
	Location    string  `json:"location"`
	Season      string  `json:"season"`
	Temperature float64 `json:"temperature"`
	Rainfall    float64 `json:"rainfall"`
	Humidity    float64 `json:"humidity"`
}

// WeatherAssessment is the score-based risk breakdown for a weather record.
type WeatherAssessment struct {
	Risk    string   `json:"risk"`
	Score   int      `json:"score"`
	Factors []string `json:"factors"`
}

// PriceRecord 作物・市場ごとの価格参照データ
type PriceRecord struct {
	Crop   string  `json:"crop"`
	Market string  `json:"market"`
	Price  float64 `json:"price"`
}
