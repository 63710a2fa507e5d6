package services

import (
	"math/rand"
	"sync"
	"time"

	"agrofusion-api/pkg/models"
)

// 価格トレンド
const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"
)

// FluctuationSource draws a fractional price change in [low, high].
type FluctuationSource interface {
	Fluctuation(low, high float64) float64
}

// RandomSource is a FluctuationSource backed by math/rand. *rand.Rand is not
// safe for concurrent use, so draws are serialized.
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource creates a RandomSource. A zero seed seeds from the clock.
func NewRandomSource(seed int64) *RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

// Fluctuation draws uniformly from [low, high].
func (s *RandomSource) Fluctuation(low, high float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return low + s.rng.Float64()*(high-low)
}

// FixedSource always returns the same change, clamped to the band.
type FixedSource float64

// Fluctuation implements FluctuationSource.
func (f FixedSource) Fluctuation(low, high float64) float64 {
	v := float64(f)
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// MarketForecaster 市場価格の見通しを生成するサービス
type MarketForecaster struct {
	source  FluctuationSource
	low     float64
	high    float64
	divisor float64
}

// NewMarketForecaster creates a forecaster drawing changes from [low, high].
// Reported prices are divided by divisor; a non-positive divisor means 1.
func NewMarketForecaster(source FluctuationSource, low, high, divisor float64) *MarketForecaster {
	if low > high {
		low, high = high, low
	}
	if divisor <= 0 {
		divisor = 1
	}
	return &MarketForecaster{source: source, low: low, high: high, divisor: divisor}
}

// Forecast perturbs todayPrice and classifies the resulting trend. The output
// is advisory text only; nothing else in the plan depends on it.
func (m *MarketForecaster) Forecast(todayPrice float64) models.MarketAdvice {
	changePct := m.source.Fluctuation(m.low, m.high)
	futurePrice := round2(todayPrice * (1 + changePct))

	var trend, rec string
	switch {
	case futurePrice > todayPrice:
		trend, rec = TrendRising, "Hold for better price"
	case futurePrice < todayPrice:
		trend, rec = TrendFalling, "Consider selling soon"
	default:
		trend, rec = TrendStable, "Market stable"
	}

	return models.MarketAdvice{
		TodayPrice:     round2(todayPrice / m.divisor),
		FuturePrice:    round2(futurePrice / m.divisor),
		Trend:          trend,
		Recommendation: rec,
	}
}
