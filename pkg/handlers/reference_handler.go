package handlers

import (
	"fmt"
	"net/http"

	"agrofusion-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler exposes the static weather and market reference tables.
type ReferenceHandler struct {
	weather    *services.WeatherTable
	prices     *services.PriceTable
	forecaster *services.MarketForecaster
}

// NewReferenceHandler creates a ReferenceHandler.
func NewReferenceHandler(weather *services.WeatherTable, prices *services.PriceTable, forecaster *services.MarketForecaster) *ReferenceHandler {
	return &ReferenceHandler{weather: weather, prices: prices, forecaster: forecaster}
}

// GetWeather 地域・季節の気象参照データとリスク評価を返す
func (rh *ReferenceHandler) GetWeather(c *gin.Context) {
	location := c.Query("location")
	season := c.Query("season")
	if location == "" || season == "" {
		respondError(c, http.StatusBadRequest, fmt.Errorf("location and season are required"))
		return
	}

	rec, found := rh.weather.Get(location, season)
	source := "table"
	if !found {
		source = "default"
	}

	c.JSON(http.StatusOK, gin.H{
		"weather":    rec,
		"source":     source,
		"assessment": services.AssessWeather(rec.Temperature, rec.Rainfall, rec.Humidity),
	})
}

// GetMarketPrice 作物・市場の参照価格と価格見通しを返す
func (rh *ReferenceHandler) GetMarketPrice(c *gin.Context) {
	crop := c.Query("crop")
	if crop == "" {
		respondError(c, http.StatusBadRequest, fmt.Errorf("crop is required"))
		return
	}
	market := c.Query("market")

	rec, ok := rh.prices.Lookup(crop, market)
	if !ok {
		err := fmt.Errorf("no market data available for %s in %s: %w", crop, market, services.ErrNotFound)
		if market == "" {
			err = fmt.Errorf("no market data available for %s: %w", crop, services.ErrNotFound)
		}
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"price":    rec,
		"forecast": rh.forecaster.Forecast(rec.Price),
	})
}
