// Package server wires configuration, reference data, services and handlers
// into a gin engine. Both cmd/server and the serverless entry in api/ use it.
package server

import (
	"fmt"
	"log"

	config "agrofusion-api/configs"
	"agrofusion-api/pkg/handlers"
	"agrofusion-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies are the long-lived, read-only objects shared by all requests.
type Dependencies struct {
	Catalog    *services.Catalog
	Weather    *services.WeatherTable
	Prices     *services.PriceTable
	Forecaster *services.MarketForecaster
	Monitoring *services.MonitoringService
}

// LoadDependencies loads every static table named by cfg. Any failure is a
// configuration error and should stop startup.
func LoadDependencies(cfg *config.Config) (*Dependencies, error) {
	catalog, err := services.LoadCatalog(cfg.CropCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("crop catalog: %w", err)
	}
	log.Printf("🌾 [setup] Loaded %d crops from %s", catalog.Len(), catalog.Source())

	weather, err := services.LoadWeatherTable(cfg.WeatherDataPath)
	if err != nil {
		return nil, fmt.Errorf("weather table: %w", err)
	}
	prices, err := services.LoadPriceTable(cfg.PricesDataPath)
	if err != nil {
		return nil, fmt.Errorf("price table: %w", err)
	}
	log.Printf("🌾 [setup] Loaded %d weather records and %d price records", weather.Len(), prices.Len())

	forecaster := services.NewMarketForecaster(
		services.NewRandomSource(cfg.Market.RandomSeed),
		cfg.Market.FluctuationLow,
		cfg.Market.FluctuationHigh,
		cfg.Market.PriceDivisor,
	)

	return &Dependencies{
		Catalog:    catalog,
		Weather:    weather,
		Prices:     prices,
		Forecaster: forecaster,
		Monitoring: services.NewMonitoringService(),
	}, nil
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())

	// ミドルウェアの登録
	// recoveryはモニタリングの内側に置き、panicの500も記録されるようにする
	r.Use(services.RequestIDMiddleware())
	r.Use(deps.Monitoring.LoggingMiddleware())
	r.Use(gin.CustomRecovery(handlers.RecoveryHandler))
	r.Use(cors.New(corsConfig(cfg)))

	planHandler := handlers.NewPlanHandler(services.NewPlanService(deps.Catalog, deps.Forecaster))
	referenceHandler := handlers.NewReferenceHandler(deps.Weather, deps.Prices, deps.Forecaster)
	monitoringHandler := handlers.NewMonitoringHandler(deps.Monitoring)

	r.GET("/", handlers.Home)
	r.GET("/test", handlers.Hello)
	r.GET("/health", handlers.HealthCheck)
	r.POST("/plan", planHandler.GeneratePlan)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/plan", planHandler.GeneratePlan)
		v1.GET("/crops", planHandler.ListCrops)
		v1.GET("/weather", referenceHandler.GetWeather)
		v1.GET("/market/price", referenceHandler.GetMarketPrice)

		// モニタリングAPI
		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}
	}

	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	c.AllowHeaders = append(c.AllowHeaders, services.RequestIDHeader)
	c.ExposeHeaders = []string{services.RequestIDHeader}
	return c
}
