package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
type Config struct {
	Port        string
	Environment string
	GinMode     string

	// 参照データ（空の場合は埋め込みデータを使用）
	CropCatalogPath string
	WeatherDataPath string
	PricesDataPath  string

	Market MarketConfig

	AllowedOrigins []string
}

// MarketConfig 市場価格予測の設定
type MarketConfig struct {
	FluctuationLow  float64
	FluctuationHigh float64
	PriceDivisor    float64
	RandomSeed      int64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		CropCatalogPath: getEnv("CROP_CATALOG_PATH", ""),
		WeatherDataPath: getEnv("WEATHER_DATA_PATH", ""),
		PricesDataPath:  getEnv("PRICES_DATA_PATH", ""),
		Market: MarketConfig{
			FluctuationLow:  getEnvAsFloat("MARKET_FLUCTUATION_LOW", -0.08),
			FluctuationHigh: getEnvAsFloat("MARKET_FLUCTUATION_HIGH", 0.12),
			PriceDivisor:    getEnvAsFloat("MARKET_PRICE_DIVISOR", 75),
			RandomSeed:      getEnvAsInt64("MARKET_RANDOM_SEED", 0),
		},
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// AllowAllOrigins はワイルドカードCORSが設定されているかを返します。
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
