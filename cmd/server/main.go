package main

import (
	"log"

	config "agrofusion-api/configs"
	"agrofusion-api/pkg/server"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// 設定の読み込み
	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	// 参照データの読み込み（失敗した場合は起動しない）
	deps, err := server.LoadDependencies(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to load reference data: %v", err)
	}

	r := server.NewRouter(cfg, deps)

	log.Printf("Starting AgroFusion API server on :%s (%s)", cfg.Port, cfg.Environment)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
