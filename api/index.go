package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	config "agrofusion-api/configs"
	"agrofusion-api/pkg/models"
	"agrofusion-api/pkg/server"

	"github.com/gin-gonic/gin"
)

var (
	app      *gin.Engine
	setupErr error
	once     sync.Once
)

// setupApp はGinアプリケーションを初期化します。
// サーバーレス環境では、リクエストごとに初期化が走らないようsync.Onceで一度だけ実行します。
func setupApp() (*gin.Engine, error) {
	once.Do(func() {
		// .envファイルはVercelの環境変数設定から読み込まれるため、ここではgodotenvを呼び出しません。
		cfg := config.LoadConfig()
		gin.SetMode(gin.ReleaseMode)

		deps, err := server.LoadDependencies(cfg)
		if err != nil {
			log.Printf("FATAL: Failed to load reference data in serverless function: %v", err)
			setupErr = err
			return
		}

		app = server.NewRouter(cfg, deps)
		log.Printf("🟢 [setupApp] Gin application initialized")
	})
	return app, setupErr
}

// Handler はVercelからのすべてのリクエストを処理するエントリーポイントです。
func Handler(w http.ResponseWriter, r *http.Request) {
	engine, err := setupApp()
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		body, _ := json.Marshal(models.ErrorResponse{Error: err.Error()})
		w.Write(body)
		return
	}
	engine.ServeHTTP(w, r)
}
