package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck は外部のヘルスチェッカー（例: ロードバランサー）からのリクエストに応答します。
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Home はルートの稼働確認メッセージを返します。
func Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "AgroFusion backend running"})
}

// Hello はフロントエンドからの疎通確認用です。
func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from backend"})
}
