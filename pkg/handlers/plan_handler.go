package handlers

import (
	"errors"
	"net/http"

	"agrofusion-api/pkg/models"
	"agrofusion-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// PlanHandler 作物計画ハンドラー
type PlanHandler struct {
	planService *services.PlanService
}

// NewPlanHandler 新しい作物計画ハンドラーを作成
func NewPlanHandler(planService *services.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// GeneratePlan は農地情報から作物計画を生成します。
func (ph *PlanHandler) GeneratePlan(c *gin.Context) {
	var request models.FarmRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, errors.New("invalid request: "+err.Error()))
		return
	}

	plan, err := ph.planService.GeneratePlan(c.Request.Context(), request)
	if err != nil {
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ListCrops はカタログの作物一覧を返します。
func (ph *PlanHandler) ListCrops(c *gin.Context) {
	catalog := ph.planService.Catalog()
	crops := catalog.Crops()
	c.JSON(http.StatusOK, gin.H{
		"source": catalog.Source(),
		"crops":  crops,
		"count":  len(crops),
	})
}
