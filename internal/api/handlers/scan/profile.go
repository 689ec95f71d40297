package scan

import (
	"net/http"

	"ingredient-scanner/internal/core/profile"
	"ingredient-scanner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OverlayRequest 個人化風險詮釋請求
type OverlayRequest struct {
	Result  common.AnalysisResult `json:"result" binding:"required"`
	Profile common.SkinProfile    `json:"profile" binding:"required"`
}

// OverlayResponse 個人化風險詮釋回應
type OverlayResponse struct {
	Overlay                  common.ProfileOverlay `json:"overlay"`
	HasRelevantSensitivities bool                  `json:"has_relevant_sensitivities"`
}

// GoalRequest 改善目標推薦請求，膚況可省略
type GoalRequest struct {
	Result  common.AnalysisResult `json:"result" binding:"required"`
	Profile *common.SkinProfile   `json:"profile,omitempty"`
}

// GoalResponse 改善目標推薦回應，沒有推薦時 recommendation 為 null
type GoalResponse struct {
	Recommendation *common.GoalRecommendation `json:"recommendation"`
	Ranked         []common.GoalScore         `json:"ranked"`
}

// HandleOverlay 依膚況產生個人化警語、調整後分數與建議行動
func (h *Handler) HandleOverlay(c *gin.Context) {
	var req OverlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	overlay := profile.BuildOverlay(req.Result, req.Profile)

	common.LogInfo("個人化詮釋完成",
		zap.Int("warning_count", len(overlay.PersonalWarnings)),
		zap.Bool("score_adjusted", overlay.AdjustedRiskScore != nil),
	)

	c.JSON(http.StatusOK, OverlayResponse{
		Overlay:                  overlay,
		HasRelevantSensitivities: profile.HasRelevantSensitivities(req.Result, req.Profile),
	})
}

// HandleGoal 由掃描旗標與可選膚況推導改善目標
func (h *Handler) HandleGoal(c *gin.Context) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	recommendation := profile.RecommendGoal(req.Result, req.Profile)
	ranked := profile.RankedGoals(req.Result, req.Profile)

	c.JSON(http.StatusOK, GoalResponse{
		Recommendation: recommendation,
		Ranked:         ranked,
	})
}
