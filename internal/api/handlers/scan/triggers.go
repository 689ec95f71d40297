package scan

import (
	"errors"
	"net/http"

	"ingredient-scanner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleListTriggers 列出完整的刺激成分參考資料
func (h *Handler) HandleListTriggers(c *gin.Context) {
	triggers, err := h.triggerRepo.ListAll(c.Request.Context())
	if err != nil {
		common.LogError("刺激成分列表讀取失敗", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load trigger ingredients",
			"code":  common.ErrTriggerFetchFailed.Code,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"triggers": triggers,
		"count":    len(triggers),
	})
}

// HandleGetTrigger 以 slug 讀取單一刺激成分（成分詳情頁）
func (h *Handler) HandleGetTrigger(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trigger slug is required"})
		return
	}

	trigger, err := h.triggerRepo.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, common.ErrTriggerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Trigger ingredient not found",
				"code":  common.ErrTriggerNotFound.Code,
			})
			return
		}
		common.LogError("刺激成分讀取失敗",
			zap.Error(err),
			zap.String("slug", slug),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load trigger ingredient",
			"code":  common.ErrTriggerFetchFailed.Code,
		})
		return
	}

	c.JSON(http.StatusOK, trigger)
}
