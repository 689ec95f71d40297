package scan

import (
	"errors"
	"net/http"

	scanService "ingredient-scanner/internal/core/scan"
	"ingredient-scanner/internal/infrastructure/store"
	"ingredient-scanner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalyzeRequest 掃描分析請求
type AnalyzeRequest struct {
	InputType       string `json:"input_type" binding:"required"` // paste / product / barcode
	IngredientsText string `json:"ingredients_text,omitempty"`
	ProductID       string `json:"product_id,omitempty"`
	Barcode         string `json:"barcode,omitempty"`
	UserID          string `json:"user_id,omitempty"`
}

// AnalyzeResponse 掃描分析回應
type AnalyzeResponse struct {
	ScanID string                `json:"scan_id"`
	Result common.AnalysisResult `json:"result"`
}

// Handler 掃描處理程序
type Handler struct {
	scanService *scanService.Service
	triggerRepo *store.TriggerRepository
}

// NewHandler 創建掃描處理程序
func NewHandler(svc *scanService.Service, triggerRepo *store.TriggerRepository) *Handler {
	return &Handler{
		scanService: svc,
		triggerRepo: triggerRepo,
	}
}

// HandleAnalyze 執行成分掃描分析
func (h *Handler) HandleAnalyze(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理掃描請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if !common.ValidInputType(req.InputType) {
		common.LogWarn("不支援的輸入類型",
			zap.String("input_type", req.InputType),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unsupported input type",
			"code":  common.ErrInvalidInputType.Code,
		})
		return
	}

	record, err := h.scanService.AnalyzeScan(c.Request.Context(), scanService.AnalyzeRequest{
		InputType:       req.InputType,
		IngredientsText: req.IngredientsText,
		ProductID:       req.ProductID,
		Barcode:         req.Barcode,
		UserID:          req.UserID,
	})
	if err != nil {
		common.LogError("掃描分析失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		switch {
		case errors.Is(err, common.ErrTriggerFetchFailed):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Analysis failed, please try again",
				"code":  common.ErrTriggerFetchFailed.Code,
			})
		case errors.Is(err, common.ErrScanPersistFailed):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Analysis failed, please try again",
				"code":  common.ErrScanPersistFailed.Code,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed, please try again"})
		}
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		ScanID: record.ID,
		Result: record.Result,
	})
}

// HandleGetScan 讀取持久化的掃描紀錄
func (h *Handler) HandleGetScan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scan id is required"})
		return
	}

	record, err := h.scanService.GetScan(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrScanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Scan not found",
				"code":  common.ErrScanNotFound.Code,
			})
			return
		}
		common.LogError("掃描紀錄讀取失敗",
			zap.Error(err),
			zap.String("scan_id", id),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load scan"})
		return
	}

	c.JSON(http.StatusOK, record)
}
