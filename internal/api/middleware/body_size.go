package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ingredient-scanner/internal/pkg/common"
)

// BodySizeLimit 限制請求體大小的中間件。成分列表是純文字，再長的
// INCI 全成分也只有幾 KB；超過上限的請求不可能是正常的掃描輸入。
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 檢查 Content-Length
		if c.Request.ContentLength > maxSize {
			common.LogWarn("請求體超過上限",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("max_size", maxSize),
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":    "Request body too large",
				"code":     "PAYLOAD_TOO_LARGE",
				"max_size": maxSize,
			})
			return
		}

		// Content-Length 可以造假，仍需在讀取時硬性截斷
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)

		c.Next()
	}
}
