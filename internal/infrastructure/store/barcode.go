package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ingredient-scanner/internal/infrastructure/config"
	"ingredient-scanner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// BarcodeClient 外部條碼查詢客戶端（Open Beauty Facts 風格 API）
type BarcodeClient struct {
	http   *resty.Client
	config *config.BarcodeConfig
}

// NewBarcodeClient 創建條碼查詢客戶端
func NewBarcodeClient(cfg *config.BarcodeConfig) *BarcodeClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &BarcodeClient{
		http:   client,
		config: cfg,
	}
}

// barcodeResponse 條碼查詢回應
type barcodeResponse struct {
	Status  int `json:"status"`
	Product struct {
		IngredientsText string `json:"ingredients_text"`
	} `json:"product"`
}

// IngredientsByBarcode 由條碼解析成分原文。
// 查詢關閉、查無產品或產品沒有成分資料時回傳空字串，不是錯誤。
func (c *BarcodeClient) IngredientsByBarcode(ctx context.Context, barcode string) (string, error) {
	if !c.config.Enabled {
		common.LogDebug("條碼查詢已停用", zap.String("barcode", barcode))
		return "", nil
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("fields", "ingredients_text").
		Get(fmt.Sprintf("/api/v2/product/%s", barcode))
	common.LogStoreCall("barcode.lookup", time.Since(start), err)

	if err != nil {
		return "", fmt.Errorf("failed to look up barcode: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("barcode lookup returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result barcodeResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse barcode response: %w", err)
	}
	if result.Status != 1 {
		return "", nil
	}
	return result.Product.IngredientsText, nil
}
