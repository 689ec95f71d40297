package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ingredient-scanner/internal/pkg/common"
)

// ProductRepository 產品目錄查詢，將產品 ID 解析為成分原文
type ProductRepository struct {
	client *Client
}

// NewProductRepository 創建產品目錄存取
func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{client: client}
}

// productRow 產品表中掃描所需的欄位
type productRow struct {
	IngredientsText string `json:"ingredients_text"`
}

// IngredientsByProductID 取得產品的成分原文。
// 查無產品或產品沒有成分資料時回傳空字串，不是錯誤。
func (r *ProductRepository) IngredientsByProductID(ctx context.Context, productID string) (string, error) {
	start := time.Now()
	resp, err := r.client.http.R().
		SetContext(ctx).
		SetQueryParam("select", "ingredients_text").
		SetQueryParam("id", "eq."+productID).
		SetQueryParam("limit", "1").
		Get("/rest/v1/products")
	common.LogStoreCall("products.ingredients", time.Since(start), err)

	if err != nil {
		return "", fmt.Errorf("failed to fetch product: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("product query returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var rows []productRow
	if err := common.ParseJSONBytes(resp.Body(), &rows); err != nil {
		return "", fmt.Errorf("failed to parse product: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].IngredientsText, nil
}
