package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ingredient-scanner/internal/pkg/common"
)

// TriggerRepository 刺激成分參考資料表的存取
type TriggerRepository struct {
	client *Client
}

// NewTriggerRepository 創建刺激成分資料存取
func NewTriggerRepository(client *Client) *TriggerRepository {
	return &TriggerRepository{client: client}
}

// ListAll 取得完整的刺激成分參考資料。引擎在記憶體內過濾，
// 不依賴服務端篩選。
func (r *TriggerRepository) ListAll(ctx context.Context) ([]common.TriggerIngredient, error) {
	start := time.Now()
	resp, err := r.client.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		Get("/rest/v1/trigger_ingredients")
	common.LogStoreCall("trigger_ingredients.list", time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch trigger ingredients: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("trigger ingredient query returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var triggers []common.TriggerIngredient
	if err := common.ParseJSONBytes(resp.Body(), &triggers); err != nil {
		return nil, fmt.Errorf("failed to parse trigger ingredients: %w", err)
	}
	return triggers, nil
}

// GetBySlug 以 slug 取得單一刺激成分（成分詳情頁使用）
func (r *TriggerRepository) GetBySlug(ctx context.Context, slug string) (*common.TriggerIngredient, error) {
	start := time.Now()
	resp, err := r.client.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("slug", "eq."+slug).
		SetQueryParam("limit", "1").
		Get("/rest/v1/trigger_ingredients")
	common.LogStoreCall("trigger_ingredients.get", time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch trigger ingredient: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("trigger ingredient query returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var triggers []common.TriggerIngredient
	if err := common.ParseJSONBytes(resp.Body(), &triggers); err != nil {
		return nil, fmt.Errorf("failed to parse trigger ingredient: %w", err)
	}
	if len(triggers) == 0 {
		return nil, common.ErrTriggerNotFound
	}
	return &triggers[0], nil
}
