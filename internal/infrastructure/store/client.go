package store

import (
	"fmt"

	"ingredient-scanner/internal/infrastructure/config"

	"github.com/go-resty/resty/v2"
)

// Client 資料儲存服務的 REST 客戶端（PostgREST 風格 API）
type Client struct {
	http   *resty.Client
	config *config.StoreConfig
}

// NewClient 創建資料儲存客戶端
func NewClient(cfg *config.StoreConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("apikey", cfg.APIKey).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   client,
		config: cfg,
	}
}
