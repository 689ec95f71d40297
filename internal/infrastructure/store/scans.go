package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ingredient-scanner/internal/pkg/common"
)

// ScanRepository 掃描紀錄表的存取
type ScanRepository struct {
	client *Client
}

// NewScanRepository 創建掃描紀錄存取
func NewScanRepository(client *Client) *ScanRepository {
	return &ScanRepository{client: client}
}

// scanRow 掃描紀錄的資料表列格式
type scanRow struct {
	ID                 string                `json:"id"`
	UserID             *string               `json:"user_id"`
	InputType          string                `json:"input_type"`
	ProductID          *string               `json:"product_id"`
	Barcode            *string               `json:"barcode"`
	RawIngredientsText string                `json:"raw_ingredients_text"`
	ResultJSON         common.AnalysisResult `json:"result_json"`
	CreatedAt          time.Time             `json:"created_at"`
}

// Insert 寫入掃描紀錄
func (r *ScanRepository) Insert(ctx context.Context, record common.ScanRecord) error {
	row := scanRow{
		ID:                 record.ID,
		UserID:             nullable(record.UserID),
		InputType:          record.InputType,
		ProductID:          nullable(record.ProductID),
		Barcode:            nullable(record.Barcode),
		RawIngredientsText: record.RawIngredientsText,
		ResultJSON:         record.Result,
		CreatedAt:          record.CreatedAt,
	}

	start := time.Now()
	resp, err := r.client.http.R().
		SetContext(ctx).
		SetBody(row).
		Post("/rest/v1/ingredient_scans")
	common.LogStoreCall("ingredient_scans.insert", time.Since(start), err)

	if err != nil {
		return fmt.Errorf("failed to insert scan record: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return fmt.Errorf("scan record insert returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// GetByID 以 id 讀取掃描紀錄，查無資料回傳 (nil, nil)
func (r *ScanRepository) GetByID(ctx context.Context, id string) (*common.ScanRecord, error) {
	start := time.Now()
	resp, err := r.client.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("id", "eq."+id).
		SetQueryParam("limit", "1").
		Get("/rest/v1/ingredient_scans")
	common.LogStoreCall("ingredient_scans.get", time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch scan record: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("scan record query returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var rows []scanRow
	if err := common.ParseJSONBytes(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse scan record: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	record := common.ScanRecord{
		ID:                 row.ID,
		UserID:             deref(row.UserID),
		InputType:          row.InputType,
		ProductID:          deref(row.ProductID),
		Barcode:            deref(row.Barcode),
		RawIngredientsText: row.RawIngredientsText,
		Result:             row.ResultJSON,
		CreatedAt:          row.CreatedAt,
	}
	return &record, nil
}

// nullable 將空字串轉為 NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref 將 NULL 轉回空字串
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
