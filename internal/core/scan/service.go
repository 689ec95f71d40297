package scan

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"ingredient-scanner/internal/core/scan/cache"
	"ingredient-scanner/internal/infrastructure/config"
	"ingredient-scanner/internal/pkg/common"

	"go.uber.org/zap"
)

// triggerSnapshotKey 快取鍵：刺激成分參考資料的完整快照
const triggerSnapshotKey = "triggers:snapshot"

// TriggerSource 刺激成分參考資料來源
type TriggerSource interface {
	ListAll(ctx context.Context) ([]common.TriggerIngredient, error)
}

// ScanStore 掃描紀錄儲存
type ScanStore interface {
	Insert(ctx context.Context, record common.ScanRecord) error
	GetByID(ctx context.Context, id string) (*common.ScanRecord, error)
}

// ProductResolver 由產品 ID 解析成分原文
type ProductResolver interface {
	IngredientsByProductID(ctx context.Context, productID string) (string, error)
}

// BarcodeResolver 由條碼解析成分原文
type BarcodeResolver interface {
	IngredientsByBarcode(ctx context.Context, barcode string) (string, error)
}

// AnalyzeRequest 掃描分析請求
type AnalyzeRequest struct {
	InputType       string
	IngredientsText string
	ProductID       string
	Barcode         string
	UserID          string
}

// Service 掃描服務：解析輸入、載入參考資料、執行分析引擎並持久化結果
type Service struct {
	config   *config.Config
	triggers TriggerSource
	scans    ScanStore
	products ProductResolver
	barcodes BarcodeResolver
	snapshot *cache.Manager
	results  *cache.ResultCache
}

// NewService 創建掃描服務
func NewService(cfg *config.Config, triggers TriggerSource, scans ScanStore, products ProductResolver, barcodes BarcodeResolver, snapshot *cache.Manager, results *cache.ResultCache) *Service {
	return &Service{
		config:   cfg,
		triggers: triggers,
		scans:    scans,
		products: products,
		barcodes: barcodes,
		snapshot: snapshot,
		results:  results,
	}
}

// AnalyzeScan 執行一次完整掃描：解析輸入來源為成分原文、載入刺激成分
// 快照、跑分析引擎、寫入掃描紀錄並回傳含 scan id 的結果。
// 空的成分原文不是錯誤，會得到零分、low 等級的結果。
func (s *Service) AnalyzeScan(ctx context.Context, req AnalyzeRequest) (*common.ScanRecord, error) {
	text, err := s.resolveInput(ctx, req)
	if err != nil {
		// 解析失敗視同查無成分：引擎照常執行，不拒絕回答
		common.LogWarn("輸入解析失敗，改用空成分原文",
			zap.String("input_type", req.InputType),
			zap.Error(err),
		)
		text = ""
	}

	triggers, err := s.loadTriggers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTriggerFetchFailed, err)
	}

	result := s.analyzeWithCache(ctx, text, triggers)

	common.LogDebug("分析引擎輸出",
		zap.String("text_preview", common.TruncateForLog(text, 120)),
		zap.String("matched", common.FormatMatchedNames(result.MatchedIngredients)),
	)

	record := common.ScanRecord{
		ID:                 common.GenerateUUID(),
		UserID:             req.UserID,
		InputType:          req.InputType,
		ProductID:          req.ProductID,
		Barcode:            req.Barcode,
		RawIngredientsText: text,
		Result:             result,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.scans.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrScanPersistFailed, err)
	}

	common.LogInfo("掃描完成",
		zap.String("scan_id", record.ID),
		zap.String("input_type", record.InputType),
		zap.Int("risk_score", result.RiskScore),
		zap.String("risk_tier", result.RiskTier),
		zap.Int("matched_count", len(result.MatchedIngredients)),
	)

	return &record, nil
}

// GetScan 讀取持久化的掃描紀錄
func (s *Service) GetScan(ctx context.Context, id string) (*common.ScanRecord, error) {
	record, err := s.scans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, common.ErrScanNotFound
	}
	return record, nil
}

// resolveInput 將三種輸入形態統一解析為成分原文。
// 查無資料回傳空字串而非錯誤。
func (s *Service) resolveInput(ctx context.Context, req AnalyzeRequest) (string, error) {
	switch req.InputType {
	case common.InputTypePaste:
		return req.IngredientsText, nil
	case common.InputTypeProduct:
		if req.ProductID == "" {
			return "", nil
		}
		return s.products.IngredientsByProductID(ctx, req.ProductID)
	case common.InputTypeBarcode:
		if req.Barcode == "" {
			return "", nil
		}
		return s.barcodes.IngredientsByBarcode(ctx, req.Barcode)
	default:
		return "", fmt.Errorf("%w: %s", common.ErrInvalidInputType, req.InputType)
	}
}

// loadTriggers 載入刺激成分參考資料，優先使用程序內快照
func (s *Service) loadTriggers(ctx context.Context) ([]common.TriggerIngredient, error) {
	if s.snapshot != nil {
		if data, err := s.snapshot.Get(ctx, triggerSnapshotKey); err == nil && data != "" {
			var triggers []common.TriggerIngredient
			if err := common.ParseJSON(data, &triggers); err == nil {
				return triggers, nil
			}
			// 快照損毀時移除並改走資料儲存服務
			s.snapshot.Delete(ctx, triggerSnapshotKey)
		}
	}

	triggers, err := s.triggers.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.snapshot != nil {
		if data, err := common.ToJSON(triggers); err == nil {
			_ = s.snapshot.SetWithTTL(ctx, triggerSnapshotKey, data, s.config.Scan.TriggerTTL)
		}
	}

	common.LogInfo("刺激成分資料已載入",
		zap.Int("trigger_count", len(triggers)),
	)
	return triggers, nil
}

// analyzeWithCache 執行分析引擎，相同成分原文的結果走 Redis 快取
func (s *Service) analyzeWithCache(ctx context.Context, text string, triggers []common.TriggerIngredient) common.AnalysisResult {
	key := resultCacheKey(text, s.config.Scan.StrictMatching)

	if s.results != nil {
		if cached, err := s.results.Get(ctx, key); err == nil && cached != nil {
			return *cached
		}
	}

	result := Analyze(text, triggers, s.config.Scan.StrictMatching)

	if s.results != nil {
		if err := s.results.Set(ctx, key, &result); err != nil {
			common.LogWarn("結果快取寫入失敗", zap.Error(err))
		}
	}
	return result
}

// resultCacheKey 以逐項正規化後的候選序列生成 SHA-256 快取鍵。
// 不可直接雜湊正規化後的整段原文：正規化會移除分隔符，解析結果
// 不同的輸入會撞在同一個鍵上。正規化後的候選不含標點，以 "|"
// 串接不會產生歧義。嚴格比對模式的結果與預設模式分開存放。
func resultCacheKey(text string, strict bool) string {
	candidates := ParseIngredientList(text)
	parts := make([]string, len(candidates))
	for i, candidate := range candidates {
		parts[i] = Normalize(candidate)
	}
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	mode := "loose"
	if strict {
		mode = "strict"
	}
	return fmt.Sprintf("%s:%s", mode, hex.EncodeToString(hash[:]))
}
