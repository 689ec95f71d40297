package common

import (
	"strings"
	"time"
)

// 風險等級
const (
	TierLow      = "low"
	TierModerate = "moderate"
	TierHigh     = "high"
)

// 掃描輸入類型
const (
	InputTypePaste   = "paste"
	InputTypeProduct = "product"
	InputTypeBarcode = "barcode"
)

// 成分關注分類鍵
const (
	CategoryFragrance       = "fragrance"
	CategoryIrritant        = "irritant"
	CategoryAllergen        = "allergen"
	CategoryAcneTrigger     = "acne_trigger"
	CategoryDrying          = "drying"
	CategoryPhotosensitizer = "photosensitizer"
)

// 個人膚況敏感旗標
const (
	ProfileFlagFragranceSensitive = "fragrance_sensitive"
	ProfileFlagAcneProne          = "acne_prone"
	ProfileFlagEczemaProne        = "eczema_prone"
	ProfileFlagRosaceaProne       = "rosacea_prone"
	ProfileFlagPigmentationProne  = "hyperpigmentation_prone"
)

// 改善目標（供自訂配方功能預填）
const (
	GoalCalm     = "calm"
	GoalBarrier  = "barrier"
	GoalAcne     = "acne"
	GoalBrighten = "brighten"
)

// 目標信心等級
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// DisclaimerText 每份分析結果附帶的固定聲明
const DisclaimerText = "This scan is for educational purposes only and is not medical advice. Always patch test new products and consult a dermatologist for persistent concerns."

// TriggerIngredient 參考資料庫中的刺激成分（由外部維護，分析期間唯讀）
type TriggerIngredient struct {
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Aliases    []string `json:"aliases"`
	Categories []string `json:"categories"`
	Severity   int      `json:"severity"` // 1=低 2=中 3=高
	Notes      string   `json:"notes"`
}

// MatchedIngredient 單次分析中命中的刺激成分
type MatchedIngredient struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Categories  []string `json:"categories"`
	Severity    int      `json:"severity"`
	Notes       string   `json:"notes"`
	MatchedTerm string   `json:"matched_term"` // 觸發比對的原始輸入片段
}

// Flag 依分類彙整後的發現
type Flag struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Severity int      `json:"severity"` // 該分類下命中成分的最高嚴重度
	Matched  []string `json:"matched"`
}

// AnalysisResult 掃描引擎的輸出，產生後不再變動
type AnalysisResult struct {
	RiskScore          int                 `json:"risk_score"`
	RiskTier           string              `json:"risk_tier"`
	Flags              []Flag              `json:"flags"`
	Summary            []string            `json:"summary"`
	MatchedIngredients []MatchedIngredient `json:"matched_ingredients"`
	Disclaimer         string              `json:"disclaimer"`
}

// SkinProfile 使用者自述的膚況資料
type SkinProfile struct {
	SkinType  string    `json:"skin_type"` // oily / dry / combination / normal / sensitive
	Flags     []string  `json:"flags"`
	Allergies []string  `json:"allergies,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasFlag 檢查膚況是否帶有指定旗標
func (p SkinProfile) HasFlag(flag string) bool {
	for _, f := range p.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// ProfileOverlay 依膚況重新詮釋掃描結果後的個人化輸出
type ProfileOverlay struct {
	PersonalWarnings   []string `json:"personal_warnings"`
	AdjustedRiskScore  *int     `json:"adjusted_risk_score,omitempty"` // 僅在至少一個旗標被觸發時出現
	RecommendedActions []string `json:"recommended_actions"`
}

// GoalRecommendation 最適改善目標與推薦理由
type GoalRecommendation struct {
	Goal       string `json:"goal"`
	Confidence string `json:"confidence"`
	Reason     string `json:"reason"`
}

// GoalScore 目標與其累計得分（供排序列表使用）
type GoalScore struct {
	Goal  string `json:"goal"`
	Score int    `json:"score"`
}

// ScanRecord 持久化的掃描紀錄
type ScanRecord struct {
	ID                 string         `json:"id"`
	UserID             string         `json:"user_id,omitempty"`
	InputType          string         `json:"input_type"`
	ProductID          string         `json:"product_id,omitempty"`
	Barcode            string         `json:"barcode,omitempty"`
	RawIngredientsText string         `json:"raw_ingredients_text"`
	Result             AnalysisResult `json:"result_json"`
	CreatedAt          time.Time      `json:"created_at"`
}

// ValidInputType 檢查輸入類型是否合法
func ValidInputType(inputType string) bool {
	switch inputType {
	case InputTypePaste, InputTypeProduct, InputTypeBarcode:
		return true
	}
	return false
}

// FormatMatchedNames 將命中成分名稱串成逗號分隔字串（用於日誌）
func FormatMatchedNames(matches []MatchedIngredient) string {
	if len(matches) == 0 {
		return ""
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Name)
	}
	return strings.Join(names, ", ")
}
