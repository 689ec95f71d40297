package scan

import (
	"ingredient-scanner/internal/pkg/common"
)

// FallbackSummary 沒有任何分類命中時的固定摘要
const FallbackSummary = "No known triggers detected based on available database"

// summaryByCategory 各分類對應的固定建議句
var summaryByCategory = map[string]string{
	common.CategoryFragrance:       "Contains fragrance ingredients, a common cause of irritation on sensitive skin",
	common.CategoryIrritant:        "Contains known irritants that may cause redness or stinging",
	common.CategoryAllergen:        "Contains common contact allergens; patch testing is recommended",
	common.CategoryAcneTrigger:     "Contains ingredients that may clog pores or trigger breakouts",
	common.CategoryDrying:          "Contains drying agents that can strip moisture from the skin",
	common.CategoryPhotosensitizer: "Contains ingredients that may increase sun sensitivity; use SPF during the day",
}

// BuildSummary 依命中的分類組出去重後的摘要句；沒有任何句子時
// 回傳單一的預設句
func BuildSummary(flags []common.Flag) []string {
	seen := make(map[string]bool, len(flags))
	summary := make([]string, 0, len(flags))
	for _, f := range flags {
		sentence, ok := summaryByCategory[f.Key]
		if !ok || seen[sentence] {
			continue
		}
		seen[sentence] = true
		summary = append(summary, sentence)
	}
	if len(summary) == 0 {
		return []string{FallbackSummary}
	}
	return summary
}
