package scan

import (
	"ingredient-scanner/internal/pkg/common"
)

// Analyze 對成分原文執行完整分析管線：解析、比對、彙整、評分、摘要。
// 純函式，參考資料在分析期間視為唯讀，可在多個併發分析間共用。
// 空輸入不是錯誤：回傳零分、low 等級與預設摘要。
func Analyze(ingredientsText string, triggers []common.TriggerIngredient, strict bool) common.AnalysisResult {
	candidates := ParseIngredientList(ingredientsText)
	matches := MatchTriggers(candidates, triggers, strict)
	flags := AggregateFlags(matches)
	score := ComputeRiskScore(matches, flags)

	return common.AnalysisResult{
		RiskScore:          score,
		RiskTier:           RiskTierFor(score),
		Flags:              flags,
		Summary:            BuildSummary(flags),
		MatchedIngredients: matches,
		Disclaimer:         common.DisclaimerText,
	}
}
