package scan

import (
	"ingredient-scanner/internal/pkg/common"
)

// 風險分數常數。這是既有資料相容的加法啟發式，不是統計校準模型，
// 不可調整。
const (
	ingredientScoreWeight = 10 // 每個命中成分：嚴重度 * 10

	flagBonusHigh     = 15 // 嚴重度 3 的分類加分
	flagBonusModerate = 8  // 嚴重度 2 的分類加分
	flagBonusLow      = 3  // 其餘分類加分

	maxRiskScore = 100
)

// 風險等級門檻
const (
	tierHighThreshold     = 60
	tierModerateThreshold = 30
)

// clampSeverity 將缺漏或超界的嚴重度收斂到 1..3，
// 避免參考資料異常時產生無效分數
func clampSeverity(severity int) int {
	if severity < 1 {
		return 1
	}
	if severity > 3 {
		return 3
	}
	return severity
}

// ComputeRiskScore 由命中成分與彙整後的分類計算 0..100 的風險分數
func ComputeRiskScore(matches []common.MatchedIngredient, flags []common.Flag) int {
	score := 0
	for _, m := range matches {
		score += clampSeverity(m.Severity) * ingredientScoreWeight
	}
	for _, f := range flags {
		switch f.Severity {
		case 3:
			score += flagBonusHigh
		case 2:
			score += flagBonusModerate
		default:
			score += flagBonusLow
		}
	}
	if score > maxRiskScore {
		score = maxRiskScore
	}
	return score
}

// RiskTierFor 將風險分數對應到三段風險等級
func RiskTierFor(score int) string {
	switch {
	case score >= tierHighThreshold:
		return common.TierHigh
	case score >= tierModerateThreshold:
		return common.TierModerate
	default:
		return common.TierLow
	}
}
