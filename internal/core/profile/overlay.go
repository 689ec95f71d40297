package profile

import (
	"ingredient-scanner/internal/pkg/common"
)

// 個人化風險加成：每個被觸發的旗標 +5 分，總加成上限 20 分
const (
	overlayBoostPerFlag = 5
	overlayBoostCap     = 20

	// 未產生任何警語時，附加一般性建議的風險分數門檻
	genericAdvisoryScoreThreshold = 30
)

// flagRelevance 掃描分類與個人敏感旗標的關聯表
var flagRelevance = map[string][]string{
	common.CategoryFragrance: {
		common.ProfileFlagFragranceSensitive,
	},
	common.CategoryIrritant: {
		common.ProfileFlagFragranceSensitive,
		common.ProfileFlagEczemaProne,
		common.ProfileFlagRosaceaProne,
	},
	common.CategoryAllergen: {
		common.ProfileFlagEczemaProne,
	},
	common.CategoryAcneTrigger: {
		common.ProfileFlagAcneProne,
	},
	common.CategoryDrying: {
		common.ProfileFlagEczemaProne,
	},
	common.CategoryPhotosensitizer: {
		common.ProfileFlagPigmentationProne,
	},
}

// personalWarnings 分類×個人旗標對應的警語，鍵為 "分類|旗標"
var personalWarnings = map[string]string{
	common.CategoryFragrance + "|" + common.ProfileFlagFragranceSensitive:       "This product contains fragrance, which you've flagged as a sensitivity",
	common.CategoryIrritant + "|" + common.ProfileFlagFragranceSensitive:        "Contains irritants that are more likely to bother fragrance-sensitive skin",
	common.CategoryIrritant + "|" + common.ProfileFlagEczemaProne:               "Contains irritants that can aggravate eczema-prone skin",
	common.CategoryIrritant + "|" + common.ProfileFlagRosaceaProne:              "Contains irritants known to trigger rosacea flare-ups",
	common.CategoryAllergen + "|" + common.ProfileFlagEczemaProne:               "Contains contact allergens that eczema-prone skin reacts to more easily",
	common.CategoryAcneTrigger + "|" + common.ProfileFlagAcneProne:              "Contains pore-clogging ingredients; risky for acne-prone skin",
	common.CategoryDrying + "|" + common.ProfileFlagEczemaProne:                 "Contains drying agents that can worsen eczema-related dryness",
	common.CategoryPhotosensitizer + "|" + common.ProfileFlagPigmentationProne:  "Contains photosensitizing ingredients that can deepen hyperpigmentation without SPF",
}

// recommendedActions 各觸發旗標的建議行動
var recommendedActions = map[string]string{
	common.ProfileFlagFragranceSensitive: "Look for products labeled fragrance-free rather than unscented",
	common.ProfileFlagAcneProne:          "Choose non-comedogenic formulas and introduce new products one at a time",
	common.ProfileFlagEczemaProne:        "Favor short ingredient lists and ceramide-rich moisturizers",
	common.ProfileFlagRosaceaProne:       "Avoid alcohol-heavy and exfoliating formulas while skin is flared",
	common.ProfileFlagPigmentationProne:  "Pair this product with daily broad-spectrum SPF",
}

// genericFragranceAdvisory 高風險但無具體警語時的一般性建議
const genericFragranceAdvisory = "Given your fragrance sensitivity, patch test this product before regular use"

// BuildOverlay 依膚況重新詮釋掃描結果：產生個人化警語、調整後的
// 風險分數（僅在至少一個旗標被觸發時）與建議行動。
func BuildOverlay(result common.AnalysisResult, profile common.SkinProfile) common.ProfileOverlay {
	warnings := make([]string, 0)
	seenWarnings := make(map[string]bool)
	triggered := make([]string, 0)
	seenTriggered := make(map[string]bool)

	for _, flag := range result.Flags {
		for _, profileFlag := range flagRelevance[flag.Key] {
			if !profile.HasFlag(profileFlag) {
				continue
			}
			if !seenTriggered[profileFlag] {
				seenTriggered[profileFlag] = true
				triggered = append(triggered, profileFlag)
			}
			warning, ok := personalWarnings[flag.Key+"|"+profileFlag]
			if !ok || seenWarnings[warning] {
				continue
			}
			seenWarnings[warning] = true
			warnings = append(warnings, warning)
		}
	}

	overlay := common.ProfileOverlay{
		PersonalWarnings:   warnings,
		RecommendedActions: make([]string, 0, len(triggered)),
	}

	if len(triggered) > 0 {
		boost := overlayBoostPerFlag * len(triggered)
		if boost > overlayBoostCap {
			boost = overlayBoostCap
		}
		adjusted := result.RiskScore + boost
		if adjusted > 100 {
			adjusted = 100
		}
		overlay.AdjustedRiskScore = &adjusted
	}

	seenActions := make(map[string]bool)
	for _, profileFlag := range triggered {
		action, ok := recommendedActions[profileFlag]
		if !ok || seenActions[action] {
			continue
		}
		seenActions[action] = true
		overlay.RecommendedActions = append(overlay.RecommendedActions, action)
	}

	// 沒有具體警語但整體風險偏高且對香精敏感時，仍給一般性建議
	if len(warnings) == 0 &&
		result.RiskScore > genericAdvisoryScoreThreshold &&
		profile.HasFlag(common.ProfileFlagFragranceSensitive) {
		overlay.RecommendedActions = append(overlay.RecommendedActions, genericFragranceAdvisory)
	}

	return overlay
}

// HasRelevantSensitivities 檢查掃描結果是否觸及膚況中的任何敏感旗標，
// 不建構完整的個人化輸出，供輕量前置判斷使用
func HasRelevantSensitivities(result common.AnalysisResult, profile common.SkinProfile) bool {
	for _, flag := range result.Flags {
		for _, profileFlag := range flagRelevance[flag.Key] {
			if profile.HasFlag(profileFlag) {
				return true
			}
		}
	}
	return false
}
