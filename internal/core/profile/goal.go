package profile

import (
	"fmt"
	"sort"
	"strings"

	"ingredient-scanner/internal/pkg/common"
)

// 目標評分權重
const (
	primaryGoalWeight   = 2 // 主要目標：嚴重度 * 2
	secondaryGoalWeight = 1 // 次要目標：嚴重度 * 1
	profileFlagBoost    = 3 // 個人旗標對應目標的固定加分
)

// 信心門檻
const (
	confidenceHighThreshold   = 8
	confidenceMediumThreshold = 4
)

// goalsByCategory 掃描分類對應的改善目標，主要目標在前
var goalsByCategory = map[string][]string{
	common.CategoryFragrance:       {common.GoalCalm},
	common.CategoryIrritant:        {common.GoalCalm, common.GoalBarrier},
	common.CategoryAllergen:        {common.GoalCalm},
	common.CategoryAcneTrigger:     {common.GoalAcne},
	common.CategoryDrying:          {common.GoalBarrier},
	common.CategoryPhotosensitizer: {common.GoalBrighten, common.GoalCalm},
}

// goalByProfileFlag 個人旗標對應的目標（1:1）
var goalByProfileFlag = map[string]string{
	common.ProfileFlagFragranceSensitive: common.GoalCalm,
	common.ProfileFlagRosaceaProne:       common.GoalCalm,
	common.ProfileFlagEczemaProne:        common.GoalBarrier,
	common.ProfileFlagAcneProne:          common.GoalAcne,
	common.ProfileFlagPigmentationProne:  common.GoalBrighten,
}

// reasonTemplates 各目標的理由樣板，%s 代入貢獻的分類名稱
var reasonTemplates = map[string]string{
	common.GoalCalm:     "Contains %s ingredients that may aggravate sensitive or reactive skin",
	common.GoalBarrier:  "Contains %s ingredients that can weaken the skin barrier",
	common.GoalAcne:     "Contains %s ingredients that may trigger breakouts",
	common.GoalBrighten: "Contains %s ingredients that may worsen uneven skin tone",
}

// profileOnlyReason 僅由膚況加分產生推薦時的理由
const profileOnlyReason = "Recommended based on your skin profile"

// goalOrder 固定的目標順序，也是同分時的決勝順序
var goalOrder = []string{common.GoalCalm, common.GoalBarrier, common.GoalAcne, common.GoalBrighten}

// RecommendGoal 由掃描旗標（與可選的膚況）推導最適改善目標。
// 所有目標皆為零分時回傳 nil，表示沒有推薦。
func RecommendGoal(result common.AnalysisResult, profile *common.SkinProfile) *common.GoalRecommendation {
	scores, reasons := scoreGoals(result, profile)

	best := ""
	bestScore := 0
	for _, goal := range goalOrder {
		if scores[goal] > bestScore {
			best = goal
			bestScore = scores[goal]
		}
	}
	if bestScore == 0 {
		return nil
	}

	confidence := common.ConfidenceLow
	switch {
	case bestScore >= confidenceHighThreshold:
		confidence = common.ConfidenceHigh
	case bestScore >= confidenceMediumThreshold:
		confidence = common.ConfidenceMedium
	}

	return &common.GoalRecommendation{
		Goal:       best,
		Confidence: confidence,
		Reason:     buildReason(best, reasons[best]),
	}
}

// RankedGoals 回傳所有非零分目標，依得分遞減排序（同分維持固定順序），
// 供需要完整排名而非單一推薦的呼叫端使用
func RankedGoals(result common.AnalysisResult, profile *common.SkinProfile) []common.GoalScore {
	scores, _ := scoreGoals(result, profile)

	ranked := make([]common.GoalScore, 0, len(goalOrder))
	for _, goal := range goalOrder {
		if scores[goal] > 0 {
			ranked = append(ranked, common.GoalScore{Goal: goal, Score: scores[goal]})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// scoreGoals 累計各目標得分並記錄貢獻的分類名稱（每個目標去重）
func scoreGoals(result common.AnalysisResult, profile *common.SkinProfile) (map[string]int, map[string][]string) {
	scores := make(map[string]int, len(goalOrder))
	reasons := make(map[string][]string, len(goalOrder))
	seenLabels := make(map[string]map[string]bool)

	for _, flag := range result.Flags {
		goals := goalsByCategory[flag.Key]
		for i, goal := range goals {
			weight := flag.Severity * secondaryGoalWeight
			if i == 0 {
				weight = flag.Severity * primaryGoalWeight
			}
			scores[goal] += weight

			if seenLabels[goal] == nil {
				seenLabels[goal] = make(map[string]bool)
			}
			if !seenLabels[goal][flag.Label] {
				seenLabels[goal][flag.Label] = true
				reasons[goal] = append(reasons[goal], flag.Label)
			}
		}
	}

	// 膚況旗標是獨立的強訊號，固定加分而非依嚴重度加權
	if profile != nil {
		for _, profileFlag := range profile.Flags {
			if goal, ok := goalByProfileFlag[profileFlag]; ok {
				scores[goal] += profileFlagBoost
			}
		}
	}

	return scores, reasons
}

// buildReason 組出目標專屬的理由字串，最多帶入兩個貢獻分類
func buildReason(goal string, labels []string) string {
	if len(labels) == 0 {
		return profileOnlyReason
	}
	if len(labels) > 2 {
		labels = labels[:2]
	}
	lowered := make([]string, len(labels))
	for i, label := range labels {
		lowered[i] = strings.ToLower(label)
	}
	return fmt.Sprintf(reasonTemplates[goal], strings.Join(lowered, " and "))
}
