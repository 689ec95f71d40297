package profile

import (
	"testing"

	"ingredient-scanner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragranceScanResult() common.AnalysisResult {
	return common.AnalysisResult{
		RiskScore: 28,
		RiskTier:  common.TierLow,
		Flags: []common.Flag{
			{Key: common.CategoryIrritant, Severity: 2, Matched: []string{"Fragrance"}},
		},
	}
}

func TestBuildOverlayFragranceSensitive(t *testing.T) {
	profile := common.SkinProfile{Flags: []string{common.ProfileFlagFragranceSensitive}}

	overlay := BuildOverlay(fragranceScanResult(), profile)

	require.Len(t, overlay.PersonalWarnings, 1)
	assert.Equal(t, "Contains irritants that are more likely to bother fragrance-sensitive skin", overlay.PersonalWarnings[0])

	// 一個觸發旗標：28 + 5 = 33
	require.NotNil(t, overlay.AdjustedRiskScore)
	assert.Equal(t, 33, *overlay.AdjustedRiskScore)

	require.Len(t, overlay.RecommendedActions, 1)
	assert.Equal(t, "Look for products labeled fragrance-free rather than unscented", overlay.RecommendedActions[0])
}

func TestBuildOverlayNoRelevantFlags(t *testing.T) {
	profile := common.SkinProfile{Flags: []string{common.ProfileFlagAcneProne}}

	overlay := BuildOverlay(fragranceScanResult(), profile)

	assert.Empty(t, overlay.PersonalWarnings)
	assert.Nil(t, overlay.AdjustedRiskScore)
	assert.Empty(t, overlay.RecommendedActions)
}

func TestBuildOverlayEmptyProfile(t *testing.T) {
	overlay := BuildOverlay(fragranceScanResult(), common.SkinProfile{})

	assert.Empty(t, overlay.PersonalWarnings)
	assert.Nil(t, overlay.AdjustedRiskScore)
}

func TestBuildOverlayBoostCap(t *testing.T) {
	// 五個旗標全部觸發，加成仍收斂在 20
	result := common.AnalysisResult{
		RiskScore: 50,
		Flags: []common.Flag{
			{Key: common.CategoryFragrance, Severity: 2},
			{Key: common.CategoryIrritant, Severity: 3},
			{Key: common.CategoryAcneTrigger, Severity: 2},
			{Key: common.CategoryPhotosensitizer, Severity: 2},
		},
	}
	profile := common.SkinProfile{Flags: []string{
		common.ProfileFlagFragranceSensitive,
		common.ProfileFlagAcneProne,
		common.ProfileFlagEczemaProne,
		common.ProfileFlagRosaceaProne,
		common.ProfileFlagPigmentationProne,
	}}

	overlay := BuildOverlay(result, profile)

	require.NotNil(t, overlay.AdjustedRiskScore)
	assert.Equal(t, 70, *overlay.AdjustedRiskScore)
	assert.LessOrEqual(t, *overlay.AdjustedRiskScore-result.RiskScore, 20)
}

func TestBuildOverlayAdjustedScoreClampedAt100(t *testing.T) {
	result := common.AnalysisResult{
		RiskScore: 98,
		Flags: []common.Flag{
			{Key: common.CategoryIrritant, Severity: 3},
		},
	}
	profile := common.SkinProfile{Flags: []string{common.ProfileFlagEczemaProne}}

	overlay := BuildOverlay(result, profile)

	require.NotNil(t, overlay.AdjustedRiskScore)
	assert.Equal(t, 100, *overlay.AdjustedRiskScore)
}

func TestBuildOverlayGenericAdvisory(t *testing.T) {
	// 風險偏高但沒有任何分類與香精敏感相關：仍給一般性建議
	result := common.AnalysisResult{
		RiskScore: 45,
		Flags: []common.Flag{
			{Key: common.CategoryPhotosensitizer, Severity: 3},
		},
	}
	profile := common.SkinProfile{Flags: []string{common.ProfileFlagFragranceSensitive}}

	overlay := BuildOverlay(result, profile)

	assert.Empty(t, overlay.PersonalWarnings)
	assert.Contains(t, overlay.RecommendedActions, genericFragranceAdvisory)
}

func TestBuildOverlayDedupWarnings(t *testing.T) {
	// 同一分類出現兩次不會重複警語
	result := common.AnalysisResult{
		RiskScore: 30,
		Flags: []common.Flag{
			{Key: common.CategoryIrritant, Severity: 3},
			{Key: common.CategoryIrritant, Severity: 2},
		},
	}
	profile := common.SkinProfile{Flags: []string{common.ProfileFlagEczemaProne}}

	overlay := BuildOverlay(result, profile)

	assert.Len(t, overlay.PersonalWarnings, 1)
	require.NotNil(t, overlay.AdjustedRiskScore)
	assert.Equal(t, 35, *overlay.AdjustedRiskScore)
}

func TestHasRelevantSensitivities(t *testing.T) {
	result := fragranceScanResult()

	assert.True(t, HasRelevantSensitivities(result, common.SkinProfile{Flags: []string{common.ProfileFlagFragranceSensitive}}))
	assert.True(t, HasRelevantSensitivities(result, common.SkinProfile{Flags: []string{common.ProfileFlagRosaceaProne}}))
	assert.False(t, HasRelevantSensitivities(result, common.SkinProfile{Flags: []string{common.ProfileFlagAcneProne}}))
	assert.False(t, HasRelevantSensitivities(common.AnalysisResult{}, common.SkinProfile{Flags: []string{common.ProfileFlagAcneProne}}))
}
