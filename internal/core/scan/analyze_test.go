package scan

import (
	"testing"

	"ingredient-scanner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSingleFragranceMatch(t *testing.T) {
	triggers := []common.TriggerIngredient{
		{Name: "Fragrance", Slug: "fragrance", Categories: []string{common.CategoryIrritant}, Severity: 2},
	}

	result := Analyze("Water, Glycerin, Fragrance", triggers, false)

	require.Len(t, result.MatchedIngredients, 1)
	assert.Equal(t, "fragrance", result.MatchedIngredients[0].Slug)

	require.Len(t, result.Flags, 1)
	assert.Equal(t, common.CategoryIrritant, result.Flags[0].Key)
	assert.Equal(t, 2, result.Flags[0].Severity)

	// 2*10 + 8 = 28
	assert.Equal(t, 28, result.RiskScore)
	assert.Equal(t, common.TierLow, result.RiskTier)
	assert.Equal(t, common.DisclaimerText, result.Disclaimer)
}

func TestAnalyzeTwoIrritantsShareFlag(t *testing.T) {
	triggers := []common.TriggerIngredient{
		{Name: "Glycerin", Slug: "glycerin", Categories: []string{common.CategoryIrritant}, Severity: 3},
		{Name: "Fragrance", Slug: "fragrance", Categories: []string{common.CategoryIrritant}, Severity: 2},
	}

	result := Analyze("Water, Glycerin, Fragrance", triggers, false)

	require.Len(t, result.MatchedIngredients, 2)
	require.Len(t, result.Flags, 1)
	assert.Equal(t, 3, result.Flags[0].Severity)

	// (3*10)+(2*10)+15 = 65
	assert.Equal(t, 65, result.RiskScore)
	assert.Equal(t, common.TierHigh, result.RiskTier)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	triggers := []common.TriggerIngredient{
		{Name: "Fragrance", Slug: "fragrance", Categories: []string{common.CategoryFragrance}, Severity: 2},
	}

	result := Analyze("", triggers, false)

	assert.Equal(t, 0, result.RiskScore)
	assert.Equal(t, common.TierLow, result.RiskTier)
	assert.Empty(t, result.Flags)
	assert.Empty(t, result.MatchedIngredients)
	assert.Equal(t, []string{FallbackSummary}, result.Summary)
}

func TestAnalyzeNoTriggerData(t *testing.T) {
	result := Analyze("Water, Glycerin", nil, false)

	assert.Equal(t, 0, result.RiskScore)
	assert.Equal(t, common.TierLow, result.RiskTier)
	assert.Equal(t, []string{FallbackSummary}, result.Summary)
}

func TestAnalyzeScoreBoundsAndTierConsistency(t *testing.T) {
	triggers := []common.TriggerIngredient{
		{Name: "Fragrance", Slug: "fragrance", Categories: []string{common.CategoryFragrance}, Severity: 2},
		{Name: "Denatured Alcohol", Slug: "denatured-alcohol", Categories: []string{common.CategoryIrritant, common.CategoryDrying}, Severity: 3},
		{Name: "Methylisothiazolinone", Slug: "mit", Categories: []string{common.CategoryAllergen}, Severity: 3},
		{Name: "Coconut Oil", Slug: "coconut-oil", Categories: []string{common.CategoryAcneTrigger}, Severity: 2},
		{Name: "Bergamot Oil", Slug: "bergamot-oil", Categories: []string{common.CategoryPhotosensitizer}, Severity: 2},
	}

	inputs := []string{
		"",
		"Water",
		"Fragrance",
		"Fragrance, Denatured Alcohol",
		"Fragrance, Denatured Alcohol, Methylisothiazolinone, Coconut Oil, Bergamot Oil",
	}

	for _, input := range inputs {
		result := Analyze(input, triggers, false)

		assert.GreaterOrEqual(t, result.RiskScore, 0)
		assert.LessOrEqual(t, result.RiskScore, 100)
		assert.Equal(t, RiskTierFor(result.RiskScore), result.RiskTier)

		// 每個 slug 至多命中一次
		seen := make(map[string]bool)
		for _, m := range result.MatchedIngredients {
			assert.False(t, seen[m.Slug], "duplicate slug %s", m.Slug)
			seen[m.Slug] = true
		}
	}
}
