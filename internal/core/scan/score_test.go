package scan

import (
	"testing"

	"ingredient-scanner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestComputeRiskScore(t *testing.T) {
	matches := []common.MatchedIngredient{
		{Slug: "a", Severity: 3},
		{Slug: "b", Severity: 2},
	}
	flags := []common.Flag{
		{Key: common.CategoryIrritant, Severity: 3},
	}

	// (3*10)+(2*10)+15 = 65
	assert.Equal(t, 65, ComputeRiskScore(matches, flags))
}

func TestComputeRiskScoreFlagBonuses(t *testing.T) {
	match := []common.MatchedIngredient{{Slug: "a", Severity: 1}}

	tests := []struct {
		name     string
		severity int
		expected int
	}{
		{"嚴重度 3 加 15", 3, 10 + 15},
		{"嚴重度 2 加 8", 2, 10 + 8},
		{"嚴重度 1 加 3", 1, 10 + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := []common.Flag{{Key: common.CategoryIrritant, Severity: tt.severity}}
			assert.Equal(t, tt.expected, ComputeRiskScore(match, flags))
		})
	}
}

func TestComputeRiskScoreClampedAt100(t *testing.T) {
	matches := make([]common.MatchedIngredient, 0, 6)
	for i := 0; i < 6; i++ {
		matches = append(matches, common.MatchedIngredient{Severity: 3})
	}
	flags := []common.Flag{{Key: common.CategoryIrritant, Severity: 3}}

	// 6*30+15 = 195，收斂到 100
	assert.Equal(t, 100, ComputeRiskScore(matches, flags))
}

func TestComputeRiskScoreMonotonic(t *testing.T) {
	matches := []common.MatchedIngredient{{Severity: 2}}
	flags := []common.Flag{{Key: common.CategoryIrritant, Severity: 2}}

	before := ComputeRiskScore(matches, flags)
	after := ComputeRiskScore(append(matches, common.MatchedIngredient{Severity: 3}), flags)

	assert.GreaterOrEqual(t, after, before)
}

func TestComputeRiskScoreEmpty(t *testing.T) {
	assert.Equal(t, 0, ComputeRiskScore(nil, nil))
}

func TestRiskTierFor(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{0, common.TierLow},
		{29, common.TierLow},
		{30, common.TierModerate},
		{59, common.TierModerate},
		{60, common.TierHigh},
		{100, common.TierHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RiskTierFor(tt.score), "score %d", tt.score)
	}
}

func TestClampSeverity(t *testing.T) {
	assert.Equal(t, 1, clampSeverity(-2))
	assert.Equal(t, 1, clampSeverity(0))
	assert.Equal(t, 2, clampSeverity(2))
	assert.Equal(t, 3, clampSeverity(7))
}
