package scan

import (
	"testing"

	"ingredient-scanner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateFlagsMaxSeverityPerCategory(t *testing.T) {
	matches := []common.MatchedIngredient{
		{Name: "Denatured Alcohol", Severity: 3, Categories: []string{common.CategoryIrritant}},
		{Name: "Witch Hazel", Severity: 2, Categories: []string{common.CategoryIrritant}},
	}

	flags := AggregateFlags(matches)

	require.Len(t, flags, 1)
	assert.Equal(t, common.CategoryIrritant, flags[0].Key)
	assert.Equal(t, "Irritant", flags[0].Label)
	assert.Equal(t, 3, flags[0].Severity)
	assert.Equal(t, []string{"Denatured Alcohol", "Witch Hazel"}, flags[0].Matched)
}

func TestAggregateFlagsMultiCategoryMatch(t *testing.T) {
	matches := []common.MatchedIngredient{
		{Name: "Denatured Alcohol", Severity: 3, Categories: []string{common.CategoryIrritant, common.CategoryDrying}},
	}

	flags := AggregateFlags(matches)

	require.Len(t, flags, 2)
	for _, f := range flags {
		assert.Equal(t, []string{"Denatured Alcohol"}, f.Matched)
		assert.Equal(t, 3, f.Severity)
	}
}

func TestAggregateFlagsSortedBySeverityDesc(t *testing.T) {
	matches := []common.MatchedIngredient{
		{Name: "Fragrance", Severity: 2, Categories: []string{common.CategoryFragrance}},
		{Name: "Methylisothiazolinone", Severity: 3, Categories: []string{common.CategoryAllergen}},
		{Name: "Coconut Oil", Severity: 1, Categories: []string{common.CategoryAcneTrigger}},
	}

	flags := AggregateFlags(matches)

	require.Len(t, flags, 3)
	for i := 1; i < len(flags); i++ {
		assert.GreaterOrEqual(t, flags[i-1].Severity, flags[i].Severity)
	}
	assert.Equal(t, common.CategoryAllergen, flags[0].Key)
}

func TestAggregateFlagsDedupNames(t *testing.T) {
	matches := []common.MatchedIngredient{
		{Name: "Fragrance", Severity: 2, Categories: []string{common.CategoryFragrance}},
		{Name: "Fragrance", Severity: 2, Categories: []string{common.CategoryFragrance}},
	}

	flags := AggregateFlags(matches)

	require.Len(t, flags, 1)
	assert.Equal(t, []string{"Fragrance"}, flags[0].Matched)
}

func TestAggregateFlagsUnknownCategoryKeepsKey(t *testing.T) {
	matches := []common.MatchedIngredient{
		{Name: "Mystery", Severity: 1, Categories: []string{"experimental"}},
	}

	flags := AggregateFlags(matches)

	require.Len(t, flags, 1)
	assert.Equal(t, "experimental", flags[0].Label)
}

func TestAggregateFlagsEmpty(t *testing.T) {
	assert.Empty(t, AggregateFlags(nil))
}
