package scan

import (
	"sort"

	"ingredient-scanner/internal/pkg/common"
)

// categoryLabels 分類鍵對應的顯示名稱
var categoryLabels = map[string]string{
	common.CategoryFragrance:       "Fragrance",
	common.CategoryIrritant:        "Irritant",
	common.CategoryAllergen:        "Allergen",
	common.CategoryAcneTrigger:     "Acne Trigger",
	common.CategoryDrying:          "Drying Agent",
	common.CategoryPhotosensitizer: "Photosensitizer",
}

// labelFor 取得分類顯示名稱，未知分類沿用鍵名
func labelFor(key string) string {
	if label, ok := categoryLabels[key]; ok {
		return label
	}
	return key
}

// AggregateFlags 依分類彙整命中的成分：每個分類一個 Flag，嚴重度取該
// 分類下的最大值，並以嚴重度遞減排序（同分保持首次出現順序）。
func AggregateFlags(matches []common.MatchedIngredient) []common.Flag {
	type bucket struct {
		severity  int
		names     []string
		seenNames map[string]bool
	}

	buckets := make(map[string]*bucket)
	order := make([]string, 0)

	for _, m := range matches {
		for _, key := range m.Categories {
			b, ok := buckets[key]
			if !ok {
				b = &bucket{seenNames: make(map[string]bool)}
				buckets[key] = b
				order = append(order, key)
			}
			if m.Severity > b.severity {
				b.severity = m.Severity
			}
			if !b.seenNames[m.Name] {
				b.seenNames[m.Name] = true
				b.names = append(b.names, m.Name)
			}
		}
	}

	flags := make([]common.Flag, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		flags = append(flags, common.Flag{
			Key:      key,
			Label:    labelFor(key),
			Severity: b.severity,
			Matched:  b.names,
		})
	}

	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].Severity > flags[j].Severity
	})
	return flags
}
