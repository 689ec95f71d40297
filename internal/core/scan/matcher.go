package scan

import (
	"strings"

	"ingredient-scanner/internal/pkg/common"
)

// matchFunc 比較正規化後的候選字串與參考字串
type matchFunc func(candidate, reference string) bool

// termsMatch 預設的雙向子字串比對。過短的別名（如 "oil"）會造成
// 廣泛誤判，這是既有資料相容行為；要更嚴格的比對請開啟
// scan.strict_matching。
func termsMatch(candidate, reference string) bool {
	if candidate == "" || reference == "" {
		return false
	}
	return strings.Contains(candidate, reference) || strings.Contains(reference, candidate)
}

// termsMatchStrict 僅在完整字詞邊界上做雙向包含比對
func termsMatchStrict(candidate, reference string) bool {
	return containsWholeWords(candidate, reference) || containsWholeWords(reference, candidate)
}

// containsWholeWords 檢查 needle 的字詞序列是否完整出現在 haystack 中
func containsWholeWords(haystack, needle string) bool {
	haystackWords := strings.Fields(haystack)
	needleWords := strings.Fields(needle)
	if len(needleWords) == 0 || len(needleWords) > len(haystackWords) {
		return false
	}
	for i := 0; i+len(needleWords) <= len(haystackWords); i++ {
		found := true
		for j := range needleWords {
			if haystackWords[i+j] != needleWords[j] {
				found = false
				break
			}
		}
		if found {
			return true
		}
	}
	return false
}

// MatchTriggers 將候選成分逐一與參考資料比對，回傳命中的刺激成分。
// 每個 slug 在單次分析中最多命中一次（先到先得）；一個候選仍可能
// 命中多個不同的刺激成分。
func MatchTriggers(candidates []string, triggers []common.TriggerIngredient, strict bool) []common.MatchedIngredient {
	match := matchFunc(termsMatch)
	if strict {
		match = termsMatchStrict
	}

	matched := make([]common.MatchedIngredient, 0)
	seen := make(map[string]bool, len(triggers))

	for _, candidate := range candidates {
		normalized := Normalize(candidate)
		if normalized == "" {
			// 純標點的片段正規化後為空，空字串會包含在任何字串中，直接跳過
			continue
		}
		for i := range triggers {
			trigger := &triggers[i]
			if seen[trigger.Slug] {
				continue
			}
			if !triggerMatches(normalized, trigger, match) {
				continue
			}
			seen[trigger.Slug] = true
			matched = append(matched, common.MatchedIngredient{
				Name:        trigger.Name,
				Slug:        trigger.Slug,
				Categories:  trigger.Categories,
				Severity:    clampSeverity(trigger.Severity),
				Notes:       trigger.Notes,
				MatchedTerm: candidate,
			})
		}
	}
	return matched
}

// triggerMatches 檢查候選是否命中刺激成分的正式名稱或任一別名
func triggerMatches(candidate string, trigger *common.TriggerIngredient, match matchFunc) bool {
	if match(candidate, Normalize(trigger.Name)) {
		return true
	}
	for _, alias := range trigger.Aliases {
		if match(candidate, Normalize(alias)) {
			return true
		}
	}
	return false
}
