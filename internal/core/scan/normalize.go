package scan

import (
	"regexp"
	"strings"
)

var (
	// 移除所有非字元且非空白的字符（標點符號）
	nonWordPattern = regexp.MustCompile(`[^\w\s]+`)
	// 成分列表的分隔符：逗號、分號、換行的連續序列
	separatorPattern = regexp.MustCompile(`[,;\n]+`)
)

// Normalize 正規化成分字串：移除標點、轉小寫、去除前後空白。
// 參考資料與輸入端都走同一條正規化，比對才會對稱。
func Normalize(s string) string {
	s = nonWordPattern.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	return strings.TrimSpace(s)
}

// ParseIngredientList 將原始成分列表切成獨立的候選名稱。
// 保留輸入順序，空白片段一律丟棄。
func ParseIngredientList(raw string) []string {
	parts := separatorPattern.Split(raw, -1)
	candidates := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		candidates = append(candidates, part)
	}
	return candidates
}
