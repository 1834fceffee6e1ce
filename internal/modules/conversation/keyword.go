// README: Rule-based food keyword extraction from free text.
package conversation

import (
	"sort"
	"strings"
)

// foodPrefixes are the spoken lead-ins that precede a food keyword.
// Matching tries longer prefixes first so 我想吃 wins over 想吃.
var foodPrefixes = func() []string {
	prefixes := []string{
		"我想吃", "想吃", "我要吃", "要吃",
		"我喜歡", "喜歡吃", "我愛", "愛吃",
		"我想來", "想來", "我要來", "要來",
		"我想點", "想點", "我要點", "要點",
		"我想要", "想要",
	}
	sort.SliceStable(prefixes, func(i, j int) bool {
		return len([]rune(prefixes[i])) > len([]rune(prefixes[j]))
	})
	return prefixes
}()

// recommendationTriggers mark a turn as asking for a suggestion rather
// than naming a dish.
var recommendationTriggers = []string{"推薦", "建議", "你覺得"}

// ExtractFoodKeyword pulls the food keyword out of a sentence like
// 我想吃拉麵. When no prefix matches, the trimmed text itself is the
// keyword. Returns "" only for blank input or a prefix with nothing
// after it.
func ExtractFoodKeyword(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	for _, prefix := range foodPrefixes {
		idx := strings.Index(trimmed, prefix)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(trimmed[idx+len(prefix):])
		if rest == "" {
			continue
		}
		return rest
	}
	return trimmed
}

// WantsRecommendation reports whether the text asks the bot to pick
// for the user instead of naming a cuisine.
func WantsRecommendation(text string) bool {
	for _, trigger := range recommendationTriggers {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	return false
}
