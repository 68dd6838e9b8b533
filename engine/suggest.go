package engine

import (
	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

// buildSuggestions emits one localized guidance sentence per distinct
// violation category, in detection order.
func buildSuggestions(lang models.Language, violations []models.Violation) []string {
	if len(violations) == 0 {
		return nil
	}
	seen := make(map[models.Category]struct{}, 4)
	out := make([]string, 0, 4)
	for _, v := range violations {
		if _, done := seen[v.Category]; done {
			continue
		}
		seen[v.Category] = struct{}{}
		texts, ok := categorySuggestions[string(v.Category)]
		if !ok {
			continue
		}
		if lang == models.LanguageTurkish {
			out = append(out, texts.tr)
		} else {
			out = append(out, texts.en)
		}
	}
	return out
}
