package engine

import (
	"regexp"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

// spamPatterns is a fixed bilingual list of phrase and keyword patterns:
// prize/lottery language, urgency language, discount percentages,
// follow-bait and shortened-URL domains. Every hit is Medium. Word
// boundaries are checked in Go; \b would not work next to Turkish
// letters.
var spamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:kazandınız|kazandiniz|çekiliş|cekilis|bedava|hediye kazan|ödül kazan|odul kazan)`),
	regexp.MustCompile(`(?i)(?:you (?:have )?won|winner|lottery|free (?:prize|gift)|congratulations)`),
	regexp.MustCompile(`(?i)(?:hemen tıkla|hemen tikla|acele et|son (?:gün|gun|şans|sans)|sınırlı süre|sinirli sure)`),
	regexp.MustCompile(`(?i)(?:act now|limited time(?: offer)?|hurry up|click (?:here|now))`),
	regexp.MustCompile(`(?i)%\s?\d{1,3}\s?(?:indirim|indirimli)`),
	regexp.MustCompile(`(?i)\b\d{1,3}\s?%\s?(?:off|discount)`),
	regexp.MustCompile(`(?i)\b(?:takip|follow)\b.{0,40}\b(?:et|edin|back)\b`),
	regexp.MustCompile(`(?i)\b(?:bit\.ly|tinyurl\.com|goo\.gl|t\.co|ow\.ly|cutt\.ly)/\S+`),
}

func (e *Engine) matchSpam(text string) []models.Violation {
	var violations []models.Violation
	for _, pattern := range spamPatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			if !isWordBounded(text, loc[0], loc[1]) {
				continue
			}
			violations = append(violations, newViolation(models.CategorySpam, text[loc[0]:loc[1]], loc[0], loc[1], models.SeverityMedium))
		}
	}
	return violations
}
