package engine

import (
	"regexp"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

var (
	// Messaging deep links rank above generic URLs: moving the
	// conversation to WhatsApp or Telegram is the main off-platform risk.
	messagingLinkPattern = regexp.MustCompile(`(?i)\b(?:wa\.me|api\.whatsapp\.com|chat\.whatsapp\.com|t\.me|telegram\.me)/\S+`)

	urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
)

// matchLinks scans for external links. Known messaging deep links are
// High; any other URL is Medium. A URL wrapping a messaging link reports
// once, at the higher severity.
func (e *Engine) matchLinks(text string) []models.Violation {
	var violations []models.Violation

	for _, loc := range messagingLinkPattern.FindAllStringIndex(text, -1) {
		violations = append(violations, newViolation(models.CategoryExternalContact, text[loc[0]:loc[1]], loc[0], loc[1], models.SeverityHigh))
	}

	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		if overlapsAny(violations, loc[0], loc[1]) {
			continue
		}
		violations = append(violations, newViolation(models.CategoryExternalContact, text[loc[0]:loc[1]], loc[0], loc[1], models.SeverityMedium))
	}

	return violations
}
