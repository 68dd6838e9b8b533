package engine

import (
	"regexp"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

// phonePatterns covers Turkish mobile (leading 5, ten digits, optional
// national/country prefix), Turkish area-code landlines and generic
// international/US formats. Most specific first: later matches overlapping
// an already-reported span are dropped so one number is one violation.
var phonePatterns = []*regexp.Regexp{
	// Turkish mobile: +90 532 123 45 67, 05321234567, 532-123-4567
	regexp.MustCompile(`(?:\+?90[\s.-]?)?0?[\s.-]?5\d{2}[\s.-]?\d{3}[\s.-]?\d{2}[\s.-]?\d{2}`),
	// Turkish landline with area code: 0212 345 67 89
	regexp.MustCompile(`(?:\+?90[\s.-]?)?0[\s.-]?[234]\d{2}[\s.-]?\d{3}[\s.-]?\d{2}[\s.-]?\d{2}`),
	// International: +44 20 7946 0958
	regexp.MustCompile(`\+\d{1,3}[\s.-]?\(?\d{1,4}\)?[\s.-]?\d{3}[\s.-]?\d{2,4}(?:[\s.-]?\d{2,4})?`),
	// US: (212) 555-0178, 212-555-0178, 212.555.0178
	regexp.MustCompile(`\(\d{3}\)[\s.-]?\d{3}[\s.-]?\d{4}|\d{3}[-.]\d{3}[-.]\d{4}`),
}

// matchPhone runs the numeric-pattern detector and the spelled-out-number
// detector. Every numeric hit is High regardless of sub-pattern.
func (e *Engine) matchPhone(text string) []models.Violation {
	var violations []models.Violation

	for _, pattern := range phonePatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if !isWordBounded(text, start, end) {
				continue
			}
			if overlapsAny(violations, start, end) {
				continue
			}
			violations = append(violations, newViolation(models.CategoryPhoneNumber, text[start:end], start, end, models.SeverityHigh))
		}
	}

	return append(violations, scanSpelledDigits(text)...)
}

// scanSpelledDigits reports runs of consecutive spelled-out digit words
// ("beş üç iki ...", "five three two ...") of spelledDigitRunMin tokens or
// more as one violation spanning the run. Shorter runs never trigger.
func scanSpelledDigits(text string) []models.Violation {
	var violations []models.Violation

	tokens := tokenize(text)
	runLen := 0
	runStart, runEnd := 0, 0

	flush := func() {
		if runLen >= spelledDigitRunMin {
			violations = append(violations, newViolation(
				models.CategoryPhoneNumber, text[runStart:runEnd], runStart, runEnd, models.SeverityHigh))
		}
		runLen = 0
	}

	for _, raw := range tokens {
		tok := cleanToken(raw)
		if _, ok := digitWords[tok.text]; !ok {
			flush()
			continue
		}
		if runLen == 0 {
			runStart = tok.start
		}
		runEnd = tok.end
		runLen++
	}
	flush()

	return violations
}
