package engine

import (
	"regexp"
	"strings"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

var (
	// Tolerant email pattern: canonical addresses plus [at]/[dot]
	// obfuscation and stray whitespace around the separators.
	emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+-]+\s*(?:@|\[at\])\s*[a-z0-9.-]+\s*(?:\.|\[dot\])\s*[a-z]{2,}`)

	// 11-digit Turkish national ID candidate; first digit never zero.
	// Only checksum-valid candidates are reported.
	tcknPattern = regexp.MustCompile(`[1-9]\d{10}`)

	ssnPattern = regexp.MustCompile(`\d{3}-\d{2}-\d{4}`)

	ibanPattern = regexp.MustCompile(`\b[A-Z]{2}\d{2}(?: ?[A-Z0-9]){10,30}\b`)

	// Four groups of four digits with optional separators; validated via
	// Luhn before reporting.
	cardPattern = regexp.MustCompile(`(?:\d{4}[\s.-]?){3}\d{4}`)

	handlePattern = regexp.MustCompile(`(?:^|\s)(@[A-Za-z0-9_.]{2,})`)
)

// matchPII runs the independent PII checks. The @handle heuristic lives
// here but tags external_contact; platform-reserved handles are exempt.
func (e *Engine) matchPII(text string, opt Options) []models.Violation {
	var violations []models.Violation

	for _, loc := range emailPattern.FindAllStringIndex(text, -1) {
		violations = append(violations, newViolation(models.CategoryPII, text[loc[0]:loc[1]], loc[0], loc[1], models.SeverityHigh))
	}

	for _, loc := range tcknPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if !isWordBounded(text, start, end) {
			continue
		}
		if !validTCKimlik(text[start:end]) {
			continue
		}
		violations = append(violations, newViolation(models.CategoryPII, text[start:end], start, end, models.SeverityCritical))
	}

	for _, loc := range ssnPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if !isWordBounded(text, start, end) {
			continue
		}
		if !validSSN(text[start:end]) {
			continue
		}
		violations = append(violations, newViolation(models.CategoryPII, text[start:end], start, end, models.SeverityCritical))
	}

	// Format-only match; IBAN checksum validation is not performed.
	for _, loc := range ibanPattern.FindAllStringIndex(text, -1) {
		violations = append(violations, newViolation(models.CategoryPII, text[loc[0]:loc[1]], loc[0], loc[1], models.SeverityCritical))
	}

	for _, loc := range cardPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if !isWordBounded(text, start, end) {
			continue
		}
		if overlapsAny(violations, start, end) {
			continue
		}
		if !luhnValid(stripDigits(text[start:end])) {
			continue
		}
		violations = append(violations, newViolation(models.CategoryPII, text[start:end], start, end, models.SeverityCritical))
	}

	reserved := make(map[string]struct{}, len(opt.ReservedHandles))
	for _, h := range opt.ReservedHandles {
		reserved[strings.ToLower(strings.TrimPrefix(h, "@"))] = struct{}{}
	}
	for _, m := range handlePattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		for end > start && text[end-1] == '.' {
			end--
		}
		handle := strings.ToLower(text[start+1 : end])
		if len(handle) < 2 {
			continue
		}
		if _, own := reserved[handle]; own {
			continue
		}
		violations = append(violations, newViolation(models.CategoryExternalContact, text[start:end], start, end, models.SeverityMedium))
	}

	return violations
}

func stripDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validTCKimlik applies the official two-step checksum over the 11 digits.
func validTCKimlik(s string) bool {
	if len(s) != 11 || s[0] == '0' {
		return false
	}
	var d [11]int
	for i := 0; i < 11; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		d[i] = int(s[i] - '0')
	}
	odd := d[0] + d[2] + d[4] + d[6] + d[8]
	even := d[1] + d[3] + d[5] + d[7]
	check1 := (odd*7 - even) % 10
	if check1 < 0 {
		check1 += 10
	}
	if check1 != d[9] {
		return false
	}
	sum := 0
	for i := 0; i < 10; i++ {
		sum += d[i]
	}
	return sum%10 == d[10]
}

// validSSN applies the structural rules: area not 000/666/900+, group not
// 00, serial not 0000.
func validSSN(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return false
	}
	area, group, serial := parts[0], parts[1], parts[2]
	if area == "000" || area == "666" || area >= "900" {
		return false
	}
	if group == "00" || serial == "0000" {
		return false
	}
	return true
}

// luhnValid verifies a digit string with the Luhn checksum: right to left,
// every second digit doubled, doubled values above 9 reduced by 9.
func luhnValid(digits string) bool {
	if len(digits) < 13 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
