package engine

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

// separatorClass tolerates spaced-out evasion ("a p t a l", "a.p.t.a.l")
// between every character of a dictionary word.
const separatorClass = `[\s._*-]*`

var (
	profanityPatternTR = regexp.MustCompile(buildEvasionPattern(turkishProfanity))
	profanityPatternEN = regexp.MustCompile(buildEvasionPattern(englishProfanity))

	turkishWordIndex = buildWordIndex(turkishProfanity, severeTurkish)
	englishWordIndex = buildWordIndex(englishProfanity, severeEnglish)
)

// buildEvasionPattern expands every dictionary word into a per-character
// alternation: each letter becomes a class of itself plus its leetspeak
// substitutes, with optional separators in between. Longer words are
// listed first so the alternation prefers the longest hit.
func buildEvasionPattern(words []string) string {
	ordered := append([]string(nil), words...)
	sort.Slice(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })

	alternatives := make([]string, 0, len(ordered))
	for _, word := range ordered {
		var b strings.Builder
		first := true
		for _, r := range word {
			if !first {
				b.WriteString(separatorClass)
			}
			b.WriteString(charClass(r))
			first = false
		}
		alternatives = append(alternatives, b.String())
	}
	return "(?i)(?:" + strings.Join(alternatives, "|") + ")"
}

// charClass builds the character class for one dictionary letter: the
// letter itself, its ASCII base, and the base's known substitutes.
func charClass(r rune) string {
	base := foldedRune(r)
	seen := map[rune]struct{}{r: {}, base: {}}
	class := []rune{r}
	if base != r {
		class = append(class, base)
	}
	for _, sub := range leetSubstitutes[base] {
		if _, dup := seen[sub]; dup {
			continue
		}
		seen[sub] = struct{}{}
		class = append(class, sub)
	}
	var b strings.Builder
	b.WriteByte('[')
	for _, c := range class {
		switch c {
		case '\\', ']', '^', '-':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	b.WriteByte(']')
	return b.String()
}

func foldedRune(r rune) rune {
	folded := foldText(string(r))
	if folded == "" {
		return r
	}
	first, _ := utf8.DecodeRuneInString(folded)
	return first
}

// buildWordIndex maps the folded form of every dictionary word to its
// severity: Critical for the severe sub-list, High otherwise.
func buildWordIndex(words []string, severe map[string]struct{}) map[string]models.Severity {
	index := make(map[string]models.Severity, len(words))
	for _, word := range words {
		sev := models.SeverityHigh
		if _, ok := severe[word]; ok {
			sev = models.SeverityCritical
		}
		index[foldText(word)] = sev
	}
	return index
}

// matchProfanity runs both language passes over the full text: the
// evasion-resistant regex pass first, then the exact-token pass for
// anything the separator tolerance misses syntactically. Both language
// dictionaries always run; mixed-language text is expected.
func (e *Engine) matchProfanity(text string) []models.Violation {
	var violations []models.Violation

	passes := []struct {
		pattern *regexp.Regexp
		index   map[string]models.Severity
	}{
		{profanityPatternTR, turkishWordIndex},
		{profanityPatternEN, englishWordIndex},
	}

	for _, pass := range passes {
		for _, loc := range pass.pattern.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if !isWordBounded(text, start, end) {
				continue
			}
			if overlapsAny(violations, start, end) {
				continue
			}
			matched := text[start:end]
			sev, ok := pass.index[foldMatch(matched)]
			if !ok {
				sev = models.SeverityHigh
			}
			violations = append(violations, newViolation(models.CategoryBadWord, matched, start, end, sev))
		}
	}

	// Exact-token pass over normalized tokens.
	for _, raw := range tokenize(text) {
		tok := cleanToken(raw)
		if tok.text == "" {
			continue
		}
		sev, ok := turkishWordIndex[tok.text]
		if !ok {
			sev, ok = englishWordIndex[tok.text]
		}
		if !ok && e.custom.contains(tok.text) {
			sev, ok = models.SeverityHigh, true
		}
		if !ok {
			continue
		}
		if overlapsAny(violations, tok.start, tok.end) {
			continue
		}
		violations = append(violations, newViolation(models.CategoryBadWord, text[tok.start:tok.end], tok.start, tok.end, sev))
	}

	return violations
}

// isWordBounded reports whether [start, end) is not embedded inside a
// larger run of letters or digits. Checked in Go rather than with \b so
// Turkish letters count as word characters.
func isWordBounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func overlapsAny(violations []models.Violation, start, end int) bool {
	for _, v := range violations {
		if start < v.Span.End && v.Span.Start < end {
			return true
		}
	}
	return false
}

func newViolation(cat models.Category, matched string, start, end int, sev models.Severity) models.Violation {
	msg := violationMessages[string(cat)]
	return models.Violation{
		Category:    cat,
		MatchedText: matched,
		Span:        models.Span{Start: start, End: end},
		Severity:    sev,
		MessageTR:   msg.tr,
		MessageEN:   msg.en,
	}
}
