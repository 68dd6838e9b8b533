package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

// DetectLanguage classifies text as Turkish or English. Turkish-specific
// letters decide immediately; otherwise the presence of common Turkish
// function words tips the scale. Cheap, deterministic, no failure mode.
func DetectLanguage(text string) models.Language {
	if strings.ContainsAny(text, turkishLetters) {
		return models.LanguageTurkish
	}
	for _, field := range strings.Fields(text) {
		word := strings.ToLower(strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r)
		}))
		if _, ok := turkishFunctionWords[word]; ok {
			return models.LanguageTurkish
		}
	}
	return models.LanguageEnglish
}

// foldText lowercases and folds Turkish diacritics onto ASCII bases.
func foldText(s string) string {
	return strings.ToLower(turkishFold.Replace(s))
}

// foldMatch normalizes a raw regex match for dictionary lookup: separators
// removed, leetspeak substitutes mapped back, diacritics folded.
func foldMatch(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if isSeparatorRune(r) {
			continue
		}
		if base, ok := leetFold[unicode.ToLower(r)]; ok {
			r = base
		}
		b.WriteRune(r)
	}
	return foldText(b.String())
}

func isSeparatorRune(r rune) bool {
	return unicode.IsSpace(r) || r == '.' || r == '_' || r == '-' || r == '*'
}

// token is one whitespace-delimited word with byte offsets into the
// original text.
type token struct {
	start int
	end   int
	text  string
}

// tokenize splits text on whitespace, keeping byte offsets.
func tokenize(text string) []token {
	out := make([]token, 0, 16)
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start != -1 {
				out = append(out, token{start: start, end: i, text: text[start:i]})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		out = append(out, token{start: start, end: len(text), text: text[start:]})
	}
	return out
}

// cleanToken strips surrounding non-letter runes and returns the folded
// letter content for dictionary lookups. Offsets track the trimmed region.
func cleanToken(t token) token {
	s := t.text
	lead := 0
	for lead < len(s) {
		r, size := utf8.DecodeRuneInString(s[lead:])
		if unicode.IsLetter(r) {
			break
		}
		lead += size
	}
	trail := len(s)
	for trail > lead {
		r, size := utf8.DecodeLastRuneInString(s[lead:trail])
		if unicode.IsLetter(r) {
			break
		}
		trail -= size
	}
	return token{
		start: t.start + lead,
		end:   t.start + trail,
		text:  foldText(s[lead:trail]),
	}
}
