// Package engine implements the bilingual content-moderation engine:
// profanity, phone-number, PII, spam and external-contact detection with
// severity aggregation, optional redaction and localized suggestions.
//
// All dictionaries and patterns are compiled once at package init and
// never mutated, so one Engine is safe for concurrent use. Each Filter
// call allocates only call-local data.
package engine

import (
	"strings"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

// Engine is an immutable filter instance plus a hot-swappable custom word
// list curated by moderators.
type Engine struct {
	opt    Options
	custom *customWords
}

// New creates an engine with the given instance options.
func New(opt Options) *Engine {
	return &Engine{
		opt:    opt.withDefaults(),
		custom: newCustomWords(),
	}
}

// Filter screens text with the instance options.
func (e *Engine) Filter(text string) models.Result {
	return e.FilterWithOptions(text, e.opt)
}

// ShouldBlock reports whether text must be rejected outright.
func (e *Engine) ShouldBlock(text string) bool {
	return e.Filter(text).Blocked
}

// FilterWithOptions screens text with per-call options. Every enabled
// matcher runs over the full text unconditionally; there is no early exit,
// so Violations always reflects the complete picture.
func (e *Engine) FilterWithOptions(text string, opt Options) models.Result {
	opt = opt.withDefaults()

	if strings.TrimSpace(text) == "" {
		return models.Result{Severity: models.SeverityNone, Violations: []models.Violation{}}
	}

	lang := opt.Language
	if lang == models.LanguageAuto {
		lang = DetectLanguage(text)
	}

	// Non-nil so a clean result serializes as an empty array.
	violations := []models.Violation{}
	if !opt.DisableProfanity {
		violations = append(violations, e.matchProfanity(text)...)
	}
	if !opt.DisablePhoneNumbers {
		violations = append(violations, e.matchPhone(text)...)
	}
	if !opt.DisablePII {
		violations = append(violations, e.matchPII(text, opt)...)
	}
	if !opt.DisableSpam {
		violations = append(violations, e.matchSpam(text)...)
	}
	if !opt.DisableExternalLinks {
		violations = append(violations, e.matchLinks(text)...)
	}

	severity := models.MaxSeverity(violations)
	result := models.Result{
		Blocked:     severity >= models.SeverityHigh || (opt.StrictMode && len(violations) > 0),
		Severity:    severity,
		Violations:  violations,
		Suggestions: buildSuggestions(lang, violations),
	}
	if opt.Sanitize && len(violations) > 0 {
		result.SanitizedText = sanitizeText(text, violations, opt.MaskRune)
	}
	return result
}

// AddCustomWord inserts one moderator-curated word into the exact-token
// pass. Returns false when the word was already present or empty.
func (e *Engine) AddCustomWord(word string) bool {
	return e.custom.add(word)
}

// RemoveCustomWord deletes one custom word.
func (e *Engine) RemoveCustomWord(word string) bool {
	return e.custom.remove(word)
}

// ReplaceCustomWords replaces the whole custom set atomically.
func (e *Engine) ReplaceCustomWords(words []string) {
	e.custom.replaceAll(words)
}

// CustomWordCount returns the number of custom words.
func (e *Engine) CustomWordCount() int {
	return e.custom.count()
}
