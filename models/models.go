package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category identifies the rule family that produced a violation.
type Category string

const (
	CategoryBadWord         Category = "bad_word"
	CategoryPhoneNumber     Category = "phone_number"
	CategoryPII             Category = "pii"
	CategorySpam            Category = "spam"
	CategoryExternalContact Category = "external_contact"
)

// Severity ranks violations: None < Low < Medium < High < Critical.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = [...]string{"none", "low", "medium", "high", "critical"}

// Valid returns true when severity is in range [None..Critical].
func (s Severity) Valid() bool {
	return s >= SeverityNone && s <= SeverityCritical
}

func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalJSON encodes severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("models: invalid severity %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts both the string name and the numeric form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, ok := ParseSeverity(name)
		if !ok {
			return fmt.Errorf("models: unknown severity %q", name)
		}
		*s = parsed
		return nil
	}
	var num int
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("models: unsupported severity format")
	}
	parsed := Severity(num)
	if !parsed.Valid() {
		return fmt.Errorf("models: invalid severity %d", num)
	}
	*s = parsed
	return nil
}

// ParseSeverity resolves a lowercase severity name.
func ParseSeverity(name string) (Severity, bool) {
	for i, n := range severityNames {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return Severity(i), true
		}
	}
	return SeverityNone, false
}

// Language selects the dictionaries and localized output of the engine.
type Language int

const (
	LanguageAuto Language = iota
	LanguageTurkish
	LanguageEnglish
)

func (l Language) String() string {
	switch l {
	case LanguageTurkish:
		return "tr"
	case LanguageEnglish:
		return "en"
	default:
		return "auto"
	}
}

// ParseLanguage resolves "tr", "en" or "auto". Unknown values map to auto.
func ParseLanguage(name string) Language {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tr", "turkish":
		return LanguageTurkish
	case "en", "english":
		return LanguageEnglish
	default:
		return LanguageAuto
	}
}

// Span is a half-open byte range [Start, End) into the original text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Violation is one detected issue. Immutable once produced.
type Violation struct {
	Category    Category `json:"category"`
	MatchedText string   `json:"matched_text"`
	Span        Span     `json:"span"`
	Severity    Severity `json:"severity"`
	MessageTR   string   `json:"message_tr"`
	MessageEN   string   `json:"message_en"`
}

// Result is the aggregate outcome of one filter call.
type Result struct {
	Blocked       bool        `json:"blocked"`
	Severity      Severity    `json:"severity"`
	Violations    []Violation `json:"violations"`
	SanitizedText string      `json:"sanitized_text,omitempty"`
	Suggestions   []string    `json:"suggestions,omitempty"`
}

// MaxSeverity folds a violation list into the overall severity.
func MaxSeverity(violations []Violation) Severity {
	max := SeverityNone
	for _, v := range violations {
		if v.Severity > max {
			max = v.Severity
		}
	}
	return max
}
