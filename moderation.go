package moderation

import (
	"context"
	"sync"

	"github.com/weareasocialyazilim/travelmatch-moderation/core"
	"github.com/weareasocialyazilim/travelmatch-moderation/engine"
	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

// Re-export core API at module root for convenient imports.
type (
	Core          = core.Core
	Options       = core.Options
	FilterOptions = engine.Options
	EventName     = core.EventName
	FilterEvent   = core.FilterEvent
	EventHandler  = core.EventHandler

	Result    = models.Result
	Violation = models.Violation
	Category  = models.Category
	Severity  = models.Severity
	Language  = models.Language
)

const (
	EventAllowClean    = core.EventAllowClean
	EventFlagLow       = core.EventFlagLow
	EventFlagMedium    = core.EventFlagMedium
	EventBlockHigh     = core.EventBlockHigh
	EventBlockCritical = core.EventBlockCritical

	SeverityNone     = models.SeverityNone
	SeverityLow      = models.SeverityLow
	SeverityMedium   = models.SeverityMedium
	SeverityHigh     = models.SeverityHigh
	SeverityCritical = models.SeverityCritical

	CategoryBadWord         = models.CategoryBadWord
	CategoryPhoneNumber     = models.CategoryPhoneNumber
	CategoryPII             = models.CategoryPII
	CategorySpam            = models.CategorySpam
	CategoryExternalContact = models.CategoryExternalContact

	LanguageAuto    = models.LanguageAuto
	LanguageTurkish = models.LanguageTurkish
	LanguageEnglish = models.LanguageEnglish
)

// New creates a new moderation core.
func New(opt Options) *Core {
	return core.New(opt)
}

var (
	defaultOnce sync.Once
	defaultCore *Core
)

func defaultInstance() *Core {
	defaultOnce.Do(func() {
		defaultCore = core.New(core.Options{})
	})
	return defaultCore
}

// FilterContent screens text with the default settings: all categories
// enabled, automatic language detection, no sanitization.
func FilterContent(text string) Result {
	result, _ := defaultInstance().Check(context.Background(), text)
	return result
}

// ShouldBlockContent reports whether text must be rejected outright.
func ShouldBlockContent(text string) bool {
	return FilterContent(text).Blocked
}
