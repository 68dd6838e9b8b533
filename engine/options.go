package engine

import "github.com/weareasocialyazilim/travelmatch-moderation/models"

const defaultMaskRune = '*'

// Options configure one filter pass. The zero value enables every
// category with automatic language detection and no sanitization, which
// matches the platform defaults.
type Options struct {
	// Language forces Turkish or English output; Auto detects per call.
	Language models.Language

	// Category toggles. Zero value means enabled.
	DisableProfanity     bool
	DisablePhoneNumbers  bool
	DisablePII           bool
	DisableSpam          bool
	DisableExternalLinks bool

	// Sanitize fills Result.SanitizedText with violating spans masked.
	Sanitize bool

	// StrictMode blocks on any violation regardless of severity.
	StrictMode bool

	// ReservedHandles are the platform's own social handles, exempt from
	// the @handle heuristic. Defaults to the TravelMatch handle.
	ReservedHandles []string

	// MaskRune is the sanitizer mask character. Defaults to '*'.
	MaskRune rune
}

func (o Options) withDefaults() Options {
	if o.ReservedHandles == nil {
		o.ReservedHandles = defaultReservedHandles
	}
	if o.MaskRune == 0 {
		o.MaskRune = defaultMaskRune
	}
	return o
}
