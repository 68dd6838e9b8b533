package api

import (
	"time"

	"github.com/weareasocialyazilim/travelmatch-moderation/engine"
	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

// FilterRequest is the request body shared by /v1/filter and /v1/check.
// Category toggles are pointers so that an omitted field keeps the
// category enabled.
type FilterRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
	Sanitize bool   `json:"sanitize,omitempty"`
	Strict   bool   `json:"strict,omitempty"`

	Profanity     *bool `json:"profanity,omitempty"`
	PhoneNumbers  *bool `json:"phone_numbers,omitempty"`
	PII           *bool `json:"pii,omitempty"`
	Spam          *bool `json:"spam,omitempty"`
	ExternalLinks *bool `json:"external_links,omitempty"`
}

func (req FilterRequest) filterOptions() engine.Options {
	return engine.Options{
		Language:             models.ParseLanguage(req.Language),
		Sanitize:             req.Sanitize,
		StrictMode:           req.Strict,
		DisableProfanity:     disabled(req.Profanity),
		DisablePhoneNumbers:  disabled(req.PhoneNumbers),
		DisablePII:           disabled(req.PII),
		DisableSpam:          disabled(req.Spam),
		DisableExternalLinks: disabled(req.ExternalLinks),
	}
}

func disabled(toggle *bool) bool {
	return toggle != nil && !*toggle
}

type LogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	IP         string    `json:"ip"`
	StatusCode int       `json:"status_code"`
	RequestID  string    `json:"request_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Duration   float64   `json:"duration_sec"`
	Service    string    `json:"service"`
}

// AuditEntry is what gets published to Kafka for every moderation
// decision. The text itself never leaves the service; only its SHA-256
// prefix does.
type AuditEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`
	TextSHA    string    `json:"text_sha"`
	Blocked    bool      `json:"blocked"`
	Severity   string    `json:"severity"`
	Categories []string  `json:"categories"`
	Service    string    `json:"service"`
}
