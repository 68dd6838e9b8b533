package interfaces

import (
	"context"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

// WordSource supplies the custom moderation word list.
type WordSource interface {
	GetWords(ctx context.Context) ([]string, error)
}

// Storage persists moderator-curated words.
type Storage interface {
	WordSource
	AddWord(ctx context.Context, word string) error
	RemoveWord(ctx context.Context, word string) error
	WordExists(ctx context.Context, word string) (bool, error)
}

// CallbackHandler handles filter results by overall severity.
type CallbackHandler interface {
	OnClean(ctx context.Context, result models.Result) error
	OnLow(ctx context.Context, result models.Result) error
	OnMedium(ctx context.Context, result models.Result) error
	OnHigh(ctx context.Context, result models.Result) error
	OnCritical(ctx context.Context, result models.Result) error
}

// ProcessedHandler handles every filter result with one method.
type ProcessedHandler interface {
	OnFiltered(ctx context.Context, result models.Result) error
}

// Logger is an optional structured logger.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}
