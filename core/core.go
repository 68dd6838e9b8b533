// Package core wraps the moderation engine with the service-side
// plumbing: custom word-list sync, result caching, severity callbacks and
// in-process metrics.
package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/weareasocialyazilim/travelmatch-moderation/engine"
	"github.com/weareasocialyazilim/travelmatch-moderation/interfaces"
	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

const (
	defaultSyncInterval   = 5 * time.Minute
	defaultMaxMessageSize = 4 * KB
	defaultCacheTTL       = 1 * time.Hour
	defaultCacheMaxBytes  = 32 * MB
)

// EventName is a callback bus event, one per overall severity.
type EventName string

const (
	EventAllowClean    EventName = "allow_clean"
	EventFlagLow       EventName = "flag_low"
	EventFlagMedium    EventName = "flag_medium"
	EventBlockHigh     EventName = "block_high"
	EventBlockCritical EventName = "block_critical"
)

// FilterEvent is the callback bus payload. It carries the decision, not
// the screened text.
type FilterEvent struct {
	Blocked        bool
	Severity       models.Severity
	Categories     []models.Category
	ViolationCount int
}

// EventHandler handles one moderation event.
type EventHandler func(ctx context.Context, event FilterEvent) error

// Options configure the core filter.
type Options struct {
	Filter          engine.Options
	Storage         interfaces.Storage
	Source          interfaces.WordSource
	CallbackHandler interfaces.CallbackHandler
	Processed       interfaces.ProcessedHandler
	Logger          interfaces.Logger

	SyncInterval   time.Duration
	MaxMessageSize int
	CacheTTL       time.Duration
	CacheMaxBytes  int
	DisableCache   bool
}

// Core owns an engine instance plus the word sync, cache and event
// machinery around it.
type Core struct {
	engine  *engine.Engine
	opt     engine.Options
	storage interfaces.Storage
	source  interfaces.WordSource
	cb      interfaces.CallbackHandler
	allCb   interfaces.ProcessedHandler
	logger  interfaces.Logger

	syncInterval   time.Duration
	maxMessageSize int
	cacheTTL       time.Duration
	cache          *resultCache

	eventsMu sync.RWMutex
	events   map[EventName][]EventHandler

	processed [int(models.SeverityCritical) + 1]atomic.Int64
}

// New creates a core instance. Configuration errors are returned from the
// processing methods, never here.
func New(opt Options) *Core {
	c := &Core{
		engine:         engine.New(opt.Filter),
		opt:            opt.Filter,
		cb:             noopCallbacks{},
		events:         make(map[EventName][]EventHandler, 5),
		syncInterval:   defaultSyncInterval,
		maxMessageSize: defaultMaxMessageSize,
		cacheTTL:       defaultCacheTTL,
	}

	if opt.SyncInterval > 0 {
		c.syncInterval = opt.SyncInterval
	}
	if opt.MaxMessageSize > 0 {
		c.maxMessageSize = opt.MaxMessageSize
	}
	if opt.CacheTTL > 0 {
		c.cacheTTL = opt.CacheTTL
	}
	cacheMaxBytes := defaultCacheMaxBytes
	if opt.CacheMaxBytes > 0 {
		cacheMaxBytes = opt.CacheMaxBytes
	}
	if opt.Logger != nil {
		c.logger = opt.Logger
	}
	if opt.CallbackHandler != nil {
		c.cb = opt.CallbackHandler
	}
	if opt.Processed != nil {
		c.allCb = opt.Processed
	}

	c.storage = opt.Storage
	c.source = opt.Source
	if c.source == nil {
		c.source = opt.Storage
	}
	if !opt.DisableCache {
		c.cache = newResultCache(int64(cacheMaxBytes))
		c.startCacheJanitor()
	}

	return c
}

// On registers an event handler.
func (c *Core) On(event EventName, handler EventHandler) error {
	if handler == nil {
		return errors.New("core: handler is nil")
	}
	c.eventsMu.Lock()
	c.events[event] = append(c.events[event], handler)
	c.eventsMu.Unlock()
	return nil
}

// OnAllowClean registers a handler for clean results.
func (c *Core) OnAllowClean(handler EventHandler) error {
	return c.On(EventAllowClean, handler)
}

// OnFlagLow registers a handler for low-severity results.
func (c *Core) OnFlagLow(handler EventHandler) error {
	return c.On(EventFlagLow, handler)
}

// OnFlagMedium registers a handler for medium-severity results.
func (c *Core) OnFlagMedium(handler EventHandler) error {
	return c.On(EventFlagMedium, handler)
}

// OnBlockHigh registers a handler for high-severity results.
func (c *Core) OnBlockHigh(handler EventHandler) error {
	return c.On(EventBlockHigh, handler)
}

// OnBlockCritical registers a handler for critical results.
func (c *Core) OnBlockCritical(handler EventHandler) error {
	return c.On(EventBlockCritical, handler)
}

// Run loads the custom word list and keeps it synced until context
// cancellation.
func (c *Core) Run(ctx context.Context) error {
	if err := c.SyncOnce(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(c.syncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.SyncOnce(ctx); err != nil {
				c.logWarn("word sync failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

// SyncOnce reloads the custom word list from the configured source.
func (c *Core) SyncOnce(ctx context.Context) error {
	if c.source == nil {
		return errors.New("core: word source is nil")
	}
	words, err := c.source.GetWords(ctx)
	if err != nil {
		return err
	}
	c.engine.ReplaceCustomWords(words)
	c.cache.Purge()
	return nil
}

// Check screens one text with the core's default filter options.
func (c *Core) Check(ctx context.Context, text string) (models.Result, error) {
	return c.CheckWithOptions(ctx, text, c.opt)
}

// CheckWithOptions screens one text with per-call filter options. Input
// longer than MaxMessageSize is truncated at the preceding rune boundary
// before filtering.
func (c *Core) CheckWithOptions(ctx context.Context, text string, opt engine.Options) (models.Result, error) {
	if err := c.validate(); err != nil {
		return models.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.Result{}, err
	}

	if len(text) > c.maxMessageSize {
		cut := c.maxMessageSize
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	key := cacheKey(opt, text)
	if cached, ok := c.cache.Get(key, time.Now()); ok {
		c.record(ctx, cached)
		return cached, nil
	}

	result := c.engine.FilterWithOptions(text, opt)
	c.cache.Set(key, result, c.cacheTTL, time.Now())
	c.record(ctx, result)
	return result, nil
}

// CheckBatch screens multiple texts with the default options.
func (c *Core) CheckBatch(ctx context.Context, texts []string) ([]models.Result, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out := make([]models.Result, 0, len(texts))
	for _, text := range texts {
		res, err := c.Check(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// AddWord persists one custom word and applies it to the running engine.
func (c *Core) AddWord(ctx context.Context, word string) error {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return errors.New("core: empty word")
	}
	if c.storage != nil {
		if err := c.storage.AddWord(ctx, w); err != nil {
			return err
		}
	}
	if c.engine.AddCustomWord(w) {
		c.cache.Purge()
	}
	return nil
}

// RemoveWord deletes one custom word from storage and the running engine.
func (c *Core) RemoveWord(ctx context.Context, word string) error {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return errors.New("core: empty word")
	}
	if c.storage != nil {
		if err := c.storage.RemoveWord(ctx, w); err != nil {
			return err
		}
	}
	if c.engine.RemoveCustomWord(w) {
		c.cache.Purge()
	}
	return nil
}

// CustomWordCount returns the number of in-memory custom words.
func (c *Core) CustomWordCount() int {
	return c.engine.CustomWordCount()
}

// Metrics returns the count of processed texts per overall severity.
func (c *Core) Metrics() map[models.Severity]int64 {
	out := make(map[models.Severity]int64, len(c.processed))
	for i := range c.processed {
		out[models.Severity(i)] = c.processed[i].Load()
	}
	return out
}

func (c *Core) validate() error {
	if c.maxMessageSize <= 0 {
		return fmt.Errorf("core: invalid max message size: %d", c.maxMessageSize)
	}
	return nil
}

func (c *Core) record(ctx context.Context, result models.Result) {
	sev := result.Severity
	if !sev.Valid() {
		sev = models.SeverityNone
	}
	c.processed[sev].Add(1)
	c.dispatchBySeverity(ctx, result)
	c.dispatchEvent(ctx, result)
}

func (c *Core) dispatchBySeverity(ctx context.Context, result models.Result) {
	var err error
	switch result.Severity {
	case models.SeverityNone:
		err = c.cb.OnClean(ctx, result)
	case models.SeverityLow:
		err = c.cb.OnLow(ctx, result)
	case models.SeverityMedium:
		err = c.cb.OnMedium(ctx, result)
	case models.SeverityHigh:
		err = c.cb.OnHigh(ctx, result)
	case models.SeverityCritical:
		err = c.cb.OnCritical(ctx, result)
	}
	if err != nil {
		c.logWarn("callback failed", map[string]any{"error": err.Error(), "severity": result.Severity.String()})
	}
	if c.allCb != nil {
		if err := c.allCb.OnFiltered(ctx, result); err != nil {
			c.logWarn("processed callback failed", map[string]any{"error": err.Error()})
		}
	}
}

func (c *Core) dispatchEvent(ctx context.Context, result models.Result) {
	event := eventNameFromSeverity(result.Severity)
	c.eventsMu.RLock()
	handlers := append([]EventHandler(nil), c.events[event]...)
	c.eventsMu.RUnlock()
	if len(handlers) == 0 {
		return
	}
	payload := toFilterEvent(result)
	for _, h := range handlers {
		if err := h(ctx, payload); err != nil {
			c.logWarn("event handler failed", map[string]any{"error": err.Error(), "event": event})
		}
	}
}

func eventNameFromSeverity(sev models.Severity) EventName {
	switch sev {
	case models.SeverityLow:
		return EventFlagLow
	case models.SeverityMedium:
		return EventFlagMedium
	case models.SeverityHigh:
		return EventBlockHigh
	case models.SeverityCritical:
		return EventBlockCritical
	default:
		return EventAllowClean
	}
}

func toFilterEvent(result models.Result) FilterEvent {
	categories := make([]models.Category, 0, len(result.Violations))
	seen := make(map[models.Category]struct{}, 4)
	for _, v := range result.Violations {
		if _, dup := seen[v.Category]; dup {
			continue
		}
		seen[v.Category] = struct{}{}
		categories = append(categories, v.Category)
	}
	return FilterEvent{
		Blocked:        result.Blocked,
		Severity:       result.Severity,
		Categories:     categories,
		ViolationCount: len(result.Violations),
	}
}

// cacheKey fingerprints the effective options ahead of the text so one
// cache serves different per-call configurations. Every option that can
// change the result must appear here; mask rune and reserved handles
// included.
func cacheKey(opt engine.Options, text string) string {
	var b strings.Builder
	b.Grow(len(text) + 48)
	b.WriteString(opt.Language.String())
	flags := []bool{
		opt.DisableProfanity, opt.DisablePhoneNumbers, opt.DisablePII,
		opt.DisableSpam, opt.DisableExternalLinks, opt.Sanitize, opt.StrictMode,
	}
	for _, f := range flags {
		if f {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteByte('|')
	b.WriteRune(opt.MaskRune)
	b.WriteByte('|')
	if len(opt.ReservedHandles) > 0 {
		handles := append([]string(nil), opt.ReservedHandles...)
		sort.Strings(handles)
		b.WriteString(strings.Join(handles, ","))
	}
	b.WriteByte('|')
	b.WriteString(text)
	return b.String()
}

func (c *Core) logWarn(msg string, fields map[string]any) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}

func (c *Core) startCacheJanitor() {
	if c.cache == nil {
		return
	}
	interval := time.Minute
	if c.cacheTTL > 0 && c.cacheTTL < interval {
		interval = c.cacheTTL
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.logWarn("result cache janitor panic", map[string]any{"panic": fmt.Sprint(r)})
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			c.cache.RemoveExpired(time.Now())
		}
	}()
}

type noopCallbacks struct{}

func (noopCallbacks) OnClean(context.Context, models.Result) error    { return nil }
func (noopCallbacks) OnLow(context.Context, models.Result) error      { return nil }
func (noopCallbacks) OnMedium(context.Context, models.Result) error   { return nil }
func (noopCallbacks) OnHigh(context.Context, models.Result) error     { return nil }
func (noopCallbacks) OnCritical(context.Context, models.Result) error { return nil }
