package core

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/weareasocialyazilim/travelmatch-moderation/engine"
	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

type mockStorage struct {
	mu    sync.Mutex
	words map[string]struct{}

	addErr error
	calls  int
}

func newMockStorage(words ...string) *mockStorage {
	m := &mockStorage{words: make(map[string]struct{})}
	for _, w := range words {
		m.words[w] = struct{}{}
	}
	return m
}

func (m *mockStorage) GetWords(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	out := make([]string, 0, len(m.words))
	for w := range m.words {
		out = append(out, w)
	}
	return out, nil
}

func (m *mockStorage) AddWord(ctx context.Context, word string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.mu.Lock()
	m.words[word] = struct{}{}
	m.mu.Unlock()
	return nil
}

func (m *mockStorage) RemoveWord(ctx context.Context, word string) error {
	m.mu.Lock()
	delete(m.words, word)
	m.mu.Unlock()
	return nil
}

func (m *mockStorage) WordExists(ctx context.Context, word string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.words[word]
	return ok, nil
}

type countingCallbacks struct {
	clean, low, medium, high, critical int
}

func (c *countingCallbacks) OnClean(context.Context, models.Result) error {
	c.clean++
	return nil
}
func (c *countingCallbacks) OnLow(context.Context, models.Result) error {
	c.low++
	return nil
}
func (c *countingCallbacks) OnMedium(context.Context, models.Result) error {
	c.medium++
	return nil
}
func (c *countingCallbacks) OnHigh(context.Context, models.Result) error {
	c.high++
	return nil
}
func (c *countingCallbacks) OnCritical(context.Context, models.Result) error {
	c.critical++
	return nil
}

func TestCheckCleanAndBlocked(t *testing.T) {
	c := New(Options{})

	clean, err := c.Check(context.Background(), "merhaba")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if clean.Blocked {
		t.Fatal("clean text must not block")
	}

	blocked, err := c.Check(context.Background(), "tam bir salak")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !blocked.Blocked {
		t.Fatal("profanity must block")
	}
}

func TestCheckCancelledContext(t *testing.T) {
	c := New(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Check(ctx, "merhaba"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCheckTruncatesOversizedInput(t *testing.T) {
	c := New(Options{MaxMessageSize: 32})
	// The profanity sits beyond the size limit and must be cut off.
	text := strings.Repeat("a ", 16) + "salak"
	result, err := c.Check(context.Background(), text)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Blocked {
		t.Fatal("text beyond the size limit must not be scanned")
	}
}

func TestSyncOnceLoadsWords(t *testing.T) {
	st := newMockStorage("kötükelime")
	c := New(Options{Storage: st})

	if err := c.SyncOnce(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if c.CustomWordCount() != 1 {
		t.Fatalf("expected 1 word, got %d", c.CustomWordCount())
	}

	result, err := c.Check(context.Background(), "bu kötükelime yasak")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !result.Blocked {
		t.Fatal("synced custom word must block")
	}
}

func TestSyncOnceNoSource(t *testing.T) {
	c := New(Options{})
	if err := c.SyncOnce(context.Background()); err == nil {
		t.Fatal("expected error without a word source")
	}
}

func TestSyncOncePurgesCache(t *testing.T) {
	st := newMockStorage()
	c := New(Options{Storage: st})

	first, err := c.Check(context.Background(), "yeni kelime")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if first.Blocked {
		t.Fatal("word not yet listed")
	}

	st.AddWord(context.Background(), "kelime")
	if err := c.SyncOnce(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}

	second, err := c.Check(context.Background(), "yeni kelime")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !second.Blocked {
		t.Fatal("stale cached result served after sync")
	}
}

func TestAddRemoveWord(t *testing.T) {
	st := newMockStorage()
	c := New(Options{Storage: st})

	if err := c.AddWord(context.Background(), " YasakKelime "); err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.CustomWordCount() != 1 {
		t.Fatalf("expected 1 word, got %d", c.CustomWordCount())
	}
	if ok, _ := st.WordExists(context.Background(), "yasakkelime"); !ok {
		t.Fatal("word not persisted to storage")
	}

	if err := c.RemoveWord(context.Background(), "yasakkelime"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if c.CustomWordCount() != 0 {
		t.Fatalf("expected 0 words, got %d", c.CustomWordCount())
	}
}

func TestAddWordEmptyRejected(t *testing.T) {
	c := New(Options{})
	if err := c.AddWord(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty word")
	}
}

func TestAddWordStorageFailureNotApplied(t *testing.T) {
	st := newMockStorage()
	st.addErr = errors.New("db down")
	c := New(Options{Storage: st})

	if err := c.AddWord(context.Background(), "kelime"); err == nil {
		t.Fatal("expected storage error")
	}
	if c.CustomWordCount() != 0 {
		t.Fatal("word must not apply when persistence fails")
	}
}

func TestCallbacksBySeverity(t *testing.T) {
	cb := &countingCallbacks{}
	c := New(Options{CallbackHandler: cb, DisableCache: true})

	texts := map[string]*int{
		"günaydın":                   &cb.clean,
		"profilim @gezgin_ali":       &cb.medium,
		"numaram 0532 123 45 67":     &cb.high,
		"kartım 4532015112830366":    &cb.critical,
	}
	for text, counter := range texts {
		before := *counter
		if _, err := c.Check(context.Background(), text); err != nil {
			t.Fatalf("check %q: %v", text, err)
		}
		if *counter != before+1 {
			t.Fatalf("callback for %q not invoked", text)
		}
	}
}

func TestEventDispatch(t *testing.T) {
	c := New(Options{DisableCache: true})

	var events []EventName
	handler := func(name EventName) EventHandler {
		return func(ctx context.Context, event FilterEvent) error {
			events = append(events, name)
			return nil
		}
	}
	if err := c.OnAllowClean(handler(EventAllowClean)); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := c.OnBlockHigh(handler(EventBlockHigh)); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := c.Check(context.Background(), "selam"); err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, err := c.Check(context.Background(), "ara beni 0532 123 45 67"); err != nil {
		t.Fatalf("check: %v", err)
	}

	if len(events) != 2 || events[0] != EventAllowClean || events[1] != EventBlockHigh {
		t.Fatalf("unexpected events %v", events)
	}
}

func TestOnNilHandlerRejected(t *testing.T) {
	c := New(Options{})
	if err := c.On(EventAllowClean, nil); err == nil {
		t.Fatal("expected error for nil handler")
	}
}

func TestEventPayloadCategories(t *testing.T) {
	c := New(Options{DisableCache: true})

	var got FilterEvent
	err := c.OnBlockHigh(func(ctx context.Context, event FilterEvent) error {
		got = event
		return nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := c.Check(context.Background(), "salak herif, yaz bana 0532 123 45 67"); err != nil {
		t.Fatalf("check: %v", err)
	}

	if !got.Blocked {
		t.Fatal("expected blocked payload")
	}
	if got.ViolationCount < 2 {
		t.Fatalf("expected at least 2 violations, got %d", got.ViolationCount)
	}
	want := map[models.Category]bool{models.CategoryBadWord: true, models.CategoryPhoneNumber: true}
	for _, cat := range got.Categories {
		delete(want, cat)
	}
	if len(want) != 0 {
		t.Fatalf("missing categories %v in %v", want, got.Categories)
	}
}

func TestMetrics(t *testing.T) {
	c := New(Options{DisableCache: true})

	if _, err := c.Check(context.Background(), "selam"); err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, err := c.Check(context.Background(), "selam"); err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, err := c.Check(context.Background(), "tam bir salak"); err != nil {
		t.Fatalf("check: %v", err)
	}

	m := c.Metrics()
	if m[models.SeverityNone] != 2 {
		t.Fatalf("expected 2 clean, got %d", m[models.SeverityNone])
	}
	if m[models.SeverityHigh] != 1 {
		t.Fatalf("expected 1 high, got %d", m[models.SeverityHigh])
	}
}

func TestMetricsCountCacheHits(t *testing.T) {
	c := New(Options{})
	for i := 0; i < 3; i++ {
		if _, err := c.Check(context.Background(), "aynı mesaj"); err != nil {
			t.Fatalf("check: %v", err)
		}
	}
	if got := c.Metrics()[models.SeverityNone]; got != 3 {
		t.Fatalf("expected 3 processed, got %d", got)
	}
}

func TestCheckBatch(t *testing.T) {
	c := New(Options{})
	results, err := c.CheckBatch(context.Background(), []string{"selam", "salak"})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Blocked || !results[1].Blocked {
		t.Fatalf("unexpected outcomes %+v", results)
	}

	empty, err := c.CheckBatch(context.Background(), nil)
	if err != nil || empty != nil {
		t.Fatalf("empty batch: %v, %v", empty, err)
	}
}

func TestCheckWithOptionsOverride(t *testing.T) {
	c := New(Options{})
	text := "tam bir salak"

	blocked, err := c.Check(context.Background(), text)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !blocked.Blocked {
		t.Fatal("expected block with defaults")
	}

	relaxed, err := c.CheckWithOptions(context.Background(), text, engine.Options{DisableProfanity: true})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if relaxed.Blocked {
		t.Fatal("profanity disabled per call but still blocked")
	}
}

func TestCheckWithOptionsCacheCoversMaskRune(t *testing.T) {
	c := New(Options{})
	text := "ara beni 0532 123 45 67"

	first, err := c.CheckWithOptions(context.Background(), text, engine.Options{Sanitize: true, MaskRune: '#'})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(first.SanitizedText, "#") {
		t.Fatalf("expected '#' mask, got %q", first.SanitizedText)
	}

	second, err := c.CheckWithOptions(context.Background(), text, engine.Options{Sanitize: true, MaskRune: '*'})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if strings.Contains(second.SanitizedText, "#") {
		t.Fatalf("stale cache: asked for '*' mask, got %q", second.SanitizedText)
	}
	if !strings.Contains(second.SanitizedText, "*") {
		t.Fatalf("expected '*' mask, got %q", second.SanitizedText)
	}
}

func TestCheckWithOptionsCacheCoversReservedHandles(t *testing.T) {
	c := New(Options{})
	text := "yaz bana @gezgin_ali"

	first, err := c.Check(context.Background(), text)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(first.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", first.Violations)
	}

	exempt, err := c.CheckWithOptions(context.Background(), text, engine.Options{
		ReservedHandles: []string{"gezgin_ali"},
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(exempt.Violations) != 0 {
		t.Fatalf("stale cache: exempted handle still reported: %v", exempt.Violations)
	}
}

func TestCheckTruncationKeepsRuneBoundary(t *testing.T) {
	c := New(Options{MaxMessageSize: 12})
	// The 'ç' starts at byte 11 and spans the size limit; the cut must
	// back up to the rune boundary instead of leaving a stray lead byte.
	text := "salak aaaaaçok"

	result, err := c.CheckWithOptions(context.Background(), text, engine.Options{Sanitize: true})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !result.Blocked {
		t.Fatal("profanity before the limit must still block")
	}
	if !utf8.ValidString(result.SanitizedText) {
		t.Fatalf("truncation produced invalid UTF-8: %q", result.SanitizedText)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	st := newMockStorage("kelime")
	c := New(Options{Storage: st, SyncInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not stop after cancel")
	}

	st.mu.Lock()
	calls := st.calls
	st.mu.Unlock()
	if calls < 2 {
		t.Fatalf("expected periodic syncs, got %d calls", calls)
	}
}
