package engine

import (
	"strings"
	"sync"
)

// customWords is the moderator-curated extension of the profanity
// dictionaries. Entries are stored in folded form and checked by the
// exact-token pass only; the static evasion regexes are never rebuilt.
type customWords struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

func newCustomWords() *customWords {
	return &customWords{words: make(map[string]struct{})}
}

func normalizeWord(word string) string {
	return foldText(strings.TrimSpace(word))
}

func (c *customWords) add(word string) bool {
	w := normalizeWord(word)
	if w == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.words[w]; exists {
		return false
	}
	c.words[w] = struct{}{}
	return true
}

func (c *customWords) remove(word string) bool {
	w := normalizeWord(word)
	if w == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.words[w]; !exists {
		return false
	}
	delete(c.words, w)
	return true
}

func (c *customWords) replaceAll(words []string) {
	next := make(map[string]struct{}, len(words))
	for _, word := range words {
		if w := normalizeWord(word); w != "" {
			next[w] = struct{}{}
		}
	}
	c.mu.Lock()
	c.words = next
	c.mu.Unlock()
}

func (c *customWords) contains(folded string) bool {
	c.mu.RLock()
	_, ok := c.words[folded]
	c.mu.RUnlock()
	return ok
}

func (c *customWords) count() int {
	c.mu.RLock()
	n := len(c.words)
	c.mu.RUnlock()
	return n
}
