package core

import (
	"container/list"
	"sync"
	"time"

	"github.com/weareasocialyazilim/travelmatch-moderation/models"
)

const (
	B  int = 1
	KB     = 1024 * B
	MB     = 1024 * KB
)

type resultCacheEntry struct {
	key       string
	value     models.Result
	expiresAt time.Time
	sizeBytes int
}

// resultCache is an in-memory LRU cache with TTL for filter results. The
// engine is deterministic for a fixed word list, so entries stay valid
// until the custom words change; Purge handles that.
type resultCache struct {
	mu         sync.Mutex
	maxBytes   int64
	totalBytes int64
	items      map[string]*list.Element
	lru        *list.List
}

func newResultCache(maxBytes int64) *resultCache {
	if maxBytes <= 0 {
		return nil
	}
	return &resultCache{
		maxBytes: maxBytes,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

func (c *resultCache) Get(key string, now time.Time) (models.Result, bool) {
	if c == nil || key == "" {
		return models.Result{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if !ok {
		return models.Result{}, false
	}
	entry := elem.Value.(*resultCacheEntry)
	if now.After(entry.expiresAt) {
		c.removeElement(elem)
		return models.Result{}, false
	}
	c.lru.MoveToFront(elem)
	return entry.value, true
}

func (c *resultCache) Set(key string, value models.Result, ttl time.Duration, now time.Time) {
	if c == nil || key == "" || ttl <= 0 {
		return
	}
	expiresAt := now.Add(ttl)
	newSize := estimateEntrySizeBytes(key, value)
	if int64(newSize) > c.maxBytes {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*resultCacheEntry)
		c.totalBytes -= int64(entry.sizeBytes)
		entry.value = value
		entry.expiresAt = expiresAt
		entry.sizeBytes = newSize
		c.totalBytes += int64(newSize)
		c.lru.MoveToFront(elem)
		c.evictToFitLocked()
		return
	}

	entry := &resultCacheEntry{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
		sizeBytes: newSize,
	}
	elem := c.lru.PushFront(entry)
	c.items[key] = elem
	c.totalBytes += int64(newSize)
	c.evictToFitLocked()
}

// Purge drops every entry. Called when the custom word list changes.
func (c *resultCache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.items = make(map[string]*list.Element)
	c.lru = list.New()
	c.totalBytes = 0
	c.mu.Unlock()
}

func (c *resultCache) RemoveExpired(now time.Time) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for elem := c.lru.Back(); elem != nil; {
		prev := elem.Prev()
		entry := elem.Value.(*resultCacheEntry)
		if now.After(entry.expiresAt) {
			c.removeElement(elem)
		}
		elem = prev
	}
}

func (c *resultCache) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	entry := elem.Value.(*resultCacheEntry)
	delete(c.items, entry.key)
	c.lru.Remove(elem)
	c.totalBytes -= int64(entry.sizeBytes)
	if c.totalBytes < 0 {
		c.totalBytes = 0
	}
}

func (c *resultCache) evictToFitLocked() {
	for c.totalBytes > c.maxBytes && c.lru.Len() > 0 {
		c.removeElement(c.lru.Back())
	}
}

func estimateEntrySizeBytes(key string, value models.Result) int {
	size := len(key)
	size += len(value.SanitizedText)
	for _, v := range value.Violations {
		size += len(v.MatchedText) + len(v.MessageTR) + len(v.MessageEN) + 64
	}
	for _, s := range value.Suggestions {
		size += len(s)
	}
	// Approximate scalar/object overhead.
	size += 128
	return size
}
