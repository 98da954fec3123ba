package galleria

import (
	"sync"
	"time"

	"github.com/eringen/galleria/views"
)

// PostCache is an in-memory, per-gallery cache of page data with TTL.
type PostCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	store   *Store
}

type cacheEntry struct {
	posts   []Post
	fetched time.Time
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		store:   s,
	}
}

func (c *PostCache) valid(e cacheEntry, ok bool) bool {
	return ok && time.Since(e.fetched) < c.ttl
}

// Invalidate drops one gallery so the next read reloads it.
func (c *PostCache) Invalidate(galleryID string) {
	c.mu.Lock()
	delete(c.entries, galleryID)
	c.mu.Unlock()
}

// InvalidateAll clears every gallery.
func (c *PostCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// ListPosts returns the page data for a gallery. It tries a read lock first
// and only takes the write lock when a reload is needed. The caller must
// not modify the returned slice.
func (c *PostCache) ListPosts(galleryID string) ([]Post, error) {
	c.mu.RLock()
	e, ok := c.entries[galleryID]
	if c.valid(e, ok) {
		c.mu.RUnlock()
		return e.posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok = c.entries[galleryID]
	if c.valid(e, ok) {
		return e.posts, nil
	}
	stored, err := c.store.ListPosts(galleryID)
	if err != nil {
		return nil, err
	}
	posts := views.PageData(stored)
	c.entries[galleryID] = cacheEntry{posts: posts, fetched: time.Now()}
	return posts, nil
}
