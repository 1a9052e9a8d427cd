package catalog

import (
	"sync"
	"time"
)

// Collection owns the in-memory catalog. It is created empty when the
// service starts, replaced wholesale on every full refetch, and dropped with
// the service.
type Collection struct {
	mu       sync.RWMutex
	items    []Item
	byID     map[int]int
	loaded   bool
	loadedAt time.Time
}

func NewCollection() *Collection {
	return &Collection{}
}

// Replace swaps in a new item set.
func (c *Collection) Replace(items []Item) {
	next := make([]Item, len(items))
	copy(next, items)
	index := make(map[int]int, len(next))
	for i, item := range next {
		index[item.ID] = i
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = next
	c.byID = index
	c.loaded = true
	c.loadedAt = time.Now().UTC()
}

// Snapshot returns the current item set. The slice is shared and must be
// treated as read-only; Replace never mutates a slice it has handed out.
func (c *Collection) Snapshot() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items
}

func (c *Collection) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Collection) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// ByID returns the item with the given id, if loaded.
func (c *Collection) ByID(id int) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}
