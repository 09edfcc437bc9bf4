package cache

import (
	"container/list"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// Defaults applied by New when the corresponding option is not given.
const (
	DefaultMaxEntryWeight = 8192
	DefaultMaxErrors      = 16
)

// perErrorOverhead approximates the bookkeeping cost of one stored error
// beyond its message text.
const perErrorOverhead = 48

// Entry is one cached formatting result: the text, the diagnostics that
// accompanied it, and the weight both were admitted at.
type Entry struct {
	Text   string
	Errors []error
	Weight int
}

// Stats is a point-in-time snapshot of the cache counters.
type Stats struct {
	Size            int
	MaxSize         int
	Hits            uint64
	Misses          uint64
	UnhashableSkips uint64
	OversizeSkips   uint64
	ErrorBloatSkips uint64
}

// Cache maps formatting-call coordinates to their results. Entries are
// bounded in count by LRU eviction and individually bounded in weight, so a
// burst of pathological calls cannot churn useful entries out or balloon a
// single slot. Safe for concurrent use.
type Cache struct {
	mu             sync.Mutex
	capacity       int
	maxEntryWeight int
	maxErrors      int
	writeOnce      bool

	items    map[key]*list.Element
	eviction *list.List // front is most recently used

	hits            atomic.Uint64
	misses          atomic.Uint64
	unhashableSkips atomic.Uint64
	oversizeSkips   atomic.Uint64
	errorBloatSkips atomic.Uint64
}

type cacheItem struct {
	key   key
	entry Entry
}

// New creates a cache holding at most maxSize entries.
func New(maxSize int, opts ...Option) (*Cache, error) {
	c := &Cache{
		capacity:       maxSize,
		maxEntryWeight: DefaultMaxEntryWeight,
		maxErrors:      DefaultMaxErrors,
		items:          make(map[key]*list.Element),
		eviction:       list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.capacity <= 0 {
		return nil, fmt.Errorf("cache: max size must be positive, got %d", c.capacity)
	}
	if c.maxEntryWeight <= 0 {
		return nil, fmt.Errorf("cache: max entry weight must be positive, got %d", c.maxEntryWeight)
	}
	if c.maxErrors <= 0 {
		return nil, fmt.Errorf("cache: max errors per entry must be positive, got %d", c.maxErrors)
	}
	return c, nil
}

// Get looks up the result of a formatting call. An argument payload that
// cannot be canonicalized counts as an unhashable skip and always misses;
// the caller just resolves without caching.
func (c *Cache) Get(id, attribute, locale string, strict bool, args map[string]any) (Entry, bool) {
	k, err := buildKey(id, attribute, locale, strict, args)
	if err != nil {
		c.unhashableSkips.Add(1)
		return Entry{}, false
	}

	c.mu.Lock()
	el, ok := c.items[k]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		return Entry{}, false
	}
	c.eviction.MoveToFront(el)
	e := el.Value.(*cacheItem).entry
	c.mu.Unlock()

	c.hits.Add(1)
	// Callers get their own slice; the stored one must stay untouched.
	e.Errors = slices.Clone(e.Errors)
	return e, true
}

// Put stores the result of a formatting call. Entries heavier than the
// per-entry bound or carrying more diagnostics than the error cap are
// rejected and counted, not stored. With write-once enabled, the first
// entry for a key stays authoritative until Clear.
func (c *Cache) Put(id, attribute, locale string, strict bool, args map[string]any, text string, errs []error) {
	k, err := buildKey(id, attribute, locale, strict, args)
	if err != nil {
		c.unhashableSkips.Add(1)
		return
	}

	w := entryWeight(text, errs)
	if w > c.maxEntryWeight {
		c.oversizeSkips.Add(1)
		return
	}
	if len(errs) > c.maxErrors {
		c.errorBloatSkips.Add(1)
		return
	}
	e := Entry{Text: text, Errors: slices.Clone(errs), Weight: w}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[k]; ok {
		if c.writeOnce {
			return
		}
		el.Value.(*cacheItem).entry = e
		c.eviction.MoveToFront(el)
		return
	}

	if c.eviction.Len() >= c.capacity {
		if back := c.eviction.Back(); back != nil {
			delete(c.items, back.Value.(*cacheItem).key)
			c.eviction.Remove(back)
		}
	}
	c.items[k] = c.eviction.PushFront(&cacheItem{key: k, entry: e})
}

// Clear drops every entry and resets all counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	clear(c.items)
	c.eviction.Init()
	c.mu.Unlock()

	c.hits.Store(0)
	c.misses.Store(0)
	c.unhashableSkips.Store(0)
	c.oversizeSkips.Store(0)
	c.errorBloatSkips.Store(0)
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()

	return Stats{
		Size:            size,
		MaxSize:         c.capacity,
		Hits:            c.hits.Load(),
		Misses:          c.misses.Load(),
		UnhashableSkips: c.unhashableSkips.Load(),
		OversizeSkips:   c.oversizeSkips.Load(),
		ErrorBloatSkips: c.errorBloatSkips.Load(),
	}
}

func entryWeight(text string, errs []error) int {
	w := len(text)
	for _, err := range errs {
		w += perErrorOverhead
		if err != nil {
			w += len(err.Error())
		}
	}
	return w
}
