package cache

// Option configures a Cache. Bounds are validated by New after all options
// apply.
type Option func(*Cache)

// WithMaxEntryWeight bounds the admitted weight of a single entry: text
// bytes plus a per-error estimate. Heavier results are computed but not
// cached.
func WithMaxEntryWeight(w int) Option {
	return func(c *Cache) { c.maxEntryWeight = w }
}

// WithMaxErrorsPerEntry bounds how many diagnostics an entry may carry.
// Results from failure storms stay out of the cache instead of evicting
// healthy entries.
func WithMaxErrorsPerEntry(n int) Option {
	return func(c *Cache) { c.maxErrors = n }
}

// WithWriteOnce makes the first entry stored under a key authoritative:
// later puts for the same key are silent no-ops until Clear.
func WithWriteOnce() Option {
	return func(c *Cache) { c.writeOnce = true }
}
