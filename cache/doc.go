// Package cache stores formatting results keyed by the full coordinates of
// a formatting call: message, attribute, locale, strictness, and the
// argument payload.
//
// Arguments are heterogeneous, so keys are built from a canonical
// type-tagged encoding rather than from the values' string forms. The tags
// are what keep 1, 1.0, true, and "1" in separate entries even though some
// of them print identically; collapsing them would hand one caller another
// caller's rendering. Maps and sets encode order-independently, lists keep
// their order, and both are bounded by a fixed nesting depth that also cuts
// off self-referential payloads.
//
// A payload the encoder does not recognize makes the key unavailable. That
// is not an error for the caller: the lookup just misses, the store is
// skipped, and the event is visible in Stats as an unhashable skip.
//
// # Admission and eviction
//
// The cache holds at most MaxSize entries and evicts least-recently-used
// ones. Each entry also has an individual weight (text bytes plus an
// estimate per carried diagnostic); entries over the weight bound or over
// the per-entry error cap are rejected at Put so that pathological results
// cannot wash healthy entries out. With WithWriteOnce, the first result
// stored for a key wins until the next Clear, giving deterministic reads
// under racing writers.
//
// # Usage
//
//	c, err := cache.New(256, cache.WithWriteOnce())
//	if err != nil {
//		return err
//	}
//
//	if e, ok := c.Get("greeting", "", "en", false, args); ok {
//		return e.Text
//	}
//	text, errs := resolve()
//	c.Put("greeting", "", "en", false, args, text, errs)
package cache
