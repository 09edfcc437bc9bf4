package fluentkit

import (
	"log/slog"

	"github.com/dmitrymomot/fluentkit/function"
	"github.com/dmitrymomot/fluentkit/locale"
)

// Option is a function that configures a Bundle instance.
type Option func(*Bundle)

// WithLogger provides a customizable logger for the bundle.
// If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bundle) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithStrict makes the formatting operations return resolution diagnostics
// as errors. Without strict mode diagnostics are logged at Debug level and
// the best-effort text is returned with a nil error.
func WithStrict(strict bool) Option {
	return func(b *Bundle) {
		b.strict = strict
	}
}

// WithIsolating controls whether interpolated values are wrapped in Unicode
// bidi isolation marks. Default is true.
func WithIsolating(isolating bool) Option {
	return func(b *Bundle) {
		b.isolating = isolating
	}
}

// WithMaxExpansion caps the characters one formatting call may produce,
// counting everything generated while resolving nested references. Default
// is 8192.
func WithMaxExpansion(chars int) Option {
	return func(b *Bundle) {
		if chars > 0 {
			b.maxExpansion = chars
		}
	}
}

// WithCacheSize sets how many formatted results the bundle keeps. Default
// is 256.
func WithCacheSize(entries int) Option {
	return func(b *Bundle) {
		if entries > 0 {
			b.cacheSize = entries
		}
	}
}

// WithCacheWriteOnce freezes each cached result at its first value instead
// of updating it on later writes.
func WithCacheWriteOnce(writeOnce bool) Option {
	return func(b *Bundle) {
		b.cacheWriteOnce = writeOnce
	}
}

// WithMaxEntryWeight caps the weight of a single cached result. Heavier
// results are still returned to callers, just never cached.
func WithMaxEntryWeight(weight int) Option {
	return func(b *Bundle) {
		if weight > 0 {
			b.maxEntryWeight = weight
		}
	}
}

// WithMaxErrorsPerEntry caps how many diagnostics a cached result may
// carry before it is considered error bloat and skipped.
func WithMaxErrorsPerEntry(n int) Option {
	return func(b *Bundle) {
		if n > 0 {
			b.maxErrors = n
		}
	}
}

// WithAllowOverrides lets resources and function registrations replace
// existing entries instead of reporting ErrDuplicateEntry.
func WithAllowOverrides(allow bool) Option {
	return func(b *Bundle) {
		b.allowOverrides = allow
	}
}

// WithPluralRule overrides the plural categorization for one locale. The
// rule applies to the given tag and everything underneath it, so "en"
// covers "en-US" unless a more specific override exists.
func WithPluralRule(lang string, rule locale.RuleFunc) Option {
	return func(b *Bundle) {
		if rule != nil {
			b.pluralOverrides = append(b.pluralOverrides, pluralOverride{lang: lang, rule: rule})
		}
	}
}

// WithFunction registers a formatting function during construction, in
// addition to the NUMBER and DATETIME builtins.
func WithFunction(name string, fn function.Func) Option {
	return func(b *Bundle) {
		b.registrations = append(b.registrations, registration{name: name, fn: fn})
	}
}
