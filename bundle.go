package fluentkit

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluentkit/ast"
	"github.com/dmitrymomot/fluentkit/cache"
	"github.com/dmitrymomot/fluentkit/function"
	"github.com/dmitrymomot/fluentkit/locale"
	"github.com/dmitrymomot/fluentkit/resolver"
	"github.com/dmitrymomot/fluentkit/rwlock"
)

// DefaultCacheSize is the number of formatted results a bundle keeps when
// WithCacheSize is not given.
const DefaultCacheSize = 256

// Bundle holds the messages, terms and functions of one locale and formats
// messages against runtime arguments. All operations are safe for
// concurrent use: formatting runs under a shared read lock while resource
// and function registration take the write lock.
type Bundle struct {
	locale language.Tag

	lock      *rwlock.RWLock
	cache     *cache.Cache
	engine    *resolver.Resolver
	functions *function.Registry
	messages  map[string]*ast.Message
	terms     map[string]*ast.Term

	logger         *slog.Logger
	strict         bool
	isolating      bool
	maxExpansion   int
	allowOverrides bool

	cacheSize      int
	cacheWriteOnce bool
	maxEntryWeight int
	maxErrors      int

	pluralOverrides []pluralOverride
	registrations   []registration
}

type pluralOverride struct {
	lang string
	rule locale.RuleFunc
}

type registration struct {
	name string
	fn   function.Func
}

// New creates a bundle for the given BCP 47 locale.
//
// Example:
//
//	bundle, err := fluentkit.New("en-US",
//		fluentkit.WithLogger(logger),
//		fluentkit.WithStrict(true),
//	)
func New(lang string, opts ...Option) (*Bundle, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %q", ErrInvalidLocale, lang), err)
	}

	b := &Bundle{
		locale:         tag,
		lock:           rwlock.New(),
		functions:      function.NewRegistry(),
		messages:       make(map[string]*ast.Message),
		terms:          make(map[string]*ast.Term),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)), // Nope-logger by default
		isolating:      true,
		maxExpansion:   resolver.DefaultMaxExpansion,
		cacheSize:      DefaultCacheSize,
		maxEntryWeight: cache.DefaultMaxEntryWeight,
		maxErrors:      cache.DefaultMaxErrors,
	}

	// Apply options
	for _, option := range opts {
		option(b)
	}

	for _, reg := range b.registrations {
		if err := b.functions.Register(reg.name, reg.fn); err != nil {
			return nil, err
		}
	}
	b.registrations = nil

	ruleOpts := make([]locale.RulesOption, 0, len(b.pluralOverrides))
	for _, o := range b.pluralOverrides {
		overrideTag, err := language.Parse(o.lang)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("%w: plural rule for %q", ErrInvalidLocale, o.lang), err)
		}
		ruleOpts = append(ruleOpts, locale.WithOverride(overrideTag, o.rule))
	}
	b.pluralOverrides = nil

	cacheOpts := []cache.Option{
		cache.WithMaxEntryWeight(b.maxEntryWeight),
		cache.WithMaxErrorsPerEntry(b.maxErrors),
	}
	if b.cacheWriteOnce {
		cacheOpts = append(cacheOpts, cache.WithWriteOnce())
	}
	b.cache, err = cache.New(b.cacheSize, cacheOpts...)
	if err != nil {
		return nil, err
	}

	b.engine, err = resolver.New(bundleRegistry{b},
		resolver.WithLocale(tag),
		resolver.WithFunctions(b.functions),
		resolver.WithPlurals(locale.NewRules(ruleOpts...)),
		resolver.WithIsolating(b.isolating),
	)
	if err != nil {
		return nil, err
	}

	return b, nil
}

// bundleRegistry adapts the bundle's tables to the resolver's Registry
// interface. Lookups only happen while the bundle holds its read or write
// lock, so plain map access is safe here.
type bundleRegistry struct{ b *Bundle }

func (r bundleRegistry) Message(id string) (*ast.Message, bool) {
	m, ok := r.b.messages[id]
	return m, ok
}

func (r bundleRegistry) Term(id string) (*ast.Term, bool) {
	t, ok := r.b.terms[id]
	return t, ok
}

// AddResource installs the resource's messages and terms. Entries whose id
// already exists are skipped and reported through the joined error, unless
// the bundle allows overrides. Any change invalidates the formatted-result
// cache.
//
// After publishing the new tables the write hold is downgraded to a read
// hold, and cross-references of the added entries are validated while
// other readers may already format against the new state. Unknown
// references are logged as warnings, never returned as errors: a dangling
// reference only degrades the affected message at format time.
func (b *Bundle) AddResource(res *ast.Resource) error {
	if res == nil {
		return ErrNilResource
	}
	if err := b.lock.AcquireWrite(); err != nil {
		return err
	}

	var dups []error
	installedMsgs := make([]*ast.Message, 0, len(res.Messages))
	installedTerms := make([]*ast.Term, 0, len(res.Terms))

	for _, msg := range res.Messages {
		if msg == nil || msg.ID == "" {
			continue
		}
		if _, exists := b.messages[msg.ID]; exists && !b.allowOverrides {
			dups = append(dups, fmt.Errorf("%w: message %s", ErrDuplicateEntry, msg.ID))
			continue
		}
		b.messages[msg.ID] = msg
		installedMsgs = append(installedMsgs, msg)
	}
	for _, term := range res.Terms {
		if term == nil || term.ID == "" {
			continue
		}
		if _, exists := b.terms[term.ID]; exists && !b.allowOverrides {
			dups = append(dups, fmt.Errorf("%w: term -%s", ErrDuplicateEntry, term.ID))
			continue
		}
		b.terms[term.ID] = term
		installedTerms = append(installedTerms, term)
	}

	b.cache.Clear()

	// Downgrade: keep reading the new tables without re-competing for the
	// lock while other readers join.
	b.lock.AcquireRead()
	if err := b.lock.ReleaseWrite(); err != nil {
		_ = b.lock.ReleaseRead()
		return err
	}
	defer func() { _ = b.lock.ReleaseRead() }()

	b.validateReferences(installedMsgs, installedTerms)

	b.logger.Info("resource added",
		"locale", b.locale.String(),
		"messages", len(installedMsgs),
		"terms", len(installedTerms),
		"skipped", len(dups))

	return errors.Join(dups...)
}

// validateReferences walks the installed entries and warns about references
// that do not resolve against the current tables. The caller's read hold
// outlives the group, so the workers may touch the tables.
func (b *Bundle) validateReferences(msgs []*ast.Message, terms []*ast.Term) {
	var g errgroup.Group
	g.SetLimit(4)

	for _, msg := range msgs {
		msg := msg
		g.Go(func() error {
			b.checkPatterns(msg.ID, msg.Value, msg.Attributes)
			return nil
		})
	}
	for _, term := range terms {
		term := term
		g.Go(func() error {
			b.checkPatterns("-"+term.ID, term.Value, term.Attributes)
			return nil
		})
	}
	_ = g.Wait()
}

func (b *Bundle) checkPatterns(id string, value ast.Pattern, attrs []ast.Attribute) {
	patterns := make([]ast.Pattern, 0, len(attrs)+1)
	if value != nil {
		patterns = append(patterns, value)
	}
	for _, a := range attrs {
		patterns = append(patterns, a.Value)
	}

	for _, p := range patterns {
		ast.Walk(p, func(e ast.Expression) {
			switch e := e.(type) {
			case *ast.MessageReference:
				if _, ok := b.messages[e.Name]; !ok {
					b.logger.Warn("reference to unknown message", "in", id, "target", e.Name)
				}
			case *ast.TermReference:
				if _, ok := b.terms[e.Name]; !ok {
					b.logger.Warn("reference to unknown term", "in", id, "target", "-"+e.Name)
				}
			case *ast.FunctionReference:
				if !b.functions.Has(e.Name) {
					b.logger.Warn("reference to unknown function", "in", id, "target", e.Name)
				}
			}
		})
	}
}

// AddFunction registers a formatting function on a live bundle. Replacing
// an existing function requires WithAllowOverrides. Registration
// invalidates the formatted-result cache.
func (b *Bundle) AddFunction(name string, fn function.Func) error {
	var regErr error
	err := b.lock.Write(func() {
		if !b.allowOverrides && b.functions.Has(name) {
			regErr = fmt.Errorf("%w: function %s", ErrDuplicateEntry, name)
			return
		}
		if regErr = b.functions.Register(name, fn); regErr != nil {
			return
		}
		b.cache.Clear()
	})
	if err != nil {
		return err
	}
	return regErr
}

// FormatMessage formats the message registered under id with the given
// arguments. The text is always usable: unknown ids come back as "{id}",
// and inside a resolved message every broken piece is covered by a
// placeholder while the rest formats normally.
//
// In strict mode the error joins every diagnostic hit during resolution.
// Otherwise diagnostics are logged at Debug level and only a missing
// message, attribute or value is reported.
//
// Example:
//
//	text, err := bundle.FormatMessage("welcome", map[string]any{"name": "Ada"})
//	// text: "Welcome, ⁨Ada⁩!"
func (b *Bundle) FormatMessage(id string, args map[string]any) (string, error) {
	return b.format(id, "", args)
}

// FormatAttribute formats one attribute of a message, addressed as
// id.attr in references and in fallback output.
func (b *Bundle) FormatAttribute(id, attr string, args map[string]any) (string, error) {
	return b.format(id, attr, args)
}

func (b *Bundle) format(id, attr string, args map[string]any) (string, error) {
	target := id
	if attr != "" {
		target += "." + attr
	}
	loc := b.locale.String()

	if entry, ok := b.cache.Get(id, attr, loc, b.strict, args); ok {
		return entry.Text, b.surface(target, entry.Errors)
	}

	var text string
	var errs []error
	lockErr := b.lock.Read(func() {
		text, errs = b.resolveLocked(id, attr, args)
		// Publish under the read hold so a writer's cache clear cannot
		// be overtaken by a stale result.
		b.cache.Put(id, attr, loc, b.strict, args, text, errs)
	})
	if lockErr != nil {
		return "", lockErr
	}

	return text, b.surface(target, errs)
}

func (b *Bundle) resolveLocked(id, attr string, args map[string]any) (string, []error) {
	msg, ok := b.messages[id]
	if !ok {
		target := id
		if attr != "" {
			target += "." + attr
		}
		return "{" + target + "}", []error{fmt.Errorf("%w: %s", ErrMessageNotFound, target)}
	}

	budget := resolver.NewBudget(b.maxExpansion)
	if attr != "" {
		if _, found := msg.Attribute(attr); !found {
			target := id + "." + attr
			return "{" + target + "}", []error{fmt.Errorf("%w: %s", ErrAttributeNotFound, target)}
		}
		return b.engine.ResolveAttribute(msg, attr, args, budget)
	}
	if msg.Value == nil {
		return "{" + id + "}", []error{fmt.Errorf("%w: %s", ErrNoMessageValue, id)}
	}
	return b.engine.ResolveMessage(msg, args, budget)
}

// surface turns accumulated diagnostics into the operation's error return.
// Strict mode reports everything. Otherwise lookup failures on the bundle
// itself are returned, budget exhaustion is warned about, and the rest is
// logged at Debug level.
func (b *Bundle) surface(target string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if b.strict {
		return errors.Join(errs...)
	}

	var lookup []error
	for _, err := range errs {
		switch {
		case errors.Is(err, ErrMessageNotFound),
			errors.Is(err, ErrAttributeNotFound),
			errors.Is(err, ErrNoMessageValue):
			lookup = append(lookup, err)
		case errors.Is(err, resolver.ErrBudgetExceeded):
			b.logger.Warn("message expansion exceeded its budget", "id", target, "error", err)
		default:
			b.logger.Debug("formatting diagnostic", "id", target, "error", err)
		}
	}
	return errors.Join(lookup...)
}

// HasMessage reports whether a message is registered under id.
func (b *Bundle) HasMessage(id string) bool {
	var ok bool
	_ = b.lock.Read(func() { _, ok = b.messages[id] })
	return ok
}

// HasTerm reports whether a term is registered under id, without the
// leading dash.
func (b *Bundle) HasTerm(id string) bool {
	var ok bool
	_ = b.lock.Read(func() { _, ok = b.terms[id] })
	return ok
}

// MessageIDs returns the registered message ids in sorted order.
func (b *Bundle) MessageIDs() []string {
	var ids []string
	_ = b.lock.Read(func() {
		ids = make([]string, 0, len(b.messages))
		for id := range b.messages {
			ids = append(ids, id)
		}
		slices.Sort(ids)
	})
	return ids
}

// Functions returns the registered function names in sorted order.
func (b *Bundle) Functions() []string {
	var names []string
	_ = b.lock.Read(func() { names = b.functions.Names() })
	return names
}

// Locale returns the canonical form of the bundle's locale tag.
func (b *Bundle) Locale() string { return b.locale.String() }

// CacheStats returns a snapshot of the formatted-result cache counters.
func (b *Bundle) CacheStats() cache.Stats { return b.cache.Stats() }
