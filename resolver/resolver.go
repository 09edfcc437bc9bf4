package resolver

import (
	"bytes"
	"fmt"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluentkit/ast"
	"github.com/dmitrymomot/fluentkit/locale"
	"github.com/dmitrymomot/fluentkit/value"
)

// Registry supplies messages and terms by id. The resolver only reads
// through it; synchronizing the underlying tables against writers is the
// caller's concern.
type Registry interface {
	Message(id string) (*ast.Message, bool)
	Term(id string) (*ast.Term, bool)
}

// Dispatcher invokes registered formatting functions by name.
type Dispatcher interface {
	Has(name string) bool
	Call(name string, positional []value.Value, named map[string]value.Value) (value.Value, error)
}

// Plurals maps a number's visible digits to the plural category used for
// variant selection. *locale.Rules satisfies it.
type Plurals interface {
	Category(tag language.Tag, ops locale.Operands) locale.Category
}

// Resolver evaluates patterns against runtime arguments. It holds no
// mutable state of its own, so a single Resolver is safe for concurrent
// use as long as its Registry is.
type Resolver struct {
	registry  Registry
	functions Dispatcher
	plurals   Plurals
	tag       language.Tag
	isolating bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLocale sets the locale used for formatting values and selecting
// plural categories. The default is English.
func WithLocale(tag language.Tag) Option {
	return func(r *Resolver) { r.tag = tag }
}

// WithFunctions sets the dispatcher for function references. Without one,
// every function call falls back with ErrUnknownFunction.
func WithFunctions(d Dispatcher) Option {
	return func(r *Resolver) { r.functions = d }
}

// WithPlurals replaces the plural rules used for variant selection.
func WithPlurals(p Plurals) Option {
	return func(r *Resolver) { r.plurals = p }
}

// WithIsolating controls whether placeable output is wrapped in Unicode
// bidi isolation marks. Enabled by default.
func WithIsolating(enabled bool) Option {
	return func(r *Resolver) { r.isolating = enabled }
}

// New creates a resolver reading entries from registry.
func New(registry Registry, opts ...Option) (*Resolver, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	r := &Resolver{
		registry:  registry,
		plurals:   locale.NewRules(),
		tag:       language.English,
		isolating: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ResolveMessage formats the value pattern of msg. It returns the
// best-effort text together with every problem encountered along the way;
// it never fails outright. A nil budget gets DefaultMaxExpansion.
func (r *Resolver) ResolveMessage(msg *ast.Message, args map[string]any, budget *Budget) (string, []error) {
	if msg == nil {
		return "", []error{ErrNoValue}
	}
	if msg.Value == nil {
		return "{" + msg.ID + "}", []error{fmt.Errorf("%w: %s", ErrNoValue, msg.ID)}
	}
	return r.resolveTop("m:"+msg.ID, msg.Value, args, budget)
}

// ResolveAttribute formats one attribute of msg. An unknown attribute
// yields its placeholder rendering and a ReferenceError.
func (r *Resolver) ResolveAttribute(msg *ast.Message, name string, args map[string]any, budget *Budget) (string, []error) {
	if msg == nil {
		return "", []error{ErrNoValue}
	}
	p, ok := msg.Attribute(name)
	if !ok {
		target := msg.ID + "." + name
		fallback := "{" + target + "}"
		return fallback, []error{newReferenceError(ErrUnknownAttribute, target, fallback)}
	}
	return r.resolveTop("m:"+msg.ID+"."+name, p, args, budget)
}

// ResolvePattern formats a bare pattern that is not registered under any
// id, such as one built programmatically.
func (r *Resolver) ResolvePattern(p ast.Pattern, args map[string]any, budget *Budget) (string, []error) {
	return r.resolveTop("", p, args, budget)
}

// resolveTop runs one complete resolution. Marking the entry itself as
// in-flight makes direct self-reference come back as a cycle rather than
// pure budget exhaustion.
func (r *Resolver) resolveTop(key string, p ast.Pattern, args map[string]any, budget *Budget) (string, []error) {
	if budget == nil {
		budget = NewBudget(DefaultMaxExpansion)
	}
	sc := newScope(args, budget)
	if key != "" {
		sc.enter(key)
	}
	var buf bytes.Buffer
	// A budget failure is already recorded in the scope by the time it
	// propagates here.
	_ = r.resolvePattern(p, sc, &buf)
	return buf.String(), sc.errs
}
