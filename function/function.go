package function

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/fluentkit/value"
)

// Func is a formatting function callable from placeables. It receives the
// already resolved positional and named arguments and returns the value to
// render. On error the resolver records the failure and renders the
// returned value if there is one, or the call's fallback placeholder.
type Func func(positional []value.Value, named map[string]value.Value) (value.Value, error)

// Registry maps function names to implementations. NUMBER and DATETIME are
// registered out of the box.
//
// A Registry is not synchronized. The bundle owning it serializes writes
// against concurrent formatting with its own lock, which is also why
// sharing one registry between bundles is a bad idea.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry creates a registry preloaded with the builtins.
func NewRegistry() *Registry {
	return &Registry{funcs: map[string]Func{
		"NUMBER":   Number,
		"DATETIME": DateTime,
	}}
}

// Register adds or replaces a function. Names follow the convention for
// function identifiers: an uppercase letter followed by uppercase letters,
// digits, underscores or hyphens.
func (r *Registry) Register(name string, fn Func) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if fn == nil {
		return fmt.Errorf("%w: %q", ErrNilFunc, name)
	}
	r.funcs[name] = fn
	return nil
}

// Has reports whether a function is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Call invokes the function registered under name.
func (r *Registry) Call(name string, positional []value.Value, named map[string]value.Value) (value.Value, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return fn(positional, named)
}

// Names returns the registered function names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '_' || c == '-'):
		default:
			return false
		}
	}
	return true
}
