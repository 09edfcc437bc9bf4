package resolver

import (
	"errors"
	"fmt"
)

var (
	// ErrNilRegistry is returned by New when no registry is supplied.
	ErrNilRegistry = errors.New("resolver: registry is required")

	// ErrBudgetExceeded is reported when a call produces more characters
	// than its expansion budget allows.
	ErrBudgetExceeded = errors.New("resolver: expansion budget exceeded")

	// ErrEmptyVariants is reported for a select expression with no
	// variants to choose from.
	ErrEmptyVariants = errors.New("resolver: select expression has no variants")

	// ErrUnknownVariable is reported when a pattern references an
	// argument the caller did not provide.
	ErrUnknownVariable = errors.New("resolver: unknown variable")

	// ErrBadArgument is reported when a caller-provided argument exists
	// but holds no usable value.
	ErrBadArgument = errors.New("resolver: unusable argument value")

	// ErrUnknownMessage is reported for a reference to a message id the
	// registry does not know.
	ErrUnknownMessage = errors.New("resolver: unknown message")

	// ErrUnknownTerm is reported for a reference to a term id the
	// registry does not know.
	ErrUnknownTerm = errors.New("resolver: unknown term")

	// ErrUnknownAttribute is reported for a reference to an attribute a
	// known message or term does not carry.
	ErrUnknownAttribute = errors.New("resolver: unknown attribute")

	// ErrUnknownFunction is reported for a call to an unregistered
	// function.
	ErrUnknownFunction = errors.New("resolver: unknown function")

	// ErrCyclicReference is reported when resolving an entry re-enters an
	// entry that is still being resolved in the same call.
	ErrCyclicReference = errors.New("resolver: cyclic reference")

	// ErrNoValue is reported when a referenced message or term has no
	// value pattern to resolve.
	ErrNoValue = errors.New("resolver: message has no value")

	// ErrInvalidExpression is reported for an expression the resolver
	// cannot evaluate, such as a nil node in a hand-built pattern.
	ErrInvalidExpression = errors.New("resolver: invalid expression")
)

// BudgetExceededError carries the counters at the moment a call ran out of
// expansion budget. It unwraps to ErrBudgetExceeded.
type BudgetExceededError struct {
	Used  int
	Limit int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("resolver: expansion budget exceeded: %d of %d characters", e.Used, e.Limit)
}

func (e *BudgetExceededError) Unwrap() error { return ErrBudgetExceeded }

// ReferenceError describes a reference that could not be resolved and the
// fallback text that took its place in the output. It unwraps to the
// sentinel matching the reference kind, such as ErrUnknownMessage.
type ReferenceError struct {
	kind error

	// Target is the reference as written, including sigils: "$name",
	// "msg.attr", "-term".
	Target string

	// Fallback is the placeholder rendered instead, such as "{$name}".
	Fallback string
}

func newReferenceError(kind error, target, fallback string) *ReferenceError {
	return &ReferenceError{kind: kind, Target: target, Fallback: fallback}
}

func (e *ReferenceError) Error() string {
	return e.kind.Error() + ": " + e.Target
}

func (e *ReferenceError) Unwrap() error { return e.kind }

// FunctionError reports a registered function that failed. The function's
// fallback text was substituted in the output. It unwraps to the underlying
// failure.
type FunctionError struct {
	Name string
	Err  error
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("resolver: function %s failed: %v", e.Name, e.Err)
}

func (e *FunctionError) Unwrap() error { return e.Err }
