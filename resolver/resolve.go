package resolver

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/fluentkit/ast"
	"github.com/dmitrymomot/fluentkit/locale"
	"github.com/dmitrymomot/fluentkit/value"
)

// Unicode first-strong-isolate and pop-directional-isolate marks. Each
// counts as one character against the budget.
const (
	fsi = "⁨"
	pdi = "⁩"
)

// resolvePattern appends the pattern's resolution to buf. A budget failure
// propagates to the caller so that every enclosing placeable can truncate
// its partial output; everything accumulated before the failing element
// stays.
func (r *Resolver) resolvePattern(p ast.Pattern, sc *scope, buf *bytes.Buffer) error {
	for _, el := range p {
		if sc.budget.Exceeded() {
			err := &BudgetExceededError{Used: sc.budget.Used(), Limit: sc.budget.Limit()}
			sc.reportBudget(err)
			return err
		}
		switch el := el.(type) {
		case *ast.Text:
			if err := sc.budget.Track(utf8.RuneCountInString(el.Value)); err != nil {
				sc.reportBudget(err)
				return err
			}
			buf.WriteString(el.Value)
		case *ast.Placeable:
			mark := buf.Len()
			if err := r.writePlaceable(el.Expression, sc, buf); err != nil {
				buf.Truncate(mark)
				sc.reportBudget(err)
				return err
			}
		}
	}
	return nil
}

// writePlaceable resolves one placeable expression into buf, wrapped in
// bidi isolation marks when enabled. Only budget failures return an error;
// every other problem is reported on the scope and covered by a fallback
// rendering in place.
func (r *Resolver) writePlaceable(e ast.Expression, sc *scope, buf *bytes.Buffer) error {
	if r.isolating {
		if err := sc.budget.Track(1); err != nil {
			return err
		}
		buf.WriteString(fsi)
	}
	if err := r.writeExpression(e, sc, buf); err != nil {
		return err
	}
	if r.isolating {
		if err := sc.budget.Track(1); err != nil {
			return err
		}
		buf.WriteString(pdi)
	}
	return nil
}

func (r *Resolver) writeExpression(e ast.Expression, sc *scope, buf *bytes.Buffer) error {
	switch e := e.(type) {
	case *ast.SelectExpression:
		return r.writeSelect(e, sc, buf)
	case *ast.MessageReference:
		return r.writeMessageReference(e, sc, buf)
	case *ast.TermReference:
		return r.writeTermReference(e, sc, buf)
	default:
		return r.writeValue(r.resolveValue(e, sc), sc, buf)
	}
}

// writeValue formats a runtime value for the resolver's locale and appends
// it to buf.
func (r *Resolver) writeValue(v value.Value, sc *scope, buf *bytes.Buffer) error {
	s := v.Format(r.tag)
	if err := sc.budget.Track(utf8.RuneCountInString(s)); err != nil {
		return err
	}
	buf.WriteString(s)
	return nil
}

// resolveValue evaluates an expression in value position: literals,
// variables and function calls produce values directly, while references
// and selects resolve their pattern into a string. It never fails; broken
// expressions come back as a fallback placeholder.
func (r *Resolver) resolveValue(e ast.Expression, sc *scope) value.Value {
	switch e := e.(type) {
	case nil:
		sc.report(fmt.Errorf("%w: nil expression", ErrInvalidExpression))
		return value.None{}
	case *ast.StringLiteral:
		return value.String(e.Value)
	case *ast.NumberLiteral:
		return literalNumber(e)
	case *ast.VariableReference:
		return r.resolveVariable(e, sc)
	case *ast.FunctionReference:
		return r.callFunction(e, sc)
	case *ast.MessageReference:
		var sub bytes.Buffer
		if err := r.writeMessageReference(e, sc, &sub); err != nil {
			return value.None{}
		}
		return value.String(sub.String())
	case *ast.TermReference:
		var sub bytes.Buffer
		if err := r.writeTermReference(e, sc, &sub); err != nil {
			return value.None{}
		}
		return value.String(sub.String())
	case *ast.SelectExpression:
		var sub bytes.Buffer
		if err := r.writeSelect(e, sc, &sub); err != nil {
			return value.None{}
		}
		return value.String(sub.String())
	default:
		sc.report(fmt.Errorf("%w: %T", ErrInvalidExpression, e))
		return value.None{}
	}
}

// literalNumber builds a Number from a literal, preferring the raw source
// digits so that "1.50" keeps its two fraction digits for plural selection.
func literalNumber(lit *ast.NumberLiteral) value.Value {
	if lit.Raw != "" {
		if d, err := decimal.NewFromString(lit.Raw); err == nil {
			return value.NewNumber(d)
		}
	}
	return value.NewNumber(lit.Value)
}

func (r *Resolver) resolveVariable(ref *ast.VariableReference, sc *scope) value.Value {
	fallback := "{$" + ref.Name + "}"
	v, ok := sc.args[ref.Name]
	if !ok {
		sc.report(newReferenceError(ErrUnknownVariable, "$"+ref.Name, fallback))
		return value.NewNone(fallback)
	}
	if n, isNone := v.(value.None); isNone && n.Fallback() == "" {
		// The argument was present but nil.
		sc.report(fmt.Errorf("%w: $%s", ErrBadArgument, ref.Name))
		return value.NewNone(fallback)
	}
	return v
}

func (r *Resolver) callFunction(ref *ast.FunctionReference, sc *scope) value.Value {
	fallback := "{!" + ref.Name + "}"
	if r.functions == nil || !r.functions.Has(ref.Name) {
		sc.report(newReferenceError(ErrUnknownFunction, ref.Name, fallback))
		return value.NewNone(fallback)
	}
	positional, named := r.evalArguments(ref.Arguments, sc)
	v, err := r.functions.Call(ref.Name, positional, named)
	if err != nil {
		sc.report(&FunctionError{Name: ref.Name, Err: err})
		if v == nil {
			v = value.NewNone(fallback)
		}
		return v
	}
	if v == nil {
		sc.report(&FunctionError{Name: ref.Name, Err: errors.New("returned no value")})
		return value.NewNone(fallback)
	}
	return v
}

func (r *Resolver) evalArguments(args *ast.CallArguments, sc *scope) ([]value.Value, map[string]value.Value) {
	if args == nil {
		return nil, nil
	}
	var positional []value.Value
	if len(args.Positional) > 0 {
		positional = make([]value.Value, 0, len(args.Positional))
		for _, a := range args.Positional {
			positional = append(positional, r.resolveValue(a, sc))
		}
	}
	var named map[string]value.Value
	if len(args.Named) > 0 {
		named = make(map[string]value.Value, len(args.Named))
		for _, a := range args.Named {
			named[a.Name] = r.resolveValue(a.Value, sc)
		}
	}
	return positional, named
}

func (r *Resolver) writeMessageReference(ref *ast.MessageReference, sc *scope, buf *bytes.Buffer) error {
	target := ref.Name
	if ref.Attribute != "" {
		target += "." + ref.Attribute
	}
	fallback := "{" + target + "}"

	msg, ok := r.registry.Message(ref.Name)
	if !ok {
		sc.report(newReferenceError(ErrUnknownMessage, target, fallback))
		return r.writeValue(value.NewNone(fallback), sc, buf)
	}
	pattern := msg.Value
	if ref.Attribute != "" {
		p, found := msg.Attribute(ref.Attribute)
		if !found {
			sc.report(newReferenceError(ErrUnknownAttribute, target, fallback))
			return r.writeValue(value.NewNone(fallback), sc, buf)
		}
		pattern = p
	}
	if pattern == nil {
		sc.report(fmt.Errorf("%w: %s", ErrNoValue, ref.Name))
		return r.writeValue(value.NewNone(fallback), sc, buf)
	}

	key := "m:" + target
	if !sc.enter(key) {
		sc.report(fmt.Errorf("%w: %s", ErrCyclicReference, target))
		return r.writeValue(value.NewNone(fallback), sc, buf)
	}
	defer sc.leave(key)

	return r.resolvePattern(pattern, sc, buf)
}

func (r *Resolver) writeTermReference(ref *ast.TermReference, sc *scope, buf *bytes.Buffer) error {
	target := "-" + ref.Name
	if ref.Attribute != "" {
		target += "." + ref.Attribute
	}
	fallback := "{" + target + "}"

	term, ok := r.registry.Term(ref.Name)
	if !ok {
		sc.report(newReferenceError(ErrUnknownTerm, target, fallback))
		return r.writeValue(value.NewNone(fallback), sc, buf)
	}
	pattern := term.Value
	if ref.Attribute != "" {
		p, found := term.Attribute(ref.Attribute)
		if !found {
			sc.report(newReferenceError(ErrUnknownAttribute, target, fallback))
			return r.writeValue(value.NewNone(fallback), sc, buf)
		}
		pattern = p
	}
	if pattern == nil {
		sc.report(fmt.Errorf("%w: %s", ErrNoValue, target))
		return r.writeValue(value.NewNone(fallback), sc, buf)
	}

	key := "t:" + target
	if !sc.enter(key) {
		sc.report(fmt.Errorf("%w: %s", ErrCyclicReference, target))
		return r.writeValue(value.NewNone(fallback), sc, buf)
	}
	defer sc.leave(key)

	// A term sees only its own call arguments, never the caller's. The
	// arguments themselves are evaluated in the caller's scope before the
	// swap.
	saved := sc.args
	sc.args = r.termArguments(ref.Arguments, sc)
	defer func() { sc.args = saved }()

	return r.resolvePattern(pattern, sc, buf)
}

// termArguments builds the isolated argument scope for a parameterized term
// call. Only named arguments parameterize terms; positional ones are
// ignored.
func (r *Resolver) termArguments(args *ast.CallArguments, sc *scope) map[string]value.Value {
	if args == nil || len(args.Named) == 0 {
		return nil
	}
	out := make(map[string]value.Value, len(args.Named))
	for _, a := range args.Named {
		out[a.Name] = r.resolveValue(a.Value, sc)
	}
	return out
}

func (r *Resolver) writeSelect(sel *ast.SelectExpression, sc *scope, buf *bytes.Buffer) error {
	if len(sel.Variants) == 0 {
		sc.report(ErrEmptyVariants)
		return r.writeValue(value.None{}, sc, buf)
	}
	selector := r.resolveValue(sel.Selector, sc)
	variant := r.matchVariant(sel, selector)
	return r.resolvePattern(variant.Value, sc, buf)
}

// matchVariant picks a variant for the selector value. Numeric selectors
// try an exact numeric key first, then the locale's plural category against
// identifier keys; they never match an identifier key by its digit text.
// Everything else matches identifier keys by its formatted text. When
// nothing matches, the default variant wins, or the first one if no variant
// is marked default.
func (r *Resolver) matchVariant(sel *ast.SelectExpression, selector value.Value) *ast.Variant {
	if num, ok := selector.(value.Number); ok {
		for i := range sel.Variants {
			lit, isNum := sel.Variants[i].Key.(*ast.NumberLiteral)
			if isNum && keyDecimal(lit).Equal(num.Decimal()) {
				return &sel.Variants[i]
			}
		}
		category := string(r.category(num))
		for i := range sel.Variants {
			id, isID := sel.Variants[i].Key.(*ast.Identifier)
			if isID && id.Name == category {
				return &sel.Variants[i]
			}
		}
	} else {
		word := selector.Format(r.tag)
		for i := range sel.Variants {
			id, isID := sel.Variants[i].Key.(*ast.Identifier)
			if isID && id.Name == word {
				return &sel.Variants[i]
			}
		}
	}
	for i := range sel.Variants {
		if sel.Variants[i].Default {
			return &sel.Variants[i]
		}
	}
	return &sel.Variants[0]
}

func keyDecimal(lit *ast.NumberLiteral) decimal.Decimal {
	if lit.Raw != "" {
		if d, err := decimal.NewFromString(lit.Raw); err == nil {
			return d
		}
	}
	return lit.Value
}

// category computes the plural category from the number's visible digits,
// so that "1.00" and "1" can land on different variants where the locale
// distinguishes them.
func (r *Resolver) category(n value.Number) locale.Category {
	ops, err := locale.OperandsFromString(n.Plain())
	if err != nil {
		return locale.CategoryOther
	}
	return r.plurals.Category(r.tag, ops)
}
