package ast

import "github.com/shopspring/decimal"

// Resource is a parsed localization resource: the set of messages and terms
// that one bundle load installs together.
type Resource struct {
	Messages []*Message
	Terms    []*Term
}

// Message is a translation unit addressable by ID. Value may be nil for
// messages that only carry attributes.
type Message struct {
	ID         string
	Value      Pattern
	Attributes []Attribute
}

// Attribute returns the pattern of the named attribute.
func (m *Message) Attribute(name string) (Pattern, bool) {
	return findAttribute(m.Attributes, name)
}

// Term is a reusable translation fragment referenced from other patterns as
// {-id}. Terms are never formatted directly by callers.
type Term struct {
	ID         string
	Value      Pattern
	Attributes []Attribute
}

// Attribute returns the pattern of the named attribute.
func (t *Term) Attribute(name string) (Pattern, bool) {
	return findAttribute(t.Attributes, name)
}

// Attribute is a named sub-pattern of a message or term, addressed as
// id.name.
type Attribute struct {
	Name  string
	Value Pattern
}

func findAttribute(attrs []Attribute, name string) (Pattern, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// Pattern is the body of a message value, attribute, or variant: an ordered
// sequence of literal text runs and placeables. Patterns are treated as
// immutable once constructed; resolution never mutates them.
type Pattern []Element

// Element is a sealed interface over the two pattern parts, Text and
// Placeable.
type Element interface{ element() }

// Text is a run of literal characters copied to the output verbatim.
type Text struct {
	Value string
}

// Placeable embeds an expression whose resolved value is interpolated into
// the surrounding pattern.
type Placeable struct {
	Expression Expression
}

func (*Text) element()      {}
func (*Placeable) element() {}

// Expression is a sealed interface over every expression kind a placeable or
// selector can hold.
type Expression interface{ expression() }

// StringLiteral is a quoted string in a placeable.
type StringLiteral struct {
	Value string
}

// NumberLiteral is a number in a placeable or variant key. Raw preserves the
// source spelling: "1.50" and "1.5" are the same decimal but format with
// different visible fraction digits, which matters for plural selection.
type NumberLiteral struct {
	Value decimal.Decimal
	Raw   string
}

// VariableReference reads a caller-provided argument, written as {$name}.
type VariableReference struct {
	Name string
}

// MessageReference embeds another message, or one of its attributes when
// Attribute is non-empty. Message references resolve against the caller's
// argument scope.
type MessageReference struct {
	Name      string
	Attribute string
}

// TermReference embeds a term, written as {-name}. Optional call arguments
// become the term's own isolated argument scope for the nested resolution.
type TermReference struct {
	Name      string
	Attribute string
	Arguments *CallArguments
}

// FunctionReference calls a registered function, written as {NAME(...)}.
type FunctionReference struct {
	Name      string
	Arguments *CallArguments
}

// SelectExpression evaluates its selector and formats the matching variant.
type SelectExpression struct {
	Selector Expression
	Variants []Variant
}

func (*StringLiteral) expression()     {}
func (*NumberLiteral) expression()     {}
func (*VariableReference) expression() {}
func (*MessageReference) expression()  {}
func (*TermReference) expression()     {}
func (*FunctionReference) expression() {}
func (*SelectExpression) expression()  {}

// CallArguments carries the positional and named arguments of a term or
// function call.
type CallArguments struct {
	Positional []Expression
	Named      []NamedArgument
}

// NamedArgument is a name: value pair in a call argument list.
type NamedArgument struct {
	Name  string
	Value Expression
}

// Variant is one branch of a select expression. Exactly one variant per
// select expression should be marked Default; it is used when no key
// matches.
type Variant struct {
	Key     VariantKey
	Value   Pattern
	Default bool
}

// VariantKey is a sealed interface over the two key kinds, Identifier and
// NumberLiteral.
type VariantKey interface{ variantKey() }

// Identifier is a symbolic variant key such as a plural category name.
type Identifier struct {
	Name string
}

func (*Identifier) variantKey()    {}
func (*NumberLiteral) variantKey() {}
