package locale

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// Category is a CLDR plural category name. Variant keys in select
// expressions match against these.
type Category string

const (
	CategoryZero  Category = "zero"
	CategoryOne   Category = "one"
	CategoryTwo   Category = "two"
	CategoryFew   Category = "few"
	CategoryMany  Category = "many"
	CategoryOther Category = "other"
)

// Operands is the CLDR plural operand set derived from a number's visible
// digit string. V counts visible fraction digits including trailing zeros, W
// excludes them; F and T are the numeric values of those digit runs. The
// integer part I is always non-negative, as CLDR rules work on the absolute
// value.
type Operands struct {
	I int64
	V int
	W int
	F int64
	T int64
}

// operand digit runs longer than this keep only their trailing digits; CLDR
// rules only ever test small moduli, which trailing digits preserve.
const maxOperandDigits = 18

// OperandsFromString derives plural operands from a plain digit string such
// as "1.50" or "-19". The string must use a dot separator and no grouping,
// which is exactly what value.Number.Plain produces.
func OperandsFromString(s string) (Operands, error) {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return Operands{}, fmt.Errorf("locale: empty number %q", s)
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	i, err := parseDigits(intPart)
	if err != nil {
		return Operands{}, fmt.Errorf("locale: malformed number %q: %w", s, err)
	}

	ops := Operands{I: i, V: len(fracPart)}
	if fracPart != "" {
		if ops.F, err = parseDigits(fracPart); err != nil {
			return Operands{}, fmt.Errorf("locale: malformed number %q: %w", s, err)
		}
		trimmed := strings.TrimRight(fracPart, "0")
		ops.W = len(trimmed)
		if trimmed != "" {
			if ops.T, err = parseDigits(trimmed); err != nil {
				return Operands{}, fmt.Errorf("locale: malformed number %q: %w", s, err)
			}
		}
	}
	return ops, nil
}

func parseDigits(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if len(s) > maxOperandDigits {
		s = s[len(s)-maxOperandDigits:]
	}
	return strconv.ParseInt(s, 10, 64)
}

// RuleFunc maps operands to a category, overriding CLDR data for one
// language.
type RuleFunc func(ops Operands) Category

// Rules resolves plural categories: registered overrides first, CLDR
// cardinal data otherwise. Safe for concurrent use once constructed.
type Rules struct {
	overrides map[language.Tag]RuleFunc
}

// RulesOption configures Rules.
type RulesOption func(*Rules)

// WithOverride registers a custom rule for a language. The override applies
// to the exact tag and to any more specific tag that walks up to it, so an
// override for "en" also covers "en-US".
func WithOverride(tag language.Tag, fn RuleFunc) RulesOption {
	return func(r *Rules) { r.overrides[tag] = fn }
}

// NewRules builds a rule set.
func NewRules(opts ...RulesOption) *Rules {
	r := &Rules{overrides: make(map[language.Tag]RuleFunc)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Category returns the plural category for the operands in the given
// language.
func (r *Rules) Category(tag language.Tag, ops Operands) Category {
	for t := tag; ; t = t.Parent() {
		if fn, ok := r.overrides[t]; ok {
			return fn(ops)
		}
		if t.IsRoot() {
			break
		}
	}
	form := plural.Cardinal.MatchPlural(tag, int(ops.I), ops.V, ops.W, int(ops.F), int(ops.T))
	return fromForm(form)
}

func fromForm(f plural.Form) Category {
	switch f {
	case plural.Zero:
		return CategoryZero
	case plural.One:
		return CategoryOne
	case plural.Two:
		return CategoryTwo
	case plural.Few:
		return CategoryFew
	case plural.Many:
		return CategoryMany
	default:
		return CategoryOther
	}
}
