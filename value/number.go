package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NumberStyle selects how a Number renders.
type NumberStyle string

const (
	StyleDecimal  NumberStyle = "decimal"
	StylePercent  NumberStyle = "percent"
	StyleCurrency NumberStyle = "currency"
)

// NumberOptions are the formatting options a Number carries. MinFractionDigits
// and MaxFractionDigits use -1 for "not set".
type NumberOptions struct {
	Style             NumberStyle
	Currency          string
	UseGrouping       bool
	MinFractionDigits int
	MaxFractionDigits int
}

func defaultNumberOptions() NumberOptions {
	return NumberOptions{
		Style:             StyleDecimal,
		UseGrouping:       true,
		MinFractionDigits: -1,
		MaxFractionDigits: -1,
	}
}

// NumberOption mutates formatting options when deriving a Number.
type NumberOption func(*NumberOptions)

// WithStyle sets the rendering style.
func WithStyle(s NumberStyle) NumberOption {
	return func(o *NumberOptions) { o.Style = s }
}

// WithCurrency sets the ISO 4217 currency code used by StyleCurrency.
func WithCurrency(code string) NumberOption {
	return func(o *NumberOptions) { o.Currency = code }
}

// WithUseGrouping enables or disables locale grouping separators.
func WithUseGrouping(enabled bool) NumberOption {
	return func(o *NumberOptions) { o.UseGrouping = enabled }
}

// WithMinFractionDigits pads the rendered fraction to at least n digits.
func WithMinFractionDigits(n int) NumberOption {
	return func(o *NumberOptions) { o.MinFractionDigits = n }
}

// WithMaxFractionDigits rounds the rendered fraction to at most n digits.
func WithMaxFractionDigits(n int) NumberOption {
	return func(o *NumberOptions) { o.MaxFractionDigits = n }
}

// Number is a numeric value with exact decimal semantics and formatting
// options. The decimal's exponent is meaningful: values parsed from "1.50"
// keep two visible fraction digits, which both rendering and plural-category
// selection honor. Construct with NewNumber; the zero Number has no defaults
// applied.
type Number struct {
	val  decimal.Decimal
	opts NumberOptions
}

// NewNumber builds a Number with default options, then applies opts.
func NewNumber(d decimal.Decimal, opts ...NumberOption) Number {
	n := Number{val: d, opts: defaultNumberOptions()}
	return n.With(opts...)
}

// With returns a copy of the number with additional options applied.
func (n Number) With(opts ...NumberOption) Number {
	for _, opt := range opts {
		opt(&n.opts)
	}
	return n
}

func (Number) value() {}

// Decimal returns the exact numeric value.
func (n Number) Decimal() decimal.Decimal { return n.val }

// Options returns a copy of the formatting options.
func (n Number) Options() NumberOptions { return n.opts }

// Equal reports numeric equality, ignoring visible digits and options:
// 1, 1.0, and 1.00 are all equal.
func (n Number) Equal(other Number) bool { return n.val.Equal(other.val) }

// Plain returns the digit string the number displays with: dot decimal
// separator, no grouping, fraction digits adjusted per the options (and
// scaled by 100 for the percent style). Plural-category selection runs on
// this form, so a minimum of two fraction digits turns 1 into "1.00" and can
// change the selected category.
func (n Number) Plain() string {
	d := n.val
	minFrac, maxFrac := n.opts.MinFractionDigits, n.opts.MaxFractionDigits
	switch n.opts.Style {
	case StylePercent:
		d = d.Mul(decimal.NewFromInt(100))
		if maxFrac < 0 {
			maxFrac = 0
		}
	case StyleCurrency:
		if minFrac < 0 {
			minFrac = 2
		}
		if maxFrac < 0 {
			maxFrac = 2
		}
	}

	frac := visibleFractionDigits(d.String())
	if maxFrac >= 0 && frac > maxFrac {
		d = d.Round(int32(maxFrac))
		frac = maxFrac
	}
	if minFrac >= 0 && frac < minFrac {
		frac = minFrac
	}
	return d.StringFixed(int32(frac))
}

// Format renders the number for the given locale.
func (n Number) Format(tag language.Tag) string {
	switch n.opts.Style {
	case StylePercent:
		return n.formatPercent(tag)
	case StyleCurrency:
		return n.formatCurrency(tag)
	default:
		return n.formatDecimal(tag)
	}
}

func (n Number) formatDecimal(tag language.Tag) string {
	plain := n.Plain()
	if !n.opts.UseGrouping {
		return plain
	}
	v, ok := numericOf(plain)
	if !ok {
		// Outside float64/int64 range; exact digits beat grouping.
		return plain
	}
	frac := visibleFractionDigits(plain)
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(v,
		number.MinFractionDigits(frac),
		number.MaxFractionDigits(frac)))
}

func (n Number) formatPercent(tag language.Tag) string {
	plain := n.Plain()
	if !n.opts.UseGrouping {
		return plain + "%"
	}
	// number.Percent scales by 100 itself, so feed it the unscaled value
	// with the fraction digits derived from the scaled plain form.
	v, ok := numericOf(n.val.String())
	if !ok {
		return plain + "%"
	}
	frac := visibleFractionDigits(plain)
	p := message.NewPrinter(tag)
	return p.Sprint(number.Percent(v,
		number.MinFractionDigits(frac),
		number.MaxFractionDigits(frac)))
}

func (n Number) formatCurrency(tag language.Tag) string {
	unit, err := currency.ParseISO(n.opts.Currency)
	if err != nil {
		return n.formatDecimal(tag)
	}
	plain := n.Plain()
	v, ok := numericOf(plain)
	if !ok {
		return plain + " " + unit.String()
	}
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(v)))
}

// visibleFractionDigits counts digits after the dot in a plain decimal
// string.
func visibleFractionDigits(s string) int {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// numericOf parses a plain decimal string into the narrowest Go numeric the
// x/text formatters accept. Both the grouped and ungrouped paths derive from
// the same string, so they can never round differently.
func numericOf(plain string) (any, bool) {
	if !strings.Contains(plain, ".") {
		i, err := strconv.ParseInt(plain, 10, 64)
		if err != nil {
			return nil, false
		}
		return i, true
	}
	f, err := strconv.ParseFloat(plain, 64)
	if err != nil || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}
