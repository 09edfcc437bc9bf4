package function

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/dmitrymomot/fluentkit/value"
)

// Number implements the NUMBER builtin. It takes one positional argument,
// a number or a numeric string, and returns it with the formatting options
// applied:
//
//	style                   "decimal", "percent" or "currency"
//	currency                ISO 4217 code for the currency style
//	useGrouping             "true" or "false"
//	minimumFractionDigits   non-negative integer
//	maximumFractionDigits   non-negative integer
//
// Unknown options are ignored so translations can carry hints this
// implementation does not understand. A failed value that reaches NUMBER
// passes through untouched, and an unparseable string comes back as a
// fallback carrying the original text next to the error.
func Number(positional []value.Value, named map[string]value.Value) (value.Value, error) {
	if len(positional) != 1 {
		return nil, fmt.Errorf("%w: NUMBER takes exactly one positional argument, got %d", ErrBadArgument, len(positional))
	}

	var n value.Number
	switch v := positional[0].(type) {
	case value.Number:
		n = v
	case value.String:
		d, err := decimal.NewFromString(strings.TrimSpace(string(v)))
		if err != nil {
			// Keep the operand's text as the fallback rendering.
			return value.NewNone(string(v)), fmt.Errorf("%w: NUMBER argument %q is not numeric", ErrBadArgument, string(v))
		}
		n = value.NewNumber(d)
	case value.None:
		// Already failed upstream and reported there.
		return v, nil
	default:
		return nil, fmt.Errorf("%w: NUMBER cannot format %T", ErrBadArgument, positional[0])
	}

	opts, err := numberOptions(named)
	if err != nil {
		return nil, err
	}
	return n.With(opts...), nil
}

func numberOptions(named map[string]value.Value) ([]value.NumberOption, error) {
	if len(named) == 0 {
		return nil, nil
	}
	var opts []value.NumberOption
	for name, v := range named {
		switch name {
		case "style":
			s, err := stringOption(name, v)
			if err != nil {
				return nil, err
			}
			switch s {
			case "decimal":
				opts = append(opts, value.WithStyle(value.StyleDecimal))
			case "percent":
				opts = append(opts, value.WithStyle(value.StylePercent))
			case "currency":
				opts = append(opts, value.WithStyle(value.StyleCurrency))
			default:
				return nil, fmt.Errorf("%w: unknown number style %q", ErrBadArgument, s)
			}
		case "currency":
			s, err := stringOption(name, v)
			if err != nil {
				return nil, err
			}
			unit, err := currency.ParseISO(s)
			if err != nil {
				return nil, fmt.Errorf("%w: unknown currency %q", ErrBadArgument, s)
			}
			// The canonical uppercase code, so lowercase input still renders.
			opts = append(opts, value.WithCurrency(unit.String()))
		case "useGrouping":
			b, err := boolOption(name, v)
			if err != nil {
				return nil, err
			}
			opts = append(opts, value.WithUseGrouping(b))
		case "minimumFractionDigits":
			i, err := intOption(name, v)
			if err != nil {
				return nil, err
			}
			opts = append(opts, value.WithMinFractionDigits(i))
		case "maximumFractionDigits":
			i, err := intOption(name, v)
			if err != nil {
				return nil, err
			}
			opts = append(opts, value.WithMaxFractionDigits(i))
		}
	}
	return opts, nil
}

// DateTime implements the DATETIME builtin. It takes one positional
// argument, a datetime value or an RFC 3339 string, and returns it with
// the formatting options applied:
//
//	dateStyle   "full", "long", "medium", "short" or "none"
//	timeStyle   "full", "long", "medium", "short" or "none"
//	timeZone    IANA zone name such as "Europe/Berlin"
func DateTime(positional []value.Value, named map[string]value.Value) (value.Value, error) {
	if len(positional) != 1 {
		return nil, fmt.Errorf("%w: DATETIME takes exactly one positional argument, got %d", ErrBadArgument, len(positional))
	}

	var dt value.DateTime
	switch v := positional[0].(type) {
	case value.DateTime:
		dt = v
	case value.String:
		t, err := time.Parse(time.RFC3339, string(v))
		if err != nil {
			return value.NewNone(string(v)), fmt.Errorf("%w: DATETIME argument %q is not an RFC 3339 timestamp", ErrBadArgument, string(v))
		}
		dt = value.NewDateTime(t)
	case value.None:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: DATETIME cannot format %T", ErrBadArgument, positional[0])
	}

	opts, err := dateTimeOptions(named)
	if err != nil {
		return nil, err
	}
	return dt.With(opts...), nil
}

func dateTimeOptions(named map[string]value.Value) ([]value.DateTimeOption, error) {
	if len(named) == 0 {
		return nil, nil
	}
	var opts []value.DateTimeOption
	for name, v := range named {
		switch name {
		case "dateStyle":
			st, err := dateTimeStyle(name, v)
			if err != nil {
				return nil, err
			}
			opts = append(opts, value.WithDateStyle(st))
		case "timeStyle":
			st, err := dateTimeStyle(name, v)
			if err != nil {
				return nil, err
			}
			opts = append(opts, value.WithTimeStyle(st))
		case "timeZone":
			s, err := stringOption(name, v)
			if err != nil {
				return nil, err
			}
			loc, err := time.LoadLocation(s)
			if err != nil {
				return nil, fmt.Errorf("%w: unknown time zone %q", ErrBadArgument, s)
			}
			opts = append(opts, value.WithLocation(loc))
		}
	}
	return opts, nil
}

func dateTimeStyle(option string, v value.Value) (value.DateTimeStyle, error) {
	s, err := stringOption(option, v)
	if err != nil {
		return "", err
	}
	switch s {
	case "full":
		return value.StyleFull, nil
	case "long":
		return value.StyleLong, nil
	case "medium":
		return value.StyleMedium, nil
	case "short":
		return value.StyleShort, nil
	case "none":
		return value.StyleNone, nil
	default:
		return "", fmt.Errorf("%w: unknown %s %q", ErrBadArgument, option, s)
	}
}

func stringOption(option string, v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", fmt.Errorf("%w: option %s must be a string, got %T", ErrBadArgument, option, v)
	}
	return string(s), nil
}

func boolOption(option string, v value.Value) (bool, error) {
	s, ok := v.(value.String)
	if !ok {
		return false, fmt.Errorf("%w: option %s must be true or false, got %T", ErrBadArgument, option, v)
	}
	switch string(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: option %s must be true or false, got %q", ErrBadArgument, option, s)
	}
}

func intOption(option string, v value.Value) (int, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, fmt.Errorf("%w: option %s must be an integer, got %T", ErrBadArgument, option, v)
	}
	d := n.Decimal()
	if !d.IsInteger() || d.IsNegative() {
		return 0, fmt.Errorf("%w: option %s must be a non-negative integer, got %s", ErrBadArgument, option, d)
	}
	return int(d.IntPart()), nil
}
