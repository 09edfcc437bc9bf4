package value

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Value is the sealed set of runtime values a resolved expression can
// produce. Format renders the value for output in the given locale.
type Value interface {
	value()
	Format(tag language.Tag) string
}

// String is a plain text value. It formats as itself in every locale.
type String string

func (String) value() {}

// Format returns the string unchanged.
func (s String) Format(language.Tag) string { return string(s) }

// None is the error placeholder: it stands in for a value that could not be
// produced and formats as the fallback rendering recorded at the failure
// site, e.g. "{$name}".
type None struct {
	fallback string
}

// NewNone returns a None carrying the given fallback rendering.
func NewNone(fallback string) None { return None{fallback: fallback} }

func (None) value() {}

// Fallback returns the recorded fallback rendering, which may be empty.
func (n None) Fallback() string { return n.fallback }

// Format returns the fallback rendering, or "{???}" when none was recorded.
func (n None) Format(language.Tag) string {
	if n.fallback == "" {
		return "{???}"
	}
	return n.fallback
}

// FromAny converts a caller-provided argument into a Value. The switch is
// closed on purpose: every supported kind is listed, and anything else is
// rendered through fmt as a last resort rather than inspected reflectively.
//
// Booleans become the words "true" and "false", never numbers, so they can
// match identifier variant keys but no numeric key.
func FromAny(v any) Value {
	switch v := v.(type) {
	case nil:
		return None{}
	case Value:
		return v
	case string:
		return String(v)
	case bool:
		if v {
			return String("true")
		}
		return String("false")
	case int:
		return NewNumber(decimal.NewFromInt(int64(v)))
	case int8:
		return NewNumber(decimal.NewFromInt(int64(v)))
	case int16:
		return NewNumber(decimal.NewFromInt(int64(v)))
	case int32:
		return NewNumber(decimal.NewFromInt(int64(v)))
	case int64:
		return NewNumber(decimal.NewFromInt(v))
	case uint:
		return NewNumber(decimal.NewFromUint64(uint64(v)))
	case uint8:
		return NewNumber(decimal.NewFromInt(int64(v)))
	case uint16:
		return NewNumber(decimal.NewFromInt(int64(v)))
	case uint32:
		return NewNumber(decimal.NewFromInt(int64(v)))
	case uint64:
		return NewNumber(decimal.NewFromUint64(v))
	case float32:
		return NewNumber(decimal.NewFromFloat32(v))
	case float64:
		return NewNumber(decimal.NewFromFloat(v))
	case decimal.Decimal:
		return NewNumber(v)
	case time.Time:
		return NewDateTime(v)
	case fmt.Stringer:
		return String(v.String())
	default:
		return String(fmt.Sprintf("%v", v))
	}
}
