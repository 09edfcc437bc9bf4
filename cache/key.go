package cache

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/fluentkit/value"
)

// maxDepth bounds canonicalization recursion. Payloads nested deeper, which
// includes any self-referential structure, make the key unavailable.
const maxDepth = 8

var (
	errTooDeep     = errors.New("cache: argument nesting too deep")
	errUnknownType = errors.New("cache: unsupported argument type")
)

// key identifies one formatting result. All fields are comparable; args is
// the canonical encoding of the argument payload.
type key struct {
	id        string
	attribute string
	locale    string
	strict    bool
	args      string
}

// buildKey canonicalizes the coordinates of a formatting call. Every
// canonicalization failure collapses into an unavailable key, which callers
// treat as a forced miss.
func buildKey(id, attribute, locale string, strict bool, args map[string]any) (key, error) {
	enc, err := canonical(args, 0)
	if err != nil {
		return key{}, err
	}
	return key{id: id, attribute: attribute, locale: locale, strict: strict, args: enc}, nil
}

// canonical produces a deterministic, type-tagged encoding of one argument
// value. Tags keep differently typed arguments apart: 1, 1.0, true, and "1"
// format differently downstream, so they must never share an entry. Plain
// strings are quoted for the same reason; an unquoted string could forge
// any other encoding.
//
// The switch is closed on purpose. Arguments outside it are rejected here
// rather than inspected reflectively, and the call is simply not cached.
func canonical(v any, depth int) (string, error) {
	if depth > maxDepth {
		return "", errTooDeep
	}

	switch v := v.(type) {
	case nil:
		return "n", nil
	case string:
		return "s:" + strconv.Quote(v), nil
	case value.String:
		return "s:" + strconv.Quote(string(v)), nil
	case bool:
		return "b:" + strconv.FormatBool(v), nil
	case int:
		return "i:" + strconv.FormatInt(int64(v), 10), nil
	case int8:
		return "i:" + strconv.FormatInt(int64(v), 10), nil
	case int16:
		return "i:" + strconv.FormatInt(int64(v), 10), nil
	case int32:
		return "i:" + strconv.FormatInt(int64(v), 10), nil
	case int64:
		return "i:" + strconv.FormatInt(v, 10), nil
	case uint:
		return "i:" + strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return "i:" + strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return "i:" + strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return "i:" + strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return "i:" + strconv.FormatUint(v, 10), nil
	case float32:
		return "f:" + strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return "f:" + strconv.FormatFloat(v, 'g', -1, 64), nil
	case decimal.Decimal:
		// Exponent-preserving: "1.0" and "1.00" format with different
		// visible digits and stay distinct.
		return "d:" + v.String(), nil
	case time.Time:
		return "t:" + canonicalTime(v), nil
	case value.Number:
		return canonicalNumber(v), nil
	case value.DateTime:
		return canonicalDateTime(v), nil
	case value.None:
		return "x:" + strconv.Quote(v.Fallback()), nil
	case []string:
		parts := make([]string, len(v))
		for i, s := range v {
			parts[i] = "s:" + strconv.Quote(s)
		}
		return "l:[" + strings.Join(parts, ",") + "]", nil
	case []any:
		parts := make([]string, len(v))
		for i, el := range v {
			enc, err := canonical(el, depth+1)
			if err != nil {
				return "", err
			}
			parts[i] = enc
		}
		return "l:[" + strings.Join(parts, ",") + "]", nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			enc, err := canonical(v[k], depth+1)
			if err != nil {
				return "", err
			}
			parts[i] = strconv.Quote(k) + "=" + enc
		}
		return "m:{" + strings.Join(parts, ",") + "}", nil
	case map[string]struct{}:
		elems := make([]string, 0, len(v))
		for k := range v {
			elems = append(elems, strconv.Quote(k))
		}
		slices.Sort(elems)
		return "S:{" + strings.Join(elems, ",") + "}", nil
	default:
		return "", fmt.Errorf("%w: %T", errUnknownType, v)
	}
}

// canonicalTime appends the zone name to the instant: equal instants in
// zones that share an offset but not a name can still format differently.
func canonicalTime(t time.Time) string {
	return t.Format(time.RFC3339Nano) + "@" + t.Location().String()
}

func canonicalNumber(n value.Number) string {
	o := n.Options()
	return fmt.Sprintf("N:%s;%s;%s;%t;%d;%d",
		n.Decimal().String(), o.Style, o.Currency, o.UseGrouping,
		o.MinFractionDigits, o.MaxFractionDigits)
}

func canonicalDateTime(d value.DateTime) string {
	loc := "-"
	if l := d.Location(); l != nil {
		loc = l.String()
	}
	return fmt.Sprintf("T:%s;%s;%s;%s",
		canonicalTime(d.Time()), d.DateStyle(), d.TimeStyle(), loc)
}
