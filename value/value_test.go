package value_test

import (
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluentkit/value"
)

func TestFromAny(t *testing.T) {
	t.Parallel()

	t.Run("strings pass through", func(t *testing.T) {
		v := value.FromAny("hello")
		assert.Equal(t, value.String("hello"), v)
	})

	t.Run("booleans become words", func(t *testing.T) {
		assert.Equal(t, value.String("true"), value.FromAny(true))
		assert.Equal(t, value.String("false"), value.FromAny(false))
	})

	t.Run("integers become numbers", func(t *testing.T) {
		n, ok := value.FromAny(42).(value.Number)
		require.True(t, ok)
		assert.True(t, n.Decimal().Equal(decimal.NewFromInt(42)))
	})

	t.Run("integer widths are indistinguishable", func(t *testing.T) {
		a := value.FromAny(int32(7)).(value.Number)
		b := value.FromAny(uint64(7)).(value.Number)
		assert.True(t, a.Equal(b))
	})

	t.Run("floats keep their shortest form", func(t *testing.T) {
		n := value.FromAny(1.5).(value.Number)
		assert.Equal(t, "1.5", n.Plain())
	})

	t.Run("decimals keep visible digits", func(t *testing.T) {
		n := value.FromAny(decimal.RequireFromString("1.50")).(value.Number)
		assert.Equal(t, "1.50", n.Plain())
	})

	t.Run("times become datetimes", func(t *testing.T) {
		now := time.Now()
		d, ok := value.FromAny(now).(value.DateTime)
		require.True(t, ok)
		assert.True(t, d.Time().Equal(now))
	})

	t.Run("values pass through unchanged", func(t *testing.T) {
		n := value.NewNumber(decimal.NewFromInt(3), value.WithMinFractionDigits(1))
		assert.Equal(t, n, value.FromAny(n))
	})

	t.Run("stringers use their string form", func(t *testing.T) {
		ip := net.IPv4(127, 0, 0, 1)
		assert.Equal(t, value.String("127.0.0.1"), value.FromAny(ip))
	})

	t.Run("nil becomes none", func(t *testing.T) {
		n, ok := value.FromAny(nil).(value.None)
		require.True(t, ok)
		assert.Empty(t, n.Fallback())
	})

	t.Run("unknown types render through fmt", func(t *testing.T) {
		type opaque struct{ A int }
		assert.Equal(t, value.String("{9}"), value.FromAny(opaque{A: 9}))
	})
}

func TestNonePlaceholder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{$name}", value.NewNone("{$name}").Format(language.English))
	assert.Equal(t, "{???}", value.None{}.Format(language.English))
}

func TestNumberPlain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		num  value.Number
		want string
	}{
		{
			name: "integer",
			num:  value.NewNumber(decimal.NewFromInt(5)),
			want: "5",
		},
		{
			name: "visible digits preserved",
			num:  value.NewNumber(decimal.RequireFromString("1.50")),
			want: "1.50",
		},
		{
			name: "minimum fraction digits pad",
			num:  value.NewNumber(decimal.NewFromInt(1), value.WithMinFractionDigits(2)),
			want: "1.00",
		},
		{
			name: "maximum fraction digits round",
			num:  value.NewNumber(decimal.RequireFromString("1.55"), value.WithMaxFractionDigits(1)),
			want: "1.6",
		},
		{
			name: "percent scales by one hundred",
			num:  value.NewNumber(decimal.RequireFromString("0.5"), value.WithStyle(value.StylePercent)),
			want: "50",
		},
		{
			name: "currency defaults to two digits",
			num: value.NewNumber(decimal.NewFromInt(10),
				value.WithStyle(value.StyleCurrency), value.WithCurrency("USD")),
			want: "10.00",
		},
		{
			name: "negative",
			num:  value.NewNumber(decimal.RequireFromString("-2.5")),
			want: "-2.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.num.Plain())
		})
	}
}

func TestNumberFormat(t *testing.T) {
	t.Parallel()

	t.Run("grouping in english", func(t *testing.T) {
		n := value.NewNumber(decimal.RequireFromString("1234567.8"))
		assert.Equal(t, "1,234,567.8", n.Format(language.English))
	})

	t.Run("grouping disabled", func(t *testing.T) {
		n := value.NewNumber(decimal.RequireFromString("1234.5"), value.WithUseGrouping(false))
		assert.Equal(t, "1234.5", n.Format(language.English))
	})

	t.Run("fraction digits survive grouping", func(t *testing.T) {
		n := value.NewNumber(decimal.NewFromInt(1000), value.WithMinFractionDigits(2))
		assert.Equal(t, "1,000.00", n.Format(language.English))
	})

	t.Run("percent", func(t *testing.T) {
		n := value.NewNumber(decimal.RequireFromString("0.5"), value.WithStyle(value.StylePercent))
		assert.Equal(t, "50%", n.Format(language.English))
	})

	t.Run("currency carries the amount", func(t *testing.T) {
		n := value.NewNumber(decimal.RequireFromString("9.99"),
			value.WithStyle(value.StyleCurrency), value.WithCurrency("USD"))
		got := n.Format(language.AmericanEnglish)
		assert.Contains(t, got, "9.99")
	})

	t.Run("unknown currency falls back to decimal", func(t *testing.T) {
		n := value.NewNumber(decimal.RequireFromString("9.99"),
			value.WithStyle(value.StyleCurrency), value.WithCurrency("XXXX"))
		assert.Equal(t, "9.99", n.Format(language.English))
	})

	t.Run("huge values keep exact digits", func(t *testing.T) {
		n := value.NewNumber(decimal.RequireFromString("123456789012345678901234567890"))
		assert.Equal(t, "123456789012345678901234567890", n.Format(language.English))
	})
}

func TestNumberEqual(t *testing.T) {
	t.Parallel()

	one := value.NewNumber(decimal.NewFromInt(1))
	oneDecimal := value.NewNumber(decimal.RequireFromString("1.00"))
	assert.True(t, one.Equal(oneDecimal))
	assert.NotEqual(t, one.Plain(), oneDecimal.Plain())
}

func TestDateTimeFormat(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, time.March, 15, 14, 30, 45, 0, time.UTC)

	t.Run("default is a medium date", func(t *testing.T) {
		d := value.NewDateTime(when)
		assert.Equal(t, "Mar 15, 2024", d.Format(language.English))
	})

	t.Run("full date", func(t *testing.T) {
		d := value.NewDateTime(when, value.WithDateStyle(value.StyleFull))
		assert.Equal(t, "Friday, March 15, 2024", d.Format(language.English))
	})

	t.Run("date and time", func(t *testing.T) {
		d := value.NewDateTime(when,
			value.WithDateStyle(value.StyleShort),
			value.WithTimeStyle(value.StyleShort))
		assert.Equal(t, "3/15/24, 2:30 PM", d.Format(language.English))
	})

	t.Run("time only", func(t *testing.T) {
		d := value.NewDateTime(when,
			value.WithDateStyle(value.StyleNone),
			value.WithTimeStyle(value.StyleMedium))
		assert.Equal(t, "2:30:45 PM", d.Format(language.English))
	})

	t.Run("both none still renders something", func(t *testing.T) {
		d := value.NewDateTime(when,
			value.WithDateStyle(value.StyleNone),
			value.WithTimeStyle(value.StyleNone))
		assert.Equal(t, "Mar 15, 2024", d.Format(language.English))
	})

	t.Run("location override", func(t *testing.T) {
		cet := time.FixedZone("CET", 60*60)
		d := value.NewDateTime(when,
			value.WithDateStyle(value.StyleNone),
			value.WithTimeStyle(value.StyleShort),
			value.WithLocation(cet))
		assert.Equal(t, "3:30 PM", d.Format(language.English))
	})
}
