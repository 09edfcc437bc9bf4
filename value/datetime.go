package value

import (
	"time"

	"golang.org/x/text/language"
)

// DateTimeStyle selects how much of a date or time is rendered.
type DateTimeStyle string

const (
	StyleFull   DateTimeStyle = "full"
	StyleLong   DateTimeStyle = "long"
	StyleMedium DateTimeStyle = "medium"
	StyleShort  DateTimeStyle = "short"
	StyleNone   DateTimeStyle = "none"
)

// DateTime is a point in time with rendering styles. The default is a
// medium date with no time part. Layouts use English month and day names;
// x/text ships no CLDR date patterns, so full locale-aware date rendering
// is out of reach without a heavier data dependency.
type DateTime struct {
	t         time.Time
	dateStyle DateTimeStyle
	timeStyle DateTimeStyle
	loc       *time.Location
}

// DateTimeOption mutates rendering options when deriving a DateTime.
type DateTimeOption func(*DateTime)

// WithDateStyle sets the date portion's style.
func WithDateStyle(s DateTimeStyle) DateTimeOption {
	return func(d *DateTime) { d.dateStyle = s }
}

// WithTimeStyle sets the time portion's style.
func WithTimeStyle(s DateTimeStyle) DateTimeOption {
	return func(d *DateTime) { d.timeStyle = s }
}

// WithLocation renders in the given zone instead of the time's own.
func WithLocation(loc *time.Location) DateTimeOption {
	return func(d *DateTime) { d.loc = loc }
}

// NewDateTime builds a DateTime with default styles, then applies opts.
func NewDateTime(t time.Time, opts ...DateTimeOption) DateTime {
	d := DateTime{t: t, dateStyle: StyleMedium, timeStyle: StyleNone}
	return d.With(opts...)
}

// With returns a copy of the value with additional options applied.
func (d DateTime) With(opts ...DateTimeOption) DateTime {
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func (DateTime) value() {}

// Time returns the wrapped time.
func (d DateTime) Time() time.Time { return d.t }

// DateStyle returns the date portion's style.
func (d DateTime) DateStyle() DateTimeStyle { return d.dateStyle }

// TimeStyle returns the time portion's style.
func (d DateTime) TimeStyle() DateTimeStyle { return d.timeStyle }

// Location returns the zone override, or nil when the time's own zone is
// used.
func (d DateTime) Location() *time.Location { return d.loc }

var dateLayouts = map[DateTimeStyle]string{
	StyleFull:   "Monday, January 2, 2006",
	StyleLong:   "January 2, 2006",
	StyleMedium: "Jan 2, 2006",
	StyleShort:  "1/2/06",
}

var timeLayouts = map[DateTimeStyle]string{
	StyleFull:   "3:04:05 PM MST",
	StyleLong:   "3:04:05 PM MST",
	StyleMedium: "3:04:05 PM",
	StyleShort:  "3:04 PM",
}

// Format renders the value. Unknown styles fall back to medium, and a value
// with both portions disabled renders as a medium date rather than nothing.
func (d DateTime) Format(language.Tag) string {
	t := d.t
	if d.loc != nil {
		t = t.In(d.loc)
	}

	dateLayout := ""
	if d.dateStyle != StyleNone {
		var ok bool
		if dateLayout, ok = dateLayouts[d.dateStyle]; !ok {
			dateLayout = dateLayouts[StyleMedium]
		}
	}
	timeLayout := ""
	if d.timeStyle != StyleNone {
		var ok bool
		if timeLayout, ok = timeLayouts[d.timeStyle]; !ok {
			timeLayout = timeLayouts[StyleMedium]
		}
	}

	switch {
	case dateLayout == "" && timeLayout == "":
		return t.Format(dateLayouts[StyleMedium])
	case dateLayout == "":
		return t.Format(timeLayout)
	case timeLayout == "":
		return t.Format(dateLayout)
	default:
		return t.Format(dateLayout + ", " + timeLayout)
	}
}
