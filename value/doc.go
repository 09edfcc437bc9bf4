// Package value defines the runtime values that flow through message
// resolution: String, Number, DateTime, and the None error placeholder.
//
// The Value interface is sealed, so the set of kinds is closed and the
// resolver, cache, and function dispatcher can switch over it exhaustively.
// FromAny converts caller-provided Go arguments through an equally closed
// switch; notably, booleans become the words "true" and "false" rather than
// numbers.
//
// Numbers carry exact decimals (shopspring/decimal) plus formatting options,
// and remember their visible fraction digits: a value parsed from "1.50"
// renders as 1.50 and exposes two fraction digits to plural-category
// selection, while plain 1.5 exposes one. Rendering goes through
// golang.org/x/text for grouping, percent, and currency forms.
package value
