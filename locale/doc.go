// Package locale maps numbers to CLDR plural categories for variant
// selection.
//
// Categories are derived from the visible digit string a number formats
// with, not its abstract value: English selects "one" for 1 but "other" for
// "1.00", because CLDR rules read the visible fraction digits. Operands
// carry that digit information; Rules answers with CLDR cardinal data from
// golang.org/x/text, unless a per-language override function is registered.
package locale
