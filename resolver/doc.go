// Package resolver evaluates localization patterns against runtime
// arguments.
//
// Resolution is best effort and never fails as a whole: every operation
// returns the text it managed to produce together with the list of
// problems hit along the way. Broken references render as placeholders in
// the output, such as "{$name}" for a missing variable or "{-brand}" for
// an unknown term, so a translation mistake degrades a message instead of
// losing it.
//
// # Expansion budget
//
// Every call carries a Budget capping the total characters produced,
// including everything generated while resolving nested messages and
// terms. When the budget runs out the call stops where it is, keeps the
// text accumulated before the failing element, and reports a single
// BudgetExceededError:
//
//	budget := resolver.NewBudget(1024)
//	text, errs := r.ResolveMessage(msg, args, budget)
//
// # Variant selection
//
// Select expressions match numeric selectors against exact numeric keys
// first, then against the locale's plural category. String selectors match
// identifier keys verbatim. When nothing matches, the variant marked as
// default is chosen.
//
// Plural categories are derived from the visible digits of the formatted
// number, so "1.00" selects a different variant than "1" in locales where
// the distinction matters.
//
// # Scoping
//
// Messages share the caller's arguments. Terms do not: a term call sees
// only the arguments written at its call site, which keeps terms reusable
// across unrelated messages.
package resolver
