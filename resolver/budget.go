package resolver

// DefaultMaxExpansion is the budget applied when a caller passes a nil
// budget to the resolve operations.
const DefaultMaxExpansion = 8192

// Budget is the resolution context shared by every nested resolution of one
// formatting call: a single running total of produced characters. The cap
// is what keeps a short message from expanding into an enormous output
// through nested references, however deep the nesting goes.
//
// A Budget belongs to one call on one goroutine; it is not synchronized.
type Budget struct {
	limit int
	used  int
}

// NewBudget creates a budget allowing at most limit characters. A
// non-positive limit is a programmer error and panics.
func NewBudget(limit int) *Budget {
	if limit <= 0 {
		panic("resolver: budget limit must be positive")
	}
	return &Budget{limit: limit}
}

// Track records n more produced characters. It fails only once the running
// total passes the limit; landing exactly on it is fine. The total keeps
// counting even on failure, so Exceeded reports true afterwards.
func (b *Budget) Track(n int) error {
	b.used += n
	if b.used > b.limit {
		return &BudgetExceededError{Used: b.used, Limit: b.limit}
	}
	return nil
}

// Used returns the characters tracked so far.
func (b *Budget) Used() int { return b.used }

// Limit returns the cap.
func (b *Budget) Limit() int { return b.limit }

// Exceeded reports whether the total has reached the limit. The pattern
// loop stops before processing another element once this is true.
func (b *Budget) Exceeded() bool { return b.used >= b.limit }
