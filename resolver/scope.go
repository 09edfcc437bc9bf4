package resolver

import "github.com/dmitrymomot/fluentkit/value"

// scope carries the mutable state of one resolution call: the converted
// arguments, the accumulated diagnostics, and the set of entries currently
// being resolved.
type scope struct {
	args   map[string]value.Value
	budget *Budget
	errs   []error
	active map[string]struct{}

	// budgetReported keeps the diagnostics down to one budget error per
	// call no matter how many levels the failure unwinds through.
	budgetReported bool
}

func newScope(args map[string]any, budget *Budget) *scope {
	conv := make(map[string]value.Value, len(args))
	for k, v := range args {
		conv[k] = value.FromAny(v)
	}
	return &scope{
		args:   conv,
		budget: budget,
		active: make(map[string]struct{}),
	}
}

func (sc *scope) report(err error) {
	sc.errs = append(sc.errs, err)
}

func (sc *scope) reportBudget(err error) {
	if sc.budgetReported {
		return
	}
	sc.budgetReported = true
	sc.report(err)
}

// enter marks an entry as in-flight. It reports false when the entry is
// already being resolved, which means the reference graph has a cycle.
func (sc *scope) enter(key string) bool {
	if _, ok := sc.active[key]; ok {
		return false
	}
	sc.active[key] = struct{}{}
	return true
}

func (sc *scope) leave(key string) {
	delete(sc.active, key)
}
