package ast

// Walk calls fn for every expression reachable from the pattern, descending
// into placeables, call arguments, selectors, and variant patterns. Walk
// follows the tree only; it does not resolve references, so it terminates on
// any input, including trees whose references form cycles.
func Walk(p Pattern, fn func(Expression)) {
	for _, el := range p {
		if pl, ok := el.(*Placeable); ok {
			walkExpression(pl.Expression, fn)
		}
	}
}

func walkExpression(e Expression, fn func(Expression)) {
	if e == nil {
		return
	}
	fn(e)
	switch e := e.(type) {
	case *TermReference:
		walkArguments(e.Arguments, fn)
	case *FunctionReference:
		walkArguments(e.Arguments, fn)
	case *SelectExpression:
		walkExpression(e.Selector, fn)
		for _, v := range e.Variants {
			Walk(v.Value, fn)
		}
	}
}

func walkArguments(args *CallArguments, fn func(Expression)) {
	if args == nil {
		return
	}
	for _, a := range args.Positional {
		walkExpression(a, fn)
	}
	for _, a := range args.Named {
		walkExpression(a.Value, fn)
	}
}
