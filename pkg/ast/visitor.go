package ast

// Walk calls visit on n and recursively on every child expression, in
// source order. It does not mutate the tree; AST→HIR lowering
// (pkg/lower) uses its own structural recursion since it must produce
// a new tree rather than just observe this one.
func Walk(n Expression, visit func(Expression)) {
	visit(n)
	switch e := n.(type) {
	case *Array:
		for _, el := range e.Elements {
			Walk(el, visit)
		}
	case *Dict:
		for _, entry := range e.Entries {
			Walk(entry.Key, visit)
			Walk(entry.Value, visit)
		}
	case *Unary:
		Walk(e.Rhs, visit)
	case *Multiplicative:
		Walk(e.Lhs, visit)
		Walk(e.Rhs, visit)
	case *Additive:
		Walk(e.Lhs, visit)
		Walk(e.Rhs, visit)
	case *Relational:
		Walk(e.Lhs, visit)
		Walk(e.Rhs, visit)
	case *Subscript:
		Walk(e.Lhs, visit)
		Walk(e.Rhs, visit)
	case *Assignment:
		Walk(e.Lhs, visit)
		Walk(e.Rhs, visit)
	case *FunctionCall:
		Walk(e.Callee, visit)
		walkArgs(e.Args, visit)
	case *MethodCall:
		Walk(e.Receiver, visit)
		walkArgs(e.Args, visit)
	}
}

func walkArgs(a *Arguments, visit func(Expression)) {
	if a == nil {
		return
	}
	for _, p := range a.Positional {
		Walk(p, visit)
	}
	for _, v := range a.KeywordVal {
		Walk(v, visit)
	}
}
