package passes

import (
	"github.com/buildc/buildc/pkg/hir"
	"github.com/buildc/buildc/pkg/mir"
)

// ConstantPropagation substitutes known-constant identifier bindings
// into expressions and folds the synthetic operator calls AST→HIR
// lowering produced (__add, __eq, ...) back into literals once their
// operands are constant (spec.md §4.8).
//
// Bindings are tracked per-block only: an assignment's binding does
// not carry across a Condition's arms or into a join block. spec.md
// §9 leaves cross-block propagation as an Open Question; DESIGN.md
// records this per-block scoping as the resolution, not a partial
// stub to finish later.
type ConstantPropagation struct{}

func (ConstantPropagation) Name() string { return "constant_propagation" }

func (ConstantPropagation) Run(graph *mir.Graph) (bool, error) {
	changed := false
	var walkErr error
	graph.Entry.Walk(func(b *mir.BasicBlock) {
		if walkErr != nil {
			return
		}
		bindings := map[string]mir.Object{}
		for i, inst := range b.Instructions {
			rewritten, didChange, err := substitute(inst, bindings)
			if err != nil {
				walkErr = err
				return
			}
			if didChange {
				b.Instructions[i] = rewritten
				changed = true
			}
			recordAssignment(rewritten, bindings)
		}
		if b.Condition != nil {
			rewritten, didChange, err := substitute(b.Condition.Cond, bindings)
			if err != nil {
				walkErr = err
				return
			}
			if didChange {
				b.Condition.Cond = rewritten
				changed = true
			}
		}
	})
	return changed, walkErr
}

func recordAssignment(obj mir.Object, bindings map[string]mir.Object) {
	call, ok := obj.(*mir.FunctionCall)
	if !ok || call.Holder != "" || call.Name != hir.CallAssign || len(call.PosArgs) != 2 {
		return
	}
	ident, ok := call.PosArgs[0].(*mir.Identifier)
	if !ok {
		return
	}
	if isLiteral(call.PosArgs[1]) {
		bindings[ident.Name] = call.PosArgs[1]
	} else {
		delete(bindings, ident.Name)
	}
}

// cloneLiteral returns an independent copy of a literal bound in
// `bindings`, so that tagging one use's Variable (value_numbering.go)
// never mutates another use sharing the same binding.
func cloneLiteral(obj mir.Object) mir.Object {
	switch v := obj.(type) {
	case *mir.Number:
		return &mir.Number{Value: v.Value}
	case *mir.Boolean:
		return &mir.Boolean{Value: v.Value}
	case *mir.String:
		return &mir.String{Value: v.Value}
	case *mir.Array:
		elems := make([]mir.Object, len(v.Elements))
		copy(elems, v.Elements)
		return &mir.Array{Elements: elems}
	case *mir.Dict:
		keys := make([]string, len(v.Keys))
		copy(keys, v.Keys)
		values := make([]mir.Object, len(v.Values))
		copy(values, v.Values)
		return &mir.Dict{Keys: keys, Values: values}
	default:
		return obj
	}
}

func isLiteral(obj mir.Object) bool {
	switch obj.(type) {
	case *mir.Number, *mir.Boolean, *mir.String, *mir.Array, *mir.Dict:
		return true
	default:
		return false
	}
}

// substitute replaces identifier leaves with their bound constant and
// folds synthetic operator calls whose operands are now all literal,
// recursing bottom-up through Arrays, Dicts, and call arguments.
func substitute(obj mir.Object, bindings map[string]mir.Object) (mir.Object, bool, error) {
	switch n := obj.(type) {
	case *mir.Identifier:
		if bound, ok := bindings[n.Name]; ok {
			return cloneLiteral(bound), true, nil
		}
		return obj, false, nil
	case *mir.Array:
		changed, err := walkArray(n, func(o mir.Object) (mir.Object, error) {
			r, c, e := substitute(o, bindings)
			if e != nil || !c {
				return nil, e
			}
			return r, nil
		})
		return n, changed, err
	case *mir.Dict:
		changed, err := walkDict(n, func(o mir.Object) (mir.Object, error) {
			r, c, e := substitute(o, bindings)
			if e != nil || !c {
				return nil, e
			}
			return r, nil
		})
		return n, changed, err
	case *mir.FunctionCall:
		if n.Holder == "" && n.Name == hir.CallAssign && len(n.PosArgs) == 2 {
			// The target is a definition, not a read: only the value
			// side is substituted.
			r, c, err := substitute(n.PosArgs[1], bindings)
			if err != nil {
				return nil, false, err
			}
			if c {
				n.PosArgs[1] = r
			}
			return n, c, nil
		}
		changed, err := walkFunctionArguments(n, func(o mir.Object) (mir.Object, error) {
			r, c, e := substitute(o, bindings)
			if e != nil || !c {
				return nil, e
			}
			return r, nil
		})
		if err != nil {
			return nil, false, err
		}
		folded, didFold, err := foldCall(n)
		if err != nil {
			return nil, false, err
		}
		if didFold {
			return folded, true, nil
		}
		return n, changed, nil
	default:
		return obj, false, nil
	}
}

// foldCall evaluates a synthetic operator call whose operands have
// already reduced to literals. It leaves calls with non-literal
// operands (or whose Name is not one of the synthetic operators)
// untouched — foldCall reports didFold=false, not an error, so later
// rounds get another chance once more operands become constant.
func foldCall(call *mir.FunctionCall) (mir.Object, bool, error) {
	if call.Holder != "" {
		return nil, false, nil
	}
	switch call.Name {
	case hir.CallNeg:
		return foldUnary(call)
	case hir.CallAdd, hir.CallSub, hir.CallMul, hir.CallDiv, hir.CallMod,
		hir.CallLt, hir.CallLe, hir.CallEq, hir.CallNe, hir.CallGe, hir.CallGt,
		hir.CallAnd, hir.CallOr, hir.CallIn, hir.CallNotIn:
		return foldBinary(call)
	default:
		return nil, false, nil
	}
}

func foldUnary(call *mir.FunctionCall) (mir.Object, bool, error) {
	if len(call.PosArgs) != 1 {
		return nil, false, nil
	}
	n, ok := call.PosArgs[0].(*mir.Number)
	if !ok {
		return nil, false, nil
	}
	return &mir.Number{Value: -n.Value}, true, nil
}

func foldBinary(call *mir.FunctionCall) (mir.Object, bool, error) {
	if len(call.PosArgs) != 2 {
		return nil, false, nil
	}
	lhs, rhs := call.PosArgs[0], call.PosArgs[1]

	switch call.Name {
	case hir.CallAdd:
		return foldAdd(lhs, rhs)
	case hir.CallSub, hir.CallMul, hir.CallDiv, hir.CallMod:
		return foldArith(call.Name, lhs, rhs)
	case hir.CallLt, hir.CallLe, hir.CallEq, hir.CallNe, hir.CallGe, hir.CallGt:
		return foldCompare(call.Name, lhs, rhs)
	case hir.CallAnd, hir.CallOr:
		return foldLogic(call.Name, lhs, rhs)
	case hir.CallIn, hir.CallNotIn:
		return foldMembership(call.Name, lhs, rhs)
	default:
		return nil, false, nil
	}
}

func foldAdd(lhs, rhs mir.Object) (mir.Object, bool, error) {
	if l, ok := lhs.(*mir.Number); ok {
		if r, ok := rhs.(*mir.Number); ok {
			return &mir.Number{Value: l.Value + r.Value}, true, nil
		}
	}
	if l, ok := lhs.(*mir.String); ok {
		if r, ok := rhs.(*mir.String); ok {
			return &mir.String{Value: l.Value + r.Value}, true, nil
		}
	}
	if l, ok := lhs.(*mir.Array); ok {
		if r, ok := rhs.(*mir.Array); ok {
			elems := make([]mir.Object, 0, len(l.Elements)+len(r.Elements))
			elems = append(elems, l.Elements...)
			elems = append(elems, r.Elements...)
			return &mir.Array{Elements: elems}, true, nil
		}
	}
	return nil, false, nil
}

func foldArith(name string, lhs, rhs mir.Object) (mir.Object, bool, error) {
	l, ok := lhs.(*mir.Number)
	if !ok {
		return nil, false, nil
	}
	r, ok := rhs.(*mir.Number)
	if !ok {
		return nil, false, nil
	}
	switch name {
	case hir.CallSub:
		return &mir.Number{Value: l.Value - r.Value}, true, nil
	case hir.CallMul:
		return &mir.Number{Value: l.Value * r.Value}, true, nil
	case hir.CallDiv:
		if r.Value == 0 {
			return nil, false, &mir.InvalidArguments{Call: hir.CallDiv, Reason: "division by zero"}
		}
		return &mir.Number{Value: l.Value / r.Value}, true, nil
	case hir.CallMod:
		if r.Value == 0 {
			return nil, false, &mir.InvalidArguments{Call: hir.CallMod, Reason: "division by zero"}
		}
		return &mir.Number{Value: l.Value % r.Value}, true, nil
	default:
		return nil, false, nil
	}
}

func foldCompare(name string, lhs, rhs mir.Object) (mir.Object, bool, error) {
	if ln, ok := lhs.(*mir.Number); ok {
		if rn, ok := rhs.(*mir.Number); ok {
			return numberCompare(name, ln.Value, rn.Value)
		}
	}
	// Equality/inequality also apply to strings and booleans.
	switch name {
	case hir.CallEq, hir.CallNe:
		eq, ok := literalsEqual(lhs, rhs)
		if !ok {
			return nil, false, nil
		}
		if name == hir.CallNe {
			eq = !eq
		}
		return &mir.Boolean{Value: eq}, true, nil
	default:
		return nil, false, nil
	}
}

func numberCompare(name string, l, r int64) (mir.Object, bool, error) {
	var v bool
	switch name {
	case hir.CallLt:
		v = l < r
	case hir.CallLe:
		v = l <= r
	case hir.CallEq:
		v = l == r
	case hir.CallNe:
		v = l != r
	case hir.CallGe:
		v = l >= r
	case hir.CallGt:
		v = l > r
	default:
		return nil, false, nil
	}
	return &mir.Boolean{Value: v}, true, nil
}

func literalsEqual(lhs, rhs mir.Object) (bool, bool) {
	switch l := lhs.(type) {
	case *mir.Number:
		r, ok := rhs.(*mir.Number)
		return ok && l.Value == r.Value, ok
	case *mir.String:
		r, ok := rhs.(*mir.String)
		return ok && l.Value == r.Value, ok
	case *mir.Boolean:
		r, ok := rhs.(*mir.Boolean)
		return ok && l.Value == r.Value, ok
	default:
		return false, false
	}
}

func foldLogic(name string, lhs, rhs mir.Object) (mir.Object, bool, error) {
	l, ok := lhs.(*mir.Boolean)
	if !ok {
		return nil, false, nil
	}
	r, ok := rhs.(*mir.Boolean)
	if !ok {
		return nil, false, nil
	}
	if name == hir.CallAnd {
		return &mir.Boolean{Value: l.Value && r.Value}, true, nil
	}
	return &mir.Boolean{Value: l.Value || r.Value}, true, nil
}

func foldMembership(name string, lhs, rhs mir.Object) (mir.Object, bool, error) {
	arr, ok := rhs.(*mir.Array)
	if !ok {
		return nil, false, nil
	}
	found := false
	for _, el := range arr.Elements {
		if eq, ok := literalsEqual(lhs, el); ok && eq {
			found = true
			break
		}
	}
	if name == hir.CallNotIn {
		found = !found
	}
	return &mir.Boolean{Value: found}, true, nil
}
