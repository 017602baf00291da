package passes

import "github.com/buildc/buildc/pkg/mir"

// Rewriter inspects a MIR Object and optionally returns a replacement.
// A nil Object with a nil error means no change; passes build these
// as closures and hand them to one of the walkers below rather than
// re-implementing traversal over Arrays, Dicts, and FunctionCall
// arguments themselves. A non-nil error aborts the walk (spec.md §7:
// passes fail outright on malformed MIR rather than skipping it).
type Rewriter func(mir.Object) (mir.Object, error)

func walkArray(arr *mir.Array, fn Rewriter) (bool, error) {
	changed := false
	for i, el := range arr.Elements {
		rewritten, didChange, err := walkObject(el, fn)
		if err != nil {
			return false, err
		}
		if didChange {
			arr.Elements[i] = rewritten
			changed = true
		}
	}
	return changed, nil
}

func walkDict(d *mir.Dict, fn Rewriter) (bool, error) {
	changed := false
	for i, v := range d.Values {
		rewritten, didChange, err := walkObject(v, fn)
		if err != nil {
			return false, err
		}
		if didChange {
			d.Values[i] = rewritten
			changed = true
		}
	}
	return changed, nil
}

// walkFunctionArguments rewrites every positional and keyword argument
// of call, recursing first, then applying fn to each argument value.
func walkFunctionArguments(call *mir.FunctionCall, fn Rewriter) (bool, error) {
	changed := false
	for i, arg := range call.PosArgs {
		rewritten, didChange, err := walkObject(arg, fn)
		if err != nil {
			return false, err
		}
		if didChange {
			call.PosArgs[i] = rewritten
			changed = true
		}
	}
	for _, key := range call.KwOrder {
		arg := call.KwArgs[key]
		rewritten, didChange, err := walkObject(arg, fn)
		if err != nil {
			return false, err
		}
		if didChange {
			call.KwArgs[key] = rewritten
			changed = true
		}
	}
	return changed, nil
}

// walkObject recurses into obj's children (if any), applying fn
// bottom-up, then applies fn to obj itself. It returns the
// (possibly replaced) object and whether anything changed.
func walkObject(obj mir.Object, fn Rewriter) (mir.Object, bool, error) {
	changed := false
	switch n := obj.(type) {
	case *mir.Array:
		didChange, err := walkArray(n, fn)
		if err != nil {
			return nil, false, err
		}
		changed = changed || didChange
	case *mir.Dict:
		didChange, err := walkDict(n, fn)
		if err != nil {
			return nil, false, err
		}
		changed = changed || didChange
	case *mir.FunctionCall:
		didChange, err := walkFunctionArguments(n, fn)
		if err != nil {
			return nil, false, err
		}
		changed = changed || didChange
	}
	replacement, err := fn(obj)
	if err != nil {
		return nil, false, err
	}
	if replacement != nil {
		return replacement, true, nil
	}
	return obj, changed, nil
}

// instructionWalker rewrites every top-level instruction of block
// using fn, recursing into compound objects first. It does not follow
// block.Next or block.Condition — callers that need whole-graph
// coverage combine this with BasicBlock.Walk.
func instructionWalker(block *mir.BasicBlock, fn Rewriter) (bool, error) {
	changed := false
	for i, inst := range block.Instructions {
		rewritten, didChange, err := walkObject(inst, fn)
		if err != nil {
			return false, err
		}
		if didChange {
			block.Instructions[i] = rewritten
			changed = true
		}
	}
	return changed, nil
}

// walkGraph applies instructionWalker to every reachable block, and to
// every block's trailing Condition, if present.
func walkGraph(graph *mir.Graph, fn Rewriter) (bool, error) {
	changed := false
	var walkErr error
	graph.Entry.Walk(func(b *mir.BasicBlock) {
		if walkErr != nil {
			return
		}
		didChange, err := instructionWalker(b, fn)
		if err != nil {
			walkErr = err
			return
		}
		if didChange {
			changed = true
		}
		if b.Condition != nil {
			rewritten, didChange, err := walkObject(b.Condition.Cond, fn)
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
