package lower

import (
	"github.com/buildc/buildc/pkg/hir"
	"github.com/buildc/buildc/pkg/mir"
)

// HIRToMIR builds the initial MIR control-flow graph from a lowered
// HIR program (component C6, spec.md §4.3). Sequential statements
// populate a single entry block; hir.If constructs become mir.
// Condition nodes whose arms are fresh child blocks, reconverging at
// an inserted join block. Calls on known machine holders are not
// resolved here (that is machine_lower's job, spec.md §4.5) — this
// stage only threads the receiver name through as FunctionCall.Holder
// when the callee is a method reference on a plain identifier.
func HIRToMIR(list *hir.IRList) (*mir.Graph, error) {
	entry := &mir.BasicBlock{}
	if _, err := lowerBlock(list, entry); err != nil {
		return nil, err
	}
	return &mir.Graph{Entry: entry}, nil
}

// lowerBlock appends list's statements onto block, opening fresh child
// blocks for any nested if/elif/else construct, and returns the block
// subsequent statements belong in (the join block, if a conditional
// was seen).
func lowerBlock(list *hir.IRList, block *mir.BasicBlock) (*mir.BasicBlock, error) {
	current := block
	for _, obj := range list.Objects {
		ifObj, isIf := obj.(*hir.If)
		if !isIf {
			val, err := lowerValue(obj)
			if err != nil {
				return nil, err
			}
			current.Instructions = append(current.Instructions, val)
			continue
		}
		next, err := lowerIfToMIR(ifObj, current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// lowerIfToMIR attaches n as current's Condition and returns the join block
// both arms reconverge at.
func lowerIfToMIR(n *hir.If, current *mir.BasicBlock) (*mir.BasicBlock, error) {
	cond, err := lowerValue(n.Cond)
	if err != nil {
		return nil, err
	}

	trueEntry := &mir.BasicBlock{}
	trueTail, err := lowerBlock(n.Then, trueEntry)
	if err != nil {
		return nil, err
	}

	falseEntry, falseTail, err := lowerElseChain(n.Elifs, n.Else)
	if err != nil {
		return nil, err
	}

	join := &mir.BasicBlock{}
	trueTail.Next = join
	falseTail.Next = join

	current.Condition = &mir.Condition{Cond: cond, TrueBlock: trueEntry, FalseBlock: falseEntry}
	return join, nil
}

// lowerElseChain builds the false-arm chain from the remaining elif
// arms and optional trailing else block. Each elif becomes a nested
// Condition inside the prior false arm, the same shape an if/elif
// chain desugars to in most languages; it returns that chain's entry
// and tail block.
func lowerElseChain(elifs []hir.ElifArm, elseBlock *hir.IRList) (entry, tail *mir.BasicBlock, err error) {
	if len(elifs) == 0 {
		if elseBlock == nil {
			b := &mir.BasicBlock{}
			return b, b, nil
		}
		start := &mir.BasicBlock{}
		end, err := lowerBlock(elseBlock, start)
		if err != nil {
			return nil, nil, err
		}
		return start, end, nil
	}

	head := elifs[0]
	cond, err := lowerValue(head.Cond)
	if err != nil {
		return nil, nil, err
	}
	start := &mir.BasicBlock{}
	trueEntry := &mir.BasicBlock{}
	trueTail, err := lowerBlock(head.Block, trueEntry)
	if err != nil {
		return nil, nil, err
	}
	falseEntry, falseTail, err := lowerElseChain(elifs[1:], elseBlock)
	if err != nil {
		return nil, nil, err
	}
	join := &mir.BasicBlock{}
	trueTail.Next = join
	falseTail.Next = join
	start.Condition = &mir.Condition{Cond: cond, TrueBlock: trueEntry, FalseBlock: falseEntry}
	return start, join, nil
}

// lowerValue converts a non-If HIR object into its MIR equivalent.
func lowerValue(obj hir.Object) (mir.Object, error) {
	switch n := obj.(type) {
	case *hir.Number:
		return &mir.Number{Value: n.Value}, nil
	case *hir.Boolean:
		return &mir.Boolean{Value: n.Value}, nil
	case *hir.String:
		return &mir.String{Value: n.Value}, nil
	case *hir.Identifier:
		return &mir.Identifier{Name: n.Name}, nil
	case *hir.Array:
		elems := make([]mir.Object, len(n.Elements))
		for i, e := range n.Elements {
			v, err := lowerValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &mir.Array{Elements: elems}, nil
	case *hir.Dict:
		d := &mir.Dict{}
		for _, entry := range n.Entries {
			key, err := lowerDictKey(entry.Key)
			if err != nil {
				return nil, err
			}
			val, err := lowerValue(entry.Value)
			if err != nil {
				return nil, err
			}
			d.Keys = append(d.Keys, key)
			d.Values = append(d.Values, val)
		}
		return d, nil
	case *hir.FunctionCall:
		return lowerFunctionCall(n)
	default:
		return nil, &mir.InvalidArguments{Call: "<value>", Reason: "unsupported HIR object in value position"}
	}
}

// lowerDictKey reduces a dict key to the string mir.Dict expects.
// Build DSL dict keys are always string literals in practice; a
// non-string key is a user error surfaced here rather than silently
// stringified.
func lowerDictKey(key hir.Object) (string, error) {
	s, ok := key.(*hir.String)
	if !ok {
		return "", &mir.InvalidArguments{Call: "<dict>", Reason: "dict keys must be string literals"}
	}
	return s.Value, nil
}

func lowerFunctionCall(n *hir.FunctionCall) (mir.Object, error) {
	holder, name, err := lowerCallee(n.Callee)
	if err != nil {
		return nil, err
	}
	call := &mir.FunctionCall{Holder: holder, Name: name}
	for _, p := range n.Args.Positional {
		v, err := lowerValue(p)
		if err != nil {
			return nil, err
		}
		call.PosArgs = append(call.PosArgs, v)
	}
	for i, k := range n.Args.KeywordKey {
		v, err := lowerValue(n.Args.KeywordVal[i])
		if err != nil {
			return nil, err
		}
		if err := call.SetKwArg(k, v); err != nil {
			return nil, &mir.InvalidArguments{Call: name, Reason: err.Error()}
		}
	}
	return call, nil
}

// lowerCallee recovers the (holder, name) pair MIR FunctionCall needs
// from an HIR callee. A plain identifier is a holder-less call; a
// MethodRef on a plain identifier receiver is a holder call
// (host_machine.cpu_family() -> holder="host_machine", name=
// "cpu_family"). Deeper chains (a method call as another call's
// callee) are rejected: the Build DSL this lowers never nests calls
// that way, only machine-holder and meson.* accessor calls.
func lowerCallee(callee hir.Object) (holder, name string, err error) {
	switch c := callee.(type) {
	case *hir.Identifier:
		return "", c.Name, nil
	case *hir.MethodRef:
		recv, ok := c.Receiver.(*hir.Identifier)
		if !ok {
			return "", "", &mir.InvalidArguments{Call: c.Name, Reason: "method receiver must be a plain identifier"}
		}
		return recv.Name, c.Name, nil
	default:
		return "", "", &mir.InvalidArguments{Call: "<call>", Reason: "callee must be an identifier or method reference"}
	}
}
