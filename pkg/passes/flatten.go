package passes

import "github.com/buildc/buildc/pkg/mir"

// noFlattenCalls are message-producing calls whose positional
// arguments are meant to be read as a literal sequence rather than
// flattened (spec.md §4.7).
var noFlattenCalls = map[string]bool{
	"message": true,
	"error":   true,
	"warning": true,
}

// Flatten recursively inlines nested Array positional arguments of
// every call into one flat positional list, except for message/error/
// warning calls (spec.md §4.7).
type Flatten struct{}

func (Flatten) Name() string { return "flatten" }

func (Flatten) Run(graph *mir.Graph) (bool, error) {
	changed := false
	graph.Entry.Walk(func(b *mir.BasicBlock) {
		var calls []*mir.FunctionCall
		for _, inst := range b.Instructions {
			collectCalls(inst, &calls)
		}
		if b.Condition != nil {
			collectCalls(b.Condition.Cond, &calls)
		}
		for _, call := range calls {
			if flattenCall(call) {
				changed = true
			}
		}
	})
	return changed, nil
}

func collectCalls(obj mir.Object, out *[]*mir.FunctionCall) {
	switch n := obj.(type) {
	case *mir.FunctionCall:
		*out = append(*out, n)
		for _, p := range n.PosArgs {
			collectCalls(p, out)
		}
		for _, k := range n.KwOrder {
			collectCalls(n.KwArgs[k], out)
		}
	case *mir.Array:
		for _, e := range n.Elements {
			collectCalls(e, out)
		}
	case *mir.Dict:
		for _, v := range n.Values {
			collectCalls(v, out)
		}
	}
}

func flattenCall(call *mir.FunctionCall) bool {
	if noFlattenCalls[call.Name] {
		return false
	}
	changed := false
	out := make([]mir.Object, 0, len(call.PosArgs))
	for _, arg := range call.PosArgs {
		if arr, ok := arg.(*mir.Array); ok {
			changed = true
			out = append(out, flattenElements(arr.Elements)...)
			continue
		}
		out = append(out, arg)
	}
	if changed {
		call.PosArgs = out
	}
	return changed
}

func flattenElements(elems []mir.Object) []mir.Object {
	out := make([]mir.Object, 0, len(elems))
	for _, e := range elems {
		if arr, ok := e.(*mir.Array); ok {
			out = append(out, flattenElements(arr.Elements)...)
			continue
		}
		out = append(out, e)
	}
	return out
}
