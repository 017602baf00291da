package passes

import "github.com/buildc/buildc/pkg/mir"

// targetBuilders maps a recognized build-target call name to the
// function that turns its reduced positional arguments into a
// mir.BuildTarget (spec.md §6.1). executable is the only variant
// spec.md names; the map shape leaves room for sibling target kinds
// (e.g. a future library()) without touching the rewrite dispatch.
var targetBuilders = map[string]func(name string, sources []*mir.File) mir.BuildTarget{
	"executable": func(name string, sources []*mir.File) mir.BuildTarget {
		return &mir.Executable{Name: name, Sources: sources, Machine: mir.Host}
	},
}

// InsertTargets replaces a flattened executable(name, source...) call
// with the mir.Executable build target it denotes (spec.md §6.1: "the
// machine is HOST by default"), once every source argument has
// reduced to a String literal. It defers (reports no match, not an
// error) while an argument is still unreduced — a later
// constant_propagation/flatten round resolves it first, and this pass
// is re-run to a fixed point alongside them, the same interleaving
// InsertCompilers relies on for meson.get_compiler().
type InsertTargets struct {
	SourceRoot string
	BuildRoot  string
}

func (p *InsertTargets) Name() string { return "insert_targets" }

func (p *InsertTargets) Run(graph *mir.Graph) (bool, error) {
	return walkGraph(graph, p.rewrite)
}

func (p *InsertTargets) rewrite(obj mir.Object) (mir.Object, error) {
	call, ok := obj.(*mir.FunctionCall)
	if !ok || call.Holder != "" {
		return nil, nil
	}
	build, known := targetBuilders[call.Name]
	if !known {
		return nil, nil
	}
	if len(call.PosArgs) < 1 {
		return nil, &mir.InvalidArguments{Call: call.Name, Reason: "missing name argument"}
	}
	nameStr, ok := call.PosArgs[0].(*mir.String)
	if !ok {
		return nil, nil
	}
	sources := make([]*mir.File, 0, len(call.PosArgs)-1)
	for _, arg := range call.PosArgs[1:] {
		s, ok := arg.(*mir.String)
		if !ok {
			return nil, nil
		}
		sources = append(sources, &mir.File{
			Name:       s.Value,
			SourceRoot: p.SourceRoot,
			BuildRoot:  p.BuildRoot,
		})
	}
	return build(nameStr.Value, sources), nil
}
