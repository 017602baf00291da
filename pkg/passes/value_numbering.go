package passes

import (
	"github.com/buildc/buildc/pkg/hir"
	"github.com/buildc/buildc/pkg/mir"
)

// ValueNumbering assigns each name a monotonically increasing version
// within its own block (spec.md §4.9): every `__assign(name, value)`
// bumps that name's counter and tags the assigned value's Variable
// side-annotation; every later use of the same name within the block
// is tagged with the version currently in scope (an assigned value
// that is itself a bare identifier keeps the assignment's tag
// instead). Numbering resets at
// each block, matching constant_propagation's per-block scoping
// (DESIGN.md records both as the same Open-Question resolution).
type ValueNumbering struct{}

func (ValueNumbering) Name() string { return "value_numbering" }

func (ValueNumbering) Run(graph *mir.Graph) (bool, error) {
	changed := false
	graph.Entry.Walk(func(b *mir.BasicBlock) {
		versions := map[string]int{}
		for _, inst := range b.Instructions {
			if numberInstruction(inst, versions) {
				changed = true
			}
		}
		if b.Condition != nil {
			if numberInstruction(b.Condition.Cond, versions) {
				changed = true
			}
		}
	})
	return changed, nil
}

func numberInstruction(obj mir.Object, versions map[string]int) bool {
	changed := false
	if tagUse(obj, versions) {
		changed = true
	}
	call, ok := obj.(*mir.FunctionCall)
	if !ok {
		return changed
	}
	isAssign := call.Holder == "" && call.Name == hir.CallAssign && len(call.PosArgs) == 2
	for i, arg := range call.PosArgs {
		if isAssign {
			// The target and a bare-identifier value carry the
			// definition's Variable, set below, not a use tag.
			if _, bare := arg.(*mir.Identifier); i == 0 || bare {
				continue
			}
		}
		if numberInstruction(arg, versions) {
			changed = true
		}
	}
	for _, key := range call.KwOrder {
		if numberInstruction(call.KwArgs[key], versions) {
			changed = true
		}
	}
	if isAssign {
		ident, ok := call.PosArgs[0].(*mir.Identifier)
		if ok {
			version := 0
			if current, seen := versions[ident.Name]; seen {
				version = current + 1
			}
			versions[ident.Name] = version
			v := mir.Variable{Name: ident.Name, Version: version}
			if call.PosArgs[1].Var() != v {
				call.PosArgs[1].SetVar(v)
				changed = true
			}
			if ident.Var() != v {
				ident.SetVar(v)
				changed = true
			}
		}
	}
	return changed
}

// tagUse stamps a bare Identifier use with the version currently in
// scope for its name, if any assignment has set one yet.
func tagUse(obj mir.Object, versions map[string]int) bool {
	ident, ok := obj.(*mir.Identifier)
	if !ok {
		return false
	}
	version, known := versions[ident.Name]
	if !known {
		return false
	}
	v := mir.Variable{Name: ident.Name, Version: version}
	if ident.Var() == v {
		return false
	}
	ident.SetVar(v)
	return true
}
