package passes

import "github.com/buildc/buildc/pkg/mir"

// BranchPruning replaces a Condition whose Cond has reduced to a
// Boolean literal with the instructions and tail of the selected arm,
// spliced directly into the block that held the Condition (spec.md
// §4.10). It loops on the same block after a splice, since the
// inlined arm may itself end in a now-foldable Condition (an elif
// chain folding away one level at a time).
type BranchPruning struct{}

func (BranchPruning) Name() string { return "branch_pruning" }

func (BranchPruning) Run(graph *mir.Graph) (bool, error) {
	changed := false
	visited := map[*mir.BasicBlock]bool{}
	var prune func(*mir.BasicBlock)
	prune = func(b *mir.BasicBlock) {
		if b == nil || visited[b] {
			return
		}
		visited[b] = true
		for b.Condition != nil {
			boolean, ok := b.Condition.Cond.(*mir.Boolean)
			if !ok {
				break
			}
			arm := b.Condition.FalseBlock
			if boolean.Value {
				arm = b.Condition.TrueBlock
			}
			b.Instructions = append(b.Instructions, arm.Instructions...)
			b.Condition = arm.Condition
			b.Next = arm.Next
			changed = true
		}
		for _, succ := range b.Successors() {
			prune(succ)
		}
	}
	prune(graph.Entry)
	return changed, nil
}
