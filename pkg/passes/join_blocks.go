package passes

import "github.com/buildc/buildc/pkg/mir"

// JoinBlocks splices a block's unique successor into it whenever that
// successor has no other predecessor and the block itself ends
// unconditionally (spec.md §4.11). This is what cleans up the empty
// join blocks hir_to_mir.go inserts at every if/elif/else
// reconvergence point once branch_pruning has nothing left to fold.
type JoinBlocks struct{}

func (JoinBlocks) Name() string { return "join_blocks" }

func (JoinBlocks) Run(graph *mir.Graph) (bool, error) {
	predecessors := map[*mir.BasicBlock]int{}
	graph.Entry.Walk(func(b *mir.BasicBlock) {
		for _, succ := range b.Successors() {
			predecessors[succ]++
		}
	})

	changed := false
	visited := map[*mir.BasicBlock]bool{}
	var join func(*mir.BasicBlock)
	join = func(b *mir.BasicBlock) {
		if b == nil || visited[b] {
			return
		}
		visited[b] = true
		for b.Condition == nil && b.Next != nil && predecessors[b.Next] == 1 {
			next := b.Next
			b.Instructions = append(b.Instructions, next.Instructions...)
			b.Condition = next.Condition
			b.Next = next.Next
			changed = true
		}
		for _, succ := range b.Successors() {
			join(succ)
		}
	}
	join(graph.Entry)
	return changed, nil
}
