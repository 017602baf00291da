package mir

// Condition is a two-way branch. TrueBlock and FalseBlock are fresh
// child blocks; both must reconverge at a join block (spec.md §3.3).
type Condition struct {
	Cond       Object
	TrueBlock  *BasicBlock
	FalseBlock *BasicBlock
}

// BasicBlock is a straight-line instruction sequence with an optional
// trailing condition and a join link to its successor. Exactly one of
// (Condition != nil) or (Next != nil) holds for a non-terminal block;
// a block with neither is a terminal block of the CFG.
type BasicBlock struct {
	Instructions []Object
	Condition    *Condition
	Next         *BasicBlock
}

// Graph is the rooted MIR control-flow graph: a single entry block
// from which every other block is reached (spec.md §3.3, §3.4: "the CFG remains
// acyclic across all passes").
type Graph struct {
	Entry *BasicBlock
}

// Successors returns this block's immediate successors in CFG order:
// the condition's arms if present, otherwise the join successor.
func (b *BasicBlock) Successors() []*BasicBlock {
	if b.Condition != nil {
		succ := make([]*BasicBlock, 0, 2)
		if b.Condition.TrueBlock != nil {
			succ = append(succ, b.Condition.TrueBlock)
		}
		if b.Condition.FalseBlock != nil {
			succ = append(succ, b.Condition.FalseBlock)
		}
		return succ
	}
	if b.Next != nil {
		return []*BasicBlock{b.Next}
	}
	return nil
}

// Walk visits every block reachable from b exactly once, in a
// deterministic pre-order (block itself, then true/false arms or the
// join successor). Passes that need "every block" (not just the
// top-level instruction stream) use this rather than re-implementing
// CFG traversal.
func (b *BasicBlock) Walk(visit func(*BasicBlock)) {
	seen := make(map[*BasicBlock]bool)
	var rec func(*BasicBlock)
	rec = func(blk *BasicBlock) {
		if blk == nil || seen[blk] {
			return
		}
		seen[blk] = true
		visit(blk)
		for _, succ := range blk.Successors() {
			rec(succ)
		}
	}
	rec(b)
}
