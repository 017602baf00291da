// Package passes implements the fixed-point MIR optimization suite of
// spec.md §4.4–§4.10: machine-info folding, compiler insertion, array
// flattening, build-target insertion, constant propagation, value
// numbering, branch pruning, and basic-block joining. The driver below is grounded directly on
// the teacher's pkg/optimizer/optimizer.go: a Pass interface plus an
// Optimizer.Optimize loop that reruns every pass until none reports
// progress, bounded by a maximum iteration count as a divergence
// backstop.
package passes

import (
	"fmt"

	"github.com/buildc/buildc/pkg/mir"
)

// Pass is one optimization pass over a MIR graph. Run reports whether
// it changed the graph, so the driver knows whether another round is
// worthwhile.
type Pass interface {
	Name() string
	Run(graph *mir.Graph) (bool, error)
}

// PassDivergence is raised when the fixed-point loop exceeds its
// iteration cap without settling — an internal invariant failure
// (spec.md §7), never a user-facing mistake.
type PassDivergence struct {
	Iterations int
}

func (e *PassDivergence) Error() string {
	return fmt.Sprintf("optimization passes did not converge after %d iterations", e.Iterations)
}

// defaultMaxIterations is the divergence backstop spec.md §9 suggests.
const defaultMaxIterations = 1000

// Driver runs a fixed sequence of passes to a fixed point.
type Driver struct {
	passes        []Pass
	maxIterations int
}

// NewDriver builds a Driver running passes in the given order, each
// round, until none report progress.
func NewDriver(passes ...Pass) *Driver {
	return &Driver{passes: passes, maxIterations: defaultMaxIterations}
}

// Run drives graph to a fixed point. It returns *PassDivergence if the
// suite does not settle within the iteration cap.
func (d *Driver) Run(graph *mir.Graph) error {
	for iteration := 0; iteration < d.maxIterations; iteration++ {
		changed := false
		for _, pass := range d.passes {
			passChanged, err := pass.Run(graph)
			if err != nil {
				return err
			}
			if passChanged {
				changed = true
			}
		}
		if !changed {
			return nil
		}
	}
	return &PassDivergence{Iterations: d.maxIterations}
}
