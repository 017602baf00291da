package passes

import (
	"testing"

	"github.com/buildc/buildc/pkg/lower"
	"github.com/buildc/buildc/pkg/mir"
	"github.com/buildc/buildc/pkg/parser"
	"github.com/buildc/buildc/pkg/toolchain"
)

func mustGraph(t *testing.T, src string) *mir.Graph {
	t.Helper()
	block, err := parser.ParseString("test", src)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	list, err := lower.ASTToHIR(block)
	if err != nil {
		t.Fatalf("ASTToHIR error: %v", err)
	}
	graph, err := lower.HIRToMIR(list)
	if err != nil {
		t.Fatalf("HIRToMIR error: %v", err)
	}
	return graph
}

func TestConstantPropagationFoldsArithmetic(t *testing.T) {
	graph := mustGraph(t, "x = 1 + 2 * 3")
	if _, err := (ConstantPropagation{}).Run(graph); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	assign := graph.Entry.Instructions[0].(*mir.FunctionCall)
	n, ok := assign.PosArgs[1].(*mir.Number)
	if !ok || n.Value != 7 {
		t.Errorf("expected folded value 7, got %+v", assign.PosArgs[1])
	}
}

func TestConstantPropagationSubstitutesBoundIdentifier(t *testing.T) {
	graph := mustGraph(t, "x = 5\ny = x + 1")
	driver := NewDriver(ConstantPropagation{})
	if err := driver.Run(graph); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	assign := graph.Entry.Instructions[1].(*mir.FunctionCall)
	n, ok := assign.PosArgs[1].(*mir.Number)
	if !ok || n.Value != 6 {
		t.Errorf("expected folded value 6, got %+v", assign.PosArgs[1])
	}
}

func TestConstantPropagationDivisionByZeroErrors(t *testing.T) {
	graph := mustGraph(t, "x = 1 / 0")
	if _, err := (ConstantPropagation{}).Run(graph); err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestMachineLowerResolvesCPUFamily(t *testing.T) {
	graph := mustGraph(t, "host_machine.cpu_family()")
	machines := mir.PerMachine[mir.MachineInfo]{BuildVal: toolchain.DetectBuildMachine()}
	if _, err := (&MachineLower{Machines: machines}).Run(graph); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	s, ok := graph.Entry.Instructions[0].(*mir.String)
	if !ok {
		t.Fatalf("expected folded *mir.String, got %T", graph.Entry.Instructions[0])
	}
	if s.Value == "" {
		t.Errorf("expected non-empty cpu_family")
	}
}

func TestMachineLowerUnknownMethodErrors(t *testing.T) {
	graph := mustGraph(t, "host_machine.does_not_exist()")
	machines := mir.PerMachine[mir.MachineInfo]{BuildVal: toolchain.DetectBuildMachine()}
	if _, err := (&MachineLower{Machines: machines}).Run(graph); err == nil {
		t.Fatal("expected UnknownMethod error")
	} else if _, ok := err.(*mir.UnknownMethod); !ok {
		t.Fatalf("expected *mir.UnknownMethod, got %T", err)
	}
}

func TestInsertCompilersResolvesKnownLanguage(t *testing.T) {
	graph := mustGraph(t, "meson.get_compiler('cpp')")
	if _, err := (&InsertCompilers{Toolchains: toolchain.BuildToolchains()}).Run(graph); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if _, ok := graph.Entry.Instructions[0].(*mir.Compiler); !ok {
		t.Fatalf("expected *mir.Compiler, got %T", graph.Entry.Instructions[0])
	}
}

func TestInsertCompilersUnknownLanguageErrors(t *testing.T) {
	graph := mustGraph(t, "meson.get_compiler('rust')")
	if _, err := (&InsertCompilers{Toolchains: toolchain.BuildToolchains()}).Run(graph); err == nil {
		t.Fatal("expected UnknownLanguage error")
	} else if _, ok := err.(*mir.UnknownLanguage); !ok {
		t.Fatalf("expected *mir.UnknownLanguage, got %T", err)
	}
}

func TestFlattenInlinesNestedArraysExceptMessage(t *testing.T) {
	graph := mustGraph(t, "executable('p', ['a.cpp', ['b.cpp', 'c.cpp']])")
	if _, err := (Flatten{}).Run(graph); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	call := graph.Entry.Instructions[0].(*mir.FunctionCall)
	if len(call.PosArgs) != 4 {
		t.Fatalf("expected 4 flattened positional args, got %d", len(call.PosArgs))
	}

	graph2 := mustGraph(t, "message(['a', 'b'])")
	if _, err := (Flatten{}).Run(graph2); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	call2 := graph2.Entry.Instructions[0].(*mir.FunctionCall)
	if len(call2.PosArgs) != 1 {
		t.Fatalf("expected message() array to stay unflattened, got %d args", len(call2.PosArgs))
	}
}

func TestInsertTargetsBuildsExecutable(t *testing.T) {
	graph := mustGraph(t, "executable('p', ['a.cpp', 'b.cpp'])")
	if _, err := (Flatten{}).Run(graph); err != nil {
		t.Fatalf("Flatten Run error: %v", err)
	}
	target := &InsertTargets{SourceRoot: "/src", BuildRoot: "/build"}
	if _, err := target.Run(graph); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	exe, ok := graph.Entry.Instructions[0].(*mir.Executable)
	if !ok {
		t.Fatalf("expected *mir.Executable, got %T", graph.Entry.Instructions[0])
	}
	if exe.Name != "p" || exe.Machine != mir.Host {
		t.Errorf("unexpected executable %+v", exe)
	}
	if len(exe.Sources) != 2 || exe.Sources[0].Name != "a.cpp" || exe.Sources[1].Name != "b.cpp" {
		t.Errorf("unexpected sources %+v", exe.Sources)
	}
	if exe.Sources[0].SourceRoot != "/src" || exe.Sources[0].BuildRoot != "/build" {
		t.Errorf("expected sources to carry project roots, got %+v", exe.Sources[0])
	}
}

func TestInsertTargetsDefersUntilNameReduced(t *testing.T) {
	graph := mustGraph(t, "n = 'p'\nexecutable(n, ['a.cpp'])")
	target := &InsertTargets{SourceRoot: "/src", BuildRoot: "/build"}
	changed, err := target.Run(graph)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if changed {
		t.Fatal("expected no change before the name argument is a literal")
	}
	if _, ok := graph.Entry.Instructions[1].(*mir.FunctionCall); !ok {
		t.Fatalf("expected the call to remain unreduced, got %T", graph.Entry.Instructions[1])
	}
}

func TestBranchPruningSelectsTrueArm(t *testing.T) {
	graph := mustGraph(t, "if true\nx = 1\nelse\nx = 2\nendif")
	if _, err := (BranchPruning{}).Run(graph); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if graph.Entry.Condition != nil {
		t.Fatal("expected Condition to be pruned away")
	}
	if len(graph.Entry.Instructions) != 1 {
		t.Fatalf("expected 1 instruction after pruning, got %d", len(graph.Entry.Instructions))
	}
	assign := graph.Entry.Instructions[0].(*mir.FunctionCall)
	n := assign.PosArgs[1].(*mir.Number)
	if n.Value != 1 {
		t.Errorf("expected true-arm value 1, got %d", n.Value)
	}
}

func TestJoinBlocksMergesSingleSuccessorChain(t *testing.T) {
	graph := mustGraph(t, "if true\nx = 1\nelse\nx = 2\nendif\ny = 3")
	driver := NewDriver(BranchPruning{}, JoinBlocks{})
	if err := driver.Run(graph); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if graph.Entry.Condition != nil || graph.Entry.Next != nil {
		t.Fatal("expected a single merged terminal block")
	}
	if len(graph.Entry.Instructions) != 2 {
		t.Fatalf("expected 2 instructions after merge, got %d", len(graph.Entry.Instructions))
	}
}

func TestValueNumberingIncrementsPerAssignment(t *testing.T) {
	graph := mustGraph(t, "x = 1\nx = 2")
	if _, err := (ValueNumbering{}).Run(graph); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	first := graph.Entry.Instructions[0].(*mir.FunctionCall).PosArgs[1]
	second := graph.Entry.Instructions[1].(*mir.FunctionCall).PosArgs[1]
	if first.Var().Version != 0 || second.Var().Version != 1 {
		t.Errorf("expected versions 0 and 1, got %d and %d", first.Var().Version, second.Var().Version)
	}
}

func TestDriverReportsDivergenceOnOscillatingPass(t *testing.T) {
	driver := &Driver{passes: []Pass{oscillatingPass{}}, maxIterations: 5}
	graph := &mir.Graph{Entry: &mir.BasicBlock{}}
	err := driver.Run(graph)
	if err == nil {
		t.Fatal("expected PassDivergence error")
	}
	if _, ok := err.(*PassDivergence); !ok {
		t.Fatalf("expected *PassDivergence, got %T", err)
	}
}

type oscillatingPass struct{}

func (oscillatingPass) Name() string                 { return "oscillating" }
func (oscillatingPass) Run(*mir.Graph) (bool, error) { return true, nil }
