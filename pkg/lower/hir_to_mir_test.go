package lower

import (
	"testing"

	"github.com/buildc/buildc/pkg/mir"
	"github.com/buildc/buildc/pkg/parser"
)

func mustLowerToMIR(t *testing.T, src string) *mir.Graph {
	t.Helper()
	block, err := parser.ParseString("test", src)
	if err != nil {
		t.Fatalf("ParseString(%q) error: %v", src, err)
	}
	list, err := ASTToHIR(block)
	if err != nil {
		t.Fatalf("ASTToHIR error: %v", err)
	}
	graph, err := HIRToMIR(list)
	if err != nil {
		t.Fatalf("HIRToMIR error: %v", err)
	}
	return graph
}

func TestHIRToMIRSequentialStatementsShareOneBlock(t *testing.T) {
	graph := mustLowerToMIR(t, "x = 1\ny = 2")
	if len(graph.Entry.Instructions) != 2 {
		t.Fatalf("expected 2 instructions in entry block, got %d", len(graph.Entry.Instructions))
	}
	if graph.Entry.Condition != nil || graph.Entry.Next != nil {
		t.Errorf("expected entry block to be terminal with no conditional code")
	}
}

func TestHIRToMIRHolderCallSetsHolder(t *testing.T) {
	graph := mustLowerToMIR(t, "host_machine.cpu_family()")
	call, ok := graph.Entry.Instructions[0].(*mir.FunctionCall)
	if !ok {
		t.Fatalf("expected *mir.FunctionCall, got %T", graph.Entry.Instructions[0])
	}
	if call.Holder != "host_machine" || call.Name != "cpu_family" {
		t.Errorf("expected holder=host_machine name=cpu_family, got holder=%q name=%q", call.Holder, call.Name)
	}
}

func TestHIRToMIRIfElseBuildsConditionAndJoin(t *testing.T) {
	graph := mustLowerToMIR(t, "if x == 1\ny = 2\nelse\ny = 3\nendif\nz = 4")
	entry := graph.Entry
	if entry.Condition == nil {
		t.Fatal("expected entry block to end in a Condition")
	}
	trueBlock := entry.Condition.TrueBlock
	falseBlock := entry.Condition.FalseBlock
	if len(trueBlock.Instructions) != 1 || len(falseBlock.Instructions) != 1 {
		t.Fatalf("expected 1 instruction per arm, got true=%d false=%d",
			len(trueBlock.Instructions), len(falseBlock.Instructions))
	}
	if trueBlock.Next == nil || trueBlock.Next != falseBlock.Next {
		t.Fatalf("expected both arms to reconverge at the same join block")
	}
	join := trueBlock.Next
	if len(join.Instructions) != 1 {
		t.Errorf("expected the trailing statement to land in the join block, got %d instructions", len(join.Instructions))
	}
}

func TestHIRToMIRElifChainsNestedConditions(t *testing.T) {
	graph := mustLowerToMIR(t, "if x == 1\ny = 2\nelif x == 3\ny = 4\nendif")
	outer := graph.Entry.Condition
	if outer == nil {
		t.Fatal("expected outer Condition")
	}
	if outer.FalseBlock.Condition == nil {
		t.Fatal("expected the elif arm to be a nested Condition in the false block")
	}
}

func TestHIRToMIRRejectsDictWithNonStringKey(t *testing.T) {
	block, err := parser.ParseString("test", "{1: 2}")
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	list, err := ASTToHIR(block)
	if err != nil {
		t.Fatalf("ASTToHIR error: %v", err)
	}
	if _, err := HIRToMIR(list); err == nil {
		t.Fatal("expected error for non-string dict key")
	}
}
