package lower

import (
	"testing"

	"github.com/buildc/buildc/pkg/ast"
	"github.com/buildc/buildc/pkg/hir"
	"github.com/buildc/buildc/pkg/parser"
)

func mustParse(t *testing.T, src string) *hir.IRList {
	t.Helper()
	block, err := parser.ParseString("test", src)
	if err != nil {
		t.Fatalf("ParseString(%q) error: %v", src, err)
	}
	list, err := ASTToHIR(block)
	if err != nil {
		t.Fatalf("ASTToHIR error: %v", err)
	}
	return list
}

func TestLowerBinaryOpToSyntheticCall(t *testing.T) {
	list := mustParse(t, "1 + 2")
	if len(list.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(list.Objects))
	}
	call, ok := list.Objects[0].(*hir.FunctionCall)
	if !ok {
		t.Fatalf("expected *hir.FunctionCall, got %T", list.Objects[0])
	}
	callee, ok := call.Callee.(*hir.Identifier)
	if !ok || callee.Name != hir.CallAdd {
		t.Errorf("expected callee %q, got %+v", hir.CallAdd, call.Callee)
	}
}

func TestLowerMethodCallProducesMethodRef(t *testing.T) {
	list := mustParse(t, "host_machine.cpu_family()")
	call := list.Objects[0].(*hir.FunctionCall)
	ref, ok := call.Callee.(*hir.MethodRef)
	if !ok {
		t.Fatalf("expected *hir.MethodRef callee, got %T", call.Callee)
	}
	if ref.Name != "cpu_family" {
		t.Errorf("expected method name cpu_family, got %q", ref.Name)
	}
	recv, ok := ref.Receiver.(*hir.Identifier)
	if !ok || recv.Name != "host_machine" {
		t.Errorf("expected receiver host_machine, got %+v", ref.Receiver)
	}
}

func TestLowerAssignmentRejectsMissingLhs(t *testing.T) {
	_, err := lowerAssignment(&ast.Assignment{Rhs: &ast.Number{Value: 1}})
	if err == nil {
		t.Fatal("expected error for assignment with nil lhs")
	}
}

func TestLowerIfElifElse(t *testing.T) {
	list := mustParse(t, "if x == 1\ny = 2\nelif x == 3\ny = 4\nelse\ny = 5\nendif")
	if len(list.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(list.Objects))
	}
	ifObj, ok := list.Objects[0].(*hir.If)
	if !ok {
		t.Fatalf("expected *hir.If, got %T", list.Objects[0])
	}
	if len(ifObj.Then.Objects) != 1 {
		t.Errorf("expected 1 object in then block, got %d", len(ifObj.Then.Objects))
	}
	if len(ifObj.Elifs) != 1 {
		t.Errorf("expected 1 elif arm, got %d", len(ifObj.Elifs))
	}
	if ifObj.Else == nil || len(ifObj.Else.Objects) != 1 {
		t.Errorf("expected else block with 1 object")
	}
}
