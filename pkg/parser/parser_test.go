package parser

import (
	"testing"

	"github.com/buildc/buildc/pkg/ast"
)

func TestParseRenderRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"relational", "0 != true", "0 != true"},
		{"octal literal", "0o10", "8"},
		{"hex literal", "0xf", "15"},
		{"method call", "host_machine.cpu_family()", "host_machine.cpu_family()"},
		{
			"flatten call",
			"executable('p', ['a.cpp', ['b.cpp', 'c.cpp']])",
			"executable('p', ['a.cpp', ['b.cpp', 'c.cpp']])",
		},
		{"assignment", "x = 1 + 2", "x = 1 + 2"},
		{"dict", "{'a': 1, 'b': 2}", "{'a': 1, 'b': 2}"},
		{"membership", "x in deps", "x in deps"},
		{"not membership", "x not in deps", "x not in deps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := ParseString("test", tt.src)
			if err != nil {
				t.Fatalf("ParseString(%q) error: %v", tt.src, err)
			}
			if len(block.Statements) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(block.Statements))
			}
			if got := block.Statements[0].Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseIfElifElseRoundTrip(t *testing.T) {
	src := "if x == 1\ny = 2\nelif x == 3\ny = 4\nelse\ny = 5\nendif"
	block, err := ParseString("test", src)
	if err != nil {
		t.Fatalf("ParseString(%q) error: %v", src, err)
	}
	if len(block.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(block.Statements))
	}
	ifStmt, ok := block.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %T", block.Statements[0])
	}
	if len(ifStmt.Elifs) != 1 {
		t.Errorf("expected 1 elif clause, got %d", len(ifStmt.Elifs))
	}
	if ifStmt.Else == nil {
		t.Errorf("expected an else block")
	}
	if got := block.Statements[0].Render(); got != src {
		t.Errorf("Render() = %q, want %q", got, src)
	}
}

func TestParseIfWithoutElseOrElif(t *testing.T) {
	src := "if true\nx = 1\nendif"
	block, err := ParseString("test", src)
	if err != nil {
		t.Fatalf("ParseString(%q) error: %v", src, err)
	}
	ifStmt, ok := block.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %T", block.Statements[0])
	}
	if ifStmt.Else != nil {
		t.Errorf("expected no else block")
	}
	if len(ifStmt.Elifs) != 0 {
		t.Errorf("expected no elif clauses")
	}
}

func TestParseAssignmentRequiresIdentifierLhs(t *testing.T) {
	_, err := ParseString("test", "1 + 2 = 3")
	if err == nil {
		t.Fatal("expected error for non-identifier assignment target")
	}
}

func TestParseErrorHasPosition(t *testing.T) {
	_, err := ParseString("test", "executable('p',")
	if err == nil {
		t.Fatal("expected parse error on truncated input")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Line == 0 {
		t.Errorf("expected a nonzero line number")
	}
}

func TestOperatorPrecedence(t *testing.T) {
	block, err := ParseString("test", "1 + 2 * 3 == 7 and true")
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	got := block.Statements[0].Render()
	want := "1 + 2 * 3 == 7 and true"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	and, ok := block.Statements[0].(*ast.ExprStatement).Expr.(*ast.Relational)
	if !ok || and.Op != ast.AND {
		t.Fatalf("expected 'and' at the root, got %T", block.Statements[0].(*ast.ExprStatement).Expr)
	}
	eq, ok := and.Lhs.(*ast.Relational)
	if !ok || eq.Op != ast.EQ {
		t.Fatalf("expected '==' to bind tighter than 'and', got %T", and.Lhs)
	}
	add, ok := eq.Lhs.(*ast.Additive)
	if !ok {
		t.Fatalf("expected '+' to bind tighter than '==', got %T", eq.Lhs)
	}
	if _, ok := add.Rhs.(*ast.Multiplicative); !ok {
		t.Errorf("expected '*' to bind tighter than '+', got %T", add.Rhs)
	}
}
