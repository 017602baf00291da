package hir

import "testing"

func TestFunctionCallCalleeMayBeAnotherCall(t *testing.T) {
	inner := &FunctionCall{Callee: &Identifier{Name: "a"}, Args: &Arguments{}}
	outer := &FunctionCall{Callee: inner, Args: &Arguments{}}

	if _, ok := outer.Callee.(*FunctionCall); !ok {
		t.Fatalf("expected outer.Callee to be a *FunctionCall for method chaining, got %T", outer.Callee)
	}
}

func TestLoweringErrorMessage(t *testing.T) {
	err := &LoweringError{Reason: "assignment lhs was not an identifier"}
	want := "lowering error: assignment lhs was not an identifier"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
