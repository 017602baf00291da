// Package lower implements the two structural lowering stages of
// spec.md §4.2–§4.3: AST→HIR and HIR→MIR. Both are grounded on the
// teacher's semantic analyzer (pkg/semantic/analyzer.go), which walks
// an ast.File and builds an IR by structural recursion; here the
// recursion produces a new tree (HIR) and then a CFG (MIR) instead of
// annotating the same tree in place.
package lower

import (
	"github.com/buildc/buildc/pkg/ast"
	"github.com/buildc/buildc/pkg/hir"
)

// ASTToHIR lowers a parsed CodeBlock into an HIR IRList (component
// C5). It fails only with a *hir.LoweringError, which indicates a
// parser bug: a violated AST invariant, never a user-facing mistake
// (spec.md §4.2, §7).
func ASTToHIR(block *ast.CodeBlock) (*hir.IRList, error) {
	list := &hir.IRList{}
	for _, stmt := range block.Statements {
		obj, err := lowerStatement(stmt)
		if err != nil {
			return nil, err
		}
		list.Objects = append(list.Objects, obj)
	}
	return list, nil
}

func lowerStatement(stmt ast.Statement) (hir.Object, error) {
	switch s := stmt.(type) {
	case *ast.ExprStatement:
		return lowerExpr(s.Expr)
	case *ast.IfStatement:
		return lowerIf(s)
	default:
		return nil, &hir.LoweringError{Reason: "unrecognized AST statement node"}
	}
}

func lowerIf(s *ast.IfStatement) (hir.Object, error) {
	cond, err := lowerExpr(s.Cond)
	if err != nil {
		return nil, err
	}
	then, err := ASTToHIR(s.Then)
	if err != nil {
		return nil, err
	}
	out := &hir.If{Cond: cond, Then: then}
	for _, e := range s.Elifs {
		elifCond, err := lowerExpr(e.Cond)
		if err != nil {
			return nil, err
		}
		elifBlock, err := ASTToHIR(e.Block)
		if err != nil {
			return nil, err
		}
		out.Elifs = append(out.Elifs, hir.ElifArm{Cond: elifCond, Block: elifBlock})
	}
	if s.Else != nil {
		elseBlock, err := ASTToHIR(s.Else)
		if err != nil {
			return nil, err
		}
		out.Else = elseBlock
	}
	return out, nil
}

func lowerExpr(e ast.Expression) (hir.Object, error) {
	switch n := e.(type) {
	case *ast.Number:
		return &hir.Number{Value: n.Value}, nil
	case *ast.Boolean:
		return &hir.Boolean{Value: n.Value}, nil
	case *ast.String:
		return &hir.String{Value: n.Value}, nil
	case *ast.Identifier:
		return &hir.Identifier{Name: n.Name}, nil
	case *ast.Array:
		elems := make([]hir.Object, len(n.Elements))
		for i, el := range n.Elements {
			obj, err := lowerExpr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = obj
		}
		return &hir.Array{Elements: elems}, nil
	case *ast.Dict:
		entries := make([]hir.DictEntry, len(n.Entries))
		for i, entry := range n.Entries {
			key, err := lowerExpr(entry.Key)
			if err != nil {
				return nil, err
			}
			val, err := lowerExpr(entry.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = hir.DictEntry{Key: key, Value: val}
		}
		return &hir.Dict{Entries: entries}, nil
	case *ast.Unary:
		return lowerUnaryCall(hir.CallNeg, n.Rhs)
	case *ast.Multiplicative:
		return lowerBinaryCall(mulCallName(n.Op), n.Lhs, n.Rhs)
	case *ast.Additive:
		return lowerBinaryCall(addCallName(n.Op), n.Lhs, n.Rhs)
	case *ast.Relational:
		return lowerBinaryCall(relCallName(n.Op), n.Lhs, n.Rhs)
	case *ast.Subscript:
		return lowerBinaryCall(hir.CallSubscr, n.Lhs, n.Rhs)
	case *ast.Assignment:
		return lowerAssignment(n)
	case *ast.FunctionCall:
		return lowerCall(n.Callee, n.Args)
	case *ast.MethodCall:
		return lowerMethodCall(n)
	default:
		return nil, &hir.LoweringError{Reason: "unrecognized AST expression node"}
	}
}

func mulCallName(op ast.MulOp) string {
	switch op {
	case ast.MUL:
		return hir.CallMul
	case ast.DIV:
		return hir.CallDiv
	default:
		return hir.CallMod
	}
}

func addCallName(op ast.AddOp) string {
	if op == ast.SUB {
		return hir.CallSub
	}
	return hir.CallAdd
}

func relCallName(op ast.RelOp) string {
	switch op {
	case ast.LT:
		return hir.CallLt
	case ast.LE:
		return hir.CallLe
	case ast.EQ:
		return hir.CallEq
	case ast.NE:
		return hir.CallNe
	case ast.GE:
		return hir.CallGe
	case ast.GT:
		return hir.CallGt
	case ast.AND:
		return hir.CallAnd
	case ast.OR:
		return hir.CallOr
	case ast.IN:
		return hir.CallIn
	default:
		return hir.CallNotIn
	}
}

func lowerUnaryCall(callee string, rhs ast.Expression) (hir.Object, error) {
	arg, err := lowerExpr(rhs)
	if err != nil {
		return nil, err
	}
	return &hir.FunctionCall{
		Callee: &hir.Identifier{Name: callee},
		Args:   &hir.Arguments{Positional: []hir.Object{arg}},
	}, nil
}

func lowerBinaryCall(callee string, lhs, rhs ast.Expression) (hir.Object, error) {
	l, err := lowerExpr(lhs)
	if err != nil {
		return nil, err
	}
	r, err := lowerExpr(rhs)
	if err != nil {
		return nil, err
	}
	return &hir.FunctionCall{
		Callee: &hir.Identifier{Name: callee},
		Args:   &hir.Arguments{Positional: []hir.Object{l, r}},
	}, nil
}

// lowerAssignment enforces the AST invariant that Lhs is always an
// *ast.Identifier (spec.md §3.4); violation is a LoweringError since
// the parser should never produce one otherwise.
func lowerAssignment(n *ast.Assignment) (hir.Object, error) {
	if n.Lhs == nil {
		return nil, &hir.LoweringError{Reason: "assignment missing lhs identifier"}
	}
	rhs, err := lowerExpr(n.Rhs)
	if err != nil {
		return nil, err
	}
	return &hir.FunctionCall{
		Callee: &hir.Identifier{Name: hir.CallAssign},
		Args: &hir.Arguments{
			Positional: []hir.Object{&hir.Identifier{Name: n.Lhs.Name}, rhs},
		},
	}, nil
}

func lowerArguments(args *ast.Arguments) (*hir.Arguments, error) {
	out := &hir.Arguments{}
	for _, p := range args.Positional {
		obj, err := lowerExpr(p)
		if err != nil {
			return nil, err
		}
		out.Positional = append(out.Positional, obj)
	}
	for i, k := range args.KeywordKey {
		obj, err := lowerExpr(args.KeywordVal[i])
		if err != nil {
			return nil, err
		}
		out.KeywordKey = append(out.KeywordKey, k)
		out.KeywordVal = append(out.KeywordVal, obj)
	}
	return out, nil
}

func lowerCall(callee ast.Expression, args *ast.Arguments) (hir.Object, error) {
	calleeObj, err := lowerExpr(callee)
	if err != nil {
		return nil, err
	}
	hirArgs, err := lowerArguments(args)
	if err != nil {
		return nil, err
	}
	return &hir.FunctionCall{Callee: calleeObj, Args: hirArgs}, nil
}

// lowerMethodCall lowers `recv.name(args)` to a FunctionCall whose
// callee is a hir.MethodRef binding the method name to its lowered
// receiver (spec.md §3.4: "An HIR FunctionCall.callee is either an
// identifier-like object or another call").
func lowerMethodCall(n *ast.MethodCall) (hir.Object, error) {
	recv, err := lowerExpr(n.Receiver)
	if err != nil {
		return nil, err
	}
	hirArgs, err := lowerArguments(n.Args)
	if err != nil {
		return nil, err
	}
	return &hir.FunctionCall{
		Callee: &hir.MethodRef{Receiver: recv, Name: n.Name},
		Args:   hirArgs,
	}, nil
}
