package semantic

import (
	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/nasherr"
	"github.com/robert-mccausland/nash/internal/value"
)

// analyzeExpr type-checks expr, resolves any identifiers it contains to
// slots, and returns its inferred type (nil if a type error already
// made that impossible). expected carries a type hint downward for
// literals whose type cannot be inferred bottom-up alone (chiefly the
// empty array literal).
func (a *Analyzer) analyzeExpr(expr ast.Expression, expected *value.Type) *value.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return value.Integer
	case *ast.BooleanLiteral:
		return value.Boolean
	case *ast.StringLiteral:
		for _, part := range e.Parts {
			if part.Expr != nil {
				a.analyzeExpr(part.Expr, nil)
			}
		}
		return value.String
	case *ast.CommandLiteral:
		for _, part := range e.Parts {
			if part.Expr != nil {
				a.analyzeExpr(part.Expr, nil)
			}
		}
		return value.CommandLiteral
	case *ast.Identifier:
		sym, depth, ok := a.scope.Resolve(e.Value)
		if !ok {
			a.addError(nasherr.KindName, e, "undefined name %q", e.Value)
			return nil
		}
		e.Slot = sym.Slot
		e.Depth = depth
		return sym.Type
	case *ast.ArrayLiteral:
		return a.analyzeArrayLiteral(e, expected)
	case *ast.RecordLiteral:
		return a.analyzeRecordLiteral(e, expected)
	case *ast.PrefixExpr:
		return a.analyzePrefix(e)
	case *ast.InfixExpr:
		return a.analyzeInfix(e)
	case *ast.IndexExpr:
		return a.analyzeIndex(e)
	case *ast.MemberExpr:
		return a.analyzeMember(e)
	case *ast.CallExpr:
		return a.analyzeCall(e)
	case *ast.MethodCallExpr:
		return a.analyzeMethodCall(e)
	case *ast.PipelineExpr:
		return a.analyzePipeline(e)
	default:
		a.addError(nasherr.KindRuntime, expr, "unhandled expression type %T", expr)
		return nil
	}
}

func (a *Analyzer) analyzePrefix(pe *ast.PrefixExpr) *value.Type {
	right := a.analyzeExpr(pe.Right, nil)
	if right == nil {
		return nil
	}
	switch pe.Operator {
	case "!":
		if right.Kind != value.KindBoolean {
			a.addError(nasherr.KindType, pe, "! requires a boolean operand, got %s", right)
		}
		return value.Boolean
	case "-":
		if right.Kind != value.KindInteger {
			a.addError(nasherr.KindType, pe, "unary - requires an integer operand, got %s", right)
		}
		return value.Integer
	default:
		a.addError(nasherr.KindType, pe, "unknown prefix operator %q", pe.Operator)
		return nil
	}
}

func (a *Analyzer) analyzeInfix(ie *ast.InfixExpr) *value.Type {
	left := a.analyzeExpr(ie.Left, nil)
	right := a.analyzeExpr(ie.Right, nil)
	if left == nil || right == nil {
		return nil
	}

	switch ie.Operator {
	case "&&", "||":
		if left.Kind != value.KindBoolean || right.Kind != value.KindBoolean {
			a.addError(nasherr.KindType, ie, "%s requires boolean operands, got %s and %s", ie.Operator, left, right)
		}
		return value.Boolean
	case "==", "!=":
		if !left.Equals(right) {
			a.addError(nasherr.KindType, ie, "cannot compare %s and %s", left, right)
		}
		return value.Boolean
	case "<", ">", "<=", ">=":
		if left.Kind != value.KindInteger || right.Kind != value.KindInteger {
			a.addError(nasherr.KindType, ie, "%s requires integer operands, got %s and %s", ie.Operator, left, right)
		}
		return value.Boolean
	case "+":
		if left.Kind == value.KindString && right.Kind == value.KindString {
			return value.String
		}
		if left.Kind == value.KindInteger && right.Kind == value.KindInteger {
			return value.Integer
		}
		a.addError(nasherr.KindType, ie, "+ requires two strings or two integers, got %s and %s", left, right)
		return nil
	case "-", "*", "/":
		if left.Kind != value.KindInteger || right.Kind != value.KindInteger {
			a.addError(nasherr.KindType, ie, "%s requires integer operands, got %s and %s", ie.Operator, left, right)
		}
		return value.Integer
	default:
		a.addError(nasherr.KindType, ie, "unknown operator %q", ie.Operator)
		return nil
	}
}

func (a *Analyzer) analyzeIndex(ix *ast.IndexExpr) *value.Type {
	left := a.analyzeExpr(ix.Left, nil)
	idx := a.analyzeExpr(ix.Index, nil)
	if idx != nil && idx.Kind != value.KindInteger {
		a.addError(nasherr.KindType, ix.Index, "array index must be an integer, got %s", idx)
	}
	if left == nil {
		return nil
	}
	if left.Kind != value.KindArray {
		a.addError(nasherr.KindType, ix.Left, "cannot index into %s", left)
		return nil
	}
	return left.Elem
}

func (a *Analyzer) analyzeMember(me *ast.MemberExpr) *value.Type {
	left := a.analyzeExpr(me.Left, nil)
	if left == nil {
		return nil
	}
	if left.Kind != value.KindRecord {
		a.addError(nasherr.KindType, me, "cannot access field %q on %s", me.Name, left)
		return nil
	}
	for _, f := range left.Fields {
		if f.Name == me.Name {
			return f.Type
		}
	}
	a.addError(nasherr.KindType, me, "record has no field %q", me.Name)
	return nil
}

func (a *Analyzer) analyzeCall(ce *ast.CallExpr) *value.Type {
	ident, ok := ce.Callee.(*ast.Identifier)
	if !ok {
		a.addError(nasherr.KindType, ce, "call target must be a function name")
		for _, arg := range ce.Args {
			a.analyzeExpr(arg, nil)
		}
		return nil
	}

	if b, ok := builtinSignatures[ident.Value]; ok {
		return a.analyzeBuiltinCall(ce, ident, b)
	}

	sym, depth, ok := a.scope.Resolve(ident.Value)
	if !ok {
		a.addError(nasherr.KindName, ident, "undefined function %q", ident.Value)
		for _, arg := range ce.Args {
			a.analyzeExpr(arg, nil)
		}
		return nil
	}
	ident.Slot = sym.Slot
	ident.Depth = depth
	if !sym.IsFunc {
		a.addError(nasherr.KindType, ce, "%q is not a function", ident.Value)
		return nil
	}
	if len(ce.Args) != len(sym.Params) {
		a.addError(nasherr.KindType, ce, "%q expects %d argument(s), got %d", ident.Value, len(sym.Params), len(ce.Args))
	}
	for i, arg := range ce.Args {
		var expected *value.Type
		if i < len(sym.Params) {
			expected = sym.Params[i]
		}
		got := a.analyzeExpr(arg, expected)
		if expected != nil && got != nil && !got.Equals(expected) {
			a.addError(nasherr.KindType, arg, "argument %d of %q: expected %s, got %s", i+1, ident.Value, expected, got)
		}
	}
	return sym.Type
}

func (a *Analyzer) analyzeMethodCall(mc *ast.MethodCallExpr) *value.Type {
	recv := a.analyzeExpr(mc.Receiver, nil)
	for _, arg := range mc.Args {
		a.analyzeExpr(arg, nil)
	}
	if recv == nil {
		return nil
	}
	return a.analyzeContainerMethod(mc, recv)
}
