package semantic

import (
	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/nasherr"
	"github.com/robert-mccausland/nash/internal/value"
)

func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(s)
	case *ast.AssignStatement:
		a.analyzeAssign(s)
	case *ast.ExprStatement:
		a.analyzeExpr(s.Expr, nil)
	case *ast.IfStatement:
		a.analyzeIf(s)
	case *ast.WhileStatement:
		a.analyzeWhile(s)
	case *ast.ForStatement:
		a.analyzeFor(s)
	case *ast.ReturnStatement:
		a.analyzeReturn(s)
	case *ast.ExitStatement:
		a.analyzeExit(s)
	case *ast.FuncDecl:
		a.analyzeFuncBody(s)
	case *ast.BlockStatement:
		a.analyzeBlock(s)
	default:
		a.addError(nasherr.KindRuntime, stmt, "unhandled statement type %T", stmt)
	}
}

func (a *Analyzer) analyzeVarDecl(vd *ast.VarDecl) {
	var expected *value.Type
	if vd.Type != nil {
		expected = a.resolveTypeAnnotation(vd.Type)
	}
	got := a.analyzeExpr(vd.Value, expected)
	if expected != nil && got != nil && !expected.Equals(got) {
		a.addError(nasherr.KindType, vd, "cannot assign %s to variable %q of type %s", got, vd.Name.Value, expected)
	}
	declType := expected
	if declType == nil {
		declType = got
	}
	sym := a.scope.Define(vd.Name.Value, declType, vd.Mut)
	vd.Name.Slot = sym.Slot
	vd.Name.Depth = 0
}

func (a *Analyzer) analyzeAssign(as *ast.AssignStatement) {
	valType := a.analyzeExpr(as.Value, nil)

	switch target := as.Target.(type) {
	case *ast.Identifier:
		sym, depth, ok := a.scope.Resolve(target.Value)
		if !ok {
			a.addError(nasherr.KindName, target, "undefined name %q", target.Value)
			return
		}
		target.Slot = sym.Slot
		target.Depth = depth
		if !sym.Mut {
			a.addError(nasherr.KindMutability, as, "cannot assign to %q: binding was not declared with 'mut'", target.Value)
			return
		}
		if valType != nil && sym.Type != nil && !valType.Equals(sym.Type) {
			a.addError(nasherr.KindType, as, "cannot assign %s to %q of type %s", valType, target.Value, sym.Type)
		}
	case *ast.IndexExpr:
		a.analyzeExpr(target, nil)
		// Container value-mutability is a runtime property of the
		// specific array value (spec.md §3/§4.4's cascade), not of a
		// static type, so the mutability check itself happens in
		// internal/eval at the point of assignment.
	case *ast.MemberExpr:
		a.analyzeExpr(target, nil)
	default:
		a.addError(nasherr.KindRuntime, as, "invalid assignment target")
	}
}

func (a *Analyzer) analyzeIf(is *ast.IfStatement) {
	condType := a.analyzeExpr(is.Condition, value.Boolean)
	if condType != nil && condType.Kind != value.KindBoolean {
		a.addError(nasherr.KindType, is.Condition, "if condition must be boolean, got %s", condType)
	}
	a.analyzeBlock(is.Then)
	if is.Else != nil {
		a.analyzeStatement(is.Else)
	}
}

func (a *Analyzer) analyzeWhile(ws *ast.WhileStatement) {
	condType := a.analyzeExpr(ws.Condition, value.Boolean)
	if condType != nil && condType.Kind != value.KindBoolean {
		a.addError(nasherr.KindType, ws.Condition, "while condition must be boolean, got %s", condType)
	}
	a.analyzeBlock(ws.Body)
}

func (a *Analyzer) analyzeFor(fs *ast.ForStatement) {
	iterType := a.analyzeExpr(fs.Iterable, nil)
	var elemType *value.Type
	if iterType != nil {
		if iterType.Kind != value.KindArray {
			a.addError(nasherr.KindType, fs.Iterable, "for loop requires an array, got %s", iterType)
		} else {
			elemType = iterType.Elem
		}
	}

	_, pop := a.pushScope()
	sym := a.scope.Define(fs.Name.Value, elemType, false)
	fs.Name.Slot = sym.Slot
	fs.Name.Depth = 0
	for _, stmt := range fs.Body.Statements {
		a.analyzeStatement(stmt)
	}
	fs.Body.NumSlots = pop()
}

func (a *Analyzer) analyzeReturn(rs *ast.ReturnStatement) {
	var got *value.Type
	if rs.Value != nil {
		got = a.analyzeExpr(rs.Value, a.currentReturn)
	} else {
		got = value.Unit
	}
	if a.currentReturn != nil && got != nil && !got.Equals(a.currentReturn) {
		a.addError(nasherr.KindType, rs, "return type mismatch: expected %s, got %s", a.currentReturn, got)
	}
}

func (a *Analyzer) analyzeExit(es *ast.ExitStatement) {
	if es.Value == nil {
		return
	}
	t := a.analyzeExpr(es.Value, value.Integer)
	if t != nil && t.Kind != value.KindInteger {
		a.addError(nasherr.KindType, es.Value, "exit code must be an integer, got %s", t)
	}
}

func (a *Analyzer) analyzeFuncBody(fd *ast.FuncDecl) {
	sym := a.funcs[fd.Name.Value]
	if sym == nil {
		return
	}

	prevReturn := a.currentReturn
	if fd.RetType != nil {
		a.currentReturn = a.resolveTypeAnnotation(fd.RetType)
	} else {
		a.currentReturn = value.Unit
	}

	parent := a.scope
	body := NewEnclosedSymbolTable(parent)
	a.scope = body
	for _, p := range fd.Params {
		t := a.resolveTypeAnnotation(p.Type)
		s := a.scope.Define(p.Name.Value, t, p.Mut)
		p.Name.Slot = s.Slot
		p.Name.Depth = 0
	}
	a.analyzeBlockInCurrentScope(fd.Body)
	a.scope = parent

	a.currentReturn = prevReturn
}
