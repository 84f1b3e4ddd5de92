package eval

import (
	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/value"
)

func (i *Interpreter) execStatement(env *Environment, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return i.execVarDecl(env, s)
	case *ast.AssignStatement:
		return i.execAssign(env, s)
	case *ast.ExprStatement:
		_, err := i.evalExpr(env, s.Expr)
		return err
	case *ast.IfStatement:
		return i.execIf(env, s)
	case *ast.WhileStatement:
		return i.execWhile(env, s)
	case *ast.ForStatement:
		return i.execFor(env, s)
	case *ast.ReturnStatement:
		return i.execReturn(env, s)
	case *ast.ExitStatement:
		return i.execExit(env, s)
	case *ast.FuncDecl:
		// Function declarations were already collected into i.funcs at
		// construction time; nothing to do when the declaration is
		// reached as a statement during normal execution.
		return nil
	case *ast.BlockStatement:
		return i.execBlock(env, s)
	default:
		return i.runtimeErr(stmt, "unhandled statement type %T", stmt)
	}
}

// execStatementsInFrame runs stmts directly in env without pushing a
// further nested frame, used for function bodies and for-loop bodies
// whose frame was already sized to cover both their own locals and
// their params/loop variable (spec.md §4.4: one frame per call/loop).
func (i *Interpreter) execStatementsInFrame(env *Environment, stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := i.execStatement(env, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execBlock(env *Environment, block *ast.BlockStatement) error {
	child := NewFrame(block.NumSlots, env)
	return i.execStatementsInFrame(child, block.Statements)
}

func (i *Interpreter) execVarDecl(env *Environment, vd *ast.VarDecl) error {
	v, err := i.evalExpr(env, vd.Value)
	if err != nil {
		return err
	}
	env.Define(vd.Name.Slot, value.Copy(v))
	return nil
}

func (i *Interpreter) execAssign(env *Environment, as *ast.AssignStatement) error {
	v, err := i.evalExpr(env, as.Value)
	if err != nil {
		return err
	}
	v = value.Copy(v)

	switch target := as.Target.(type) {
	case *ast.Identifier:
		env.Set(target.Depth, target.Slot, v)
		return nil
	case *ast.IndexExpr:
		return i.assignIndex(env, target, v)
	case *ast.MemberExpr:
		return i.assignMember(env, target, v)
	default:
		return i.runtimeErr(as, "invalid assignment target %T", target)
	}
}

func (i *Interpreter) assignIndex(env *Environment, target *ast.IndexExpr, v value.Value) error {
	leftVal, err := i.evalExpr(env, target.Left)
	if err != nil {
		return err
	}
	arr, ok := leftVal.(*value.ArrayValue)
	if !ok {
		return i.runtimeErr(target, "cannot index into a %s", leftVal.Type())
	}
	if !arr.Mutable {
		return i.mutabilityErr(target, "cannot assign into an immutable array")
	}
	idxVal, err := i.evalExpr(env, target.Index)
	if err != nil {
		return err
	}
	idx := idxVal.(*value.IntegerValue).Val
	if idx < 0 || int(idx) >= len(arr.Elements) {
		return i.runtimeErr(target, "array index %d out of bounds (length %d)", idx, len(arr.Elements))
	}
	arr.Elements[idx] = v
	return nil
}

func (i *Interpreter) assignMember(env *Environment, target *ast.MemberExpr, v value.Value) error {
	leftVal, err := i.evalExpr(env, target.Left)
	if err != nil {
		return err
	}
	rec, ok := leftVal.(*value.RecordValue)
	if !ok {
		return i.runtimeErr(target, "cannot access field %q on a %s", target.Name, leftVal.Type())
	}
	if !rec.Mutable {
		return i.mutabilityErr(target, "cannot assign into an immutable record")
	}
	if !rec.Set(target.Name, v) {
		return i.runtimeErr(target, "record has no field %q", target.Name)
	}
	return nil
}

func (i *Interpreter) execIf(env *Environment, is *ast.IfStatement) error {
	condVal, err := i.evalExpr(env, is.Condition)
	if err != nil {
		return err
	}
	if condVal.(*value.BooleanValue).Val {
		return i.execBlock(env, is.Then)
	}
	if is.Else != nil {
		return i.execStatement(env, is.Else)
	}
	return nil
}

func (i *Interpreter) execWhile(env *Environment, ws *ast.WhileStatement) error {
	for {
		condVal, err := i.evalExpr(env, ws.Condition)
		if err != nil {
			return err
		}
		if !condVal.(*value.BooleanValue).Val {
			return nil
		}
		if err := i.execBlock(env, ws.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) execFor(env *Environment, fs *ast.ForStatement) error {
	iterVal, err := i.evalExpr(env, fs.Iterable)
	if err != nil {
		return err
	}
	arr, ok := iterVal.(*value.ArrayValue)
	if !ok {
		return i.runtimeErr(fs.Iterable, "cannot iterate over a %s", iterVal.Type())
	}

	child := NewFrame(fs.Body.NumSlots, env)
	for _, elem := range arr.Elements {
		child.Define(fs.Name.Slot, value.Copy(elem))
		if err := i.execStatementsInFrame(child, fs.Body.Statements); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execReturn(env *Environment, rs *ast.ReturnStatement) error {
	if rs.Value == nil {
		return &returnSignal{value: value.UnitValue{}}
	}
	v, err := i.evalExpr(env, rs.Value)
	if err != nil {
		return err
	}
	return &returnSignal{value: value.Copy(v)}
}

func (i *Interpreter) execExit(env *Environment, es *ast.ExitStatement) error {
	code := 0
	if es.Value != nil {
		v, err := i.evalExpr(env, es.Value)
		if err != nil {
			return err
		}
		code = int(v.(*value.IntegerValue).Val)
	}
	return &exitSignal{code: code}
}
