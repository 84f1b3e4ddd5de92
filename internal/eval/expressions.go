package eval

import (
	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/value"
)

func (i *Interpreter) evalExpr(env *Environment, expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &value.IntegerValue{Val: e.Value}, nil
	case *ast.BooleanLiteral:
		return &value.BooleanValue{Val: e.Value}, nil
	case *ast.StringLiteral:
		s, err := i.renderStringParts(env, e.Parts)
		if err != nil {
			return nil, err
		}
		return &value.StringValue{Val: s}, nil
	case *ast.CommandLiteral:
		argv, err := i.renderCommand(env, e)
		if err != nil {
			return nil, err
		}
		return &value.CommandLiteralValue{Argv: argv}, nil
	case *ast.Identifier:
		return env.Get(e.Depth, e.Slot), nil
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(env, e)
	case *ast.RecordLiteral:
		return i.evalRecordLiteral(env, e)
	case *ast.PrefixExpr:
		return i.evalPrefix(env, e)
	case *ast.InfixExpr:
		return i.evalInfix(env, e)
	case *ast.IndexExpr:
		return i.evalIndex(env, e)
	case *ast.MemberExpr:
		return i.evalMember(env, e)
	case *ast.CallExpr:
		return i.evalCall(env, e)
	case *ast.MethodCallExpr:
		return i.evalMethodCall(env, e)
	case *ast.PipelineExpr:
		return i.evalPipeline(env, e)
	default:
		return nil, i.runtimeErr(expr, "unhandled expression type %T", expr)
	}
}

func (i *Interpreter) renderStringParts(env *Environment, parts []ast.StringPart) (string, error) {
	var out []byte
	for _, p := range parts {
		if p.Expr == nil {
			out = append(out, p.Text...)
			continue
		}
		v, err := i.evalExpr(env, p.Expr)
		if err != nil {
			return "", err
		}
		out = append(out, v.Fmt()...)
	}
	return string(out), nil
}

func (i *Interpreter) evalArrayLiteral(env *Environment, al *ast.ArrayLiteral) (value.Value, error) {
	elems := make([]value.Value, len(al.Elements))
	elemType := al.ElemType
	for idx, elemExpr := range al.Elements {
		v, err := i.evalExpr(env, elemExpr)
		if err != nil {
			return nil, err
		}
		elems[idx] = value.Copy(v)
		if elemType == nil {
			elemType = v.Type()
		}
	}
	return &value.ArrayValue{ElemType: elemType, Elements: elems, Mutable: al.Mutable}, nil
}

func (i *Interpreter) evalRecordLiteral(env *Environment, rl *ast.RecordLiteral) (value.Value, error) {
	fields := make([]value.RecordFieldValue, len(rl.Fields))
	for idx, f := range rl.Fields {
		v, err := i.evalExpr(env, f.Value)
		if err != nil {
			return nil, err
		}
		fields[idx] = value.RecordFieldValue{Name: f.Name, Val: value.Copy(v)}
	}
	return &value.RecordValue{Fields: fields, Mutable: rl.Mutable}, nil
}

func (i *Interpreter) evalPrefix(env *Environment, pe *ast.PrefixExpr) (value.Value, error) {
	right, err := i.evalExpr(env, pe.Right)
	if err != nil {
		return nil, err
	}
	switch pe.Operator {
	case "!":
		return &value.BooleanValue{Val: !right.(*value.BooleanValue).Val}, nil
	case "-":
		return &value.IntegerValue{Val: -right.(*value.IntegerValue).Val}, nil
	default:
		return nil, i.runtimeErr(pe, "unknown prefix operator %q", pe.Operator)
	}
}

func (i *Interpreter) evalInfix(env *Environment, ie *ast.InfixExpr) (value.Value, error) {
	// && and || short-circuit, so the right operand is only evaluated
	// when it can affect the result.
	if ie.Operator == "&&" || ie.Operator == "||" {
		left, err := i.evalExpr(env, ie.Left)
		if err != nil {
			return nil, err
		}
		lb := left.(*value.BooleanValue).Val
		if ie.Operator == "&&" && !lb {
			return &value.BooleanValue{Val: false}, nil
		}
		if ie.Operator == "||" && lb {
			return &value.BooleanValue{Val: true}, nil
		}
		right, err := i.evalExpr(env, ie.Right)
		if err != nil {
			return nil, err
		}
		return &value.BooleanValue{Val: right.(*value.BooleanValue).Val}, nil
	}

	left, err := i.evalExpr(env, ie.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(env, ie.Right)
	if err != nil {
		return nil, err
	}

	switch ie.Operator {
	case "==":
		return &value.BooleanValue{Val: valuesEqual(left, right)}, nil
	case "!=":
		return &value.BooleanValue{Val: !valuesEqual(left, right)}, nil
	case "+":
		if ls, ok := left.(*value.StringValue); ok {
			return &value.StringValue{Val: ls.Val + right.(*value.StringValue).Val}, nil
		}
		return &value.IntegerValue{Val: left.(*value.IntegerValue).Val + right.(*value.IntegerValue).Val}, nil
	case "-":
		return &value.IntegerValue{Val: left.(*value.IntegerValue).Val - right.(*value.IntegerValue).Val}, nil
	case "*":
		return &value.IntegerValue{Val: left.(*value.IntegerValue).Val * right.(*value.IntegerValue).Val}, nil
	case "/":
		r := right.(*value.IntegerValue).Val
		if r == 0 {
			return nil, i.runtimeErr(ie, "division by zero")
		}
		return &value.IntegerValue{Val: left.(*value.IntegerValue).Val / r}, nil
	case "<":
		return &value.BooleanValue{Val: left.(*value.IntegerValue).Val < right.(*value.IntegerValue).Val}, nil
	case ">":
		return &value.BooleanValue{Val: left.(*value.IntegerValue).Val > right.(*value.IntegerValue).Val}, nil
	case "<=":
		return &value.BooleanValue{Val: left.(*value.IntegerValue).Val <= right.(*value.IntegerValue).Val}, nil
	case ">=":
		return &value.BooleanValue{Val: left.(*value.IntegerValue).Val >= right.(*value.IntegerValue).Val}, nil
	default:
		return nil, i.runtimeErr(ie, "unknown operator %q", ie.Operator)
	}
}

func valuesEqual(a, b value.Value) bool {
	switch av := a.(type) {
	case *value.StringValue:
		return av.Val == b.(*value.StringValue).Val
	case *value.IntegerValue:
		return av.Val == b.(*value.IntegerValue).Val
	case *value.BooleanValue:
		return av.Val == b.(*value.BooleanValue).Val
	case *value.ExitCodeValue:
		return av.Val == b.(*value.ExitCodeValue).Val
	default:
		return a.Fmt() == b.Fmt()
	}
}

func (i *Interpreter) evalIndex(env *Environment, ix *ast.IndexExpr) (value.Value, error) {
	leftVal, err := i.evalExpr(env, ix.Left)
	if err != nil {
		return nil, err
	}
	arr := leftVal.(*value.ArrayValue)
	idxVal, err := i.evalExpr(env, ix.Index)
	if err != nil {
		return nil, err
	}
	idx := idxVal.(*value.IntegerValue).Val
	if idx < 0 || int(idx) >= len(arr.Elements) {
		return nil, i.runtimeErr(ix, "array index %d out of bounds (length %d)", idx, len(arr.Elements))
	}
	return arr.Elements[idx], nil
}

func (i *Interpreter) evalMember(env *Environment, me *ast.MemberExpr) (value.Value, error) {
	leftVal, err := i.evalExpr(env, me.Left)
	if err != nil {
		return nil, err
	}
	rec := leftVal.(*value.RecordValue)
	v, ok := rec.Get(me.Name)
	if !ok {
		return nil, i.runtimeErr(me, "record has no field %q", me.Name)
	}
	return v, nil
}
