package eval

import (
	"path/filepath"
	"sort"

	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/value"
)

// builtinNames lists every predeclared global function spec.md/SPEC_FULL.md
// reserve, mirroring internal/semantic's builtinSignatures map: these
// names are dispatched by name rather than resolved through i.funcs.
var builtinNames = map[string]bool{
	"out": true, "open": true, "write": true, "append": true,
	"glob": true, "args": true, "env": true,
}

func (i *Interpreter) evalCall(env *Environment, ce *ast.CallExpr) (value.Value, error) {
	ident, ok := ce.Callee.(*ast.Identifier)
	if !ok {
		return nil, i.runtimeErr(ce, "call target must be a function name")
	}

	if builtinNames[ident.Value] {
		return i.evalBuiltinCall(env, ce, ident.Value)
	}

	fd, ok := i.funcs[ident.Value]
	if !ok {
		return nil, i.runtimeErr(ce, "undefined function %q", ident.Value)
	}
	return i.callFunc(env, ce, fd)
}

// callFunc runs a user-defined function. Its frame's outer is always the
// global frame, never the caller's: Nash functions are declared only at
// top level and are not closures, so there is no enclosing-scope chain
// to capture (spec.md §4.4).
func (i *Interpreter) callFunc(env *Environment, ce *ast.CallExpr, fd *ast.FuncDecl) (value.Value, error) {
	frame := NewFrame(fd.Body.NumSlots, i.global)
	for idx, p := range fd.Params {
		v, err := i.evalExpr(env, ce.Args[idx])
		if err != nil {
			return nil, err
		}
		if p.Mut {
			// `mut [T]` parameters are passed by reference: the callee
			// mutates the same container the caller holds.
			frame.Define(p.Name.Slot, v)
		} else {
			frame.Define(p.Name.Slot, value.Copy(v))
		}
	}

	err := i.execStatementsInFrame(frame, fd.Body.Statements)
	if err == nil {
		return value.UnitValue{}, nil
	}
	if ret, ok := asReturn(err); ok {
		return ret.value, nil
	}
	return nil, err
}

func (i *Interpreter) evalBuiltinCall(env *Environment, ce *ast.CallExpr, name string) (value.Value, error) {
	args := make([]value.Value, len(ce.Args))
	for idx, a := range ce.Args {
		v, err := i.evalExpr(env, a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	switch name {
	case "out":
		i.Stdout.Write([]byte(args[0].Fmt()))
		i.Stdout.Write([]byte("\n"))
		return value.UnitValue{}, nil
	case "open":
		return &value.FileEndpointValue{Path: args[0].(*value.StringValue).Val, Mode: value.EndpointRead}, nil
	case "write":
		return &value.FileEndpointValue{Path: args[0].(*value.StringValue).Val, Mode: value.EndpointWrite}, nil
	case "append":
		return &value.FileEndpointValue{Path: args[0].(*value.StringValue).Val, Mode: value.EndpointAppend}, nil
	case "glob":
		return i.evalGlob(args[0].(*value.StringValue).Val, ce)
	case "args":
		elems := make([]value.Value, len(i.Args))
		for idx, a := range i.Args {
			elems[idx] = &value.StringValue{Val: a}
		}
		return &value.ArrayValue{ElemType: value.String, Elements: elems, Mutable: false}, nil
	case "env":
		return &value.StringValue{Val: i.Getenv(args[0].(*value.StringValue).Val)}, nil
	default:
		return nil, i.runtimeErr(ce, "unknown builtin %q", name)
	}
}

func (i *Interpreter) evalGlob(pattern string, pos ast.Node) (value.Value, error) {
	resolved := pattern
	if !filepath.IsAbs(pattern) && i.WorkDir != "" {
		resolved = filepath.Join(i.WorkDir, pattern)
	}
	matches, err := filepath.Glob(resolved)
	if err != nil {
		return nil, i.runtimeErr(pos, "invalid glob pattern %q: %v", pattern, err)
	}
	sort.Strings(matches)
	elems := make([]value.Value, len(matches))
	for idx, m := range matches {
		rel := m
		if i.WorkDir != "" {
			if r, err := filepath.Rel(i.WorkDir, m); err == nil {
				rel = r
			}
		}
		elems[idx] = &value.StringValue{Val: rel}
	}
	return &value.ArrayValue{ElemType: value.String, Elements: elems, Mutable: false}, nil
}

func (i *Interpreter) evalMethodCall(env *Environment, mc *ast.MethodCallExpr) (value.Value, error) {
	recv, err := i.evalExpr(env, mc.Receiver)
	if err != nil {
		return nil, err
	}

	switch mc.Method {
	case "push":
		arr := recv.(*value.ArrayValue)
		if !arr.Mutable {
			return nil, i.mutabilityErr(mc, "cannot push onto an immutable array")
		}
		v, err := i.evalExpr(env, mc.Args[0])
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, value.Copy(v))
		return value.UnitValue{}, nil
	case "pop":
		arr := recv.(*value.ArrayValue)
		if !arr.Mutable {
			return nil, i.mutabilityErr(mc, "cannot pop from an immutable array")
		}
		if len(arr.Elements) == 0 {
			return nil, i.runtimeErr(mc, "pop on empty array")
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return last, nil
	case "len":
		switch v := recv.(type) {
		case *value.ArrayValue:
			return &value.IntegerValue{Val: int64(len(v.Elements))}, nil
		case *value.StringValue:
			return &value.IntegerValue{Val: int64(len(v.Val))}, nil
		default:
			return nil, i.runtimeErr(mc, "len is only defined on arrays and strings")
		}
	case "fmt":
		return &value.StringValue{Val: recv.Fmt()}, nil
	case "ends_with":
		s := recv.(*value.StringValue).Val
		v, err := i.evalExpr(env, mc.Args[0])
		if err != nil {
			return nil, err
		}
		suffix := v.(*value.StringValue).Val
		return &value.BooleanValue{Val: len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix}, nil
	default:
		return nil, i.runtimeErr(mc, "unknown method %q", mc.Method)
	}
}
