package semantic

import (
	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/nasherr"
	"github.com/robert-mccausland/nash/internal/value"
)

// builtinSignature describes a predeclared global function's arity and
// parameter/return types for call-site type-checking. Variadic skips
// the argument-count check; no builtin currently sets it. A nil params
// entry leaves that argument's type unchecked (out accepts any Value).
type builtinSignature struct {
	params   []*value.Type // nil entries mean "accept anything"
	ret      *value.Type
	variadic bool
}

// builtinSignatures is consulted by analyzeCall before falling back to
// scope resolution, since out/open/write/append/glob/args/env are not
// ordinary user-declared functions but the fixed contracts spec.md
// leaves for the built-in registry (spec.md's "out of scope" list,
// supplemented by SPEC_FULL.md's args/env additions).
var builtinSignatures = map[string]builtinSignature{
	"out":   {params: []*value.Type{nil}, ret: value.Unit},
	"open":  {params: []*value.Type{value.String}, ret: value.FileEndpoint},
	"write": {params: []*value.Type{value.String}, ret: value.FileEndpoint},
	"append": {params: []*value.Type{value.String}, ret: value.FileEndpoint},
	"glob":  {params: []*value.Type{value.String}, ret: value.Array(value.String)},
	"args":  {params: nil, ret: value.Array(value.String)},
	"env":   {params: []*value.Type{value.String}, ret: value.String},
}

// registerBuiltins declares the predeclared names that resolve() must
// find for ordinary identifier references, e.g. when a builtin is
// passed around as a value would be — Nash has no first-class
// functions, so in practice this only guards against a builtin name
// being reused as a plain variable without `var` shadowing it first.
func registerBuiltins(scope *SymbolTable) {
	for name := range builtinSignatures {
		scope.DefineFunc(name, value.Unit, nil)
	}
}

// analyzeBuiltinCall type-checks a call to one of the fixed built-in
// functions. ident is resolved directly against builtinSignatures
// rather than through scope.Resolve, since these names are not ordinary
// slot-backed bindings — the evaluator dispatches them by name.
func (a *Analyzer) analyzeBuiltinCall(ce *ast.CallExpr, ident *ast.Identifier, sig builtinSignature) *value.Type {
	if !sig.variadic && len(ce.Args) != len(sig.params) {
		a.addError(nasherr.KindType, ce, "%q expects %d argument(s), got %d", ident.Value, len(sig.params), len(ce.Args))
	}
	for i, arg := range ce.Args {
		var expected *value.Type
		if i < len(sig.params) {
			expected = sig.params[i]
		}
		got := a.analyzeExpr(arg, expected)
		if expected != nil && got != nil && !got.Equals(expected) {
			a.addError(nasherr.KindType, arg, "argument %d of %q: expected %s, got %s", i+1, ident.Value, expected, got)
		}
	}
	return sig.ret
}

// analyzeContainerMethod type-checks push/pop/len/fmt/ends_with, the
// built-in methods spec.md reserves on arrays and strings rather than
// routing through user-declared functions.
func (a *Analyzer) analyzeContainerMethod(mc *ast.MethodCallExpr, recv *value.Type) *value.Type {
	switch mc.Method {
	case "push":
		if recv.Kind != value.KindArray {
			a.addError(nasherr.KindType, mc, "push is only defined on arrays, got %s", recv)
			return nil
		}
		if len(mc.Args) != 1 {
			a.addError(nasherr.KindType, mc, "push expects 1 argument, got %d", len(mc.Args))
			return value.Unit
		}
		argType := a.analyzeExpr(mc.Args[0], recv.Elem)
		if argType != nil && recv.Elem != nil && !argType.Equals(recv.Elem) {
			a.addError(nasherr.KindType, mc.Args[0], "cannot push %s onto array<%s>", argType, recv.Elem)
		}
		return value.Unit
	case "pop":
		if recv.Kind != value.KindArray {
			a.addError(nasherr.KindType, mc, "pop is only defined on arrays, got %s", recv)
			return nil
		}
		return recv.Elem
	case "len":
		if recv.Kind != value.KindArray && recv.Kind != value.KindString {
			a.addError(nasherr.KindType, mc, "len is only defined on arrays and strings, got %s", recv)
		}
		return value.Integer
	case "fmt":
		return value.String
	case "ends_with":
		if recv.Kind != value.KindString {
			a.addError(nasherr.KindType, mc, "ends_with is only defined on strings, got %s", recv)
		}
		if len(mc.Args) != 1 {
			a.addError(nasherr.KindType, mc, "ends_with expects 1 argument, got %d", len(mc.Args))
			return value.Boolean
		}
		argType := a.analyzeExpr(mc.Args[0], value.String)
		if argType != nil && argType.Kind != value.KindString {
			a.addError(nasherr.KindType, mc.Args[0], "ends_with expects a string argument, got %s", argType)
		}
		return value.Boolean
	default:
		a.addError(nasherr.KindName, mc, "unknown method %q on %s", mc.Method, recv)
		return nil
	}
}
