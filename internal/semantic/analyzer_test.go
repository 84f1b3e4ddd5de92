package semantic

import (
	"testing"

	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/lexer"
	"github.com/robert-mccausland/nash/internal/nasherr"
	"github.com/robert-mccausland/nash/internal/parser"
)

func analyzeOrFatal(t *testing.T, input string) (*ast.Program, []*nasherr.Error) {
	t.Helper()
	prog, perrs := parser.ParseProgram(lexer.New(input))
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", input, perrs)
	}
	errs := New().Analyze(prog)
	return prog, errs
}

func errKinds(errs []*nasherr.Error) []nasherr.Kind {
	kinds := make([]nasherr.Kind, len(errs))
	for i, e := range errs {
		kinds[i] = e.Kind
	}
	return kinds
}

func TestVarDeclResolvesSlot(t *testing.T) {
	prog, errs := analyzeOrFatal(t, `var x = 5; var y = x;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	xDecl := prog.Statements[0].(*ast.VarDecl)
	yDecl := prog.Statements[1].(*ast.VarDecl)
	ref := yDecl.Value.(*ast.Identifier)
	if ref.Slot != xDecl.Name.Slot || ref.Depth != 0 {
		t.Fatalf("expected slot %d depth 0, got slot=%d depth=%d", xDecl.Name.Slot, ref.Slot, ref.Depth)
	}
}

func TestAssignToImmutableBindingErrors(t *testing.T) {
	_, errs := analyzeOrFatal(t, `var x = 5; x = 6;`)
	if len(errs) != 1 || errs[0].Kind != nasherr.KindMutability {
		t.Fatalf("expected one MutabilityError, got %v", errs)
	}
}

func TestAssignToMutableBindingOK(t *testing.T) {
	_, errs := analyzeOrFatal(t, `var mut x = 5; x = 6;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestUndefinedNameErrors(t *testing.T) {
	_, errs := analyzeOrFatal(t, `var x = y;`)
	if len(errs) != 1 || errs[0].Kind != nasherr.KindName {
		t.Fatalf("expected one NameError, got %v", errs)
	}
}

func TestTypeMismatchOnVarDecl(t *testing.T) {
	_, errs := analyzeOrFatal(t, `var x: integer = "hello";`)
	if len(errs) != 1 || errs[0].Kind != nasherr.KindType {
		t.Fatalf("expected one TypeError, got %v", errs)
	}
}

func TestIfConditionMustBeBoolean(t *testing.T) {
	_, errs := analyzeOrFatal(t, `if 5 { var x = 1; }`)
	if len(errs) != 1 || errs[0].Kind != nasherr.KindType {
		t.Fatalf("expected one TypeError, got %v", errs)
	}
}

func TestArrayLiteralTopLevelDefaultsImmutable(t *testing.T) {
	prog, errs := analyzeOrFatal(t, `var xs = [1, 2, 3];`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	vd := prog.Statements[0].(*ast.VarDecl)
	arr := vd.Value.(*ast.ArrayLiteral)
	if arr.Mutable {
		t.Fatalf("expected array literal without mut to be immutable")
	}
}

func TestArrayLiteralMutCascadesToNestedLiterals(t *testing.T) {
	prog, errs := analyzeOrFatal(t, `var xs = mut [[1], [2]];`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	outer := prog.Statements[0].(*ast.VarDecl).Value.(*ast.ArrayLiteral)
	if !outer.Mutable {
		t.Fatalf("expected outer array to be mutable")
	}
	for _, elem := range outer.Elements {
		inner := elem.(*ast.ArrayLiteral)
		if !inner.Mutable {
			t.Fatalf("expected nested array to inherit mutability from enclosing mut literal")
		}
	}
}

func TestBangMutOverridesCascade(t *testing.T) {
	prog, errs := analyzeOrFatal(t, `var xs = mut [!mut [1], [2]];`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	outer := prog.Statements[0].(*ast.VarDecl).Value.(*ast.ArrayLiteral)
	forced := outer.Elements[0].(*ast.ArrayLiteral)
	inherited := outer.Elements[1].(*ast.ArrayLiteral)
	if forced.Mutable {
		t.Fatalf("expected !mut nested literal to stay immutable despite enclosing mut")
	}
	if !inherited.Mutable {
		t.Fatalf("expected unmarked nested literal to inherit enclosing mutability")
	}
}

func TestArrayPushArgumentTypeIsCheckedStatically(t *testing.T) {
	// push's argument type is still checked statically even though the
	// mutability check itself is deferred to internal/eval.
	_, errs := analyzeOrFatal(t, `var mut xs = mut [1, 2]; xs.push("oops");`)
	if len(errs) != 1 || errs[0].Kind != nasherr.KindType {
		t.Fatalf("expected one TypeError for push argument, got %v", errs)
	}
}

func TestForLoopBindsElementType(t *testing.T) {
	_, errs := analyzeOrFatal(t, `
		var xs = ["a", "b"];
		for x in xs {
			var y: string = x;
		}
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestFuncDeclParamsAndReturnType(t *testing.T) {
	_, errs := analyzeOrFatal(t, `
		func add(a: integer, b: integer): integer {
			return a + b;
		}
		var x = add(1, 2);
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestFuncCallArityMismatch(t *testing.T) {
	_, errs := analyzeOrFatal(t, `
		func add(a: integer, b: integer): integer {
			return a + b;
		}
		var x = add(1);
	`)
	if len(errs) != 1 || errs[0].Kind != nasherr.KindType {
		t.Fatalf("expected one TypeError for arity mismatch, got %v", errs)
	}
}

func TestPipelineOpenOnlyValidFirst(t *testing.T) {
	_, errs := analyzeOrFatal(t, "var x = exec `echo hi` => open(\"/tmp/f\");")
	kinds := errKinds(errs)
	found := false
	for _, k := range kinds {
		if k == nasherr.KindPipelineShape {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a PipelineShapeError, got %v", errs)
	}
}

func TestPipelineWriteOnlyValidLast(t *testing.T) {
	_, errs := analyzeOrFatal(t, "var x = exec write(\"/tmp/f\") => `echo hi`;")
	found := false
	for _, e := range errs {
		if e.Kind == nasherr.KindPipelineShape {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a PipelineShapeError, got %v", errs)
	}
}

func TestPipelineCaptureBindsDefaultName(t *testing.T) {
	_, errs := analyzeOrFatal(t, "var x = exec `false`|cap exit_code|; out(\"${exit_code.fmt()}\");")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestPipelineCaptureBindsNamedCapture(t *testing.T) {
	_, errs := analyzeOrFatal(t, "var x = exec `false`|cap exit_code as code|; out(\"${code.fmt()}\");")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestBuiltinGlobReturnsArrayOfString(t *testing.T) {
	_, errs := analyzeOrFatal(t, `var xs: array<string> = glob("*.nash");`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestRecordLiteralFieldAccess(t *testing.T) {
	_, errs := analyzeOrFatal(t, `
		var r = {name: "a", age: 1};
		var n: string = r.name;
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestRecordLiteralUnknownFieldErrors(t *testing.T) {
	_, errs := analyzeOrFatal(t, `
		var r = {name: "a"};
		var n = r.missing;
	`)
	if len(errs) != 1 || errs[0].Kind != nasherr.KindType {
		t.Fatalf("expected one TypeError, got %v", errs)
	}
}
