package parser

import (
	"testing"

	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/lexer"
)

func parseOrFatal(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, errs := ParseProgram(lexer.New(input))
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", input, errs)
	}
	return prog
}

func TestVarDeclBasic(t *testing.T) {
	prog := parseOrFatal(t, `var x = 5;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	vd, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Statements[0])
	}
	if vd.Mut {
		t.Fatalf("expected non-mut binding")
	}
	if vd.Name.Value != "x" {
		t.Fatalf("expected name x, got %q", vd.Name.Value)
	}
	intLit, ok := vd.Value.(*ast.IntegerLiteral)
	if !ok || intLit.Value != 5 {
		t.Fatalf("expected integer literal 5, got %#v", vd.Value)
	}
}

func TestVarDeclMutWithType(t *testing.T) {
	prog := parseOrFatal(t, `var mut count: integer = 0;`)
	vd := prog.Statements[0].(*ast.VarDecl)
	if !vd.Mut {
		t.Fatalf("expected mut binding")
	}
	if vd.Type == nil || vd.Type.Name != "integer" {
		t.Fatalf("expected type annotation integer, got %#v", vd.Type)
	}
}

func TestArrayLiteralMutability(t *testing.T) {
	prog := parseOrFatal(t, `var mut xs = mut [1, 2, 3];`)
	vd := prog.Statements[0].(*ast.VarDecl)
	arr, ok := vd.Value.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected *ast.ArrayLiteral, got %T", vd.Value)
	}
	if arr.Mut != ast.MutForced {
		t.Fatalf("expected MutForced, got %v", arr.Mut)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
}

func TestNestedImmutOverride(t *testing.T) {
	prog := parseOrFatal(t, `var x = mut [!mut [1]];`)
	vd := prog.Statements[0].(*ast.VarDecl)
	outer := vd.Value.(*ast.ArrayLiteral)
	inner := outer.Elements[0].(*ast.ArrayLiteral)
	if inner.Mut != ast.MutForbidden {
		t.Fatalf("expected inner MutForbidden, got %v", inner.Mut)
	}
}

func TestRecordLiteral(t *testing.T) {
	prog := parseOrFatal(t, `var p = {x: 1, y: 2};`)
	vd := prog.Statements[0].(*ast.VarDecl)
	rec, ok := vd.Value.(*ast.RecordLiteral)
	if !ok {
		t.Fatalf("expected *ast.RecordLiteral, got %T", vd.Value)
	}
	if len(rec.Fields) != 2 || rec.Fields[0].Name != "x" || rec.Fields[1].Name != "y" {
		t.Fatalf("unexpected fields: %#v", rec.Fields)
	}
}

func TestStringInterpolationParses(t *testing.T) {
	prog := parseOrFatal(t, `var msg = "hello ${name}!";`)
	vd := prog.Statements[0].(*ast.VarDecl)
	lit, ok := vd.Value.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("expected *ast.StringLiteral, got %T", vd.Value)
	}
	if len(lit.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(lit.Parts))
	}
	ident, ok := lit.Parts[1].Expr.(*ast.Identifier)
	if !ok || ident.Value != "name" {
		t.Fatalf("expected identifier name in interpolation, got %#v", lit.Parts[1].Expr)
	}
}

func TestIfElseIfChain(t *testing.T) {
	prog := parseOrFatal(t, `
if x == 1 {
  y = 1;
} else if x == 2 {
  y = 2;
} else {
  y = 3;
}`)
	stmt := prog.Statements[0].(*ast.IfStatement)
	elseIf, ok := stmt.Else.(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected chained else-if, got %T", stmt.Else)
	}
	if _, ok := elseIf.Else.(*ast.BlockStatement); !ok {
		t.Fatalf("expected terminal else block, got %T", elseIf.Else)
	}
}

func TestWhileAndFor(t *testing.T) {
	prog := parseOrFatal(t, `
while x < 10 {
  x = x + 1;
}
for item in items {
  out(item);
}`)
	if _, ok := prog.Statements[0].(*ast.WhileStatement); !ok {
		t.Fatalf("expected *ast.WhileStatement, got %T", prog.Statements[0])
	}
	fs, ok := prog.Statements[1].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected *ast.ForStatement, got %T", prog.Statements[1])
	}
	if fs.Name.Value != "item" {
		t.Fatalf("expected loop var item, got %q", fs.Name.Value)
	}
}

func TestFuncDeclWithMutParam(t *testing.T) {
	prog := parseOrFatal(t, `
func push_one(mut xs: array<integer>): integer {
  return 0;
}`)
	fd, ok := prog.Statements[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", prog.Statements[0])
	}
	if len(fd.Params) != 1 || !fd.Params[0].Mut {
		t.Fatalf("expected one mut param, got %#v", fd.Params)
	}
	if fd.Params[0].Type.Elem == nil || fd.Params[0].Type.Elem.Name != "integer" {
		t.Fatalf("expected array<integer> param type, got %#v", fd.Params[0].Type)
	}
	if fd.RetType == nil || fd.RetType.Name != "integer" {
		t.Fatalf("expected integer return type, got %#v", fd.RetType)
	}
}

func TestAssignmentStatement(t *testing.T) {
	prog := parseOrFatal(t, `x = x + 1;`)
	as, ok := prog.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected *ast.AssignStatement, got %T", prog.Statements[0])
	}
	if _, ok := as.Target.(*ast.Identifier); !ok {
		t.Fatalf("expected identifier target, got %T", as.Target)
	}
}

func TestIndexAndMemberAssignment(t *testing.T) {
	prog := parseOrFatal(t, `
xs[0] = 1;
p.x = 2;`)
	idxAssign := prog.Statements[0].(*ast.AssignStatement)
	if _, ok := idxAssign.Target.(*ast.IndexExpr); !ok {
		t.Fatalf("expected index target, got %T", idxAssign.Target)
	}
	memberAssign := prog.Statements[1].(*ast.AssignStatement)
	if _, ok := memberAssign.Target.(*ast.MemberExpr); !ok {
		t.Fatalf("expected member target, got %T", memberAssign.Target)
	}
}

func TestMethodCallExpr(t *testing.T) {
	prog := parseOrFatal(t, `xs.push(1);`)
	es := prog.Statements[0].(*ast.ExprStatement)
	mc, ok := es.Expr.(*ast.MethodCallExpr)
	if !ok {
		t.Fatalf("expected *ast.MethodCallExpr, got %T", es.Expr)
	}
	if mc.Method != "push" || len(mc.Args) != 1 {
		t.Fatalf("unexpected method call: %#v", mc)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	prog := parseOrFatal(t, `var x = 1 + 2 * 3 == 7 && true;`)
	vd := prog.Statements[0].(*ast.VarDecl)
	want := "(((1 + (2 * 3)) == 7) && true)"
	if got := vd.Value.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	infix, ok := vd.Value.(*ast.InfixExpr)
	if !ok {
		t.Fatalf("expected top-level infix, got %T", vd.Value)
	}
	if infix.Operator != "&&" {
		t.Fatalf("expected top-level && due to precedence, got %q", infix.Operator)
	}
}

func TestPipelineSimple(t *testing.T) {
	prog := parseOrFatal(t, "exec `ls -la`;")
	es := prog.Statements[0].(*ast.ExprStatement)
	pe, ok := es.Expr.(*ast.PipelineExpr)
	if !ok {
		t.Fatalf("expected *ast.PipelineExpr, got %T", es.Expr)
	}
	if len(pe.Stages) != 1 {
		t.Fatalf("expected 1 stage, got %d", len(pe.Stages))
	}
	if _, ok := pe.Stages[0].(*ast.CommandStage); !ok {
		t.Fatalf("expected *ast.CommandStage, got %T", pe.Stages[0])
	}
}

func TestPipelineChainWithCaptures(t *testing.T) {
	prog := parseOrFatal(t, "exec `cat in.txt` => `grep foo` |cap stderr as errs| |cap exit_code|;")
	es := prog.Statements[0].(*ast.ExprStatement)
	pe := es.Expr.(*ast.PipelineExpr)
	if len(pe.Stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(pe.Stages))
	}
	last := pe.Stages[1].(*ast.CommandStage)
	if len(last.Captures) != 2 {
		t.Fatalf("expected 2 captures, got %d", len(last.Captures))
	}
	if last.Captures[0].Kind != ast.CaptureStderr || last.Captures[0].As.Value != "errs" {
		t.Fatalf("unexpected first capture: %#v", last.Captures[0])
	}
	if last.Captures[1].Kind != ast.CaptureExitCode || last.Captures[1].As != nil {
		t.Fatalf("unexpected second capture: %#v", last.Captures[1])
	}
}

func TestPipelineFileStages(t *testing.T) {
	prog := parseOrFatal(t, "exec open(\"in.txt\") => `sort` => write(\"out.txt\");")
	es := prog.Statements[0].(*ast.ExprStatement)
	pe := es.Expr.(*ast.PipelineExpr)
	if len(pe.Stages) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(pe.Stages))
	}
	if _, ok := pe.Stages[0].(*ast.FileOpenStage); !ok {
		t.Fatalf("expected *ast.FileOpenStage, got %T", pe.Stages[0])
	}
	if _, ok := pe.Stages[2].(*ast.FileWriteStage); !ok {
		t.Fatalf("expected *ast.FileWriteStage, got %T", pe.Stages[2])
	}
}

func TestExitStatementVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare", "exit;"},
		{"withInteger", "exit 42;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseOrFatal(t, tt.input)
			if _, ok := prog.Statements[0].(*ast.ExitStatement); !ok {
				t.Fatalf("expected *ast.ExitStatement, got %T", prog.Statements[0])
			}
		})
	}
}

func TestParserReportsUnexpectedToken(t *testing.T) {
	_, errs := ParseProgram(lexer.New(`var x = ;`))
	if len(errs) == 0 {
		t.Fatalf("expected a parse error")
	}
}
