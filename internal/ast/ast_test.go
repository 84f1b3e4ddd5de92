package ast

import (
	"testing"

	"github.com/robert-mccausland/nash/internal/lexer"
)

func tok(t lexer.TokenType, lit string) lexer.Token {
	return lexer.Token{Type: t, Literal: lit}
}

func TestProgram(t *testing.T) {
	prog := &Program{Statements: []Statement{}}
	if prog.TokenLiteral() != "" {
		t.Errorf("empty program TokenLiteral() = %q, want empty string", prog.TokenLiteral())
	}

	prog = &Program{
		Statements: []Statement{
			&ExprStatement{
				Token: tok(lexer.INT, "42"),
				Expr:  &IntegerLiteral{Token: tok(lexer.INT, "42"), Value: 42},
			},
		},
	}
	if prog.TokenLiteral() != "42" {
		t.Errorf("TokenLiteral() = %q, want %q", prog.TokenLiteral(), "42")
	}
}

func TestIdentifierString(t *testing.T) {
	ident := &Identifier{Token: tok(lexer.IDENT, "myVar"), Value: "myVar", Depth: -1}
	if ident.String() != "myVar" {
		t.Errorf("String() = %q, want %q", ident.String(), "myVar")
	}
	if ident.TokenLiteral() != "myVar" {
		t.Errorf("TokenLiteral() = %q, want %q", ident.TokenLiteral(), "myVar")
	}
}

func TestStringLiteralInterpolation(t *testing.T) {
	lit := &StringLiteral{
		Token: tok(lexer.STRING, ""),
		Parts: []StringPart{
			{Text: "hello "},
			{Expr: &Identifier{Token: tok(lexer.IDENT, "name"), Value: "name"}},
			{Text: "!"},
		},
	}
	if lit.IsStatic() {
		t.Errorf("expected non-static string literal")
	}
	want := `"hello ${name}!"`
	if lit.String() != want {
		t.Errorf("String() = %q, want %q", lit.String(), want)
	}

	static := &StringLiteral{Parts: []StringPart{{Text: "plain"}}}
	if !static.IsStatic() {
		t.Errorf("expected static string literal")
	}
	if static.StaticValue() != "plain" {
		t.Errorf("StaticValue() = %q, want %q", static.StaticValue(), "plain")
	}
}

func TestArrayLiteralMutabilityPrefix(t *testing.T) {
	tests := []struct {
		mut      Mutability
		expected string
	}{
		{MutDefault, "[1, 2]"},
		{MutForced, "mut [1, 2]"},
		{MutForbidden, "!mut [1, 2]"},
	}

	for _, tt := range tests {
		arr := &ArrayLiteral{
			Mut: tt.mut,
			Elements: []Expression{
				&IntegerLiteral{Token: tok(lexer.INT, "1"), Value: 1},
				&IntegerLiteral{Token: tok(lexer.INT, "2"), Value: 2},
			},
		}
		if arr.String() != tt.expected {
			t.Errorf("String() = %q, want %q", arr.String(), tt.expected)
		}
	}
}

func TestRecordLiteralString(t *testing.T) {
	rec := &RecordLiteral{
		Fields: []RecordField{
			{Name: "x", Value: &IntegerLiteral{Token: tok(lexer.INT, "1"), Value: 1}},
			{Name: "y", Value: &IntegerLiteral{Token: tok(lexer.INT, "2"), Value: 2}},
		},
	}
	want := "{x: 1, y: 2}"
	if rec.String() != want {
		t.Errorf("String() = %q, want %q", rec.String(), want)
	}
}

func TestInfixAndPrefixString(t *testing.T) {
	infix := &InfixExpr{
		Left:     &Identifier{Value: "x"},
		Operator: "+",
		Right:    &IntegerLiteral{Token: tok(lexer.INT, "1"), Value: 1},
	}
	if infix.String() != "(x + 1)" {
		t.Errorf("String() = %q, want %q", infix.String(), "(x + 1)")
	}

	prefix := &PrefixExpr{Operator: "!", Right: &Identifier{Value: "ok"}}
	if prefix.String() != "(!ok)" {
		t.Errorf("String() = %q, want %q", prefix.String(), "(!ok)")
	}
}

func TestIfStatementString(t *testing.T) {
	stmt := &IfStatement{
		Token:     tok(lexer.IF, "if"),
		Condition: &Identifier{Value: "ok"},
		Then: &BlockStatement{
			Token:      tok(lexer.LBRACE, "{"),
			Statements: []Statement{},
		},
	}
	want := "if ok {\n}"
	if stmt.String() != want {
		t.Errorf("String() = %q, want %q", stmt.String(), want)
	}
}

func TestForStatementString(t *testing.T) {
	stmt := &ForStatement{
		Token:    tok(lexer.FOR, "for"),
		Name:     &Identifier{Value: "item"},
		Iterable: &Identifier{Value: "items"},
		Body:     &BlockStatement{Token: tok(lexer.LBRACE, "{")},
	}
	want := "for item in items {\n}"
	if stmt.String() != want {
		t.Errorf("String() = %q, want %q", stmt.String(), want)
	}
}

func TestFuncDeclString(t *testing.T) {
	fd := &FuncDecl{
		Token: tok(lexer.FUNC, "func"),
		Name:  &Identifier{Value: "add"},
		Params: []Param{
			{Name: &Identifier{Value: "a"}, Type: &TypeAnnotation{Name: "integer"}},
			{Mut: true, Name: &Identifier{Value: "b"}, Type: &TypeAnnotation{Name: "integer", Elem: nil}},
		},
		RetType: &TypeAnnotation{Name: "integer"},
		Body:    &BlockStatement{Token: tok(lexer.LBRACE, "{")},
	}
	want := "func add(a: integer, mut b: integer): integer {\n}"
	if fd.String() != want {
		t.Errorf("String() = %q, want %q", fd.String(), want)
	}
}

func TestTypeAnnotationArrayAndRecordString(t *testing.T) {
	arrType := &TypeAnnotation{Elem: &TypeAnnotation{Name: "string"}}
	if arrType.String() != "array<string>" {
		t.Errorf("String() = %q, want %q", arrType.String(), "array<string>")
	}

	recType := &TypeAnnotation{Fields: []RecordFieldType{
		{Name: "x", Type: &TypeAnnotation{Name: "integer"}},
	}}
	if recType.String() != "{x: integer}" {
		t.Errorf("String() = %q, want %q", recType.String(), "{x: integer}")
	}
}

func TestPipelineExprString(t *testing.T) {
	pe := &PipelineExpr{
		Token: tok(lexer.EXEC, "exec"),
		Stages: []Stage{
			&CommandStage{
				Command: &CommandLiteral{Parts: []StringPart{{Text: "ls -la"}}},
			},
			&CommandStage{
				Command:  &CommandLiteral{Parts: []StringPart{{Text: "grep foo"}}},
				Captures: []CaptureSpec{{Kind: CaptureExitCode, As: &Identifier{Value: "code"}}},
			},
		},
	}
	want := "exec `ls -la` => `grep foo` |cap exit_code as code|"
	if pe.String() != want {
		t.Errorf("String() = %q, want %q", pe.String(), want)
	}
}
