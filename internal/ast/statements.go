package ast

import (
	"bytes"
	"strings"

	"github.com/robert-mccausland/nash/internal/lexer"
)

// BlockStatement is a `{ ... }` sequence of statements introducing a new
// scope (spec.md §4.4: every block is a frame).
type BlockStatement struct {
	Token      lexer.Token // the `{` token
	Statements []Statement
	NumSlots   int // frame size, filled in by the semantic analyzer
}

func (bs *BlockStatement) statementNode()     {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() lexer.Position  { return bs.Token.Pos }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range bs.Statements {
		out.WriteString("  " + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// VarDecl is a `var [mut] name[: Type] = expr;` declaration. Mut marks
// binding-mutability (spec.md §3), orthogonal to any container literal's
// own value-mutability flag on the right-hand side.
type VarDecl struct {
	Token lexer.Token // the `var` token
	Mut   bool
	Name  *Identifier
	Type  *TypeAnnotation // nil when the type is to be inferred
	Value Expression
}

func (vd *VarDecl) statementNode()     {}
func (vd *VarDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDecl) Pos() lexer.Position  { return vd.Token.Pos }
func (vd *VarDecl) String() string {
	var out bytes.Buffer
	out.WriteString("var ")
	if vd.Mut {
		out.WriteString("mut ")
	}
	out.WriteString(vd.Name.String())
	if vd.Type != nil {
		out.WriteString(": " + vd.Type.String())
	}
	out.WriteString(" = " + vd.Value.String() + ";")
	return out.String()
}

// AssignStatement is a `target = expr;` assignment to an existing
// mutable-bound identifier, array element, or record field.
type AssignStatement struct {
	Token  lexer.Token // the `=` token
	Target Expression  // Identifier, IndexExpr, or MemberExpr
	Value  Expression
}

func (as *AssignStatement) statementNode()     {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) Pos() lexer.Position  { return as.Token.Pos }
func (as *AssignStatement) String() string {
	return as.Target.String() + " = " + as.Value.String() + ";"
}

// ExprStatement wraps an expression used for its side effects, e.g. a
// bare call or a bare `exec` pipeline.
type ExprStatement struct {
	Token lexer.Token
	Expr  Expression
}

func (es *ExprStatement) statementNode()     {}
func (es *ExprStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExprStatement) Pos() lexer.Position  { return es.Token.Pos }
func (es *ExprStatement) String() string       { return es.Expr.String() + ";" }

// IfStatement is an `if cond { ... } else { ... }` conditional. Else may
// be nil, or itself an *IfStatement for an `else if` chain, or a
// *BlockStatement for a plain else.
type IfStatement struct {
	Token     lexer.Token
	Condition Expression
	Then      *BlockStatement
	Else      Statement
}

func (is *IfStatement) statementNode()     {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() lexer.Position  { return is.Token.Pos }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if " + is.Condition.String() + " " + is.Then.String())
	if is.Else != nil {
		out.WriteString(" else " + is.Else.String())
	}
	return out.String()
}

// WhileStatement is a `while cond { ... }` loop.
type WhileStatement struct {
	Token     lexer.Token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()     {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() lexer.Position  { return ws.Token.Pos }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + " " + ws.Body.String()
}

// ForStatement is a `for name in iterable { ... }` loop over an array.
type ForStatement struct {
	Token    lexer.Token
	Name     *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (fs *ForStatement) statementNode()     {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) Pos() lexer.Position  { return fs.Token.Pos }
func (fs *ForStatement) String() string {
	return "for " + fs.Name.String() + " in " + fs.Iterable.String() + " " + fs.Body.String()
}

// ReturnStatement is a `return [expr];` statement inside a function body.
type ReturnStatement struct {
	Token lexer.Token
	Value Expression // nil for a bare `return;`
}

func (rs *ReturnStatement) statementNode()     {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() lexer.Position  { return rs.Token.Pos }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}

// ExitStatement is an `exit [expr];` statement, terminating the whole
// program with an integer exit code (defaulting to 0).
type ExitStatement struct {
	Token lexer.Token
	Value Expression // nil for a bare `exit;`
}

func (es *ExitStatement) statementNode()     {}
func (es *ExitStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExitStatement) Pos() lexer.Position  { return es.Token.Pos }
func (es *ExitStatement) String() string {
	if es.Value == nil {
		return "exit;"
	}
	return "exit " + es.Value.String() + ";"
}

// Param is one declared parameter of a function.
type Param struct {
	Mut  bool // a `mut [T]` array parameter is passed by reference
	Name *Identifier
	Type *TypeAnnotation
}

// FuncDecl is a `func name(params...) [: RetType] { ... }` declaration.
// Nash functions are always named bindings, and only top-level
// declarations are registered as callable; there are no anonymous
// function literals in spec.md's value model.
type FuncDecl struct {
	Token   lexer.Token
	Name    *Identifier
	Params  []Param
	RetType *TypeAnnotation // nil when the function returns no value
	Body    *BlockStatement
	Slot    int // slot this function's callable value is bound to
}

func (fd *FuncDecl) statementNode()     {}
func (fd *FuncDecl) TokenLiteral() string { return fd.Token.Literal }
func (fd *FuncDecl) Pos() lexer.Position  { return fd.Token.Pos }
func (fd *FuncDecl) String() string {
	var out bytes.Buffer
	out.WriteString("func " + fd.Name.String() + "(")
	parts := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		s := ""
		if p.Mut {
			s += "mut "
		}
		s += p.Name.String() + ": " + p.Type.String()
		parts[i] = s
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(")")
	if fd.RetType != nil {
		out.WriteString(": " + fd.RetType.String())
	}
	out.WriteString(" " + fd.Body.String())
	return out.String()
}
