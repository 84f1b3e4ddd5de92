// Package ast defines the abstract syntax tree node types for Nash.
package ast

import (
	"bytes"
	"strings"

	"github.com/robert-mccausland/nash/internal/lexer"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLiteral returns the literal text of the token this node starts with.
	TokenLiteral() string
	// String returns a debug representation of the node.
	String() string
	// Pos returns the node's position in the source, for diagnostics.
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	Statements []Statement
	// NumSlots is the size of the top-level frame, filled in by the
	// semantic analyzer (spec.md §4.4).
	NumSlots int
	// StdinSlot is the frame slot of the predeclared `stdin` binding
	// (SPEC_FULL.md's --stdin decision), filled in by the semantic
	// analyzer alongside NumSlots.
	StdinSlot int
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// Identifier references a declared name.
//
// Slot is filled in by the semantic analyzer (internal/semantic) once the
// identifier has been resolved to a binding; the evaluator uses Slot
// instead of performing name lookup (spec.md §4.3/§4.4).
type Identifier struct {
	Token lexer.Token
	Value string
	Slot  int
	Depth int // number of enclosing frames to walk up; -1 until resolved
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }

// IntegerLiteral is an integer literal value.
type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }
func (il *IntegerLiteral) Pos() lexer.Position  { return il.Token.Pos }

// BooleanLiteral is a true/false literal value.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string {
	if bl.Value {
		return "true"
	}
	return "false"
}
func (bl *BooleanLiteral) Pos() lexer.Position { return bl.Token.Pos }

// StringPart is one piece of an interpolated string/command literal:
// either a literal run of text, or an embedded expression.
type StringPart struct {
	Text string
	Expr Expression // nil when this part is plain text
}

// StringLiteral is a (possibly interpolated) string literal. Parts are
// concatenated at evaluation time, each Expr part rendered via fmt().
type StringLiteral struct {
	Token lexer.Token
	Parts []StringPart
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string {
	var out bytes.Buffer
	out.WriteByte('"')
	for _, p := range sl.Parts {
		if p.Expr != nil {
			out.WriteString("${")
			out.WriteString(p.Expr.String())
			out.WriteByte('}')
		} else {
			out.WriteString(p.Text)
		}
	}
	out.WriteByte('"')
	return out.String()
}
func (sl *StringLiteral) Pos() lexer.Position { return sl.Token.Pos }

// IsStatic reports whether the string literal has no interpolated parts.
func (sl *StringLiteral) IsStatic() bool {
	for _, p := range sl.Parts {
		if p.Expr != nil {
			return false
		}
	}
	return true
}

// StaticValue returns the literal's text, valid only when IsStatic is true.
func (sl *StringLiteral) StaticValue() string {
	var b strings.Builder
	for _, p := range sl.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
