package ast

import (
	"bytes"
	"strings"

	"github.com/robert-mccausland/nash/internal/lexer"
	"github.com/robert-mccausland/nash/internal/value"
)

// ArrayLiteral is a `[elem, elem, ...]` container literal, optionally
// prefixed with `mut`/`!mut` (spec.md §3 value-mutability cascade).
type ArrayLiteral struct {
	Token    lexer.Token
	Mut      Mutability
	Elements []Expression
	// Mutable is the cascade-resolved effective mutability, filled in
	// by the semantic analyzer (spec.md §3/§4.4).
	Mutable bool
	// ElemType is the inferred element type, filled in by the semantic
	// analyzer. The evaluator needs this for an empty array literal,
	// whose element type cannot be recovered from its (absent) elements
	// at runtime.
	ElemType *value.Type
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) Pos() lexer.Position  { return al.Token.Pos }
func (al *ArrayLiteral) String() string {
	var out bytes.Buffer
	if al.Mut != MutDefault {
		out.WriteString(al.Mut.String())
		out.WriteByte(' ')
	}
	out.WriteByte('[')
	elems := make([]string, len(al.Elements))
	for i, e := range al.Elements {
		elems[i] = e.String()
	}
	out.WriteString(strings.Join(elems, ", "))
	out.WriteByte(']')
	return out.String()
}

// RecordField is one `name: value` pair inside a record literal.
type RecordField struct {
	Name  string
	Value Expression
}

// RecordLiteral is a `{name: value, ...}` container literal, optionally
// prefixed with `mut`/`!mut`.
type RecordLiteral struct {
	Token  lexer.Token
	Mut    Mutability
	Fields []RecordField
	// Mutable is the cascade-resolved effective mutability, filled in
	// by the semantic analyzer (spec.md §3/§4.4).
	Mutable bool
}

func (rl *RecordLiteral) expressionNode()      {}
func (rl *RecordLiteral) TokenLiteral() string { return rl.Token.Literal }
func (rl *RecordLiteral) Pos() lexer.Position  { return rl.Token.Pos }
func (rl *RecordLiteral) String() string {
	var out bytes.Buffer
	if rl.Mut != MutDefault {
		out.WriteString(rl.Mut.String())
		out.WriteByte(' ')
	}
	out.WriteByte('{')
	parts := make([]string, len(rl.Fields))
	for i, f := range rl.Fields {
		parts[i] = f.Name + ": " + f.Value.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteByte('}')
	return out.String()
}

// PrefixExpr is a unary prefix operator expression: !x, -x.
type PrefixExpr struct {
	Token    lexer.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpr) expressionNode()      {}
func (pe *PrefixExpr) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpr) Pos() lexer.Position  { return pe.Token.Pos }
func (pe *PrefixExpr) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

// InfixExpr is a binary operator expression: x + y, x == y, x && y.
type InfixExpr struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpr) expressionNode()      {}
func (ie *InfixExpr) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpr) Pos() lexer.Position  { return ie.Token.Pos }
func (ie *InfixExpr) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// IndexExpr is an `array[index]` expression.
type IndexExpr struct {
	Token lexer.Token // the `[` token
	Left  Expression
	Index Expression
}

func (ix *IndexExpr) expressionNode()      {}
func (ix *IndexExpr) TokenLiteral() string { return ix.Token.Literal }
func (ix *IndexExpr) Pos() lexer.Position  { return ix.Token.Pos }
func (ix *IndexExpr) String() string {
	return "(" + ix.Left.String() + "[" + ix.Index.String() + "])"
}

// MemberExpr is a `record.field` field access expression.
type MemberExpr struct {
	Token lexer.Token // the `.` token
	Left  Expression
	Name  string
}

func (me *MemberExpr) expressionNode()      {}
func (me *MemberExpr) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpr) Pos() lexer.Position  { return me.Token.Pos }
func (me *MemberExpr) String() string {
	return me.Left.String() + "." + me.Name
}

// CallExpr is a `func(args...)` call expression. Callee is usually an
// Identifier but is kept general for uniformity with member-call parsing.
type CallExpr struct {
	Token    lexer.Token // the `(` token
	Callee   Expression
	Args     []Expression
}

func (ce *CallExpr) expressionNode()      {}
func (ce *CallExpr) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpr) Pos() lexer.Position  { return ce.Token.Pos }
func (ce *CallExpr) String() string {
	args := make([]string, len(ce.Args))
	for i, a := range ce.Args {
		args[i] = a.String()
	}
	return ce.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// MethodCallExpr is a `receiver.method(args...)` call, distinguished from
// a plain member access followed by a call so the evaluator can dispatch
// built-in container methods (push, pop, len, fmt, ends_with) without
// treating them as field lookups.
type MethodCallExpr struct {
	Token    lexer.Token // the `.` token
	Receiver Expression
	Method   string
	Args     []Expression
}

func (mc *MethodCallExpr) expressionNode()      {}
func (mc *MethodCallExpr) TokenLiteral() string { return mc.Token.Literal }
func (mc *MethodCallExpr) Pos() lexer.Position  { return mc.Token.Pos }
func (mc *MethodCallExpr) String() string {
	args := make([]string, len(mc.Args))
	for i, a := range mc.Args {
		args[i] = a.String()
	}
	return mc.Receiver.String() + "." + mc.Method + "(" + strings.Join(args, ", ") + ")"
}
