package ast

import (
	"bytes"

	"github.com/robert-mccausland/nash/internal/lexer"
)

// RecordFieldType is one field of a record type annotation.
type RecordFieldType struct {
	Name string
	Type *TypeAnnotation
}

// TypeAnnotation is a syntactic type as written by the programmer: a bare
// name ("string", "integer", "boolean", "unit", "exit_code",
// "command_literal", "command_result", "file_endpoint"), or a compound
// "array<T>"/"{field: T, ...}" shape. The semantic analyzer resolves
// these into the internal/value type model and reports any other bare
// name as an unknown type.
type TypeAnnotation struct {
	Token  lexer.Token
	Name   string             // "" when this is an array or record shape
	Elem   *TypeAnnotation    // set for an array<T> shape (Name is then "")
	Fields []RecordFieldType  // set when this is an inline record shape
}

func (t *TypeAnnotation) TokenLiteral() string { return t.Token.Literal }
func (t *TypeAnnotation) Pos() lexer.Position  { return t.Token.Pos }

func (t *TypeAnnotation) String() string {
	if t.Elem != nil {
		return "array<" + t.Elem.String() + ">"
	}
	if t.Fields != nil {
		var out bytes.Buffer
		out.WriteString("{")
		for i, f := range t.Fields {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(f.Name)
			out.WriteString(": ")
			out.WriteString(f.Type.String())
		}
		out.WriteString("}")
		return out.String()
	}
	return t.Name
}

// Mutability marks how a container literal's "mutable" flag was written
// in source: absent (inherits from the enclosing literal, or defaults to
// immutable at top level), forced with `mut`, or forced immutable with
// `!mut` (spec.md §3's cascade rule).
type Mutability int

const (
	MutDefault Mutability = iota
	MutForced
	MutForbidden
)

func (m Mutability) String() string {
	switch m {
	case MutForced:
		return "mut"
	case MutForbidden:
		return "!mut"
	default:
		return ""
	}
}
