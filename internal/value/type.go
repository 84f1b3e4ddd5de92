// Package value defines Nash's static type model and runtime value
// representation: the tagged Value interface (one concrete struct per
// type) and the Type descriptors the semantic analyzer attaches to
// every expression.
package value

import "strings"

// Kind identifies one of Nash's value kinds (spec.md §3's ten types).
type Kind int

const (
	KindUnit Kind = iota
	KindString
	KindInteger
	KindBoolean
	KindArray
	KindRecord
	KindExitCode
	KindCommandLiteral
	KindCommandResult
	KindFileEndpoint
)

var kindNames = map[Kind]string{
	KindUnit:           "unit",
	KindString:         "string",
	KindInteger:        "integer",
	KindBoolean:        "boolean",
	KindArray:          "array",
	KindRecord:         "record",
	KindExitCode:       "exit_code",
	KindCommandLiteral: "command_literal",
	KindCommandResult:  "command_result",
	KindFileEndpoint:   "file_endpoint",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// RecordField is one named, typed field of a record type.
type RecordField struct {
	Name string
	Type *Type
}

// Type is a resolved static type, as computed by internal/semantic's
// type inference pass. Array carries its element Type; Record carries
// its ordered field list (record types are structurally typed: two
// record literals with the same fields in the same order have the same
// Type, per spec.md §3).
type Type struct {
	Kind   Kind
	Elem   *Type         // set when Kind == KindArray
	Fields []RecordField // set when Kind == KindRecord
}

var (
	Unit           = &Type{Kind: KindUnit}
	String         = &Type{Kind: KindString}
	Integer        = &Type{Kind: KindInteger}
	Boolean        = &Type{Kind: KindBoolean}
	ExitCode       = &Type{Kind: KindExitCode}
	CommandLiteral = &Type{Kind: KindCommandLiteral}
	CommandResult  = &Type{Kind: KindCommandResult}
	FileEndpoint   = &Type{Kind: KindFileEndpoint}
)

// Array returns the array type with the given element type.
func Array(elem *Type) *Type {
	return &Type{Kind: KindArray, Elem: elem}
}

// Record returns the record type with the given fields, in declaration
// order (order is part of the type's identity for String/Equals).
func Record(fields []RecordField) *Type {
	return &Type{Kind: KindRecord, Fields: fields}
}

// Equals reports whether two types are structurally identical.
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindArray:
		return t.Elem.Equals(other.Elem)
	case KindRecord:
		if len(t.Fields) != len(other.Fields) {
			return false
		}
		for i, f := range t.Fields {
			if f.Name != other.Fields[i].Name || !f.Type.Equals(other.Fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders the type the way it would be written in source.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindArray:
		return "array<" + t.Elem.String() + ">"
	case KindRecord:
		var parts []string
		for _, f := range t.Fields {
			parts = append(parts, f.Name+": "+f.Type.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return t.Kind.String()
	}
}

// IsContainer reports whether values of this type carry their own
// mutability flag (spec.md §3/§4.4's value-mutability model).
func (t *Type) IsContainer() bool {
	return t.Kind == KindArray || t.Kind == KindRecord
}
