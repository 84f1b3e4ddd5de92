package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a runtime Nash value. Every concrete type below implements
// it; there is no interface{}-typed escape hatch, matching the tagged
// value model.
type Value interface {
	Type() *Type
	// Fmt renders the value the way Nash's built-in fmt() method would:
	// bare text for strings, canonical literal syntax for everything
	// else (spec.md §3).
	Fmt() string
}

// UnitValue is the single value of the unit type, returned by
// statements/functions that produce no useful result.
type UnitValue struct{}

func (UnitValue) Type() *Type  { return Unit }
func (UnitValue) Fmt() string  { return "()" }

// StringValue is a Nash string.
type StringValue struct {
	Val string
}

func (s *StringValue) Type() *Type { return String }
func (s *StringValue) Fmt() string { return s.Val }

// IntegerValue is a Nash 64-bit signed integer.
type IntegerValue struct {
	Val int64
}

func (i *IntegerValue) Type() *Type { return Integer }
func (i *IntegerValue) Fmt() string { return strconv.FormatInt(i.Val, 10) }

// BooleanValue is a Nash boolean.
type BooleanValue struct {
	Val bool
}

func (b *BooleanValue) Type() *Type { return Boolean }
func (b *BooleanValue) Fmt() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// ExitCodeValue is a captured process exit code.
type ExitCodeValue struct {
	Val int
}

func (e *ExitCodeValue) Type() *Type { return ExitCode }
func (e *ExitCodeValue) Fmt() string { return strconv.Itoa(e.Val) }

// ArrayValue is a Nash array. Mutable reflects the value-mutability
// computed at construction time by the cascade rule (spec.md §3/§4.4);
// it is a property of this specific array value, not of its type.
type ArrayValue struct {
	ElemType *Type
	Elements []Value
	Mutable  bool
}

func (a *ArrayValue) Type() *Type { return Array(a.ElemType) }
func (a *ArrayValue) Fmt() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.Fmt()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RecordFieldValue is one named field of a RecordValue, kept in
// declaration order so Fmt() is deterministic.
type RecordFieldValue struct {
	Name string
	Val  Value
}

// RecordValue is a Nash record.
type RecordValue struct {
	Fields  []RecordFieldValue
	Mutable bool
}

func (r *RecordValue) Type() *Type {
	fields := make([]RecordField, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = RecordField{Name: f.Name, Type: f.Val.Type()}
	}
	return Record(fields)
}

func (r *RecordValue) Fmt() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.Name + ": " + f.Val.Fmt()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Get returns the named field's value and whether it was found.
func (r *RecordValue) Get(name string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Val, true
		}
	}
	return nil, false
}

// Set overwrites the named field's value in place. The caller is
// responsible for having checked Mutable first.
func (r *RecordValue) Set(name string, v Value) bool {
	for i, f := range r.Fields {
		if f.Name == name {
			r.Fields[i].Val = v
			return true
		}
	}
	return false
}

// CommandLiteralValue is a backtick command literal evaluated outside
// a pipeline: its interpolated parts have been rendered and word-split,
// but no process has been spawned (spec.md §3).
type CommandLiteralValue struct {
	Argv []string
}

func (c *CommandLiteralValue) Type() *Type { return CommandLiteral }
func (c *CommandLiteralValue) Fmt() string { return strings.Join(c.Argv, " ") }

// CommandResultValue is what a pipeline expression evaluates to: the
// final stage's captured stdout (when captured) alongside the resolved
// overall exit code. Per-stage stderr/exit_code captures named with
// `as` are bound directly into the enclosing scope by the evaluator
// rather than surfaced here (spec.md §4.5).
type CommandResultValue struct {
	Stdout      string
	StdoutKnown bool
	ExitCode    int
}

func (c *CommandResultValue) Type() *Type { return CommandResult }
func (c *CommandResultValue) Fmt() string {
	if c.StdoutKnown {
		return c.Stdout
	}
	return fmt.Sprintf("<command_result exit=%d>", c.ExitCode)
}

// EndpointMode identifies how a FileEndpointValue's file should be
// opened when it is materialized as a pipeline source/sink.
type EndpointMode int

const (
	EndpointRead EndpointMode = iota
	EndpointWrite
	EndpointAppend
)

// FileEndpointValue is the value produced by `open(path)`/`write(path)`/
// `append(path)` when used as a pipeline stage; it names a file and the
// access mode without having opened anything yet.
type FileEndpointValue struct {
	Path string
	Mode EndpointMode
}

func (f *FileEndpointValue) Type() *Type { return FileEndpoint }
func (f *FileEndpointValue) Fmt() string { return f.Path }

// Copy produces the value to store when binding or passing v: scalars
// and immutable containers are returned as-is, mutable arrays are
// duplicated, and mutable records are duplicated (spec.md §4.3's
// pass/assignment semantics — see internal/eval for the copy-on-pass
// rules governing when this is invoked).
func Copy(v Value) Value {
	switch t := v.(type) {
	case *ArrayValue:
		if !t.Mutable {
			return t
		}
		elems := make([]Value, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = Copy(e)
		}
		return &ArrayValue{ElemType: t.ElemType, Elements: elems, Mutable: t.Mutable}
	case *RecordValue:
		if !t.Mutable {
			return t
		}
		fields := make([]RecordFieldValue, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = RecordFieldValue{Name: f.Name, Val: Copy(f.Val)}
		}
		return &RecordValue{Fields: fields, Mutable: t.Mutable}
	default:
		return v
	}
}
