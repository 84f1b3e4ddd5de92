package value

import "testing"

func TestFmtScalars(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{&StringValue{Val: "hi"}, "hi"},
		{&IntegerValue{Val: 42}, "42"},
		{&BooleanValue{Val: true}, "true"},
		{&BooleanValue{Val: false}, "false"},
		{&ExitCodeValue{Val: 1}, "1"},
		{UnitValue{}, "()"},
	}
	for _, tt := range tests {
		if got := tt.v.Fmt(); got != tt.want {
			t.Errorf("Fmt() = %q, want %q", got, tt.want)
		}
	}
}

func TestArrayFmtAndType(t *testing.T) {
	arr := &ArrayValue{
		ElemType: Integer,
		Elements: []Value{&IntegerValue{Val: 1}, &IntegerValue{Val: 2}},
	}
	if arr.Fmt() != "[1, 2]" {
		t.Errorf("Fmt() = %q, want [1, 2]", arr.Fmt())
	}
	if !arr.Type().Equals(Array(Integer)) {
		t.Errorf("Type() = %v, want array<integer>", arr.Type())
	}
}

func TestRecordGetSet(t *testing.T) {
	rec := &RecordValue{
		Fields: []RecordFieldValue{
			{Name: "x", Val: &IntegerValue{Val: 1}},
			{Name: "y", Val: &IntegerValue{Val: 2}},
		},
		Mutable: true,
	}
	v, ok := rec.Get("y")
	if !ok || v.(*IntegerValue).Val != 2 {
		t.Fatalf("Get(y) = %v, %v", v, ok)
	}
	if !rec.Set("x", &IntegerValue{Val: 99}) {
		t.Fatalf("Set(x) failed")
	}
	v, _ = rec.Get("x")
	if v.(*IntegerValue).Val != 99 {
		t.Fatalf("Set(x) did not take effect, got %v", v)
	}
	if rec.Fmt() != "{x: 99, y: 2}" {
		t.Errorf("Fmt() = %q", rec.Fmt())
	}
}

func TestCopyLeavesImmutableSharedButClonesMutable(t *testing.T) {
	immut := &ArrayValue{ElemType: Integer, Elements: []Value{&IntegerValue{Val: 1}}, Mutable: false}
	if Copy(immut) != Value(immut) {
		t.Errorf("expected immutable array to be returned unchanged (same pointer)")
	}

	mut := &ArrayValue{ElemType: Integer, Elements: []Value{&IntegerValue{Val: 1}}, Mutable: true}
	clone := Copy(mut).(*ArrayValue)
	if clone == mut {
		t.Errorf("expected mutable array to be cloned, got same pointer")
	}
	clone.Elements[0] = &IntegerValue{Val: 99}
	if mut.Elements[0].(*IntegerValue).Val != 1 {
		t.Errorf("mutating clone affected original")
	}
}

func TestTypeEquals(t *testing.T) {
	a := Record([]RecordField{{Name: "x", Type: Integer}})
	b := Record([]RecordField{{Name: "x", Type: Integer}})
	c := Record([]RecordField{{Name: "y", Type: Integer}})
	if !a.Equals(b) {
		t.Errorf("expected structurally equal record types to be Equal")
	}
	if a.Equals(c) {
		t.Errorf("expected differently-named fields to be unequal")
	}
}
