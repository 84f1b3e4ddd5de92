package semantic

import (
	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/nasherr"
	"github.com/robert-mccausland/nash/internal/value"
)

// effectiveMutability resolves one literal's own marker against the
// mutability inherited from its enclosing literal (spec.md §3): `mut`
// always wins, `!mut` always wins, and an absent marker just inherits.
func effectiveMutability(mark ast.Mutability, parentMutable bool) bool {
	switch mark {
	case ast.MutForced:
		return true
	case ast.MutForbidden:
		return false
	default:
		return parentMutable
	}
}

func (a *Analyzer) analyzeArrayLiteral(al *ast.ArrayLiteral, expected *value.Type) *value.Type {
	mutable := effectiveMutability(al.Mut, a.containerMutCtx)
	al.Mutable = mutable

	prevCtx := a.containerMutCtx
	a.containerMutCtx = mutable
	defer func() { a.containerMutCtx = prevCtx }()

	var elemType *value.Type
	if expected != nil && expected.Kind == value.KindArray {
		elemType = expected.Elem
	}

	for i, elem := range al.Elements {
		got := a.analyzeExpr(elem, elemType)
		if got == nil {
			continue
		}
		if elemType == nil {
			elemType = got
		} else if !elemType.Equals(got) {
			a.addError(nasherr.KindType, elem, "array element %d: expected %s, got %s", i, elemType, got)
		}
	}

	if elemType == nil {
		if expected != nil && expected.Kind == value.KindArray {
			elemType = expected.Elem
		} else {
			a.addError(nasherr.KindType, al, "cannot infer element type of empty array literal without an expected type")
			elemType = value.Unit
		}
	}
	al.ElemType = elemType
	return value.Array(elemType)
}

func (a *Analyzer) analyzeRecordLiteral(rl *ast.RecordLiteral, expected *value.Type) *value.Type {
	mutable := effectiveMutability(rl.Mut, a.containerMutCtx)
	rl.Mutable = mutable

	prevCtx := a.containerMutCtx
	a.containerMutCtx = mutable
	defer func() { a.containerMutCtx = prevCtx }()

	var expectedFields map[string]*value.Type
	if expected != nil && expected.Kind == value.KindRecord {
		expectedFields = make(map[string]*value.Type, len(expected.Fields))
		for _, f := range expected.Fields {
			expectedFields[f.Name] = f.Type
		}
	}

	fields := make([]value.RecordField, len(rl.Fields))
	seen := make(map[string]bool, len(rl.Fields))
	for i, f := range rl.Fields {
		if seen[f.Name] {
			a.addError(nasherr.KindType, rl, "duplicate field %q in record literal", f.Name)
		}
		seen[f.Name] = true

		var fieldExpected *value.Type
		if expectedFields != nil {
			fieldExpected = expectedFields[f.Name]
		}
		got := a.analyzeExpr(f.Value, fieldExpected)
		fields[i] = value.RecordField{Name: f.Name, Type: got}
	}
	return value.Record(fields)
}
