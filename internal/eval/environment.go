// Package eval is the tree-walking evaluator: it executes an
// already-analyzed *ast.Program, using the slot/depth pairs the
// semantic analyzer wrote onto every Identifier to index directly into
// a stack of slot-vector frames rather than performing name lookup
// (spec.md §4.3/§4.4).
package eval

import "github.com/robert-mccausland/nash/internal/value"

// Environment is one runtime frame: a fixed-size vector of slots,
// linked to the frame it was pushed from. It is the runtime counterpart
// of internal/semantic's SymbolTable, grounded on the teacher's
// runtime.Environment but indexed by slot rather than by name, since
// name resolution already happened during analysis.
type Environment struct {
	slots []value.Value
	outer *Environment
}

// NewFrame allocates a frame with numSlots slots, enclosed by outer
// (nil for the top-level program frame).
func NewFrame(numSlots int, outer *Environment) *Environment {
	return &Environment{slots: make([]value.Value, numSlots), outer: outer}
}

// Get reads the slot depth frames up from this one.
func (e *Environment) Get(depth, slot int) value.Value {
	env := e
	for i := 0; i < depth; i++ {
		env = env.outer
	}
	return env.slots[slot]
}

// Set writes the slot depth frames up from this one.
func (e *Environment) Set(depth, slot int, v value.Value) {
	env := e
	for i := 0; i < depth; i++ {
		env = env.outer
	}
	env.slots[slot] = v
}

// Define stores v directly into this frame's own slot, used when
// executing a VarDecl/for-loop-variable/function-parameter binding in
// the frame currently being built.
func (e *Environment) Define(slot int, v value.Value) {
	e.slots[slot] = v
}

// Outer returns the enclosing frame, or nil at the top level.
func (e *Environment) Outer() *Environment {
	return e.outer
}
