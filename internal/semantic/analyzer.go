// Package semantic resolves names to frame slots, infers and checks
// types, computes container-literal mutability, and validates pipeline
// shape and capture bindings — the single pass between parsing and
// evaluation (spec.md §4.3/§4.4).
package semantic

import (
	"fmt"

	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/nasherr"
	"github.com/robert-mccausland/nash/internal/value"
)

// Analyzer walks a parsed program once, resolving every identifier to a
// slot, type-checking every expression, and rewriting mutability
// markers into resolved booleans in place on the AST.
type Analyzer struct {
	errors  []*nasherr.Error
	scope   *SymbolTable
	funcs   map[string]*ast.FuncDecl
	// currentReturn is the expected return type of the function body
	// currently being walked, nil outside any function.
	currentReturn *value.Type
	// containerMutCtx is the effective mutability of the container
	// literal currently being analyzed, inherited by any nested
	// array/record literal that carries no `mut`/`!mut` marker of its
	// own (spec.md §3's cascade rule). false outside any literal, which
	// is also top level's default.
	containerMutCtx bool
	// stdinSym is the predeclared `stdin` global binding (SPEC_FULL.md's
	// --stdin decision); its slot is copied onto ast.Program in Analyze.
	stdinSym *Symbol
}

// New creates an Analyzer with Nash's predeclared built-in bindings
// registered in the global scope.
func New() *Analyzer {
	a := &Analyzer{
		scope: NewSymbolTable(),
		funcs: make(map[string]*ast.FuncDecl),
	}
	registerBuiltins(a.scope)
	a.stdinSym = a.scope.Define("stdin", value.String, false)
	return a
}

// Analyze runs semantic analysis on prog, mutating it in place with
// resolved slots and mutability, and returns every error found.
func (a *Analyzer) Analyze(prog *ast.Program) []*nasherr.Error {
	// Pre-declare every top-level function so forward calls (a function
	// calling one declared later in the file) resolve.
	for _, stmt := range prog.Statements {
		if fd, ok := stmt.(*ast.FuncDecl); ok {
			a.declareFunc(fd)
		}
	}

	for _, stmt := range prog.Statements {
		a.analyzeStatement(stmt)
	}
	prog.NumSlots = a.scope.NumSlots()
	prog.StdinSlot = a.stdinSym.Slot
	return a.errors
}

func (a *Analyzer) addError(kind nasherr.Kind, pos ast.Node, format string, args ...interface{}) {
	a.errors = append(a.errors, nasherr.New(kind, pos.Pos(), fmt.Sprintf(format, args...)))
}

func (a *Analyzer) declareFunc(fd *ast.FuncDecl) {
	if _, exists := a.funcs[fd.Name.Value]; exists {
		a.addError(nasherr.KindName, fd, "function %q is already declared", fd.Name.Value)
		return
	}
	params := make([]*value.Type, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = a.resolveTypeAnnotation(p.Type)
	}
	var ret *value.Type
	if fd.RetType != nil {
		ret = a.resolveTypeAnnotation(fd.RetType)
	} else {
		ret = value.Unit
	}
	sym := a.scope.DefineFunc(fd.Name.Value, ret, params)
	fd.Slot = sym.Slot
	a.funcs[fd.Name.Value] = fd
}

func (a *Analyzer) resolveTypeAnnotation(t *ast.TypeAnnotation) *value.Type {
	if t == nil {
		return value.Unit
	}
	if t.Elem != nil {
		return value.Array(a.resolveTypeAnnotation(t.Elem))
	}
	if t.Fields != nil {
		fields := make([]value.RecordField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = value.RecordField{Name: f.Name, Type: a.resolveTypeAnnotation(f.Type)}
		}
		return value.Record(fields)
	}
	switch t.Name {
	case "string":
		return value.String
	case "integer":
		return value.Integer
	case "boolean":
		return value.Boolean
	case "unit":
		return value.Unit
	case "exit_code":
		return value.ExitCode
	case "command_literal":
		return value.CommandLiteral
	case "command_result":
		return value.CommandResult
	case "file_endpoint":
		return value.FileEndpoint
	default:
		a.addError(nasherr.KindType, t, "unknown type %q", t.Name)
		return value.Unit
	}
}

// pushScope enters a new nested scope and returns a function that pops
// back to the parent and records the child's frame size.
func (a *Analyzer) pushScope() (*SymbolTable, func() int) {
	parent := a.scope
	child := NewEnclosedSymbolTable(parent)
	a.scope = child
	return child, func() int {
		size := child.NumSlots()
		a.scope = parent
		return size
	}
}

func (a *Analyzer) analyzeBlock(block *ast.BlockStatement) {
	_, pop := a.pushScope()
	for _, stmt := range block.Statements {
		a.analyzeStatement(stmt)
	}
	block.NumSlots = pop()
}

// analyzeBlockInCurrentScope analyzes a function body's block without
// opening a further nested scope, since parameters are defined directly
// in the block's own frame (spec.md §4.4: a function call pushes one
// frame holding both parameters and locals).
func (a *Analyzer) analyzeBlockInCurrentScope(block *ast.BlockStatement) {
	for _, stmt := range block.Statements {
		a.analyzeStatement(stmt)
	}
	block.NumSlots = a.scope.NumSlots()
}
