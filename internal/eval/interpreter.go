package eval

import (
	"fmt"
	"io"

	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/nasherr"
	"github.com/robert-mccausland/nash/internal/pipeline"
	"github.com/robert-mccausland/nash/internal/value"
)

// Interpreter is the tree-walking evaluator for one program run. It
// corresponds to the teacher's interp.Interpreter, but holds no
// object/class machinery — Nash's value model has none — and adds the
// pipeline.Runner dependency spec.md §4.5 requires for `exec`.
type Interpreter struct {
	global *Environment
	funcs  map[string]*ast.FuncDecl

	Stdout  io.Writer
	Stderr  io.Writer
	WorkDir string
	Args    []string
	Getenv  func(string) string

	runner *pipeline.Runner
}

// New builds an Interpreter ready to run prog. prog must already have
// been through internal/semantic's Analyze (slots and mutability
// resolved); New does not validate that. stdin is bound into the
// predeclared `stdin` global (SPEC_FULL.md's --stdin decision) — pass
// "" when the CLI's --stdin flag was not given.
func New(prog *ast.Program, stdout, stderr io.Writer, workDir string, args []string, getenv func(string) string, stdin string) *Interpreter {
	i := &Interpreter{
		global:  NewFrame(prog.NumSlots, nil),
		funcs:   make(map[string]*ast.FuncDecl),
		Stdout:  stdout,
		Stderr:  stderr,
		WorkDir: workDir,
		Args:    args,
		Getenv:  getenv,
	}
	i.runner = &pipeline.Runner{WorkDir: workDir, Stderr: stderr}
	i.global.Define(prog.StdinSlot, &value.StringValue{Val: stdin})
	for _, stmt := range prog.Statements {
		if fd, ok := stmt.(*ast.FuncDecl); ok {
			i.funcs[fd.Name.Value] = fd
		}
	}
	return i
}

// Run executes every top-level statement in order and returns the
// process exit code: 0 unless an `exit N` statement ran, in which case
// N (spec.md §4.4/§4.6).
func (i *Interpreter) Run(prog *ast.Program) (int, error) {
	for _, stmt := range prog.Statements {
		if err := i.execStatement(i.global, stmt); err != nil {
			if ex, ok := asExit(err); ok {
				return ex.code, nil
			}
			if _, ok := asReturn(err); ok {
				return 1, fmt.Errorf("return outside of function")
			}
			return 1, err
		}
	}
	return 0, nil
}

func (i *Interpreter) runtimeErr(pos ast.Node, format string, args ...interface{}) error {
	return nasherr.New(nasherr.KindRuntime, pos.Pos(), fmt.Sprintf(format, args...))
}

// mutabilityErr reports a container-mutation attempt on a value whose
// runtime Mutable flag is false. Assignability of a binding itself is
// already ruled out statically by internal/semantic; this is the
// runtime half of the same check, for array/record interior mutation
// spec.md §3/§4.4 leaves to the evaluator.
func (i *Interpreter) mutabilityErr(pos ast.Node, format string, args ...interface{}) error {
	return nasherr.New(nasherr.KindMutability, pos.Pos(), fmt.Sprintf(format, args...))
}
