package semantic

import (
	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/nasherr"
	"github.com/robert-mccausland/nash/internal/value"
)

// defaultCaptureName is the binding name a |cap ...| annotation uses
// when it carries no `as name` clause (spec.md §4.5).
func defaultCaptureName(kind ast.CaptureKind) string {
	if kind == ast.CaptureExitCode {
		return "exit_code"
	}
	return "error_message"
}

// analyzePipeline validates stage-position constraints, type-checks
// every stage's expression, and binds each capture annotation's target
// name into the current scope (spec.md §4.5). A pipeline always
// evaluates to a command_result value; individual captures are bound as
// a side effect rather than returned as part of that value.
func (a *Analyzer) analyzePipeline(pe *ast.PipelineExpr) *value.Type {
	if len(pe.Stages) == 0 {
		a.addError(nasherr.KindPipelineShape, pe, "pipeline has no stages")
		return value.CommandResult
	}

	for i, stage := range pe.Stages {
		switch s := stage.(type) {
		case *ast.CommandStage:
			for _, part := range s.Command.Parts {
				if part.Expr != nil {
					a.analyzeExpr(part.Expr, nil)
				}
			}
		case *ast.FileOpenStage:
			if i != 0 {
				a.addError(nasherr.KindPipelineShape, s, "open(...) is only valid as the first stage of a pipeline")
			}
			a.checkStringExpr(s.Path, "open(...)'s path")
		case *ast.StringSourceStage:
			if i != 0 {
				a.addError(nasherr.KindPipelineShape, s, "a plain string source is only valid as the first stage of a pipeline")
			}
			a.checkStringExpr(s.Value, "a pipeline source")
		case *ast.FileWriteStage:
			if i != len(pe.Stages)-1 {
				a.addError(nasherr.KindPipelineShape, s, "write(...) is only valid as the last stage of a pipeline")
			}
			a.checkStringExpr(s.Path, "write(...)'s path")
		case *ast.FileAppendStage:
			if i != len(pe.Stages)-1 {
				a.addError(nasherr.KindPipelineShape, s, "append(...) is only valid as the last stage of a pipeline")
			}
			a.checkStringExpr(s.Path, "append(...)'s path")
		default:
			a.addError(nasherr.KindRuntime, stage, "unhandled pipeline stage type %T", stage)
		}

		if _, ok := stage.(*ast.CommandStage); !ok && len(stage.StageCaptures()) > 0 {
			a.addError(nasherr.KindPipelineShape, stage, "cap is only valid on a command stage, not %T", stage)
		}

		a.registerCaptures(stage.StageCaptures())
	}

	return value.CommandResult
}

func (a *Analyzer) checkStringExpr(expr ast.Expression, what string) {
	t := a.analyzeExpr(expr, value.String)
	if t != nil && t.Kind != value.KindString {
		a.addError(nasherr.KindType, expr, "%s must be a string, got %s", what, t)
	}
}

// registerCaptures binds each `cap ...` annotation's target identifier
// into the current scope as an immutable binding of the appropriate
// type, defaulting its name when no `as` clause was written.
func (a *Analyzer) registerCaptures(captures []ast.CaptureSpec) {
	for idx := range captures {
		c := &captures[idx]
		name := defaultCaptureName(c.Kind)
		if c.As != nil {
			name = c.As.Value
		}

		var t *value.Type
		if c.Kind == ast.CaptureExitCode {
			t = value.ExitCode
		} else {
			t = value.String
		}

		sym := a.scope.Define(name, t, false)
		c.Slot = sym.Slot
		if c.As != nil {
			c.As.Slot = sym.Slot
			c.As.Depth = 0
		}
	}
}
