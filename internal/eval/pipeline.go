package eval

import (
	"strings"

	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/nasherr"
	"github.com/robert-mccausland/nash/internal/pipeline"
	"github.com/robert-mccausland/nash/internal/value"
)

func defaultCaptureName(kind ast.CaptureKind) string {
	if kind == ast.CaptureExitCode {
		return "exit_code"
	}
	return "error_message"
}

func captureBindingName(c ast.CaptureSpec) string {
	if c.As != nil {
		return c.As.Value
	}
	return defaultCaptureName(c.Kind)
}

func convertCaptures(specs []ast.CaptureSpec) []pipeline.Capture {
	out := make([]pipeline.Capture, len(specs))
	for idx, c := range specs {
		kind := pipeline.CaptureStderr
		if c.Kind == ast.CaptureExitCode {
			kind = pipeline.CaptureExitCode
		}
		out[idx] = pipeline.Capture{Kind: kind, Name: captureBindingName(c)}
	}
	return out
}

// evalPipeline resolves an exec expression's stages to pipeline.Stage
// values, runs them, and binds every declared capture into env.
//
// internal/pipeline only ever populates captures belonging to a
// CommandStage, and internal/semantic rejects captures on any other
// stage kind; every declared capture is still pre-bound to its zero
// value before the pipeline runs, then overwritten with whatever the
// engine actually resolved. The returned command_result's stdout has
// one trailing newline removed.
func (i *Interpreter) evalPipeline(env *Environment, pe *ast.PipelineExpr) (value.Value, error) {
	for _, stage := range pe.Stages {
		for _, c := range stage.StageCaptures() {
			zero := zeroCaptureValue(c.Kind)
			env.Define(c.Slot, zero)
		}
	}

	stages := make([]pipeline.Stage, len(pe.Stages))
	for idx, stage := range pe.Stages {
		s, err := i.resolveStage(env, stage)
		if err != nil {
			return nil, err
		}
		stages[idx] = s
	}

	result, err := i.runner.Run(stages)
	if err != nil {
		return nil, i.translatePipelineErr(pe, err)
	}

	for _, stage := range pe.Stages {
		for _, c := range stage.StageCaptures() {
			name := captureBindingName(c)
			cr, ok := result.Captures[name]
			if !ok {
				continue
			}
			env.Define(c.Slot, captureResultValue(cr))
		}
	}

	return &value.CommandResultValue{
		Stdout:      strings.TrimSuffix(result.Stdout, "\n"),
		StdoutKnown: result.StdoutKnown,
		ExitCode:    result.ExitCode,
	}, nil
}

func zeroCaptureValue(kind ast.CaptureKind) value.Value {
	if kind == ast.CaptureExitCode {
		return &value.ExitCodeValue{Val: 0}
	}
	return &value.StringValue{Val: ""}
}

func captureResultValue(cr pipeline.CaptureResult) value.Value {
	if cr.Kind == pipeline.CaptureExitCode {
		return &value.ExitCodeValue{Val: cr.Code}
	}
	return &value.StringValue{Val: cr.Text}
}

func (i *Interpreter) resolveStage(env *Environment, stage ast.Stage) (pipeline.Stage, error) {
	switch s := stage.(type) {
	case *ast.CommandStage:
		argv, err := i.renderCommand(env, s.Command)
		if err != nil {
			return nil, err
		}
		return pipeline.CommandStage{Argv: argv, Captures: convertCaptures(s.Captures)}, nil
	case *ast.FileOpenStage:
		path, err := i.evalStringExpr(env, s.Path)
		if err != nil {
			return nil, err
		}
		return pipeline.FileOpenStage{Path: path, Captures: convertCaptures(s.Captures)}, nil
	case *ast.FileWriteStage:
		path, err := i.evalStringExpr(env, s.Path)
		if err != nil {
			return nil, err
		}
		return pipeline.FileWriteStage{Path: path, Captures: convertCaptures(s.Captures)}, nil
	case *ast.FileAppendStage:
		path, err := i.evalStringExpr(env, s.Path)
		if err != nil {
			return nil, err
		}
		return pipeline.FileAppendStage{Path: path, Captures: convertCaptures(s.Captures)}, nil
	case *ast.StringSourceStage:
		data, err := i.evalStringExpr(env, s.Value)
		if err != nil {
			return nil, err
		}
		return pipeline.StringSourceStage{Data: data, Captures: convertCaptures(s.Captures)}, nil
	default:
		return nil, i.runtimeErr(stage, "unhandled pipeline stage type %T", stage)
	}
}

func (i *Interpreter) evalStringExpr(env *Environment, expr ast.Expression) (string, error) {
	v, err := i.evalExpr(env, expr)
	if err != nil {
		return "", err
	}
	return v.(*value.StringValue).Val, nil
}

func (i *Interpreter) translatePipelineErr(pe *ast.PipelineExpr, err error) error {
	switch e := err.(type) {
	case *pipeline.IOError:
		return nasherr.New(nasherr.KindIO, pe.Pos(), e.Error())
	case *pipeline.SpawnError:
		return nasherr.New(nasherr.KindCommandSpawn, pe.Pos(), e.Error())
	case *pipeline.NonZeroExitError:
		return nasherr.NonZeroExit(pe.Pos(), strings.Join(e.Argv, " "), e.Code)
	default:
		return i.runtimeErr(pe, "pipeline error: %v", err)
	}
}
