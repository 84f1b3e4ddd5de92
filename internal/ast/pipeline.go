package ast

import (
	"bytes"
	"strings"

	"github.com/robert-mccausland/nash/internal/lexer"
)

// CommandLiteral is a backtick `...` command-literal expression: an
// interpolated sequence of literal text and ${expr} chunks that, once
// evaluated and word-split, becomes the argv of a child process. It is a
// distinct node (and value type) from StringLiteral because a bare
// command literal used outside a pipeline evaluates to a command_literal
// value rather than a string (spec.md §3).
type CommandLiteral struct {
	Token lexer.Token
	Parts []StringPart
}

func (cl *CommandLiteral) expressionNode()      {}
func (cl *CommandLiteral) TokenLiteral() string { return cl.Token.Literal }
func (cl *CommandLiteral) Pos() lexer.Position  { return cl.Token.Pos }
func (cl *CommandLiteral) String() string {
	var out bytes.Buffer
	out.WriteByte('`')
	for _, p := range cl.Parts {
		if p.Expr != nil {
			out.WriteString("${")
			out.WriteString(p.Expr.String())
			out.WriteByte('}')
		} else {
			out.WriteString(p.Text)
		}
	}
	out.WriteByte('`')
	return out.String()
}

// CaptureKind names what a |cap ...| annotation captures from a stage.
type CaptureKind string

const (
	CaptureStderr   CaptureKind = "stderr"
	CaptureExitCode CaptureKind = "exit_code"
)

// CaptureSpec is one `cap stderr [as name]` or `cap exit_code [as name]`
// annotation attached to a pipeline stage (spec.md §4.5). As is nil when
// the capture uses its default binding name.
type CaptureSpec struct {
	Token lexer.Token // the `cap` token
	Kind  CaptureKind
	As    *Identifier
	// Slot is the frame slot this capture's binding resolves to, filled
	// in by the semantic analyzer whether or not an `as` clause was
	// written (spec.md §4.5's default binding names still occupy a slot).
	Slot int
}

func (c *CaptureSpec) Pos() lexer.Position { return c.Token.Pos }
func (c *CaptureSpec) String() string {
	s := "cap " + string(c.Kind)
	if c.As != nil {
		s += " as " + c.As.String()
	}
	return s
}

// Stage is one element of a pipeline, separated by `=>`. Exactly one of
// the concrete Stage types below implements it; the semantic analyzer
// enforces each variant's position constraints (FileOpen only first,
// FileWrite/FileAppend only last, etc.; spec.md §4.5).
type Stage interface {
	Node
	stageNode()
	StageCaptures() []CaptureSpec
}

// CommandStage runs a child process from a command literal. It may
// appear in any position of a pipeline.
type CommandStage struct {
	Token    lexer.Token
	Command  *CommandLiteral
	Captures []CaptureSpec
}

func (s *CommandStage) stageNode()                  {}
func (s *CommandStage) TokenLiteral() string        { return s.Token.Literal }
func (s *CommandStage) Pos() lexer.Position         { return s.Token.Pos }
func (s *CommandStage) StageCaptures() []CaptureSpec { return s.Captures }
func (s *CommandStage) String() string               { return s.Command.String() }

// FileOpenStage reads a file as the pipeline's source. Only valid as the
// first stage.
type FileOpenStage struct {
	Token    lexer.Token // the `open` token
	Path     Expression
	Captures []CaptureSpec
}

func (s *FileOpenStage) stageNode()                  {}
func (s *FileOpenStage) TokenLiteral() string        { return s.Token.Literal }
func (s *FileOpenStage) Pos() lexer.Position         { return s.Token.Pos }
func (s *FileOpenStage) StageCaptures() []CaptureSpec { return s.Captures }
func (s *FileOpenStage) String() string               { return "open(" + s.Path.String() + ")" }

// FileWriteStage truncates and writes the pipeline's output to a file.
// Only valid as the last stage.
type FileWriteStage struct {
	Token    lexer.Token // the `write` token
	Path     Expression
	Captures []CaptureSpec
}

func (s *FileWriteStage) stageNode()                  {}
func (s *FileWriteStage) TokenLiteral() string        { return s.Token.Literal }
func (s *FileWriteStage) Pos() lexer.Position         { return s.Token.Pos }
func (s *FileWriteStage) StageCaptures() []CaptureSpec { return s.Captures }
func (s *FileWriteStage) String() string               { return "write(" + s.Path.String() + ")" }

// FileAppendStage appends the pipeline's output to a file. Only valid as
// the last stage.
type FileAppendStage struct {
	Token    lexer.Token // the `append` token
	Path     Expression
	Captures []CaptureSpec
}

func (s *FileAppendStage) stageNode()                  {}
func (s *FileAppendStage) TokenLiteral() string        { return s.Token.Literal }
func (s *FileAppendStage) Pos() lexer.Position         { return s.Token.Pos }
func (s *FileAppendStage) StageCaptures() []CaptureSpec { return s.Captures }
func (s *FileAppendStage) String() string               { return "append(" + s.Path.String() + ")" }

// StringSourceStage feeds a string expression's value as the pipeline's
// stdin. Only valid as the first stage.
type StringSourceStage struct {
	Token    lexer.Token
	Value    Expression
	Captures []CaptureSpec
}

func (s *StringSourceStage) stageNode()                  {}
func (s *StringSourceStage) TokenLiteral() string        { return s.Token.Literal }
func (s *StringSourceStage) Pos() lexer.Position         { return s.Token.Pos }
func (s *StringSourceStage) StageCaptures() []CaptureSpec { return s.Captures }
func (s *StringSourceStage) String() string               { return s.Value.String() }

// PipelineExpr is an `exec stage => stage => ...` expression. Evaluating
// it runs every stage concurrently (spec.md §4.5's "start all stages
// before any transfer" rule) and always produces a command_result value;
// `|cap ...|` captures are bound as separate names in the enclosing
// scope, not returned.
type PipelineExpr struct {
	Token  lexer.Token // the `exec` token
	Stages []Stage
}

func (pe *PipelineExpr) expressionNode()      {}
func (pe *PipelineExpr) TokenLiteral() string { return pe.Token.Literal }
func (pe *PipelineExpr) Pos() lexer.Position  { return pe.Token.Pos }
func (pe *PipelineExpr) String() string {
	parts := make([]string, len(pe.Stages))
	for i, s := range pe.Stages {
		str := s.String()
		for _, c := range s.StageCaptures() {
			str += " |" + c.String() + "|"
		}
		parts[i] = str
	}
	return "exec " + strings.Join(parts, " => ")
}
