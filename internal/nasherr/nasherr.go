// Package nasherr carries the semantic analyzer's and evaluator's
// diagnostics with a shared Error type and a single-line diagnostic
// format. The lexer and parser report through their own LexerError and
// ParserError types.
package nasherr

import (
	"fmt"

	"github.com/robert-mccausland/nash/internal/lexer"
)

// Kind classifies an Error by the stage and reason it was raised.
type Kind string

const (
	KindLex             Kind = "lex_error"
	KindParse           Kind = "parse_error"
	KindName            Kind = "name_error"
	KindType            Kind = "type_error"
	KindMutability      Kind = "mutability_error"
	KindPipelineShape   Kind = "pipeline_shape_error"
	KindIO              Kind = "io_error"
	KindCommandSpawn    Kind = "command_spawn_error"
	KindNonZeroExit     Kind = "non_zero_exit"
	KindRuntime         Kind = "runtime_error"
)

// Error is a single Nash diagnostic. File is empty when the program was
// read from stdin or an in-memory source.
type Error struct {
	Kind    Kind
	Message string
	File    string
	Pos     lexer.Position

	// Stage and Code are populated only for KindNonZeroExit, naming
	// which pipeline stage exited non-zero and with what code
	// (spec.md §4.5's exit-code resolution rule).
	Stage string
	Code  int
}

// New creates an Error of the given kind at pos.
func New(kind Kind, pos lexer.Position, message string) *Error {
	return &Error{Kind: kind, Pos: pos, Message: message}
}

// NonZeroExit creates the error for an uncaptured non-zero exit from a
// pipeline stage.
func NonZeroExit(pos lexer.Position, stage string, code int) *Error {
	return &Error{
		Kind:    KindNonZeroExit,
		Pos:     pos,
		Stage:   stage,
		Code:    code,
		Message: fmt.Sprintf("stage %q exited with code %d", stage, code),
	}
}

// WithFile attaches the source file name, for Error's %s formatting.
func (e *Error) WithFile(file string) *Error {
	e.File = file
	return e
}

// Error implements the error interface using spec.md §6's single-line
// diagnostic format: "error: <message> at <file>:<line>:<column>".
func (e *Error) Error() string {
	file := e.File
	if file == "" {
		file = "<stdin>"
	}
	return fmt.Sprintf("error: %s at %s:%d:%d", e.Message, file, e.Pos.Line, e.Pos.Column)
}

// List is an ordered collection of diagnostics, in the order the
// producing stage raised them (each stage collects everything it can find
// rather than stopping at the first error).
type List []*Error

func (l List) Error() string {
	if len(l) == 0 {
		return ""
	}
	msg := l[0].Error()
	if len(l) > 1 {
		msg = fmt.Sprintf("%s (and %d more error(s))", msg, len(l)-1)
	}
	return msg
}
