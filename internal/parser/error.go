package parser

import (
	"fmt"

	"github.com/robert-mccausland/nash/internal/lexer"
)

// ParserError is a structured parse error with position information.
type ParserError struct {
	Message string
	Code    string
	Pos     lexer.Position
}

// Error implements the error interface.
func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Pos.Line, e.Pos.Column)
}

// NewParserError creates a new ParserError.
func NewParserError(pos lexer.Position, message, code string) *ParserError {
	return &ParserError{Message: message, Pos: pos, Code: code}
}

// Error code constants for programmatic handling.
const (
	ErrUnexpectedToken  = "E_UNEXPECTED_TOKEN"
	ErrNoPrefixParse    = "E_NO_PREFIX_PARSE"
	ErrExpectedIdent    = "E_EXPECTED_IDENT"
	ErrExpectedType     = "E_EXPECTED_TYPE"
	ErrInvalidSyntax    = "E_INVALID_SYNTAX"
	ErrInvalidPipeline  = "E_INVALID_PIPELINE"
)
