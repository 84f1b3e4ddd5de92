package parser

import (
	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/lexer"
)

// parsePipelineExpr parses `exec stage (=> stage)*`. It is registered as
// the prefix parse function for the EXEC token (spec.md §4.5).
func (p *Parser) parsePipelineExpr() ast.Expression {
	tok := p.curToken
	pe := &ast.PipelineExpr{Token: tok}

	p.nextToken()
	pe.Stages = append(pe.Stages, p.parseStage())

	for p.peekTokenIs(lexer.ARROW) {
		p.nextToken() // `=>`
		p.nextToken()
		pe.Stages = append(pe.Stages, p.parseStage())
	}
	return pe
}

// parseStage parses one pipeline stage and any trailing |cap ...|
// annotations attached to it.
func (p *Parser) parseStage() ast.Stage {
	tok := p.curToken
	captures := p.parseCaptureAnnotations

	switch {
	case tok.Type == lexer.BACKTICK:
		cmd := p.parseCommandLiteral().(*ast.CommandLiteral)
		return &ast.CommandStage{Token: tok, Command: cmd, Captures: captures()}

	case tok.Type == lexer.IDENT && tok.Literal == "open" && p.peekTokenIs(lexer.LPAREN):
		path := p.parseStageCallArg()
		return &ast.FileOpenStage{Token: tok, Path: path, Captures: captures()}

	case tok.Type == lexer.IDENT && tok.Literal == "write" && p.peekTokenIs(lexer.LPAREN):
		path := p.parseStageCallArg()
		return &ast.FileWriteStage{Token: tok, Path: path, Captures: captures()}

	case tok.Type == lexer.IDENT && tok.Literal == "append" && p.peekTokenIs(lexer.LPAREN):
		path := p.parseStageCallArg()
		return &ast.FileAppendStage{Token: tok, Path: path, Captures: captures()}

	default:
		expr := p.parseExpression(LOWEST)
		return &ast.StringSourceStage{Token: tok, Value: expr, Captures: captures()}
	}
}

// parseStageCallArg parses the `(expr)` argument of an `open`/`write`/
// `append` pseudo-call, with curToken starting on the function name.
func (p *Parser) parseStageCallArg() ast.Expression {
	p.nextToken() // `(`
	p.nextToken()
	arg := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return arg
}

// parseCaptureAnnotations parses zero or more `|cap stderr|` / `|cap
// exit_code as name|` annotations trailing a stage.
func (p *Parser) parseCaptureAnnotations() []ast.CaptureSpec {
	var captures []ast.CaptureSpec

	for p.peekTokenIs(lexer.PIPE) {
		p.nextToken() // `|`
		if !p.expectPeek(lexer.CAP) {
			return captures
		}
		capTok := p.curToken

		if !p.expectPeek(lexer.IDENT) {
			return captures
		}
		var kind ast.CaptureKind
		switch p.curToken.Literal {
		case "stderr":
			kind = ast.CaptureStderr
		case "exit_code":
			kind = ast.CaptureExitCode
		default:
			p.addError(p.curToken.Pos, "expected stderr or exit_code, got "+p.curToken.Literal, ErrInvalidPipeline)
			return captures
		}

		var as *ast.Identifier
		if p.peekTokenIs(lexer.AS) {
			p.nextToken()
			if !p.expectPeek(lexer.IDENT) {
				return captures
			}
			as = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal, Depth: -1}
		}

		if !p.expectPeek(lexer.PIPE) {
			return captures
		}

		captures = append(captures, ast.CaptureSpec{Token: capTok, Kind: kind, As: as})
	}
	return captures
}
