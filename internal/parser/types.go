package parser

import "github.com/robert-mccausland/nash/internal/ast"
import "github.com/robert-mccausland/nash/internal/lexer"

// parseType parses a type annotation: a bare name ("string", "integer",
// "boolean", "unit", "exit_code", "command_literal", "command_result",
// "file_endpoint"; any other identifier is accepted here and rejected
// by internal/semantic), an "array<T>" shape, or an inline
// "{field: T, ...}" record shape.
func (p *Parser) parseType() *ast.TypeAnnotation {
	switch p.curToken.Type {
	case lexer.LBRACE:
		return p.parseRecordType()
	case lexer.IDENT:
		tok := p.curToken
		if tok.Literal == "array" {
			if !p.expectPeek(lexer.LT) {
				return nil
			}
			p.nextToken()
			elem := p.parseType()
			if !p.expectPeek(lexer.GT) {
				return nil
			}
			return &ast.TypeAnnotation{Token: tok, Elem: elem}
		}
		return &ast.TypeAnnotation{Token: tok, Name: tok.Literal}
	default:
		p.addError(p.curToken.Pos, "expected a type name, got "+p.curToken.Type.String(), ErrExpectedType)
		return nil
	}
}

func (p *Parser) parseRecordType() *ast.TypeAnnotation {
	tok := p.curToken
	rt := &ast.TypeAnnotation{Token: tok}

	if p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		return rt
	}

	for {
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		name := p.curToken.Literal
		if !p.expectPeek(lexer.COLON) {
			return nil
		}
		p.nextToken()
		fieldType := p.parseType()
		rt.Fields = append(rt.Fields, ast.RecordFieldType{Name: name, Type: fieldType})

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return rt
}
