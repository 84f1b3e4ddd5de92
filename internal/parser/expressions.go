package parser

import (
	"strconv"

	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/lexer"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(lexer.SEMI) && precedence < peekPrecedence(p) {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal, Depth: -1}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.curToken
	val, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.addError(tok.Pos, "could not parse "+tok.Literal+" as integer", ErrInvalidSyntax)
		return nil
	}
	return &ast.IntegerLiteral{Token: tok, Value: val}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}
}

// parseStringParts converts a token's chunked payload (set by the lexer
// for STRING/BACKTICK tokens) into ast.StringPart values, re-parsing
// each ${...} chunk's captured source text as a standalone expression.
func (p *Parser) parseStringParts(tok lexer.Token) []ast.StringPart {
	var parts []ast.StringPart
	for _, c := range tok.Chunks {
		if !c.IsExpr {
			parts = append(parts, ast.StringPart{Text: c.Literal})
			continue
		}
		sub := New(lexer.New(c.Expr))
		expr := sub.parseExpression(LOWEST)
		for _, e := range sub.Errors() {
			p.errors = append(p.errors, e)
		}
		parts = append(parts, ast.StringPart{Expr: expr})
	}
	return parts
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	return &ast.StringLiteral{Token: tok, Parts: p.parseStringParts(tok)}
}

func (p *Parser) parseCommandLiteral() ast.Expression {
	tok := p.curToken
	return &ast.CommandLiteral{Token: tok, Parts: p.parseStringParts(tok)}
}

func (p *Parser) parsePrefixExpr() ast.Expression {
	if p.curTokenIs(lexer.BANG) && p.peekTokenIs(lexer.MUT) {
		p.nextToken() // consume `!`, land on `mut`
		p.nextToken() // consume `mut`, land on `[` or `{`
		switch p.curToken.Type {
		case lexer.LBRACK:
			return p.finishArrayLiteral(ast.MutForbidden)
		case lexer.LBRACE:
			return p.finishRecordLiteral(ast.MutForbidden)
		default:
			p.addError(p.curToken.Pos, "expected [ or { after !mut", ErrInvalidSyntax)
			return nil
		}
	}

	tok := p.curToken
	expr := &ast.PrefixExpr{Token: tok, Operator: tok.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseInfixExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	expr := &ast.InfixExpr{Token: tok, Left: left, Operator: tok.Literal}
	prec := curPrecedence(p)
	p.nextToken()
	expr.Right = p.parseExpression(prec)
	return expr
}

func (p *Parser) parseGroupedExpr() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseExpressionList(end lexer.TokenType) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseCallExpr(callee ast.Expression) ast.Expression {
	tok := p.curToken
	return &ast.CallExpr{Token: tok, Callee: callee, Args: p.parseExpressionList(lexer.RPAREN)}
}

func (p *Parser) parseIndexExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	index := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RBRACK) {
		return nil
	}
	return &ast.IndexExpr{Token: tok, Left: left, Index: index}
}

// parseMemberOrMethodCall parses `left.name` and, when immediately
// followed by `(`, `left.name(args...)` as a MethodCallExpr so the
// evaluator can dispatch built-in container methods (push/pop/len/fmt/
// ends_with) without confusing them with record field access.
func (p *Parser) parseMemberOrMethodCall(left ast.Expression) ast.Expression {
	tok := p.curToken // the `.`
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken() // consume `(`
		args := p.parseExpressionList(lexer.RPAREN)
		return &ast.MethodCallExpr{Token: tok, Receiver: left, Method: name, Args: args}
	}
	return &ast.MemberExpr{Token: tok, Left: left, Name: name}
}

// parseMutLiteral handles a `mut [...]`/`mut {...}` prefix.
// `!mut [...]`/`!mut {...}` is handled by parsePrefixExpr (above), which
// calls finishArrayLiteral/finishRecordLiteral directly.
func (p *Parser) parseMutLiteral() ast.Expression {
	mut := ast.MutForced
	p.nextToken()
	switch p.curToken.Type {
	case lexer.LBRACK:
		return p.finishArrayLiteral(mut)
	case lexer.LBRACE:
		return p.finishRecordLiteral(mut)
	default:
		p.addError(p.curToken.Pos, "expected [ or { after mut", ErrInvalidSyntax)
		return nil
	}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	return p.finishArrayLiteral(ast.MutDefault)
}

func (p *Parser) finishArrayLiteral(mut ast.Mutability) ast.Expression {
	tok := p.curToken
	return &ast.ArrayLiteral{Token: tok, Mut: mut, Elements: p.parseExpressionList(lexer.RBRACK)}
}

func (p *Parser) parseRecordLiteral() ast.Expression {
	return p.finishRecordLiteral(ast.MutDefault)
}

func (p *Parser) finishRecordLiteral(mut ast.Mutability) ast.Expression {
	tok := p.curToken
	rec := &ast.RecordLiteral{Token: tok, Mut: mut}

	if p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		return rec
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
		value := p.parseExpression(LOWEST)
		rec.Fields = append(rec.Fields, ast.RecordField{Name: name, Value: value})

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return rec
}
