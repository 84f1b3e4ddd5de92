package parser

import (
	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/lexer"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.VAR:
		return p.parseVarDecl()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.EXIT:
		return p.parseExitStatement()
	case lexer.FUNC:
		return p.parseFuncDecl()
	default:
		return p.parseExprOrAssignStatement()
	}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}

	p.nextToken() // consume `{`
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseVarDecl() ast.Statement {
	tok := p.curToken
	vd := &ast.VarDecl{Token: tok}

	if p.peekTokenIs(lexer.MUT) {
		p.nextToken()
		vd.Mut = true
	}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	vd.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal, Depth: -1}

	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		vd.Type = p.parseType()
	}

	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	p.nextToken()
	vd.Value = p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.SEMI) {
		return nil
	}
	return vd
}

func (p *Parser) parseExprOrAssignStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)

	if p.peekTokenIs(lexer.ASSIGN) {
		p.nextToken() // `=`
		p.nextToken() // first token of value
		value := p.parseExpression(LOWEST)
		if !p.expectPeek(lexer.SEMI) {
			return nil
		}
		return &ast.AssignStatement{Token: tok, Target: expr, Value: value}
	}

	if !p.expectPeek(lexer.SEMI) {
		return nil
	}
	return &ast.ExprStatement{Token: tok, Expr: expr}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	cond := p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	then := p.parseBlockStatement()

	stmt := &ast.IfStatement{Token: tok, Condition: cond, Then: then}

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		switch {
		case p.peekTokenIs(lexer.IF):
			p.nextToken()
			stmt.Else = p.parseIfStatement()
		case p.peekTokenIs(lexer.LBRACE):
			p.nextToken()
			stmt.Else = p.parseBlockStatement()
		default:
			p.peekError(lexer.LBRACE)
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	cond := p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal, Depth: -1}

	if !p.expectPeek(lexer.IN) {
		return nil
	}
	p.nextToken()
	iterable := p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.ForStatement{Token: tok, Name: name, Iterable: iterable, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	stmt := &ast.ReturnStatement{Token: tok}

	if p.peekTokenIs(lexer.SEMI) {
		p.nextToken()
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.SEMI) {
		return nil
	}
	return stmt
}

func (p *Parser) parseExitStatement() ast.Statement {
	tok := p.curToken
	stmt := &ast.ExitStatement{Token: tok}

	if p.peekTokenIs(lexer.SEMI) {
		p.nextToken()
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.SEMI) {
		return nil
	}
	return stmt
}

func (p *Parser) parseFuncDecl() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	fd := &ast.FuncDecl{Token: tok, Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal, Depth: -1}}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	fd.Params = p.parseParamList()

	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		fd.RetType = p.parseType()
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	fd.Body = p.parseBlockStatement()
	return fd
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken()
	params = append(params, p.parseParam())
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseParam())
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseParam() ast.Param {
	var param ast.Param
	if p.curTokenIs(lexer.MUT) {
		param.Mut = true
		p.nextToken()
	}
	param.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal, Depth: -1}
	if !p.expectPeek(lexer.COLON) {
		return param
	}
	p.nextToken()
	param.Type = p.parseType()
	return param
}
