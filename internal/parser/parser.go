// Package parser implements a Pratt parser turning a Nash token stream
// into an internal/ast tree.
package parser

import (
	"fmt"

	"github.com/robert-mccausland/nash/internal/ast"
	"github.com/robert-mccausland/nash/internal/lexer"
)

// Precedence levels, lowest to highest (spec.md §4.2).
const (
	_ int = iota
	LOWEST
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x, !x
	CALL        // f(args), a.b(args)
	INDEX       // a[i], a.b
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:     OR,
	lexer.AND:    AND,
	lexer.EQ:     EQUALS,
	lexer.NOT_EQ: EQUALS,
	lexer.LT:     LESSGREATER,
	lexer.GT:     LESSGREATER,
	lexer.LT_EQ:  LESSGREATER,
	lexer.GT_EQ:  LESSGREATER,
	lexer.PLUS:   SUM,
	lexer.MINUS:  SUM,
	lexer.STAR:   PRODUCT,
	lexer.SLASH:  PRODUCT,
	lexer.LPAREN: CALL,
	lexer.LBRACK: INDEX,
	lexer.DOT:    INDEX,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser turns a token stream into an AST, reporting every error it
// finds rather than stopping at the first one (errors surface in the
// order they were raised).
type Parser struct {
	l      *lexer.Lexer
	errors []*ParserError

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser over l and primes curToken/peekToken.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdentifier,
		lexer.INT:      p.parseIntegerLiteral,
		lexer.TRUE:     p.parseBooleanLiteral,
		lexer.FALSE:    p.parseBooleanLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.BACKTICK: p.parseCommandLiteral,
		lexer.BANG:     p.parsePrefixExpr,
		lexer.MINUS:    p.parsePrefixExpr,
		lexer.LPAREN:   p.parseGroupedExpr,
		lexer.LBRACK:   p.parseArrayLiteral,
		lexer.LBRACE:   p.parseRecordLiteral,
		lexer.MUT:      p.parseMutLiteral,
		lexer.EXEC:     p.parsePipelineExpr,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:    p.parseInfixExpr,
		lexer.MINUS:   p.parseInfixExpr,
		lexer.STAR:    p.parseInfixExpr,
		lexer.SLASH:   p.parseInfixExpr,
		lexer.EQ:      p.parseInfixExpr,
		lexer.NOT_EQ:  p.parseInfixExpr,
		lexer.LT:      p.parseInfixExpr,
		lexer.GT:      p.parseInfixExpr,
		lexer.LT_EQ:   p.parseInfixExpr,
		lexer.GT_EQ:   p.parseInfixExpr,
		lexer.AND:     p.parseInfixExpr,
		lexer.OR:      p.parseInfixExpr,
		lexer.LPAREN:  p.parseCallExpr,
		lexer.LBRACK:  p.parseIndexExpr,
		lexer.DOT:     p.parseMemberOrMethodCall,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns all parse errors accumulated so far.
func (p *Parser) Errors() []*ParserError {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances past peekToken if it matches t, otherwise records
// an error and leaves the cursor unchanged.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t lexer.TokenType) {
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	p.errors = append(p.errors, NewParserError(p.peekToken.Pos, msg, ErrUnexpectedToken))
}

func (p *Parser) addError(pos lexer.Position, msg, code string) {
	p.errors = append(p.errors, NewParserError(pos, msg, code))
}

func (p *Parser) noPrefixParseFnError(t lexer.TokenType) {
	p.addError(p.curToken.Pos, fmt.Sprintf("no prefix parse function for %s found", t), ErrNoPrefixParse)
}

func peekPrecedence(p *Parser) int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func curPrecedence(p *Parser) int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the full token stream into a Program node.
func ParseProgram(l *lexer.Lexer) (*ast.Program, []*ParserError) {
	p := New(l)
	prog := &ast.Program{}
	for !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
	}
	return prog, p.errors
}
