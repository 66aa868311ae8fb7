// Package parser provides dialect-aware SQL expression parsing.
//
// # Usage
//
//	expr, err := parser.ParseExpression("sum(x) + 1", myDialect)
//	if err != nil {
//	    // handle error
//	}
//
// Use the dialect registry to get a dialect by name:
//
//	d, err := dialect.Lookup("clickhouse")
//	expr, err := parser.ParseExpression(sql, d)
//
// # Grammar Overview
//
// The parser implements a Pratt parser for SQL scalar expressions:
//
//	aliased       → expression [[AS] alias]
//	expression    → prefix {infix}
//	prefix        → (NOT | "-" | "+") expression | primary
//	primary       → primary_head primary_rest
//	primary_rest  → dialect defined, default: {"." (identifier ["(" args ")"] | "*")}
//
// Dialects plug in through spi handlers: prefix and infix operators,
// primary-rest continuation and quoted alias parsing.
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"
	"sync"

	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"
	"github.com/leapstack-labs/sqldialect/pkg/spi"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// fallbackDialect is used when a parser is created without a dialect.
var fallbackDialect = sync.OnceValue(func() *dialect.Dialect {
	return dialect.NewDialect("default").
		Operators(dialect.ANSIOperators).
		Build()
})

// Parser parses one SQL expression input. A Parser is not safe for
// concurrent use; create one per parse.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	errors  []error
	dialect *dialect.Dialect
}

// NewParser creates a new parser for the given SQL input with dialect support.
// A nil dialect selects ANSI operators with the default extension points.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	if d == nil {
		d = fallbackDialect()
	}
	p := &Parser{
		lexer:   NewLexer(sql, d),
		dialect: d,
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// ParseExpression parses sql as a single expression.
func ParseExpression(sql string, d *dialect.Dialect) (core.Expr, error) {
	p := NewParser(sql, d)
	expr := p.parseExpression()
	p.expectEOF()
	if err := p.err(); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseAliasedExpression parses sql as `expr [[AS] alias]`.
// It returns an *core.AliasedExpr when an alias is present.
func ParseAliasedExpression(sql string, d *dialect.Dialect) (core.Expr, error) {
	p := NewParser(sql, d)
	expr := p.parseAliasedExpr()
	p.expectEOF()
	if err := p.err(); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseExpressionList parses sql as a comma-separated list of expressions.
func ParseExpressionList(sql string, d *dialect.Dialect) ([]core.Expr, error) {
	p := NewParser(sql, d)
	exprs := p.parseExpressionList()
	p.expectEOF()
	if err := p.err(); err != nil {
		return nil, err
	}
	return exprs, nil
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(p.unexpected(t.String()))
	return false
}

func (p *Parser) expectEOF() {
	if !p.check(token.EOF) && p.err() == nil {
		p.addError(p.unexpected("EOF"))
	}
}

// unexpected builds the error for the current token when something else
// was expected.
func (p *Parser) unexpected(expected string) *SyntaxError {
	msg := fmt.Sprintf(ErrUnexpectedToken, describe(p.token), expected)
	if p.check(token.ILLEGAL) {
		msg = p.token.Literal
	}
	return &SyntaxError{Token: p.token, Pos: p.token.Pos, Message: msg}
}

// syntaxError builds an error at the current token.
func (p *Parser) syntaxError(format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Token:   p.token,
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// addError records a parse error.
func (p *Parser) addError(err error) {
	p.errors = append(p.errors, err)
}

// err returns the first recorded error.
func (p *Parser) err() error {
	if len(p.errors) > 0 {
		return p.errors[0]
	}
	return nil
}

// since returns the first error recorded after n errors, if any.
func (p *Parser) since(n int) error {
	if len(p.errors) > n {
		return p.errors[n]
	}
	return nil
}

// ---------- spi.ParserOps Implementation ----------
// These methods implement the spi.ParserOps interface for dialect handlers.

var _ spi.ParserOps = (*Parser)(nil)

// Token returns the current token (implements spi.ParserOps).
func (p *Parser) Token() token.Token {
	return p.token
}

// Peek returns the lookahead token (implements spi.ParserOps).
func (p *Parser) Peek() token.Token {
	return p.peek
}

// Match consumes the current token if it matches (implements spi.ParserOps).
func (p *Parser) Match(t token.TokenType) bool {
	return p.match(t)
}

// Expect consumes the current token if it matches, otherwise returns an error (implements spi.ParserOps).
func (p *Parser) Expect(t token.TokenType) error {
	if p.check(t) {
		p.nextToken()
		return nil
	}
	return p.unexpected(t.String())
}

// NextToken advances to the next token (implements spi.ParserOps).
func (p *Parser) NextToken() {
	p.nextToken()
}

// Check returns true if the current token is of the given type (implements spi.ParserOps).
func (p *Parser) Check(t token.TokenType) bool {
	return p.check(t)
}

// ParseExpression parses an expression (implements spi.ParserOps).
func (p *Parser) ParseExpression() (spi.Expr, error) {
	n := len(p.errors)
	expr := p.parseExpression()
	if err := p.since(n); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseExpressionList parses a comma-separated list of expressions (implements spi.ParserOps).
func (p *Parser) ParseExpressionList() ([]spi.Expr, error) {
	n := len(p.errors)
	exprs := p.parseExpressionList()
	if err := p.since(n); err != nil {
		return nil, err
	}
	return exprs, nil
}

// ParseIdentifier parses an identifier (implements spi.ParserOps).
func (p *Parser) ParseIdentifier() (string, error) {
	if p.check(token.IDENT) {
		name := p.token.Literal
		p.nextToken()
		return name, nil
	}
	return "", p.unexpected(token.IDENT.String())
}

// PrimaryRest continues expr with suffixes, using the dialect override when
// one is installed (implements spi.ParserOps).
func (p *Parser) PrimaryRest(expr spi.Expr) (spi.Expr, error) {
	if h := p.dialect.PrimaryRestHandler(); h != nil {
		return h(p, expr)
	}
	return p.BasePrimaryRest(expr)
}

// ParseAlias turns the raw text of a quoted alias into a node, using the
// dialect override when one is installed (implements spi.ParserOps).
func (p *Parser) ParseAlias(raw string) (spi.Expr, error) {
	if h := p.dialect.AliasHandler(); h != nil {
		return h(p, raw)
	}
	return p.BaseAliasExpr(raw)
}

// Errorf returns a syntax error at the current token (implements spi.ParserOps).
// The error is not recorded; return it from the handler.
func (p *Parser) Errorf(format string, args ...any) error {
	return p.syntaxError(format, args...)
}

// Position returns the current token's position (implements spi.ParserOps).
func (p *Parser) Position() token.Position {
	return p.token.Pos
}
