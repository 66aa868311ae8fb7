package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/spi"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// Expression precedence parsing using Pratt parser with dialect-aware precedence.
//
// Precedence levels (from spi package):
//
//	PrecedenceNone       = 0
//	PrecedenceOr         = 1
//	PrecedenceAnd        = 2
//	PrecedenceNot        = 3
//	PrecedenceComparison = 4  (=, !=, <, >, <=, >=, IS, IN, BETWEEN, LIKE, ILIKE)
//	PrecedenceAddition   = 5  (+, -, ||)
//	PrecedenceMultiply   = 6  (*, /, %)
//	PrecedenceUnary      = 7  (-, +, NOT)
//	PrecedencePostfix    = 8  (::, [], ())
//
// The parser uses dialect.Precedence() to look up operator precedence dynamically,
// allowing dialects to add custom operators (like ILIKE or ::).
// Builtin operators the dialect does not list fall back to ANSI precedence.

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionWithPrecedence(spi.PrecedenceNone + 1)
}

// parseExpressionList parses one or more comma-separated expressions.
func (p *Parser) parseExpressionList() []core.Expr {
	var exprs []core.Expr
	for {
		exprs = append(exprs, p.parseExpression())
		if !p.match(token.COMMA) {
			break
		}
	}
	return exprs
}

// parseExpressionWithPrecedence implements Pratt parsing with dialect-aware precedence.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) core.Expr {
	n := len(p.errors)

	// Parse prefix (unary operators and primary expressions)
	left := p.parsePrefixExpr()
	if left == nil || p.since(n) != nil {
		return left
	}

	// Parse infix operators while their precedence is >= minPrecedence
	for {
		prec := p.getInfixPrecedence()
		if prec < minPrecedence {
			break
		}

		left = p.parseInfixExpr(left, prec)
		if left == nil || p.since(n) != nil {
			break
		}
	}

	return left
}

// parsePrefixExpr parses prefix expressions (unary operators and primary expressions).
func (p *Parser) parsePrefixExpr() core.Expr {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(spi.PrecedenceNot)
		return &core.UnaryExpr{Op: token.NOT, Expr: expr}

	case token.MINUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(spi.PrecedenceUnary)
		return &core.UnaryExpr{Op: token.MINUS, Expr: expr}

	case token.PLUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(spi.PrecedenceUnary)
		return &core.UnaryExpr{Op: token.PLUS, Expr: expr}

	default:
		return p.parsePrimary()
	}
}

// getInfixPrecedence returns the precedence of the current token as an infix operator.
// Returns 0 if the token is not an infix operator.
func (p *Parser) getInfixPrecedence() int {
	if prec := p.dialect.Precedence(p.token.Type); prec > 0 {
		return prec
	}
	return defaultPrecedence(p.token.Type)
}

// defaultPrecedence returns the default ANSI precedence for a builtin operator.
func defaultPrecedence(t token.TokenType) int {
	switch t {
	case token.OR:
		return spi.PrecedenceOr
	case token.AND:
		return spi.PrecedenceAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return spi.PrecedenceComparison
	case token.IS, token.IN, token.BETWEEN, token.LIKE:
		return spi.PrecedenceComparison
	case token.PLUS, token.MINUS, token.DPIPE:
		return spi.PrecedenceAddition
	case token.STAR, token.SLASH, token.PERCENT:
		return spi.PrecedenceMultiply
	case token.NOT:
		// NOT as infix (for NOT IN, NOT LIKE, etc.) - handled specially
		return spi.PrecedenceComparison
	default:
		return spi.PrecedenceNone
	}
}

// parseInfixExpr parses an infix expression given the left operand and current precedence.
func (p *Parser) parseInfixExpr(left core.Expr, prec int) core.Expr {
	// Custom infix handler (dialect-specific operators like ::) first
	if handler := p.dialect.InfixHandler(p.token.Type); handler != nil {
		op := p.token
		p.nextToken()
		result, err := handler(p, left)
		if err != nil {
			p.addError(err)
			return nil
		}
		if result != nil {
			return result
		}
		// A nil result asks for standard binary handling
		return &core.BinaryExpr{Left: left, Op: op.Type, Right: p.parseExpressionWithPrecedence(prec + 1)}
	}

	switch p.token.Type {
	case token.NOT:
		// NOT IN, NOT BETWEEN, NOT LIKE, NOT ILIKE
		return p.parseNotInfixExpr(left)

	case token.IS:
		return p.parseIsExpr(left)

	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, false)

	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, false)

	case token.LIKE, token.ILIKE:
		op := p.token.Type
		p.nextToken()
		return p.parseLikeExpr(left, false, op)
	}

	// Standard binary operators
	op := p.token
	p.nextToken()

	// Parse right operand with higher precedence (left-associative)
	right := p.parseExpressionWithPrecedence(prec + 1)

	return &core.BinaryExpr{Left: left, Op: op.Type, Right: right}
}

// parseNotInfixExpr handles NOT as an infix modifier (NOT IN, NOT BETWEEN, NOT LIKE).
func (p *Parser) parseNotInfixExpr(left core.Expr) core.Expr {
	p.nextToken() // consume NOT

	switch p.token.Type {
	case token.IN:
		p.nextToken()
		return p.parseInExpr(left, true)

	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenExpr(left, true)

	case token.LIKE, token.ILIKE:
		op := p.token.Type
		p.nextToken()
		return p.parseLikeExpr(left, true, op)

	default:
		p.addError(p.unexpected("IN, BETWEEN, LIKE or ILIKE after NOT"))
		return left
	}
}

// parseIsExpr parses IS [NOT] NULL / IS [NOT] TRUE / IS [NOT] FALSE.
func (p *Parser) parseIsExpr(left core.Expr) core.Expr {
	p.nextToken() // consume IS

	isNot := p.match(token.NOT)

	switch p.token.Type {
	case token.NULL:
		p.nextToken()
		return &core.IsNullExpr{Expr: left, Not: isNot}

	case token.TRUE:
		p.nextToken()
		return &core.IsBoolExpr{Expr: left, Not: isNot, Value: true}

	case token.FALSE:
		p.nextToken()
		return &core.IsBoolExpr{Expr: left, Not: isNot, Value: false}

	default:
		p.addError(p.unexpected("NULL, TRUE or FALSE after IS"))
		return left
	}
}

// parseInExpr parses an IN expression.
func (p *Parser) parseInExpr(left core.Expr, not bool) core.Expr {
	in := &core.InExpr{Expr: left, Not: not}
	if !p.expect(token.LPAREN) {
		return in
	}
	in.Values = p.parseExpressionList()
	p.expect(token.RPAREN)
	return in
}

// parseBetweenExpr parses a BETWEEN expression.
func (p *Parser) parseBetweenExpr(left core.Expr, not bool) core.Expr {
	between := &core.BetweenExpr{Expr: left, Not: not}
	// Parse low bound at addition precedence to avoid capturing AND
	between.Low = p.parseExpressionWithPrecedence(spi.PrecedenceAddition)
	p.expect(token.AND)
	// Parse high bound at addition precedence
	between.High = p.parseExpressionWithPrecedence(spi.PrecedenceAddition)
	return between
}

// parseLikeExpr parses a LIKE/ILIKE expression.
func (p *Parser) parseLikeExpr(left core.Expr, not bool, op token.TokenType) core.Expr {
	like := &core.LikeExpr{Expr: left, Not: not, Op: op}
	// Parse pattern at addition precedence
	like.Pattern = p.parseExpressionWithPrecedence(spi.PrecedenceAddition)
	return like
}

// parseAliasedExpr parses `expr [[AS] alias]`.
//
// A bare identifier alias becomes *core.Identifier. A quoted alias (string
// literal or quoted identifier) goes through the alias extension point with
// its raw source text.
func (p *Parser) parseAliasedExpr() core.Expr {
	n := len(p.errors)
	expr := p.parseExpression()
	if p.since(n) != nil {
		return expr
	}

	explicit := p.match(token.AS)
	tok := p.token
	switch {
	case tok.Type == token.IDENT && !tok.Quoted():
		p.nextToken()
		return &core.AliasedExpr{Expr: expr, Alias: &core.Identifier{Name: tok.Literal}}

	case tok.Type == token.IDENT || tok.Type == token.STRING:
		alias, err := p.ParseAlias(tok.Raw)
		if err != nil {
			p.addError(fmt.Errorf("alias: %w", err))
			return expr
		}
		p.nextToken()
		return &core.AliasedExpr{Expr: expr, Alias: alias}

	case explicit:
		p.addError(p.unexpected("alias"))
	}
	return expr
}
