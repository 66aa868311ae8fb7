package parser

import (
	"strings"

	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/spi"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// Primary expression parsing: literals, column refs, function calls.
//
// Grammar:
//
//	primary       → primary_head primary_rest
//	primary_head  → dialect_prefix | literal | column_ref | func_call | paren_expr | case_expr | cast_expr | "*"
//	literal       → NUMBER | STRING | TRUE | FALSE | NULL
//	column_ref    → identifier
//	func_call     → identifier "(" [DISTINCT] [expr_list | "*"] ")" [FILTER "(" WHERE expr ")"] [OVER window_spec]
//	primary_rest  → {"." identifier | "." "*" | "." identifier "(" args ")"}   -- default
//
// Qualification (t.col) is part of the default primary_rest, so dialects that
// override it decide how their own suffixes interleave with member access.

// softKeywords may be used as column and function names.
var softKeywords = map[token.TokenType]bool{
	token.ASC:       true,
	token.DESC:      true,
	token.CURRENT:   true,
	token.FILTER:    true,
	token.FIRST:     true,
	token.FOLLOWING: true,
	token.GROUPS:    true,
	token.LAST:      true,
	token.NULLS:     true,
	token.PARTITION: true,
	token.PRECEDING: true,
	token.RANGE:     true,
	token.ROW:       true,
	token.ROWS:      true,
	token.UNBOUNDED: true,
}

// parsePrimary parses a primary expression and applies the primary-rest
// extension point to it.
func (p *Parser) parsePrimary() core.Expr {
	n := len(p.errors)
	expr := p.parsePrimaryHead()
	if expr == nil || p.since(n) != nil {
		return expr
	}

	rest, err := p.PrimaryRest(expr)
	if err != nil {
		p.addError(err)
		return nil
	}
	return rest
}

// parsePrimaryHead parses the primary expression before any suffix.
func (p *Parser) parsePrimaryHead() core.Expr {
	// Check for dialect-specific prefix handlers first
	if handler := p.dialect.PrefixHandler(p.token.Type); handler != nil {
		p.nextToken() // consume the prefix token
		expr, err := handler(p)
		if err != nil {
			p.addError(err)
			return nil
		}
		return expr
	}

	switch p.token.Type {
	case token.NUMBER:
		lit := &core.Literal{Type: core.LiteralNumber, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.STRING:
		lit := &core.Literal{Type: core.LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.TRUE:
		p.nextToken()
		return &core.Literal{Type: core.LiteralBool, Value: "true"}

	case token.FALSE:
		p.nextToken()
		return &core.Literal{Type: core.LiteralBool, Value: "false"}

	case token.NULL:
		p.nextToken()
		return &core.Literal{Type: core.LiteralNull, Value: "null"}

	case token.CASE:
		return p.parseCaseExpr()

	case token.CAST:
		return p.parseCastExpr()

	case token.LPAREN:
		return p.parseParenExpr()

	case token.STAR:
		p.nextToken()
		return &core.StarExpr{}

	case token.IDENT:
		return p.parseIdentifierExpr()
	}

	if softKeywords[p.token.Type] {
		return p.parseIdentifierExpr()
	}

	p.addError(p.unexpected("expression"))
	return nil
}

// parseIdentifierExpr parses an identifier which could be a column ref or function call.
func (p *Parser) parseIdentifierExpr() core.Expr {
	name := p.token.Literal
	p.nextToken()

	if p.check(token.LPAREN) {
		return p.parseFuncCall(name)
	}
	return &core.ColumnRef{Column: name}
}

// parseFuncCall parses a function call. The name has been consumed and the
// current token is "(".
func (p *Parser) parseFuncCall(name string) *core.FuncCall {
	fn := &core.FuncCall{
		Name:      strings.ToUpper(name),
		Aggregate: p.dialect.IsAggregate(name),
	}

	if !p.expect(token.LPAREN) {
		return fn
	}

	// Handle COUNT(*) or other aggregate(*)
	if p.check(token.STAR) && p.checkPeek(token.RPAREN) {
		fn.Star = true
		p.nextToken()
	} else if !p.check(token.RPAREN) {
		if p.match(token.DISTINCT) {
			fn.Distinct = true
		}
		fn.Args = p.parseExpressionList()
	}

	if !p.expect(token.RPAREN) {
		return fn
	}

	// FILTER clause (for aggregates)
	if p.check(token.FILTER) && p.checkPeek(token.LPAREN) {
		p.nextToken()
		p.nextToken()
		p.expect(token.WHERE)
		fn.Filter = p.parseExpression()
		p.expect(token.RPAREN)
	}

	// OVER clause (window function)
	if p.match(token.OVER) {
		fn.Window = p.parseWindowSpec()
	}

	return fn
}

// isName reports whether tok can name a member after ".".
func isName(tok token.Token) bool {
	return tok.Type == token.IDENT || token.IsKeyword(tok.Type)
}

// BasePrimaryRest is the default primary-rest continuation
// (implements spi.ParserOps).
//
// It handles .name (qualifying an unqualified column, otherwise a member
// access), .* and .name(args), re-entering PrimaryRest after each suffix.
// Without a suffix it returns expr unchanged.
func (p *Parser) BasePrimaryRest(expr spi.Expr) (spi.Expr, error) {
	if !p.check(token.DOT) {
		return expr, nil
	}
	p.nextToken() // consume .

	if p.check(token.STAR) {
		ref, ok := expr.(*core.ColumnRef)
		if !ok || ref.Table != "" {
			return nil, p.syntaxError("* must follow a table name")
		}
		p.nextToken()
		return p.PrimaryRest(&core.StarExpr{Table: ref.Column})
	}

	if !isName(p.token) {
		return nil, p.unexpected("identifier or * after .")
	}
	name := p.token.Literal
	p.nextToken()

	if p.check(token.LPAREN) {
		n := len(p.errors)
		fn := p.parseFuncCall(name)
		if err := p.since(n); err != nil {
			return nil, err
		}
		fn.Owner = expr
		return p.PrimaryRest(fn)
	}

	if ref, ok := expr.(*core.ColumnRef); ok && ref.Table == "" {
		return p.PrimaryRest(&core.ColumnRef{Table: ref.Column, Column: name})
	}
	return p.PrimaryRest(&core.MemberExpr{Base: expr, Name: name})
}

// BaseAliasExpr is the default alias parser (implements spi.ParserOps).
// A delimited alias ('x', "x" or the dialect's quote) becomes an identifier
// with the delimiters removed and doubled delimiters unescaped.
func (p *Parser) BaseAliasExpr(raw string) (spi.Expr, error) {
	if raw == "" {
		return nil, p.syntaxError("empty alias")
	}
	if len(raw) >= 2 {
		q := raw[0]
		if (q == '\'' || p.dialect.IsQuoteChar(q)) && raw[len(raw)-1] == q {
			inner := raw[1 : len(raw)-1]
			name := strings.ReplaceAll(inner, string([]byte{q, q}), string([]byte{q}))
			return &core.Identifier{Name: name}, nil
		}
	}
	return &core.Identifier{Name: raw}, nil
}
