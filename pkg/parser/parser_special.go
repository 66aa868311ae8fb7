package parser

import (
	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// Special expression parsing: CASE, CAST, parenthesized expressions and tuples.
//
// Grammar:
//
//	case_expr     → CASE [expr] (WHEN expr THEN expr)+ [ELSE expr] END
//	cast_expr     → CAST "(" expr AS type_name ")"
//	paren_expr    → "(" expression ")" | "(" expression ("," expression)+ ")"
//	type_name     → identifier ["(" params ")"]

// parseCaseExpr parses a CASE expression.
func (p *Parser) parseCaseExpr() core.Expr {
	p.expect(token.CASE)
	caseExpr := &core.CaseExpr{}

	// Simple CASE: CASE expr WHEN ...
	if !p.check(token.WHEN) {
		caseExpr.Operand = p.parseExpression()
	}

	if !p.check(token.WHEN) {
		p.addError(p.unexpected(token.WHEN.String()))
		return caseExpr
	}

	// WHEN clauses
	for p.match(token.WHEN) {
		when := core.WhenClause{}
		when.Condition = p.parseExpression()
		p.expect(token.THEN)
		when.Result = p.parseExpression()
		caseExpr.Whens = append(caseExpr.Whens, when)
	}

	// ELSE clause
	if p.match(token.ELSE) {
		caseExpr.Else = p.parseExpression()
	}

	p.expect(token.END)
	return caseExpr
}

// parseCastExpr parses a CAST expression.
func (p *Parser) parseCastExpr() core.Expr {
	p.expect(token.CAST)
	cast := &core.CastExpr{}
	if !p.expect(token.LPAREN) {
		return cast
	}

	cast.Expr = p.parseExpression()
	if !p.expect(token.AS) {
		return cast
	}

	// Parse type name (can carry parameters like VARCHAR(255))
	typeName, err := dialect.ParseTypeName(p)
	if err != nil {
		p.addError(err)
		return cast
	}
	cast.TypeName = typeName

	p.expect(token.RPAREN)
	return cast
}

// parseParenExpr parses a parenthesized expression or a tuple.
func (p *Parser) parseParenExpr() core.Expr {
	p.expect(token.LPAREN)

	exprs := p.parseExpressionList()
	p.expect(token.RPAREN)

	if len(exprs) == 1 {
		return &core.ParenExpr{Expr: exprs[0]}
	}
	return &core.TupleExpr{Elements: exprs}
}
