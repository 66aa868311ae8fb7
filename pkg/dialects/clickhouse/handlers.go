package clickhouse

import (
	"fmt"

	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/spi"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// parsePrimaryRest continues a primary expression.
// On "[" it wraps expr in an array literal whose base is expr, then
// continues from the new node so suffixes chain: e[1][2] is an array with
// base e[1]. Anything else falls through to the default continuation.
func parsePrimaryRest(p spi.ParserOps, expr spi.Expr) (spi.Expr, error) {
	if !p.Check(token.LBRACKET) {
		return p.BasePrimaryRest(expr)
	}
	array := &core.ArrayLiteral{Base: expr}
	p.NextToken() // consume [

	elems, err := p.ParseExpressionList()
	if err != nil {
		return nil, fmt.Errorf("array suffix: %w", err)
	}
	array.Elements = elems

	if err := p.Expect(token.RBRACKET); err != nil {
		return nil, fmt.Errorf("array suffix: %w", err)
	}
	return p.PrimaryRest(array)
}

// parseArrayLiteral handles [expr, expr, ...].
// The opening [ has already been consumed.
func parseArrayLiteral(p spi.ParserOps) (spi.Expr, error) {
	array := &core.ArrayLiteral{}

	if !p.Check(token.RBRACKET) {
		elems, err := p.ParseExpressionList()
		if err != nil {
			return nil, fmt.Errorf("array literal: %w", err)
		}
		array.Elements = elems
	}

	if err := p.Expect(token.RBRACKET); err != nil {
		return nil, fmt.Errorf("array literal: %w", err)
	}
	return array, nil
}

// parseAlias turns a quoted alias into a string literal holding the text
// between the delimiters. Doubled quotes are not unescaped.
func parseAlias(p spi.ParserOps, raw string) (spi.Expr, error) {
	if len(raw) < 2 {
		return nil, p.Errorf("alias too short: %q", raw)
	}
	return &core.Literal{Type: core.LiteralString, Value: raw[1 : len(raw)-1]}, nil
}

// parseLambda handles -> body after the lambda parameters.
// The -> has already been consumed; left holds the parameters, either a
// bare name or a parenthesized list of names.
func parseLambda(p spi.ParserOps, left spi.Expr) (spi.Expr, error) {
	params, err := lambdaParams(left)
	if err != nil {
		return nil, p.Errorf("%v", err)
	}

	body, err := p.ParseExpression()
	if err != nil {
		return nil, fmt.Errorf("lambda body: %w", err)
	}
	return &core.LambdaExpr{Params: params, Body: body}, nil
}

// lambdaParams extracts parameter names from a lambda parameter expression.
func lambdaParams(expr spi.Expr) ([]string, error) {
	switch e := expr.(type) {
	case *core.ColumnRef:
		// Single parameter: x -> expr
		if e.Table != "" {
			return nil, fmt.Errorf("invalid lambda parameter %s.%s: qualified name not allowed", e.Table, e.Column)
		}
		return []string{e.Column}, nil

	case *core.ParenExpr:
		return lambdaParams(e.Expr)

	case *core.TupleExpr:
		// Multiple parameters: (x, y) -> expr
		var params []string
		for _, elem := range e.Elements {
			names, err := lambdaParams(elem)
			if err != nil {
				return nil, err
			}
			params = append(params, names...)
		}
		return params, nil

	default:
		return nil, fmt.Errorf("invalid lambda parameter: expected identifier, got %T", expr)
	}
}
