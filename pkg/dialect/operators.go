package dialect

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/spi"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// OperatorDef describes one infix operator of a dialect.
type OperatorDef struct {
	Token      token.TokenType
	Symbol     string // lexer symbol for non-builtin operators, e.g. "::"
	Keyword    string // lexer keyword for word operators, e.g. "ILIKE"
	Precedence int
	Handler    spi.InfixHandler // optional custom parsing
}

// ANSIOperators contains standard SQL operators with their precedence.
var ANSIOperators = []OperatorDef{
	// Logical operators (lowest precedence)
	{Token: token.OR, Precedence: spi.PrecedenceOr},
	{Token: token.AND, Precedence: spi.PrecedenceAnd},

	// Comparison operators
	{Token: token.EQ, Precedence: spi.PrecedenceComparison},
	{Token: token.NE, Precedence: spi.PrecedenceComparison},
	{Token: token.LT, Precedence: spi.PrecedenceComparison},
	{Token: token.GT, Precedence: spi.PrecedenceComparison},
	{Token: token.LE, Precedence: spi.PrecedenceComparison},
	{Token: token.GE, Precedence: spi.PrecedenceComparison},
	{Token: token.LIKE, Precedence: spi.PrecedenceComparison},
	{Token: token.IN, Precedence: spi.PrecedenceComparison},
	{Token: token.BETWEEN, Precedence: spi.PrecedenceComparison},
	{Token: token.IS, Precedence: spi.PrecedenceComparison},
	// NOT as an infix only introduces NOT LIKE / NOT IN / NOT BETWEEN
	{Token: token.NOT, Precedence: spi.PrecedenceComparison},

	// Arithmetic operators
	{Token: token.PLUS, Precedence: spi.PrecedenceAddition},
	{Token: token.MINUS, Precedence: spi.PrecedenceAddition},
	{Token: token.DPIPE, Precedence: spi.PrecedenceAddition}, // || string concatenation

	// Multiplicative operators (highest precedence for binary ops)
	{Token: token.STAR, Precedence: spi.PrecedenceMultiply},
	{Token: token.SLASH, Precedence: spi.PrecedenceMultiply},
	{Token: token.PERCENT, Precedence: spi.PrecedenceMultiply},
}

// IlikeOperator is the case-insensitive LIKE keyword operator.
var IlikeOperator = []OperatorDef{
	{Token: token.ILIKE, Keyword: "ILIKE", Precedence: spi.PrecedenceComparison},
}

// CastOperator is the postfix :: cast operator.
var CastOperator = []OperatorDef{
	{Token: token.DCOLON, Symbol: "::", Precedence: spi.PrecedencePostfix, Handler: ParseCastOperator},
}

// ParseCastOperator handles expr::type.
// The :: has already been consumed.
func ParseCastOperator(p spi.ParserOps, left spi.Expr) (spi.Expr, error) {
	typeName, err := ParseTypeName(p)
	if err != nil {
		return nil, fmt.Errorf("cast: %w", err)
	}
	return &core.CastExpr{Expr: left, TypeName: typeName, Operator: true}, nil
}

// ParseTypeName reads a type name such as INT, VARCHAR(10) or
// Array(Nullable(String)). Parenthesized parameters are kept verbatim.
func ParseTypeName(p spi.ParserOps) (string, error) {
	name, err := p.ParseIdentifier()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(name)
	if !p.Check(token.LPAREN) {
		return sb.String(), nil
	}

	depth := 0
	for {
		tok := p.Token()
		switch tok.Type {
		case token.EOF:
			return "", p.Errorf("unterminated type parameters")
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
		if tok.Type == token.COMMA {
			sb.WriteString(", ")
		} else {
			sb.WriteString(tok.Raw)
		}
		p.NextToken()
		if depth == 0 {
			return sb.String(), nil
		}
	}
}
