// Package spi provides Service Provider Interface types for dialect
// handlers to interact with the parser without circular dependencies.
package spi

import (
	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// ParserOps exposes parser operations to dialect handlers.
// This interface allows dialect-specific code to interact with the parser
// without creating circular dependencies.
type ParserOps interface {
	// Token access
	Token() token.Token
	Peek() token.Token

	// Consumption
	Match(t token.TokenType) bool
	Expect(t token.TokenType) error
	NextToken()
	Check(t token.TokenType) bool

	// Sub-parsers
	ParseExpression() (Expr, error)
	ParseExpressionList() ([]Expr, error)
	ParseIdentifier() (string, error)

	// Extension points. PrimaryRest and ParseAlias dispatch to the dialect's
	// handler when one is installed; BasePrimaryRest and BaseAliasExpr are
	// the parser defaults, reachable from an override to fall through.
	PrimaryRest(expr Expr) (Expr, error)
	BasePrimaryRest(expr Expr) (Expr, error)
	ParseAlias(raw string) (Expr, error)
	BaseAliasExpr(raw string) (Expr, error)

	// Error handling
	Errorf(format string, args ...any) error
	Position() token.Position
}

// Expr is an expression node.
type Expr = core.Expr

// InfixHandler parses a dialect-specific infix operator.
// Called AFTER the operator has been consumed.
// left is the already-parsed left operand.
type InfixHandler func(p ParserOps, left Expr) (Expr, error)

// PrefixHandler parses a dialect-specific prefix operator.
// Called AFTER the operator has been consumed.
type PrefixHandler func(p ParserOps) (Expr, error)

// PrimaryRestHandler continues a just-parsed primary expression with
// suffixes. Called with the current token positioned after the primary.
// An override consumes its own suffix, calls p.PrimaryRest on the result so
// chains parse left to right, and otherwise returns p.BasePrimaryRest(expr).
type PrimaryRestHandler func(p ParserOps, expr Expr) (Expr, error)

// AliasHandler turns the raw source text of a quoted alias, delimiters
// included, into an expression node.
type AliasHandler func(p ParserOps, raw string) (Expr, error)

// Precedence constants for operator precedence parsing.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, ILIKE, IN, BETWEEN
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %
	PrecedenceUnary      = 7 // -, +, NOT
	PrecedencePostfix    = 8 // ::, [], ()
)
