// Package token defines the token types for SQL expression parsing.
//
// Core tokens are defined as constants (IDs 0-999) for switch performance.
// Dialect-specific tokens are registered dynamically via Register().
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier, bare or quoted
	NUMBER // 123, 45.67, 1e10
	STRING // 'hello'

	// Operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	DPIPE    // ||
	EQ       // =
	NE       // != or <>
	LT       // <
	GT       // >
	LE       // <=
	GE       // >=
	DOT      // .
	COMMA    // ,
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	ARROW    // ->

	// Keywords (alphabetical)
	AND
	AS
	ASC
	BETWEEN
	BY
	CASE
	CAST
	CURRENT
	DESC
	DISTINCT
	ELSE
	END
	FALSE
	FILTER
	FIRST
	FOLLOWING
	GROUPS
	IN
	IS
	LAST
	LIKE
	NOT
	NULL
	NULLS
	OR
	ORDER
	OVER
	PARTITION
	PRECEDING
	RANGE
	ROW
	ROWS
	THEN
	TRUE
	UNBOUNDED
	WHEN
	WHERE

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	SLASH:    "/",
	PERCENT:  "%",
	DPIPE:    "||",
	EQ:       "=",
	NE:       "!=",
	LT:       "<",
	GT:       ">",
	LE:       "<=",
	GE:       ">=",
	DOT:      ".",
	COMMA:    ",",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	ARROW:    "->",

	AND:       "AND",
	AS:        "AS",
	ASC:       "ASC",
	BETWEEN:   "BETWEEN",
	BY:        "BY",
	CASE:      "CASE",
	CAST:      "CAST",
	CURRENT:   "CURRENT",
	DESC:      "DESC",
	DISTINCT:  "DISTINCT",
	ELSE:      "ELSE",
	END:       "END",
	FALSE:     "FALSE",
	FILTER:    "FILTER",
	FIRST:     "FIRST",
	FOLLOWING: "FOLLOWING",
	GROUPS:    "GROUPS",
	IN:        "IN",
	IS:        "IS",
	LAST:      "LAST",
	LIKE:      "LIKE",
	NOT:       "NOT",
	NULL:      "NULL",
	NULLS:     "NULLS",
	OR:        "OR",
	ORDER:     "ORDER",
	OVER:      "OVER",
	PARTITION: "PARTITION",
	PRECEDING: "PRECEDING",
	RANGE:     "RANGE",
	ROW:       "ROW",
	ROWS:      "ROWS",
	THEN:      "THEN",
	TRUE:      "TRUE",
	UNBOUNDED: "UNBOUNDED",
	WHEN:      "WHEN",
	WHERE:     "WHERE",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"and":       AND,
	"as":        AS,
	"asc":       ASC,
	"between":   BETWEEN,
	"by":        BY,
	"case":      CASE,
	"cast":      CAST,
	"current":   CURRENT,
	"desc":      DESC,
	"distinct":  DISTINCT,
	"else":      ELSE,
	"end":       END,
	"false":     FALSE,
	"filter":    FILTER,
	"first":     FIRST,
	"following": FOLLOWING,
	"groups":    GROUPS,
	"in":        IN,
	"is":        IS,
	"last":      LAST,
	"like":      LIKE,
	"not":       NOT,
	"null":      NULL,
	"nulls":     NULLS,
	"or":        OR,
	"order":     ORDER,
	"over":      OVER,
	"partition": PARTITION,
	"preceding": PRECEDING,
	"range":     RANGE,
	"row":       ROW,
	"rows":      ROWS,
	"then":      THEN,
	"true":      TRUE,
	"unbounded": UNBOUNDED,
	"when":      WHEN,
	"where":     WHERE,
}

// LookupIdent returns the token type for the given lowercase identifier.
// If the identifier is a builtin keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a builtin keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= WHERE
}

// IsOperator returns true if the token type is a builtin operator.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= ARROW
}

// Token represents a lexical token with position information.
//
// Literal holds the decoded value (quotes removed, escapes resolved).
// Raw holds the exact source text of the token, delimiters included.
type Token struct {
	Type    TokenType
	Literal string
	Raw     string
	Pos     Position
}

// Quoted reports whether the token was written with surrounding delimiters
// (string literals and quoted identifiers).
func (t Token) Quoted() bool {
	return len(t.Raw) > 0 && t.Raw != t.Literal && (t.Type == STRING || t.Type == IDENT)
}
