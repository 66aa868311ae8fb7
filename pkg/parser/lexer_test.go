package parser_test

import (
	"testing"

	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"
	"github.com/leapstack-labs/sqldialect/pkg/parser"
	"github.com/leapstack-labs/sqldialect/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(toks []token.Token) []token.TokenType {
	types := make([]token.TokenType, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func TestTokenize_Operators(t *testing.T) {
	toks := parser.Tokenize("a <= b <> c != d || e -> f[1]", nil)
	assert.Equal(t, []token.TokenType{
		token.IDENT, token.LE, token.IDENT, token.NE, token.IDENT, token.NE, token.IDENT,
		token.DPIPE, token.IDENT, token.ARROW, token.IDENT, token.LBRACKET, token.NUMBER,
		token.RBRACKET, token.EOF,
	}, tokenTypes(toks))
}

func TestTokenize_RawAndLiteral(t *testing.T) {
	toks := parser.Tokenize(`'it''s' "Col""x" name 1.5e3`, nil)
	require.Len(t, toks, 5)

	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "it's", toks[0].Literal)
	assert.Equal(t, `'it''s'`, toks[0].Raw)
	assert.True(t, toks[0].Quoted())

	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, `Col"x`, toks[1].Literal)
	assert.Equal(t, `"Col""x"`, toks[1].Raw)
	assert.True(t, toks[1].Quoted())

	assert.Equal(t, "name", toks[2].Raw)
	assert.False(t, toks[2].Quoted())

	assert.Equal(t, token.NUMBER, toks[3].Type)
	assert.Equal(t, "1.5e3", toks[3].Literal)
}

func TestTokenize_Positions(t *testing.T) {
	toks := parser.Tokenize("a +\n  bb", nil)
	require.Len(t, toks, 4)
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, token.Position{Line: 1, Column: 3, Offset: 2}, toks[1].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 6}, toks[2].Pos)
}

func TestTokenize_Comments(t *testing.T) {
	toks := parser.Tokenize("a -- line\n + /* block */ b", nil)
	assert.Equal(t, []token.TokenType{token.IDENT, token.PLUS, token.IDENT, token.EOF}, tokenTypes(toks))
}

func TestTokenize_Keywords(t *testing.T) {
	toks := parser.Tokenize("Case when NOT between", nil)
	assert.Equal(t, []token.TokenType{token.CASE, token.WHEN, token.NOT, token.BETWEEN, token.EOF}, tokenTypes(toks))
}

func TestTokenize_Illegal(t *testing.T) {
	toks := parser.Tokenize("'open", nil)
	require.NotEmpty(t, toks)
	assert.Equal(t, token.ILLEGAL, toks[0].Type)
	assert.Equal(t, parser.ErrUnterminatedString, toks[0].Literal)

	toks = parser.Tokenize("a @ b", nil)
	assert.Equal(t, token.ILLEGAL, toks[1].Type)
	assert.Equal(t, "@", toks[1].Raw)
}

func TestTokenize_DialectSymbolsAndQuotes(t *testing.T) {
	d := dialect.NewDialect("lexer_test").
		Identifiers("`", "`", "``", core.NormCaseSensitive, `"`).
		Operators(dialect.CastOperator, dialect.IlikeOperator).
		Build()

	toks := parser.Tokenize("`a b`::Int32 ILIKE \"c\"", d)
	assert.Equal(t, []token.TokenType{token.IDENT, token.DCOLON, token.IDENT, token.ILIKE, token.IDENT, token.EOF}, tokenTypes(toks))
	assert.Equal(t, "a b", toks[0].Literal)
	assert.Equal(t, "c", toks[4].Literal)

	// Without the dialect, each colon is illegal and ILIKE is an identifier
	toks = parser.Tokenize("a::b ILIKE c", nil)
	assert.Equal(t, []token.TokenType{token.IDENT, token.ILLEGAL, token.ILLEGAL, token.IDENT, token.IDENT, token.IDENT, token.EOF}, tokenTypes(toks))
	assert.Equal(t, "illegal character ':'", toks[1].Literal)
}

func TestTokenize_BracesAreIllegal(t *testing.T) {
	toks := parser.Tokenize("{x}", nil)
	assert.Equal(t, []token.TokenType{token.ILLEGAL, token.IDENT, token.ILLEGAL, token.EOF}, tokenTypes(toks))
	assert.Equal(t, "illegal character '{'", toks[0].Literal)
	assert.Equal(t, "}", toks[2].Raw)
}

func TestTokenize_IdentifierUTF8(t *testing.T) {
	toks := parser.Tokenize("naïve_列 + 1", nil)
	assert.Equal(t, []token.TokenType{token.IDENT, token.PLUS, token.NUMBER, token.EOF}, tokenTypes(toks))
	assert.Equal(t, "naïve_列", toks[0].Literal)

	toks = parser.Tokenize("a\xff + 1", nil)
	require.Len(t, toks, 4)
	assert.Equal(t, token.ILLEGAL, toks[0].Type)
	assert.Equal(t, parser.ErrInvalidUTF8+" 0xff", toks[0].Literal)
	assert.Equal(t, "a\xff", toks[0].Raw)
	assert.Equal(t, token.PLUS, toks[1].Type)

	// A truncated multi-byte sequence is rejected too
	toks = parser.Tokenize("\xc3", nil)
	assert.Equal(t, []token.TokenType{token.ILLEGAL, token.EOF}, tokenTypes(toks))
}
