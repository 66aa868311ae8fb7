package postgres_test

import (
	"testing"

	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"
	"github.com/leapstack-labs/sqldialect/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqldialect/pkg/parser"
	"github.com/leapstack-labs/sqldialect/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectRegistration(t *testing.T) {
	d, ok := dialect.Get("postgres")
	require.True(t, ok, "postgres dialect should be registered")
	assert.Equal(t, "postgres", d.Name)
	assert.Equal(t, `"`, d.Identifiers.Quote)
}

func TestFunctionClassifications(t *testing.T) {
	d := postgres.New()

	assert.True(t, d.IsAggregate("array_agg"))
	assert.True(t, d.IsAggregate("STRING_AGG"))
	assert.True(t, d.IsAggregate("bool_or"))
	assert.False(t, d.IsAggregate("now"))
	assert.False(t, d.IsAggregate("row_number"))
}

func TestIdentifierQuoting(t *testing.T) {
	d := postgres.New()

	assert.Equal(t, `"user"`, d.QuoteIdentifierIfNeeded("user"))
	assert.Equal(t, `"ilike"`, d.QuoteIdentifierIfNeeded("ilike"))
	assert.Equal(t, "users", d.QuoteIdentifierIfNeeded("users"))
	assert.Equal(t, `"a""b"`, d.QuoteIdentifier(`a"b`))
}

func TestOperators(t *testing.T) {
	d := postgres.New()

	got, err := parser.ParseExpression("name ILIKE 'a%' AND id::BIGINT > 3", d)
	require.NoError(t, err)
	assert.Equal(t, &core.BinaryExpr{
		Left: &core.LikeExpr{
			Expr:    &core.ColumnRef{Column: "name"},
			Pattern: &core.Literal{Type: core.LiteralString, Value: "a%"},
			Op:      token.ILIKE,
		},
		Op: token.AND,
		Right: &core.BinaryExpr{
			Left:  &core.CastExpr{Expr: &core.ColumnRef{Column: "id"}, TypeName: "BIGINT", Operator: true},
			Op:    token.GT,
			Right: &core.Literal{Type: core.LiteralNumber, Value: "3"},
		},
	}, got)

	got, err = parser.ParseExpression("x NOT ILIKE y", d)
	require.NoError(t, err)
	assert.Equal(t, &core.LikeExpr{
		Expr: &core.ColumnRef{Column: "x"}, Not: true,
		Pattern: &core.ColumnRef{Column: "y"}, Op: token.ILIKE,
	}, got)
}

func TestQuotedAliasIsIdentifier(t *testing.T) {
	got, err := parser.ParseAliasedExpression(`total AS "Grand Total"`, postgres.New())
	require.NoError(t, err)
	assert.Equal(t, &core.AliasedExpr{
		Expr:  &core.ColumnRef{Column: "total"},
		Alias: &core.Identifier{Name: "Grand Total"},
	}, got)
}
