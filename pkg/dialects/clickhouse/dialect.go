// Package clickhouse provides the ClickHouse SQL dialect definition.
//
// ClickHouse extends the ANSI expression grammar with bracket arrays:
// `[a, b]` builds an array and `expr[i]` applies an array suffix that can be
// chained (`m[1][2]`). Quoted aliases are kept as string literals, and the
// dialect adds the :: cast operator and `x -> body` lambdas.
package clickhouse

import (
	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"
	"github.com/leapstack-labs/sqldialect/pkg/spi"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// Name is the registry name of the dialect.
const Name = "clickhouse"

func init() {
	dialect.Register(Name, New)
}

// aggregates lists the functions the dialect tags as aggregates.
var aggregates = []string{
	"AVG", "COUNT", "MAX", "MIN", "STDDEV", "SUM", "ROW_NUMBER", "ROWNUMBER",
}

// reservedWords contains ClickHouse keywords that need quoting as identifiers.
var reservedWords = []string{
	"all", "any", "array", "asof", "create", "cross", "database", "except",
	"exists", "final", "format", "from", "full", "global", "group", "having",
	"ilike", "inner", "insert", "interval", "intersect", "into", "join",
	"left", "limit", "offset", "on", "outer", "prewhere", "right", "sample",
	"select", "settings", "table", "union", "using", "values", "with",
}

// New builds the ClickHouse dialect.
// Identifiers are case-sensitive and quoted with backticks or double quotes.
func New() *dialect.Dialect {
	return dialect.NewDialect(Name).
		Identifiers("`", "`", "``", core.NormCaseSensitive, `"`).
		Operators(dialect.ANSIOperators, dialect.IlikeOperator, dialect.CastOperator).
		AddInfixWithHandler(token.ARROW, spi.PrecedenceOr, parseLambda).
		AddPrefix(token.LBRACKET, parseArrayLiteral).
		PrimaryRest(parsePrimaryRest).
		AliasParser(parseAlias).
		Aggregates(aggregates...).
		WithReservedWords(reservedWords...).
		Build()
}
