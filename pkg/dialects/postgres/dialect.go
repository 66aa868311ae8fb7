// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import (
	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"
)

// Name is the registry name of the dialect.
const Name = "postgres"

func init() {
	dialect.Register(Name, New)
}

// aggregates lists the PostgreSQL aggregate functions.
var aggregates = []string{
	// Standard aggregates
	"SUM", "COUNT", "AVG", "MIN", "MAX",
	"STDDEV", "STDDEV_POP", "STDDEV_SAMP",
	"VARIANCE", "VAR_POP", "VAR_SAMP",
	// PostgreSQL specific
	"ARRAY_AGG", "STRING_AGG",
	"JSONB_AGG", "JSONB_OBJECT_AGG", "JSON_AGG", "JSON_OBJECT_AGG",
	"BOOL_AND", "BOOL_OR", "EVERY",
	"BIT_AND", "BIT_OR", "BIT_XOR",
	"CORR", "COVAR_POP", "COVAR_SAMP",
	"REGR_AVGX", "REGR_AVGY", "REGR_COUNT", "REGR_INTERCEPT",
	"REGR_R2", "REGR_SLOPE", "REGR_SXX", "REGR_SXY", "REGR_SYY",
	"PERCENTILE_CONT", "PERCENTILE_DISC",
	"MODE",
	"XMLAGG",
}

// reservedWords contains common PostgreSQL reserved words.
// This is a manually maintained list of frequently problematic identifiers.
// For a complete list, use pg_get_keywords() at runtime.
var reservedWords = []string{
	"user", "order", "group", "table", "select", "from", "where", "index",
	"all", "and", "any", "array", "as", "asc", "asymmetric", "authorization",
	"between", "binary", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "cross", "current_catalog", "current_date",
	"current_role", "current_schema", "current_time", "current_timestamp",
	"current_user", "default", "deferrable", "desc", "distinct", "do", "else",
	"end", "except", "false", "fetch", "for", "foreign", "freeze", "full",
	"grant", "having", "ilike", "in", "initially", "inner", "intersect",
	"into", "is", "isnull", "join", "lateral", "leading", "left", "like",
	"limit", "localtime", "localtimestamp", "natural", "not", "notnull",
	"null", "offset", "on", "only", "or", "outer", "overlaps", "placing",
	"primary", "references", "returning", "right", "session_user", "similar",
	"some", "symmetric", "then", "to", "trailing", "true", "union", "unique",
	"using", "variadic", "verbose", "when", "window", "with",
}

// New builds the PostgreSQL dialect: ANSI operators plus ILIKE and the ::
// cast, with the default alias and suffix behavior.
func New() *dialect.Dialect {
	return dialect.NewDialect(Name).
		Identifiers(`"`, `"`, `""`, core.NormLowercase).
		Operators(dialect.ANSIOperators, dialect.IlikeOperator, dialect.CastOperator).
		Aggregates(aggregates...).
		WithReservedWords(reservedWords...).
		Build()
}
