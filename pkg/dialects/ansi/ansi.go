// Package ansi provides the base ANSI SQL dialect with standard operator
// precedence and the default parser extension points.
//
// Dialects like ClickHouse or PostgreSQL start from the same operator set
// and add or override specific behaviors.
package ansi

import (
	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"
)

// Name is the registry name of the dialect.
const Name = "ansi"

func init() {
	dialect.Register(Name, New)
}

// aggregates lists the ANSI aggregate functions.
var aggregates = []string{"AVG", "COUNT", "MAX", "MIN", "SUM", "EVERY"}

// reservedWords contains ANSI reserved words that need quoting when used as
// identifiers, beyond the parser keywords.
var reservedWords = []string{
	"all", "any", "create", "cross", "delete", "except", "exists", "from",
	"full", "group", "having", "inner", "insert", "intersect", "into", "join",
	"left", "limit", "natural", "offset", "on", "outer", "right", "select",
	"some", "table", "union", "update", "using", "values", "window", "with",
}

// New builds the ANSI dialect.
func New() *dialect.Dialect {
	return dialect.NewDialect(Name).
		Identifiers(`"`, `"`, `""`, core.NormLowercase).
		Operators(dialect.ANSIOperators).
		Aggregates(aggregates...).
		WithReservedWords(reservedWords...).
		Build()
}
