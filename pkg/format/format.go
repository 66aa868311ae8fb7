package format

import (
	"sync"

	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"
)

// defaultDialect quotes identifiers when no dialect is given.
var defaultDialect = sync.OnceValue(func() *dialect.Dialect {
	return dialect.NewDialect("default").
		Operators(dialect.ANSIOperators).
		Build()
})

// Expr renders e as canonical single-line SQL for dialect d.
// Parentheses come only from ParenExpr nodes, so a tree produced by the
// parser parses back to an equal tree.
func Expr(e core.Expr, d *dialect.Dialect) string {
	if d == nil {
		d = defaultDialect()
	}
	p := newPrinter(d)
	p.formatExpr(e)
	return p.String()
}
