package format

import (
	"strings"

	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

func (p *Printer) formatExpr(e core.Expr) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *core.Literal:
		p.formatLiteral(expr)
	case *core.ColumnRef:
		p.formatColumnRef(expr)
	case *core.Identifier:
		p.ident(expr.Name)
	case *core.BinaryExpr:
		p.formatBinaryExpr(expr)
	case *core.UnaryExpr:
		p.formatUnaryExpr(expr)
	case *core.FuncCall:
		p.formatFuncCall(expr)
	case *core.CaseExpr:
		p.formatCaseExpr(expr)
	case *core.CastExpr:
		p.formatCastExpr(expr)
	case *core.InExpr:
		p.formatInExpr(expr)
	case *core.BetweenExpr:
		p.formatBetweenExpr(expr)
	case *core.IsNullExpr:
		p.formatIsNullExpr(expr)
	case *core.IsBoolExpr:
		p.formatIsBoolExpr(expr)
	case *core.LikeExpr:
		p.formatLikeExpr(expr)
	case *core.ParenExpr:
		p.write("(")
		p.formatExpr(expr.Expr)
		p.write(")")
	case *core.TupleExpr:
		p.write("(")
		p.formatExprList(expr.Elements)
		p.write(")")
	case *core.StarExpr:
		p.formatStarExpr(expr)
	case *core.MemberExpr:
		p.formatExpr(expr.Base)
		p.write(".")
		p.ident(expr.Name)
	case *core.ArrayLiteral:
		p.formatArrayLiteral(expr)
	case *core.AliasedExpr:
		p.formatAliasedExpr(expr)
	case *core.LambdaExpr:
		p.formatLambdaExpr(expr)
	}
}

func (p *Printer) formatExprList(exprs []core.Expr) {
	p.formatList(len(exprs), func(i int) { p.formatExpr(exprs[i]) }, ", ")
}

func (p *Printer) formatLiteral(lit *core.Literal) {
	switch lit.Type {
	case core.LiteralString:
		p.write("'")
		p.write(strings.ReplaceAll(lit.Value, "'", "''"))
		p.write("'")
	case core.LiteralBool:
		if strings.EqualFold(lit.Value, "true") {
			p.kw(token.TRUE)
		} else {
			p.kw(token.FALSE)
		}
	case core.LiteralNull:
		p.kw(token.NULL)
	default:
		p.write(lit.Value)
	}
}

func (p *Printer) formatColumnRef(col *core.ColumnRef) {
	if col.Table != "" {
		p.ident(col.Table)
		p.write(".")
	}
	p.ident(col.Column)
}

func (p *Printer) formatBinaryExpr(expr *core.BinaryExpr) {
	p.formatExpr(expr.Left)
	p.space()
	p.kw(expr.Op)
	p.space()
	p.formatExpr(expr.Right)
}

func (p *Printer) formatUnaryExpr(expr *core.UnaryExpr) {
	p.kw(expr.Op)
	operand := p.sub(func(s *Printer) { s.formatExpr(expr.Expr) })
	// "- -x" must not collapse into a "--" comment
	if expr.Op == token.NOT || strings.HasPrefix(operand, "-") {
		p.space()
	}
	p.write(operand)
}

func (p *Printer) formatFuncCall(fn *core.FuncCall) {
	if fn.Owner != nil {
		p.formatExpr(fn.Owner)
		p.write(".")
	}
	p.name(fn.Name)
	p.write("(")

	if fn.Distinct {
		p.kw(token.DISTINCT)
		p.space()
	}

	if fn.Star {
		p.write("*")
	} else {
		p.formatExprList(fn.Args)
	}

	p.write(")")

	// FILTER clause
	if fn.Filter != nil {
		p.space()
		p.kw(token.FILTER)
		p.write(" (")
		p.kw(token.WHERE)
		p.space()
		p.formatExpr(fn.Filter)
		p.write(")")
	}

	// OVER clause (window function)
	if fn.Window != nil {
		p.space()
		p.formatWindowSpec(fn.Window)
	}
}

func (p *Printer) formatWindowSpec(w *core.WindowSpec) {
	p.kw(token.OVER)
	p.write(" (")

	var parts []string
	if len(w.PartitionBy) > 0 {
		parts = append(parts, p.sub(func(s *Printer) {
			s.kw(token.PARTITION, token.BY)
			s.space()
			s.formatExprList(w.PartitionBy)
		}))
	}

	if len(w.OrderBy) > 0 {
		parts = append(parts, p.sub(func(s *Printer) {
			s.kw(token.ORDER, token.BY)
			s.space()
			s.formatList(len(w.OrderBy), func(i int) { s.formatOrderByItem(w.OrderBy[i]) }, ", ")
		}))
	}

	if w.Frame != nil {
		parts = append(parts, p.sub(func(s *Printer) { s.formatFrameSpec(w.Frame) }))
	}

	p.write(strings.Join(parts, " "))
	p.write(")")
}

func (p *Printer) formatOrderByItem(item core.OrderByItem) {
	p.formatExpr(item.Expr)
	if item.Desc {
		p.space()
		p.kw(token.DESC)
	}
	if item.NullsFirst != nil {
		p.space()
		if *item.NullsFirst {
			p.kw(token.NULLS, token.FIRST)
		} else {
			p.kw(token.NULLS, token.LAST)
		}
	}
}

func (p *Printer) formatFrameSpec(f *core.FrameSpec) {
	p.write(string(f.Type))
	p.space()
	if f.End == nil {
		p.formatFrameBound(f.Start)
		return
	}
	p.kw(token.BETWEEN)
	p.space()
	p.formatFrameBound(f.Start)
	p.space()
	p.kw(token.AND)
	p.space()
	p.formatFrameBound(f.End)
}

func (p *Printer) formatFrameBound(b *core.FrameBound) {
	if b == nil {
		return
	}
	switch b.Type {
	case core.FrameUnboundedPreceding:
		p.kw(token.UNBOUNDED, token.PRECEDING)
	case core.FrameUnboundedFollowing:
		p.kw(token.UNBOUNDED, token.FOLLOWING)
	case core.FrameCurrentRow:
		p.kw(token.CURRENT, token.ROW)
	case core.FrameExprPreceding:
		p.formatExpr(b.Offset)
		p.space()
		p.kw(token.PRECEDING)
	case core.FrameExprFollowing:
		p.formatExpr(b.Offset)
		p.space()
		p.kw(token.FOLLOWING)
	}
}

func (p *Printer) formatCaseExpr(c *core.CaseExpr) {
	p.kw(token.CASE)

	if c.Operand != nil {
		p.space()
		p.formatExpr(c.Operand)
	}

	for _, w := range c.Whens {
		p.space()
		p.kw(token.WHEN)
		p.space()
		p.formatExpr(w.Condition)
		p.space()
		p.kw(token.THEN)
		p.space()
		p.formatExpr(w.Result)
	}

	if c.Else != nil {
		p.space()
		p.kw(token.ELSE)
		p.space()
		p.formatExpr(c.Else)
	}

	p.space()
	p.kw(token.END)
}

func (p *Printer) formatCastExpr(c *core.CastExpr) {
	if c.Operator {
		p.formatExpr(c.Expr)
		p.write("::")
		p.write(c.TypeName)
		return
	}
	p.kw(token.CAST)
	p.write("(")
	p.formatExpr(c.Expr)
	p.space()
	p.kw(token.AS)
	p.space()
	p.write(c.TypeName)
	p.write(")")
}

func (p *Printer) formatInExpr(in *core.InExpr) {
	p.formatExpr(in.Expr)
	if in.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.IN)
	p.write(" (")
	p.formatExprList(in.Values)
	p.write(")")
}

func (p *Printer) formatBetweenExpr(b *core.BetweenExpr) {
	p.formatExpr(b.Expr)
	if b.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.BETWEEN)
	p.space()
	p.formatExpr(b.Low)
	p.space()
	p.kw(token.AND)
	p.space()
	p.formatExpr(b.High)
}

func (p *Printer) formatIsNullExpr(is *core.IsNullExpr) {
	p.formatExpr(is.Expr)
	p.space()
	p.kw(token.IS)
	if is.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.NULL)
}

func (p *Printer) formatIsBoolExpr(is *core.IsBoolExpr) {
	p.formatExpr(is.Expr)
	p.space()
	p.kw(token.IS)
	if is.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	if is.Value {
		p.kw(token.TRUE)
	} else {
		p.kw(token.FALSE)
	}
}

func (p *Printer) formatLikeExpr(like *core.LikeExpr) {
	p.formatExpr(like.Expr)
	if like.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(like.Op)
	p.space()
	p.formatExpr(like.Pattern)
}

func (p *Printer) formatStarExpr(star *core.StarExpr) {
	if star.Table != "" {
		p.ident(star.Table)
		p.write(".")
	}
	p.write("*")
}

func (p *Printer) formatArrayLiteral(a *core.ArrayLiteral) {
	p.formatExpr(a.Base)
	p.write("[")
	p.formatExprList(a.Elements)
	p.write("]")
}

// formatAliasedExpr writes expr AS alias. Identifier aliases stay bare when
// they lex as plain words; string literal aliases are written between single
// quotes exactly as the alias handler kept them.
func (p *Printer) formatAliasedExpr(a *core.AliasedExpr) {
	p.formatExpr(a.Expr)
	p.space()
	p.kw(token.AS)
	p.space()

	switch alias := a.Alias.(type) {
	case *core.Identifier:
		p.name(alias.Name)
	case *core.Literal:
		if alias.Type == core.LiteralString {
			p.write(p.quoteAliasText(alias.Value))
			return
		}
		p.formatLiteral(alias)
	default:
		p.formatExpr(alias)
	}
}

// quoteAliasText delimits raw alias text so that stripping the delimiters
// gives it back. Single quotes are used unless the text holds a lone quote.
func (p *Printer) quoteAliasText(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != '\'' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			i++
			continue
		}
		return p.dialect.Identifiers.Quote + s + p.dialect.Identifiers.QuoteEnd
	}
	return "'" + s + "'"
}

func (p *Printer) formatLambdaExpr(lambda *core.LambdaExpr) {
	if len(lambda.Params) == 1 {
		p.ident(lambda.Params[0])
	} else {
		p.write("(")
		p.formatList(len(lambda.Params), func(i int) { p.ident(lambda.Params[i]) }, ", ")
		p.write(")")
	}
	p.write(" -> ")
	p.formatExpr(lambda.Body)
}
