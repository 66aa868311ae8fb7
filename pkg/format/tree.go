package format

import (
	"github.com/leapstack-labs/sqldialect/pkg/core"
)

// Tree converts e into nested maps tagged with a "kind" key, suitable for
// JSON or YAML output. Empty optional fields are omitted.
func Tree(e core.Expr) map[string]any {
	if e == nil {
		return nil
	}

	switch expr := e.(type) {
	case *core.Literal:
		m := node("literal", "type", expr.Type.String())
		m["value"] = expr.Value
		return m
	case *core.ColumnRef:
		return node("column", "table", expr.Table, "name", expr.Column)
	case *core.Identifier:
		return node("identifier", "name", expr.Name)
	case *core.BinaryExpr:
		return node("binary", "op", expr.Op.String(), "left", Tree(expr.Left), "right", Tree(expr.Right))
	case *core.UnaryExpr:
		return node("unary", "op", expr.Op.String(), "expr", Tree(expr.Expr))
	case *core.FuncCall:
		return funcTree(expr)
	case *core.CaseExpr:
		whens := make([]any, 0, len(expr.Whens))
		for _, w := range expr.Whens {
			whens = append(whens, map[string]any{"when": Tree(w.Condition), "then": Tree(w.Result)})
		}
		return node("case", "operand", Tree(expr.Operand), "whens", whens, "else", Tree(expr.Else))
	case *core.CastExpr:
		return node("cast", "expr", Tree(expr.Expr), "type", expr.TypeName, "operator", expr.Operator)
	case *core.InExpr:
		return node("in", "expr", Tree(expr.Expr), "not", expr.Not, "values", trees(expr.Values))
	case *core.BetweenExpr:
		return node("between", "expr", Tree(expr.Expr), "not", expr.Not, "low", Tree(expr.Low), "high", Tree(expr.High))
	case *core.IsNullExpr:
		return node("is_null", "expr", Tree(expr.Expr), "not", expr.Not)
	case *core.IsBoolExpr:
		return node("is_bool", "expr", Tree(expr.Expr), "not", expr.Not, "value", expr.Value)
	case *core.LikeExpr:
		return node("like", "op", expr.Op.String(), "expr", Tree(expr.Expr), "not", expr.Not, "pattern", Tree(expr.Pattern))
	case *core.ParenExpr:
		return node("paren", "expr", Tree(expr.Expr))
	case *core.TupleExpr:
		return node("tuple", "elements", trees(expr.Elements))
	case *core.StarExpr:
		return node("star", "table", expr.Table)
	case *core.MemberExpr:
		return node("member", "base", Tree(expr.Base), "name", expr.Name)
	case *core.ArrayLiteral:
		return node("array", "base", Tree(expr.Base), "elements", trees(expr.Elements))
	case *core.AliasedExpr:
		return node("aliased", "expr", Tree(expr.Expr), "alias", Tree(expr.Alias))
	case *core.LambdaExpr:
		params := make([]any, len(expr.Params))
		for i, param := range expr.Params {
			params[i] = param
		}
		return node("lambda", "params", params, "body", Tree(expr.Body))
	default:
		return node("unknown")
	}
}

func funcTree(fn *core.FuncCall) map[string]any {
	m := node("call",
		"owner", Tree(fn.Owner),
		"name", fn.Name,
		"distinct", fn.Distinct,
		"star", fn.Star,
		"aggregate", fn.Aggregate,
		"args", trees(fn.Args),
		"filter", Tree(fn.Filter),
	)
	if w := fn.Window; w != nil {
		window := node("window", "partition_by", trees(w.PartitionBy))
		if len(w.OrderBy) > 0 {
			items := make([]any, 0, len(w.OrderBy))
			for _, item := range w.OrderBy {
				o := node("order_item", "expr", Tree(item.Expr), "desc", item.Desc)
				if item.NullsFirst != nil {
					o["nulls_first"] = *item.NullsFirst
				}
				items = append(items, o)
			}
			window["order_by"] = items
		}
		if f := w.Frame; f != nil {
			window["frame"] = node("frame", "type", string(f.Type), "start", boundTree(f.Start), "end", boundTree(f.End))
		}
		m["window"] = window
	}
	return m
}

func boundTree(b *core.FrameBound) map[string]any {
	if b == nil {
		return nil
	}
	return node("bound", "type", string(b.Type), "offset", Tree(b.Offset))
}

func trees(exprs []core.Expr) []any {
	if len(exprs) == 0 {
		return nil
	}
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = Tree(e)
	}
	return out
}

// node builds a kind-tagged map from key/value pairs, dropping zero values.
func node(kind string, kv ...any) map[string]any {
	m := map[string]any{"kind": kind}
	for i := 0; i+1 < len(kv); i += 2 {
		key := kv[i].(string)
		switch v := kv[i+1].(type) {
		case string:
			if v == "" {
				continue
			}
		case bool:
			if !v {
				continue
			}
		case map[string]any:
			if v == nil {
				continue
			}
		case []any:
			if v == nil {
				continue
			}
		}
		m[key] = kv[i+1]
	}
	return m
}
