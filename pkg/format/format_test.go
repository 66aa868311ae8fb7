package format_test

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"
	"github.com/leapstack-labs/sqldialect/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqldialect/pkg/dialects/clickhouse"
	"github.com/leapstack-labs/sqldialect/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqldialect/pkg/format"
	"github.com/leapstack-labs/sqldialect/pkg/parser"
	"github.com/leapstack-labs/sqldialect/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpr(t *testing.T) {
	tests := []struct {
		name     string
		dialect  *dialect.Dialect
		input    string
		expected string
	}{
		{"arithmetic", nil, "1+2 *  3", "1 + 2 * 3"},
		{"keywords upper", nil, "a and not b or c", "a AND NOT b OR c"},
		{"ne canonical", nil, "a <> b", "a != b"},
		{"string escape", nil, "'it''s'", "'it''s'"},
		{"null and bools", nil, "x is not null and y is true", "x IS NOT NULL AND y IS TRUE"},
		{"quoted column", nil, `"My Col" + "order"`, `"My Col" + "order"`},
		{"qualified", nil, "t.col + t.*", "t.col + t.*"},
		{"function", nil, "count(distinct x) filter (where x > 0)", "COUNT(DISTINCT x) FILTER (WHERE x > 0)"},
		{"star call", nil, "count(*)", "COUNT(*)"},
		{"method", nil, "s.fn(1, 2)", "s.FN(1, 2)"},
		{"window", nil,
			"row_number() over (partition by a, b order by c desc nulls first rows between unbounded preceding and current row)",
			"ROW_NUMBER() OVER (PARTITION BY a, b ORDER BY c DESC NULLS FIRST ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)"},
		{"single bound frame", nil, "sum(x) over (order by y range 2 preceding)", "SUM(x) OVER (ORDER BY y RANGE 2 PRECEDING)"},
		{"case", nil, "case a when 1 then 'x' else 'y' end", "CASE a WHEN 1 THEN 'x' ELSE 'y' END"},
		{"cast", nil, "cast(x as varchar(10))", "CAST(x AS varchar(10))"},
		{"in between like", nil, "a not in (1,2) and b between 1 and 2 and c not like 'x%'",
			"a NOT IN (1, 2) AND b BETWEEN 1 AND 2 AND c NOT LIKE 'x%'"},
		{"parens kept", nil, "(a + b) * (c)", "(a + b) * (c)"},
		{"tuple", nil, "(1,2)", "(1, 2)"},
		{"double minus", nil, "- -x", "- -x"},
		{"not spacing", nil, "not(a)", "NOT (a)"},
		{"soft keyword column", nil, "first", `"first"`},
		{"postgres cast", postgres.New(), "x::int + 1", "x::int + 1"},
		{"postgres ilike", postgres.New(), "x ilike 'a'", "x ILIKE 'a'"},
		{"postgres reserved column", postgres.New(), "user", `"user"`},
		{"clickhouse array", clickhouse.New(), "m[1][ 2 ]", "m[1][2]"},
		{"clickhouse array literal", clickhouse.New(), "[1,2,[]]", "[1, 2, []]"},
		{"clickhouse backticks", clickhouse.New(), `"a b"`, "`a b`"},
		{"clickhouse lambda", clickhouse.New(), "arrayMap((x,y)->x+y, a, b)", "ARRAYMAP((x, y) -> x + y, a, b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.ParseExpression(tt.input, tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format.Expr(expr, tt.dialect))
		})
	}
}

func TestExpr_Aliases(t *testing.T) {
	tests := []struct {
		name     string
		dialect  *dialect.Dialect
		input    string
		expected string
	}{
		{"bare", nil, "x y", "x AS y"},
		{"quoted identifier", nil, `x AS "My ""A"""`, `x AS "My ""A"""`},
		{"reserved stays bare", postgres.New(), "x AS select", "x AS select"},
		{"clickhouse string literal", clickhouse.New(), "x AS 'abc'", "x AS 'abc'"},
		{"clickhouse doubled quote kept raw", clickhouse.New(), "x AS 'it''s'", "x AS 'it''s'"},
		{"clickhouse lone quote", clickhouse.New(), "x AS `it's`", "x AS `it's`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.ParseAliasedExpression(tt.input, tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format.Expr(expr, tt.dialect))
		})
	}
}

func TestExpr_RoundTrip(t *testing.T) {
	inputs := map[string][]string{
		ansi.Name: {
			"a - (b - c) * -d",
			"NOT a = 1 OR b IS NOT FALSE",
			"coalesce(t.a, 'it''s', NULL) || x",
			"sum(x) FILTER (WHERE y) OVER (ORDER BY z NULLS LAST GROUPS BETWEEN 1 PRECEDING AND 2 FOLLOWING)",
			"CASE WHEN a THEN b END",
			"a.b.c",
			"first + last",
			`"select" * "Mixed Case"`,
			"- - -1",
		},
		postgres.Name: {
			"x::numeric(10, 2) NOT ILIKE y",
			"left(s, 2)",
			`"user".id`,
		},
		clickhouse.Name: {
			"e[1][2]",
			"t.nested[1].name",
			"[1, [2, 3]][1]",
			"arrayFilter(x -> x > 1, arr)[1]",
			"(a, b) -> a * b",
			"m['k']::String",
			"`weird col`[1]",
		},
	}

	for name, exprs := range inputs {
		d := dialect.MustGet(name)
		for _, sql := range exprs {
			t.Run(name+"/"+sql, func(t *testing.T) {
				first, err := parser.ParseExpression(sql, d)
				require.NoError(t, err)
				out := format.Expr(first, d)
				second, err := parser.ParseExpression(out, d)
				require.NoError(t, err, out)
				assert.Equal(t, first, second, out)
			})
		}
	}
}

func TestExpr_AliasRoundTrip(t *testing.T) {
	inputs := map[string][]string{
		ansi.Name:       {"x AS y", `x "a b"`, "x 'lit'", `x AS "q""q"`},
		clickhouse.Name: {"x AS 'abc'", "x `b c`", `x "it's"`, "x AS y"},
	}

	for name, exprs := range inputs {
		d := dialect.MustGet(name)
		for _, sql := range exprs {
			t.Run(name+"/"+sql, func(t *testing.T) {
				first, err := parser.ParseAliasedExpression(sql, d)
				require.NoError(t, err)
				out := format.Expr(first, d)
				second, err := parser.ParseAliasedExpression(out, d)
				require.NoError(t, err, out)
				assert.Equal(t, first, second, out)
			})
		}
	}
}

func TestTree(t *testing.T) {
	expr, err := parser.ParseExpression("sum(m[1]) > 2", clickhouse.New())
	require.NoError(t, err)

	tree := format.Tree(expr)
	assert.Equal(t, map[string]any{
		"kind": "binary",
		"op":   ">",
		"left": map[string]any{
			"kind":      "call",
			"name":      "SUM",
			"aggregate": true,
			"args": []any{
				map[string]any{
					"kind": "array",
					"base": map[string]any{"kind": "column", "name": "m"},
					"elements": []any{
						map[string]any{"kind": "literal", "type": "number", "value": "1"},
					},
				},
			},
		},
		"right": map[string]any{"kind": "literal", "type": "number", "value": "2"},
	}, tree)

	_, err = json.Marshal(tree)
	require.NoError(t, err)
}

func TestTree_Window(t *testing.T) {
	expr, err := parser.ParseExpression("rank() over (order by x desc nulls first rows unbounded preceding)", nil)
	require.NoError(t, err)

	window, ok := format.Tree(expr)["window"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{map[string]any{
		"kind":        "order_item",
		"expr":        map[string]any{"kind": "column", "name": "x"},
		"desc":        true,
		"nulls_first": true,
	}}, window["order_by"])
	assert.Equal(t, map[string]any{
		"kind":  "frame",
		"type":  "ROWS",
		"start": map[string]any{"kind": "bound", "type": "UNBOUNDED PRECEDING"},
	}, window["frame"])
}

func TestTree_Nil(t *testing.T) {
	assert.Nil(t, format.Tree(nil))
	assert.Equal(t, "", format.Expr(nil, nil))
	assert.Equal(t, "x", format.Expr(&core.ColumnRef{Column: "x"}, nil))
	assert.Equal(t, "a LIKE b", format.Expr(&core.LikeExpr{
		Expr: &core.ColumnRef{Column: "a"}, Op: token.LIKE, Pattern: &core.ColumnRef{Column: "b"},
	}, nil))
}
