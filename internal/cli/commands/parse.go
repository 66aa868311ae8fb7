package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/format"
	"github.com/leapstack-labs/sqldialect/pkg/parser"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Alias bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [expr...]",
		Short: "Parse an expression and print its tree",
		Long: `Parse a SQL expression with the configured dialect and print the
resulting expression tree.

The expression is taken from the arguments, or from stdin when none are given.
With --output json or yaml the tree is printed as nested objects tagged with
a "kind" field.`,
		Example: `  # Print the tree for a ClickHouse array access
  sqldialect parse "tags[1] = 'x'"

  # Parse an aliased expression as JSON
  sqldialect parse --alias -o json "sum(x) AS total"

  # Use another dialect
  sqldialect parse -d postgres "name ILIKE 'a%'"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Alias, "alias", false, "Parse an expression followed by an optional alias")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	expr, err := parseInput(input, cc, opts.Alias)
	if err != nil {
		return err
	}

	tree := format.Tree(expr)
	r := cc.Renderer
	return r.Value(tree, func() {
		writeTree(r, tree, "", 0)
	})
}

func parseInput(input string, cc *CommandContext, alias bool) (core.Expr, error) {
	cc.Logger.Debug("parsing expression", "input", input, "alias", alias)

	var (
		expr core.Expr
		err  error
	)
	if alias {
		expr, err = parser.ParseAliasedExpression(input, cc.Dialect)
	} else {
		expr, err = parser.ParseExpression(input, cc.Dialect)
	}
	if err != nil {
		cc.Logger.Debug("parse failed", "error", err)
		return nil, err
	}
	return expr, nil
}
