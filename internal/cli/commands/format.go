package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqldialect/pkg/format"
)

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "format [expr...]",
		Short: "Print an expression as canonical SQL",
		Long: `Parse a SQL expression and print it back in canonical form: keywords in
upper case, single spaces between tokens, and identifiers quoted only when
the dialect requires it.`,
		Example: `  sqldialect format "a+b*  2"
  echo "x -> x*2" | sqldialect format`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			sql := format.Expr(expr, cc.Dialect)
			r := cc.Renderer
			return r.Value(map[string]string{"sql": sql}, func() {
				r.Println(sql)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Alias, "alias", false, "Parse an expression followed by an optional alias")

	return cmd
}
