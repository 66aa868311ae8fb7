package commands

import (
	"github.com/spf13/cobra"
)

// Classification reports whether a function name is an aggregate.
type Classification struct {
	Name      string `json:"name" yaml:"name"`
	Aggregate bool   `json:"aggregate" yaml:"aggregate"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <name...>",
		Short: "Report which function names are aggregates",
		Long: `Look up each function name in the configured dialect's aggregate table.
Lookups ignore ASCII case.`,
		Example: `  sqldialect classify sum upper stddev
  sqldialect classify -d ansi -o json avg rowNumber`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			results := make([]Classification, len(args))
			rows := make([][]any, len(args))
			for i, name := range args {
				results[i] = Classification{Name: name, Aggregate: cc.Dialect.IsAggregate(name)}
				rows[i] = []any{name, results[i].Aggregate}
			}

			r := cc.Renderer
			return r.Value(results, func() {
				r.Table([]string{"function", "aggregate"}, rows)
			})
		},
	}
}
