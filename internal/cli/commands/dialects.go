package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqldialect/pkg/dialect"
)

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name       string   `json:"name" yaml:"name"`
	Quote      string   `json:"quote" yaml:"quote"`
	Aggregates []string `json:"aggregates" yaml:"aggregates"`
	Current    bool     `json:"current,omitempty" yaml:"current,omitempty"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			var infos []DialectInfo
			var rows [][]any
			for _, name := range dialect.List() {
				d := dialect.MustGet(name)
				info := DialectInfo{
					Name:       d.Name,
					Quote:      d.Identifiers.Quote,
					Aggregates: d.Aggregates(),
					Current:    d == cc.Dialect,
				}
				infos = append(infos, info)

				marker := ""
				if info.Current {
					marker = "*"
				}
				rows = append(rows, []any{marker + info.Name, info.Quote, len(info.Aggregates), strings.Join(info.Aggregates, " ")})
			}

			r := cc.Renderer
			return r.Value(infos, func() {
				r.Table([]string{"dialect", "quote", "aggregates", "names"}, rows)
			})
		},
	}
}
