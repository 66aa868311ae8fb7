package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqldialect/internal/cli/output"
	"github.com/leapstack-labs/sqldialect/internal/config"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"

	// Register the built-in dialects.
	_ "github.com/leapstack-labs/sqldialect/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqldialect/pkg/dialects/clickhouse"
	_ "github.com/leapstack-labs/sqldialect/pkg/dialects/postgres"
)

// errNoInput is returned when neither arguments nor stdin carry an expression.
var errNoInput = errors.New("no expression given")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Dialect  *dialect.Dialect
}

// NewCommandContext resolves the configured dialect and builds a renderer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	d, err := dialect.Lookup(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()).With("dialect", d.Name),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
		Dialect:  d,
	}, nil
}

// readInput joins args, or reads stdin when there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var input string
	if len(args) > 0 {
		input = strings.Join(args, " ")
	} else {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		input = string(content)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return "", errNoInput
	}
	return input, nil
}

// writeTree prints a tree produced by format.Tree as indented text.
func writeTree(r *output.Renderer, node map[string]any, label string, depth int) {
	indent := strings.Repeat("  ", depth)
	styles := r.Styles()

	keys := make([]string, 0, len(node))
	for k := range node {
		if k != "kind" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	head := indent + label
	if kind, ok := node["kind"].(string); ok {
		head += styles.Keyword.Render(kind)
	}
	var attrs []string
	for _, k := range keys {
		switch v := node[k].(type) {
		case map[string]any, []any:
		default:
			attrs = append(attrs, fmt.Sprintf("%s=%v", k, v))
		}
	}
	if len(attrs) > 0 {
		head += " " + styles.Muted.Render(strings.Join(attrs, " "))
	}
	r.Println(strings.TrimRight(head, " "))

	for _, k := range keys {
		switch v := node[k].(type) {
		case map[string]any:
			writeTree(r, v, k+": ", depth+1)
		case []any:
			for i, item := range v {
				if m, ok := item.(map[string]any); ok {
					writeTree(r, m, fmt.Sprintf("%s[%d]: ", k, i), depth+1)
				} else {
					r.Printf("%s  %s[%d]: %v\n", indent, k, i, item)
				}
			}
		}
	}
}
