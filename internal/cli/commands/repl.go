package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqldialect/internal/cli/output"
	"github.com/leapstack-labs/sqldialect/pkg/dialect"
	"github.com/leapstack-labs/sqldialect/pkg/format"
	"github.com/leapstack-labs/sqldialect/pkg/parser"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse expressions interactively",
		Long: `Start an interactive session that parses each line as an expression and
prints its canonical SQL and tree.

Type .help for commands, .quit to exit.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}

	cmd.Flags().String("history", "", "History file (default: no history)")
	cmd.Flags().String("prompt", "", "Prompt")

	return cmd
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	session := &replSession{
		dialect: cc.Dialect,
		out:     output.NewRendererWithTTY(cmd.OutOrStdout(), cmd.ErrOrStderr(), cc.Renderer.IsTTY(), output.ModeText),
		errOut:  cmd.ErrOrStderr(),
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cc.Cfg.Repl.Prompt,
		HistoryFile:     cc.Cfg.Repl.HistoryFile,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sqldialect REPL (dialect: %s)\n", cc.Dialect.Name)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if session.handleLine(line) {
			break
		}
	}

	cc.Logger.Debug("repl closed", "dialect", session.dialect.Name)
	return nil
}

// replSession holds the state of one interactive session.
type replSession struct {
	dialect *dialect.Dialect
	out     *output.Renderer
	errOut  io.Writer
}

// handleLine processes one input line and reports whether to exit.
func (s *replSession) handleLine(line string) bool {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ".") {
		return s.handleDotCommand(line)
	}

	expr, err := parser.ParseAliasedExpression(line, s.dialect)
	if err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return false
	}

	s.out.Println(s.out.Styles().Bold.Render(format.Expr(expr, s.dialect)))
	writeTree(s.out, format.Tree(expr), "", 0)
	s.out.Println()
	return false
}

func (s *replSession) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out.Writer())

	case ".dialect":
		if len(parts) < 2 {
			s.out.Printf("Current dialect: %s (available: %s)\n", s.dialect.Name, strings.Join(dialect.List(), ", "))
			return false
		}
		d, err := dialect.Lookup(parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		s.dialect = d
		s.out.Printf("Dialect set to %s\n", d.Name)

	case ".aggregates":
		s.out.Println(strings.Join(s.dialect.Aggregates(), " "))

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .dialect [name]  Show or switch the dialect
  .aggregates      List the dialect's aggregate functions
  .quit / .exit    Exit the REPL

Tips:
  - Each line is parsed as one expression, optionally followed by an alias
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newCompleter creates a readline completer for dot-commands and dialect names.
func newCompleter() *readline.PrefixCompleter {
	names := dialect.List()
	items := make([]readline.PrefixCompleterInterface, 0, len(names))
	for _, name := range names {
		items = append(items, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", items...),
		readline.PcItem(".aggregates"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
