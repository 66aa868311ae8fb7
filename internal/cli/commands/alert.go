package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqldialect/internal/alert"
)

// AlertOptions holds options for the alert command.
type AlertOptions struct {
	Content  string
	Markdown bool
}

// NewAlertCommand creates the alert command.
func NewAlertCommand() *cobra.Command {
	opts := &AlertOptions{}

	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Render query results as an alert email body",
		Long: `Render a JSON array of result rows as an HTML alert body.

With --show-type table every row becomes a table row under a header built
from the first row's keys. With --show-type text each row becomes a block of
key/value rows under the title. Output is capped at 1000 rows unless --all
is given (text mode is always capped). --markdown converts the HTML body to
Markdown.

Title, show type and --all default to the alert section of the config file.`,
		Example: `  sqldialect alert --content rows.json --title "Failed jobs"
  cat rows.json | sqldialect alert --show-type text --markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAlert(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Content, "content", "-", "JSON file with result rows (- for stdin)")
	cmd.Flags().String("title", "", "Alert title")
	cmd.Flags().String("show-type", "table", "Layout: table or text")
	cmd.Flags().Bool("all", false, "Render all rows in table mode")
	cmd.Flags().BoolVar(&opts.Markdown, "markdown", false, "Emit Markdown instead of HTML")

	_ = cmd.RegisterFlagCompletionFunc("show-type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "text"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runAlert(cmd *cobra.Command, opts *AlertOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	settings := cc.Cfg.Alert

	show, err := alert.ParseShowType(settings.ShowType)
	if err != nil {
		return err
	}

	content, err := readContent(cmd, opts.Content)
	if err != nil {
		return err
	}

	body, err := alert.NewRenderer(cc.Logger).Render(settings.Title, content, show, settings.ShowAll)
	if err != nil {
		return err
	}

	if opts.Markdown {
		body, err = alert.Markdown(body)
		if err != nil {
			return err
		}
	}

	cc.Renderer.Println(body)
	return nil
}

func readContent(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	return string(b), nil
}
