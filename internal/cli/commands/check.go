package commands

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqldialect/pkg/parser"
)

// Diagnostic is a parse failure found by the check command.
type Diagnostic struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	if d.Column > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, d.Message)
	}
	return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
}

// CheckResult summarizes a check run.
type CheckResult struct {
	Files       int          `json:"files" yaml:"files"`
	Expressions int          `json:"expressions" yaml:"expressions"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// fileResult is the outcome of checking a single file.
type fileResult struct {
	expressions int
	diagnostics []Diagnostic
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file...>",
		Short: "Check files of expressions for syntax errors",
		Long: `Parse every non-empty line of the given files as one expression and report
each failure as file:line:column: message. Lines starting with -- are
comments. Files are checked concurrently, bounded by the workers setting.

Exits with a non-zero status when any expression fails to parse.`,
		Example: `  sqldialect check exprs.sql
  sqldialect check --workers 8 -d postgres a.sql b.sql`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	results := make([]fileResult, len(args))
	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(cc.Cfg.Workers)

	for i, path := range args {
		eg.Go(func() error {
			res, err := checkFile(ctx, cc, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	summary := CheckResult{Files: len(args), Diagnostics: []Diagnostic{}}
	for _, res := range results {
		summary.Expressions += res.expressions
		summary.Diagnostics = append(summary.Diagnostics, res.diagnostics...)
	}
	cc.Logger.Debug("check finished", "files", summary.Files, "expressions", summary.Expressions, "errors", len(summary.Diagnostics))

	r := cc.Renderer
	if err := r.Value(summary, func() {
		for _, d := range summary.Diagnostics {
			r.Println(d.String())
		}
		if len(summary.Diagnostics) == 0 {
			r.Success(fmt.Sprintf("%d expressions in %d files parsed", summary.Expressions, summary.Files))
		}
	}); err != nil {
		return err
	}

	if n := len(summary.Diagnostics); n > 0 {
		return fmt.Errorf("%d of %d expressions failed to parse", n, summary.Expressions)
	}
	return nil
}

func checkFile(ctx context.Context, cc *CommandContext, path string) (fileResult, error) {
	var res fileResult

	content, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return res, fmt.Errorf("failed to read %s: %w", path, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "--") {
			continue
		}
		res.expressions++

		if _, err := parser.ParseExpression(text, cc.Dialect); err != nil {
			res.diagnostics = append(res.diagnostics, diagnose(path, line, err))
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cc.Logger.Debug("checked file", "path", path, "expressions", res.expressions, "errors", len(res.diagnostics))
	return res, nil
}

func diagnose(path string, line int, err error) Diagnostic {
	d := Diagnostic{File: path, Line: line, Message: err.Error()}
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		d.Column = se.Pos.Column
		d.Message = se.Message
	}
	return d
}
