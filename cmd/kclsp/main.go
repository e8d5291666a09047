// Command kclsp exposes the language server core's formatter as a
// standalone CLI tool (spec.md §6's "CLI surface (format tool)"),
// grounded on mcgru-funxy/cmd/funxy/main.go's read-input/run-pipeline/
// print-or-exit flow but driven by github.com/spf13/cobra instead of
// hand-rolled os.Args parsing, matching the flag library the rest of the
// example corpus's CLI-shaped repos reach for.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/funvibe/kclsp/internal/format"
	"github.com/funvibe/kclsp/internal/pipeline"
	"github.com/funvibe/kclsp/internal/position"
	"github.com/funvibe/kclsp/internal/semtok"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kclsp",
		Short: "kclsp is a formatter and inspection tool for KCL source",
	}
	root.AddCommand(newFormatCmd())
	return root
}

func newFormatCmd() *cobra.Command {
	var asHTML bool
	var outPath string

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format a KCL source file (or stdin) and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}

			ctx := pipeline.Run("<stdin>", source)
			if ctx.Root == nil || len(ctx.Diagnostics) > 0 {
				for _, d := range ctx.Diagnostics {
					fmt.Fprintf(os.Stderr, "%s: %s (%s) at %s\n", d.Severity, d.Message, d.Code, d.Range)
				}
				return fmt.Errorf("parse failed")
			}

			formatted := format.Format(ctx.Root, source)

			if outPath != "" {
				if asHTML {
					// Re-lex/parse the formatted text so the rendered
					// output's own token positions drive the markup,
					// rather than the pre-format source's.
					fctx := pipeline.Run("<stdin>", formatted)
					idx := position.NewIndex(formatted)
					out := semtok.RenderHTML(fctx.Root, fctx.Tokens, formatted, idx)
					return os.WriteFile(outPath, []byte(out), 0o644)
				}
				// No ANSI color codes in a redirected plain-text file.
				return os.WriteFile(outPath, []byte(formatted), 0o644)
			}

			// Re-lex/parse the formatted text so the rendered output's
			// own token positions drive coloring, rather than the
			// pre-format source's.
			fctx := pipeline.Run("<stdin>", formatted)
			idx := position.NewIndex(formatted)

			var out string
			if asHTML {
				out = semtok.RenderHTML(fctx.Root, fctx.Tokens, formatted, idx)
			} else {
				out = semtok.RenderANSI(fctx.Root, fctx.Tokens, formatted, idx)
			}
			fmt.Print(out)
			if len(out) == 0 || out[len(out)-1] != '\n' {
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "render an HTML fragment instead of ANSI color")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write formatted output to this path instead of stdout")
	return cmd
}

// readSource reads the file named by args[0], or stdin when args is
// empty and stdin is not a terminal.
func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("usage: kclsp format <file>, or pipe source on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
