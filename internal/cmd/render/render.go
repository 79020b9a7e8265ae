// Package render provides the render command.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/open-cli-collective/chatmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/chatmd/internal/config"
	"github.com/open-cli-collective/chatmd/internal/logging"
	"github.com/open-cli-collective/chatmd/pkg/markup"
)

// Targets accepted by --to.
const (
	TargetANSI   = "ansi"
	TargetText   = "text"
	TargetHTML   = "html"
	TargetMarkup = "markup"
	TargetADF    = "adf"
)

// Targets returns the accepted --to values.
func Targets() []string {
	return []string{TargetANSI, TargetText, TargetHTML, TargetMarkup, TargetADF}
}

type renderOptions struct {
	names   cmdutil.NameFlags
	to      string
	width   int
	noColor bool
	stdin   io.Reader
	stdout  io.Writer
	source  cmdutil.NameSource
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [message...]",
		Short: "Render a chat message for display",
		Long: `Parse a chat message and render it as styled terminal text, plain text,
HTML, normalized markup or an Atlassian Document Format paragraph.

Terminal and plain text output is word wrapped to --width columns. A width
of 0 uses the terminal width when stdout is a terminal and disables
wrapping otherwise.`,
		Example: `  # Styled terminal output
  chatmd render '*deploy* done :tada: see https://ci.example.com/42'

  # HTML fragment
  chatmd render --to html -m alice 'thanks @alice'

  # Wrap plain text at 40 columns
  chatmd render --to text --width 40 < message.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runRender(cmd.Context(), cfg, args, opts)
		},
	}

	opts.names.Register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.to, "to", "t", TargetANSI, "Output target: "+strings.Join(Targets(), ", "))
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Wrap text output at this many columns (0: terminal width, -1: never)")

	_ = cmd.RegisterFlagCompletionFunc("to", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return Targets(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRender(ctx context.Context, cfg *config.Config, args []string, opts *renderOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !validTarget(opts.to) {
		return fmt.Errorf("invalid target %q (valid: %s)", opts.to, strings.Join(Targets(), ", "))
	}
	if opts.noColor {
		color.NoColor = true
	}

	parseOpts, err := opts.names.Options(ctx, cfg, opts.source)
	if err != nil {
		return err
	}
	message, err := cmdutil.ReadInput(args, opts.stdin)
	if err != nil {
		return err
	}

	nodes := markup.Parse(message, parseOpts)
	logging.Ctx(ctx).Debug("rendering message", "target", opts.to, "nodes", len(nodes))

	var out string
	switch opts.to {
	case TargetANSI:
		out = wrap(markup.ToANSI(nodes), resolveWidth(opts.width, opts.stdout))
	case TargetText:
		out = wrap(markup.PlainText(nodes), resolveWidth(opts.width, opts.stdout))
	case TargetHTML:
		out = markup.ToHTML(nodes)
	case TargetMarkup:
		out = markup.Format(nodes)
	case TargetADF:
		if out, err = markup.ToADF(nodes); err != nil {
			return fmt.Errorf("failed to build ADF: %w", err)
		}
	}

	_, err = fmt.Fprintln(opts.stdout, out)
	return err
}

func validTarget(to string) bool {
	for _, t := range Targets() {
		if to == t {
			return true
		}
	}
	return false
}

// wrap word wraps s at width columns. ANSI sequences do not count
// toward the width.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// resolveWidth returns the explicit width, or for 0 the width of w when
// it is a terminal.
func resolveWidth(width int, w io.Writer) int {
	if width != 0 {
		return width
	}
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
		return cols
	}
	return 0
}
