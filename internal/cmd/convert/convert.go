// Package convert provides the convert command.
package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/chatmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/chatmd/internal/config"
	"github.com/open-cli-collective/chatmd/internal/logging"
	"github.com/open-cli-collective/chatmd/internal/view"
	"github.com/open-cli-collective/chatmd/pkg/markup"
)

// Source formats accepted by --from.
const (
	FromMarkdown = "markdown"
	FromHTML     = "html"
)

type convertOptions struct {
	names   cmdutil.NameFlags
	from    string
	parse   bool
	output  string
	noColor bool
	stdin   io.Reader
	stdout  io.Writer
}

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert markdown or HTML to chat markup",
		Long: `Convert a markdown or HTML document to chat markup.

The document is read from the named file, or from stdin when no file or
"-" is given. Without --from the format is taken from the file extension,
defaulting to markdown. With --parse the converted markup is parsed and
printed as a tree in the --output format.`,
		Example: `  # Convert a README
  chatmd convert README.md

  # Convert HTML from stdin
  curl -s https://example.com/notes.html | chatmd convert --from html

  # Convert and show the parsed tree as JSON
  chatmd convert notes.md --parse -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.noColor, _ = cmd.Flags().GetBool("no-color")

			var cfg *config.Config
			if opts.parse {
				var err error
				if cfg, err = cmdutil.LoadConfig(cmd); err != nil {
					return err
				}
			}
			opts.output = cmdutil.OutputFormat(cmd, cfg, string(view.FormatTree))

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runConvert(cmd.Context(), cfg, path, opts)
		},
	}

	opts.names.Register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.from, "from", "f", "", "Source format: markdown, html (default: from file extension)")
	cmd.Flags().BoolVar(&opts.parse, "parse", false, "Parse the converted markup and print its tree")

	_ = cmd.RegisterFlagCompletionFunc("from", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{FromMarkdown, FromHTML}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runConvert(ctx context.Context, cfg *config.Config, path string, opts *convertOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	from, err := sourceFormat(opts.from, path)
	if err != nil {
		return err
	}
	if opts.parse {
		if err := view.ValidateFormat(opts.output); err != nil {
			return err
		}
	}

	data, err := cmdutil.ReadSource(path, opts.stdin)
	if err != nil {
		return err
	}

	var out string
	switch from {
	case FromHTML:
		out, err = markup.FromHTML(string(data))
	default:
		out, err = markup.FromMarkdown(data)
	}
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", from, err)
	}
	logging.Ctx(ctx).Debug("converted document", "from", from, "bytes", len(data))

	if !opts.parse {
		_, err = fmt.Fprintln(opts.stdout, out)
		return err
	}

	if cfg == nil {
		cfg = &config.Config{}
	}
	parseOpts, err := opts.names.Options(ctx, cfg, nil)
	if err != nil {
		return err
	}

	format := view.Format(opts.output)
	if format == "" {
		format = view.FormatTree
	}
	renderer := view.NewRenderer(format, opts.noColor)
	renderer.SetWriter(opts.stdout)
	return renderer.RenderNodes(markup.Parse(out, parseOpts))
}

// sourceFormat resolves --from, falling back to the extension of path.
func sourceFormat(from, path string) (string, error) {
	switch strings.ToLower(from) {
	case FromMarkdown, "md":
		return FromMarkdown, nil
	case FromHTML, "htm":
		return FromHTML, nil
	case "":
	default:
		return "", fmt.Errorf("invalid source format %q (valid: %s, %s)", from, FromMarkdown, FromHTML)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return FromHTML, nil
	default:
		return FromMarkdown, nil
	}
}
