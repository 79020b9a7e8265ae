// Package parse provides the parse command.
package parse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/chatmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/chatmd/internal/config"
	"github.com/open-cli-collective/chatmd/internal/logging"
	"github.com/open-cli-collective/chatmd/internal/view"
	"github.com/open-cli-collective/chatmd/pkg/markup"
)

type parseOptions struct {
	names     cmdutil.NameFlags
	tokens    bool
	inputJSON bool
	output    string
	noColor   bool
	stdin     io.Reader
	stdout    io.Writer
	source    cmdutil.NameSource
}

// request is the document accepted by --input-json.
type request struct {
	Message    any      `json:"message"`
	Mentions   []string `json:"mentions"`
	EmojiNames []string `json:"emojiNames"`
}

// NewCmdParse creates the parse command.
func NewCmdParse() *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [message...]",
		Short: "Parse a chat message into a markup tree",
		Long: `Parse a chat message into its markup tree.

The message is taken from the arguments, or read from stdin when none are
given. Mentionable names and the emoji whitelist come from the config file,
CHATMD_* environment variables and the --mention and --emoji flags.`,
		Example: `  # Show the tree of a message
  chatmd parse 'hi @alice, *ship* it :rocket:' -m alice

  # Emit the JSON tree
  chatmd parse -o json < message.txt

  # Show the token stream instead of the tree
  chatmd parse --tokens '_a_ b'

  # Parse a request document
  echo '{"message":"hi @bob","mentions":["bob"]}' | chatmd parse --input-json -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			opts.output = cmdutil.OutputFormat(cmd, cfg, string(view.FormatTree))
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runParse(cmd.Context(), cfg, args, opts)
		},
	}

	opts.names.Register(cmd.Flags())
	cmd.Flags().BoolVar(&opts.tokens, "tokens", false, "Show the token stream instead of the tree")
	cmd.Flags().BoolVar(&opts.inputJSON, "input-json", false, "Read a JSON request {message, mentions, emojiNames} from stdin")

	return cmd
}

func runParse(ctx context.Context, cfg *config.Config, args []string, opts *parseOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if opts.inputJSON && len(args) > 0 {
		return fmt.Errorf("--input-json reads stdin and takes no message arguments")
	}

	parseOpts, err := opts.names.Options(ctx, cfg, opts.source)
	if err != nil {
		return err
	}

	var message any
	if opts.inputJSON {
		req, err := readRequest(opts.stdin)
		if err != nil {
			return err
		}
		message = req.Message
		parseOpts.Mentions = append(parseOpts.Mentions, req.Mentions...)
		if req.EmojiNames != nil {
			parseOpts.EmojiNames = append(append([]string{}, parseOpts.EmojiNames...), req.EmojiNames...)
		}
	} else {
		message, err = cmdutil.ReadInput(args, opts.stdin)
		if err != nil {
			return err
		}
	}

	log := logging.WithNames(logging.Ctx(ctx), parseOpts.Mentions, parseOpts.EmojiNames)

	format := view.Format(opts.output)
	if format == "" {
		format = view.FormatTree
	}
	renderer := view.NewRenderer(format, opts.noColor)
	renderer.SetWriter(opts.stdout)

	if opts.tokens {
		text, ok := message.(string)
		if !ok {
			return &markup.InvalidInputError{Value: message}
		}
		tokens := markup.Tokenize(text, parseOpts)
		log.Debug("tokenized message", "tokens", len(tokens))
		renderer.RenderTokens(tokens)
		return nil
	}

	nodes, err := markup.ParseValue(message, parseOpts)
	if err != nil {
		return err
	}
	log.Debug("parsed message", "nodes", len(nodes))
	return renderer.RenderNodes(nodes)
}

func readRequest(r io.Reader) (*request, error) {
	if r == nil {
		return nil, cmdutil.ErrNoInput
	}
	var req request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, cmdutil.ErrNoInput
		}
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	return &req, nil
}
