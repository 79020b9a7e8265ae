// Package cmdutil holds helpers shared by chatmd commands: config
// loading, name-list flags and message input.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/open-cli-collective/chatmd/internal/config"
	"github.com/open-cli-collective/chatmd/internal/directory"
	"github.com/open-cli-collective/chatmd/internal/logging"
	"github.com/open-cli-collective/chatmd/pkg/markup"
)

// ErrNoInput is returned when a command has neither arguments nor piped input.
var ErrNoInput = errors.New("no input: pass a message as arguments or pipe it on stdin")

// ConfigPath returns the --config flag value, or the default path.
func ConfigPath(cmd *cobra.Command) string {
	if cmd != nil {
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			return path
		}
	}
	return config.DefaultConfigPath()
}

// LoadConfig loads the config file named by --config with environment
// overrides applied, and validates it.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWithEnv(ConfigPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'chatmd init' to configure)", err)
	}
	return cfg, nil
}

// OutputFormat returns the --output flag value, falling back to the
// configured format and then to def.
func OutputFormat(cmd *cobra.Command, cfg *config.Config, def string) string {
	if cmd != nil && cmd.Flags().Changed("output") {
		out, _ := cmd.Flags().GetString("output")
		return out
	}
	if cfg != nil && cfg.OutputFormat != "" {
		return cfg.OutputFormat
	}
	return def
}

// NameSource supplies mentionable and emoji names, typically a directory.Client.
type NameSource interface {
	MentionNames(ctx context.Context) ([]string, error)
	EmojiNames(ctx context.Context) ([]string, error)
}

// NameFlags are the flags that control which mentions and emoji resolve.
type NameFlags struct {
	Mentions          []string
	Emoji             []string
	UnrestrictedEmoji bool
	Fetch             bool
}

// Register adds the name flags to fs.
func (f *NameFlags) Register(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&f.Mentions, "mention", "m", nil, "Mentionable name, added to configured names (repeatable)")
	fs.StringArrayVarP(&f.Emoji, "emoji", "e", nil, "Allowed emoji name, added to configured names (repeatable)")
	fs.BoolVar(&f.UnrestrictedEmoji, "unrestricted-emoji", false, "Accept every emoji shortcode, ignoring any whitelist")
	fs.BoolVar(&f.Fetch, "fetch", false, "Also fetch names from the configured directory")
}

// Options builds parse options from cfg and the flags. When Fetch is set
// the names from src are added; src may be nil to use a directory client
// built from cfg.
func (f *NameFlags) Options(ctx context.Context, cfg *config.Config, src NameSource) (*markup.Options, error) {
	opts := &markup.Options{
		Mentions: append(append([]string{}, cfg.Mentions...), f.Mentions...),
	}
	if wl := cfg.EmojiWhitelist(); wl != nil {
		opts.EmojiNames = append([]string{}, wl...)
	}
	if len(f.Emoji) > 0 {
		opts.EmojiNames = append(opts.EmojiNames, f.Emoji...)
	}

	if f.Fetch {
		if src == nil {
			if cfg.DirectoryURL == "" {
				return nil, errors.New("--fetch requires directory_url (run 'chatmd init' or set " + config.EnvDirectoryURL + ")")
			}
			src = directory.NewClient(cfg.DirectoryURL, cfg.DirectoryToken)
		}
		mentions, err := src.MentionNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch mentions: %w", err)
		}
		opts.Mentions = append(opts.Mentions, mentions...)

		// Fetched emoji extend a whitelist; they never impose one.
		if opts.EmojiNames != nil {
			emoji, err := src.EmojiNames(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch emoji: %w", err)
			}
			opts.EmojiNames = append(opts.EmojiNames, emoji...)
		}
	}

	if f.UnrestrictedEmoji {
		opts.EmojiNames = nil
	}

	logging.WithNames(logging.Ctx(ctx), opts.Mentions, opts.EmojiNames).Debug("resolved parse options")
	return opts, nil
}

// ReadInput returns the message given as args joined by spaces, or else
// the contents of in with one trailing newline removed. An interactive
// terminal on in counts as no input.
func ReadInput(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := ReadSource("", in)
	if err != nil {
		return "", err
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

// ReadSource reads the file at path, or in when path is empty or "-".
func ReadSource(path string, in io.Reader) ([]byte, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		return data, nil
	}

	if f, ok := in.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			return nil, ErrNoInput
		}
	}
	if in == nil {
		return nil, ErrNoInput
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
