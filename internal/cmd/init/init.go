// Package init provides the init command for chatmd.
package init

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/chatmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/chatmd/internal/config"
	"github.com/open-cli-collective/chatmd/internal/directory"
)

type initOptions struct {
	mentions     string
	emoji        string
	directoryURL string
	token        string
	noVerify     bool
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize chatmd configuration",
		Long: `Initialize chatmd with the names your chat messages resolve.

This command guides you through setting the mentionable names, an optional
emoji whitelist and an optional chat directory server that --fetch reads
names from. The configuration is saved to ~/.config/chatmd/config.yml.

Leave the emoji whitelist blank to accept every :shortcode:.`,
		Example: `  # Interactive setup
  chatmd init

  # Pre-populate the directory server
  chatmd init --directory-url https://chat.example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), cmdutil.ConfigPath(cmd), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.mentions, "mentions", "", "Comma-separated mentionable names")
	cmd.Flags().StringVar(&opts.emoji, "emoji", "", "Comma-separated emoji whitelist")
	cmd.Flags().StringVar(&opts.directoryURL, "directory-url", "", "Chat directory URL (e.g., https://chat.example.com)")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip directory connection verification")

	return cmd
}

func runInit(ctx context.Context, configPath string, opts *initOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(w, "Initialization cancelled.")
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Mentionable names").
				Description("Comma-separated users and groups that @name resolves to").
				Placeholder("alice, bob, team-ops").
				Value(&opts.mentions),

			huh.NewInput().
				Title("Emoji whitelist (optional)").
				Description("Comma-separated emoji names; blank accepts every :shortcode:").
				Placeholder("smile, tada, rocket").
				Value(&opts.emoji),

			huh.NewInput().
				Title("Directory URL (optional)").
				Description("Chat server that lists members, groups and custom emoji").
				Placeholder("https://chat.example.com").
				Value(&opts.directoryURL),

			huh.NewInput().
				Title("Directory token (optional)").
				Description("Bearer token for the directory server").
				EchoMode(huh.EchoModePassword).
				Value(&opts.token),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	return finishInit(ctx, configPath, opts, w, nil)
}

// finishInit builds, verifies and saves the configuration collected by
// the form. A nil client is built from the configured directory.
func finishInit(ctx context.Context, configPath string, opts *initOptions, w io.Writer, client *directory.Client) error {
	cfg := buildConfig(opts)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.DirectoryURL != "" && !opts.noVerify {
		if client == nil {
			client = directory.NewClient(cfg.DirectoryURL, cfg.DirectoryToken)
		}
		fmt.Fprint(w, "Verifying directory connection... ")
		if err := cmdutil.VerifyDirectory(ctx, client); err != nil {
			fmt.Fprintln(w, "failed!")
			return fmt.Errorf("connection verification failed: %w", err)
		}
		fmt.Fprintln(w, "success!")
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(w, "\nYou're all set! Try running:")
	fmt.Fprintln(w, "  chatmd parse 'hello *world* :wave:'")
	if cfg.DirectoryURL != "" {
		fmt.Fprintln(w, "  chatmd render --fetch 'thanks @someone'")
	}

	return nil
}

func buildConfig(opts *initOptions) *config.Config {
	cfg := &config.Config{
		Mentions:       config.SplitList(opts.mentions),
		EmojiNames:     config.SplitList(opts.emoji),
		DirectoryURL:   strings.TrimSpace(opts.directoryURL),
		DirectoryToken: strings.TrimSpace(opts.token),
	}
	cfg.NormalizeURL()
	return cfg
}
