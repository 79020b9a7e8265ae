package configcmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/chatmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/chatmd/internal/config"
	"github.com/open-cli-collective/chatmd/internal/directory"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the configured directory connection",
		Long: `Test that chatmd can reach the configured chat directory and report how
many names --fetch would add.`,
		Example: `  # Test connection
  chatmd config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return runTest(cmd.Context(), cfg, noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runTest(ctx context.Context, cfg *config.Config, noColor bool, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if noColor {
		color.NoColor = true
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if cfg.DirectoryURL == "" {
		_, _ = red.Fprintln(w, "✗ No directory configured")
		fmt.Fprintf(w, "\nSet one with: chatmd init, or %s\n", config.EnvDirectoryURL)
		return errors.New("no directory configured")
	}

	fmt.Fprintf(w, "Testing connection to %s...\n", cfg.DirectoryURL)
	client := directory.NewClient(cfg.DirectoryURL, cfg.DirectoryToken)

	if err := cmdutil.VerifyDirectory(ctx, client); err != nil {
		switch {
		case errors.Is(err, cmdutil.ErrAuthentication):
			_, _ = red.Fprintln(w, "✗ Authentication failed: 401 Unauthorized")
			fmt.Fprintln(w, "\nCheck your token with: chatmd config show")
		case errors.Is(err, cmdutil.ErrAccessDenied):
			_, _ = red.Fprintln(w, "✗ Access denied: 403 Forbidden")
			fmt.Fprintln(w, "\nCheck your permissions.")
		default:
			_, _ = red.Fprintln(w, "✗ Connection failed:", err)
			fmt.Fprintln(w, "\nCheck your URL with: chatmd config show")
		}
		fmt.Fprintln(w, "Reconfigure with: chatmd init")
		return err
	}
	_, _ = green.Fprintln(w, "✓ Directory reachable")

	mentions, err := client.MentionNames(ctx)
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Listing mentions failed:", err)
		return fmt.Errorf("failed to list mentions: %w", err)
	}
	emoji, err := client.EmojiNames(ctx)
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Listing emoji failed:", err)
		return fmt.Errorf("failed to list emoji: %w", err)
	}

	_, _ = green.Fprintln(w, "✓ Name listings verified")
	fmt.Fprintf(w, "\nMentionable names: %d\nCustom emoji: %d\n", len(mentions), len(emoji))

	return nil
}
