// Package root provides the root command for the chatmd CLI.
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/chatmd/internal/cmd/completion"
	"github.com/open-cli-collective/chatmd/internal/cmd/configcmd"
	"github.com/open-cli-collective/chatmd/internal/cmd/convert"
	initcmd "github.com/open-cli-collective/chatmd/internal/cmd/init"
	"github.com/open-cli-collective/chatmd/internal/cmd/parse"
	"github.com/open-cli-collective/chatmd/internal/cmd/render"
	"github.com/open-cli-collective/chatmd/internal/logging"
	"github.com/open-cli-collective/chatmd/internal/version"
	"github.com/open-cli-collective/chatmd/internal/view"
)

// NewCmdRoot creates the root command for chatmd.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatmd",
		Short: "Parse and render chat message markup",
		Long: `chatmd parses the lightweight markup used in chat messages (_italic_,
*bold*, ~strike~, ` + "`code`" + `, :emoji:, @mentions and links) into a tree,
and renders that tree for terminals, HTML or Atlassian documents.

Get started by running: chatmd init`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version.Version,
		PersistentPreRunE: setupLogging,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/chatmd/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: tree, table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug details to stderr")

	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return view.ValidFormats(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(parse.NewCmdParse())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(convert.NewCmdConvert())
	cmd.AddCommand(completion.NewCmdCompletion())
	cmd.AddCommand(newCmdVersion())

	return cmd
}

// setupLogging replaces the context logger with a debug-level console
// logger when --verbose is set.
func setupLogging(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return nil
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	log := logging.New(cmd.ErrOrStderr(), true, noColor)
	cmd.SetContext(logging.WithLogger(cmd.Context(), log))
	log.Debug("verbose logging enabled", "command", cmd.CommandPath())
	return nil
}

func newCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
