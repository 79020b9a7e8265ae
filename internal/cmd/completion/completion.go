// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

type shell struct {
	name    string
	long    string
	example string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name: "bash",
		long: `To load completions in your current shell session:

  source <(chatmd completion bash)

To load completions for every new session:

  # Linux
  chatmd completion bash > /etc/bash_completion.d/chatmd

  # macOS (requires bash-completion)
  chatmd completion bash > $(brew --prefix)/etc/bash_completion.d/chatmd`,
		example: `  source <(chatmd completion bash)`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		},
	},
	{
		name: "zsh",
		long: `If completion is not already enabled, add this to ~/.zshrc:

  autoload -Uz compinit && compinit

Then place the script on your fpath:

  chatmd completion zsh > "${fpath[1]}/_chatmd"`,
		example: `  chatmd completion zsh > ~/.zsh/completions/_chatmd`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name: "fish",
		long: `To load completions for every new session:

  chatmd completion fish > ~/.config/fish/completions/chatmd.fish`,
		example: `  chatmd completion fish | source`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name: "powershell",
		long: `To load completions for every new session, add the output to your
PowerShell profile:

  chatmd completion powershell >> $PROFILE`,
		example: `  chatmd completion powershell | Out-String | Invoke-Expression`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for chatmd.

These scripts enable tab-completion for commands, flags, and flag values
such as output formats and render targets.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newShellCmd(sh))
	}

	return cmd
}

func newShellCmd(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:                   sh.name,
		Short:                 "Generate " + sh.name + " completion script",
		Long:                  "Generate " + sh.name + " completion script for chatmd.\n\n" + sh.long,
		Example:               sh.example,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
