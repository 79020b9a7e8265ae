package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/chatmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/chatmd/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current chatmd configuration with value source indicators.`,
		Example: `  # Show current config
  chatmd config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmdutil.ConfigPath(cmd), noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runShow(configPath string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-12s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		display := value
		if strings.Contains(strings.ToLower(label), "token") {
			display = maskToken(value)
		}
		fmt.Fprint(w, display)

		source := "config"
		if v := os.Getenv(envVar); v != "" {
			source = envVar
		} else if fileErr != nil || fileValue != value {
			source = "-"
		}
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	emojiList := func(names []string) string {
		if len(names) == 0 {
			return "(any)"
		}
		return strings.Join(names, ", ")
	}

	printField("Mentions", strings.Join(cfg.Mentions, ", "), strings.Join(fileCfg.Mentions, ", "), config.EnvMentions)
	printField("Emoji", emojiList(cfg.EmojiNames), emojiList(fileCfg.EmojiNames), config.EnvEmoji)
	printField("Directory", cfg.DirectoryURL, fileCfg.DirectoryURL, config.EnvDirectoryURL)
	printField("Token", cfg.DirectoryToken, fileCfg.DirectoryToken, config.EnvDirectoryToken)
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, config.EnvOutput)

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

// maskToken keeps the first and last four characters of long tokens.
func maskToken(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}
