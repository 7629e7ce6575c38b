package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Scripts come from
// cobra's generators for the root command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `Generate a shell completion script for chartkit.

Load it for the current session:

  source <(chartkit completion bash)
  chartkit completion fish | source

Or install it permanently:

  chartkit completion bash > /etc/bash_completion.d/chartkit
  chartkit completion zsh > "${fpath[1]}/_chartkit"
  chartkit completion fish > ~/.config/fish/completions/chartkit.fish
  chartkit completion powershell > chartkit.ps1   # dot-source from $PROFILE
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}
