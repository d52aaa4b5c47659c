package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for seatchart and print it to stdout.

  bash:        source <(seatchart completion bash)
  zsh:         seatchart completion zsh > "${fpath[1]}/_seatchart"
  fish:        seatchart completion fish > ~/.config/fish/completions/seatchart.fish
  powershell:  seatchart completion powershell | Out-String | Invoke-Expression

Zsh needs "autoload -U compinit; compinit" in ~/.zshrc. Start a new shell
after installing a script.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
