package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlayers/pkg/errors"
)

// shells lists the shells completion scripts can be generated for.
var shells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for bash, zsh, fish or powershell.

  $ source <(graphlayers completion bash)
  $ graphlayers completion zsh > "${fpath[1]}/_graphlayers"
  $ graphlayers completion fish > ~/.config/fish/completions/graphlayers.fish
  PS> graphlayers completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return errors.New(errors.ErrCodeInvalidArgument, "unsupported shell %q (must be one of: bash, zsh, fish, powershell)", args[0])
		},
	}
}
