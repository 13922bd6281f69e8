package commands

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fboard/internal/application/dto"
	"fboard/internal/di"
	"fboard/internal/infrastructure/config"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for fboard.

Besides commands and flags, the scripts complete stage names and
"stage/card" references read from the board folder, so
"fboard card move todo/<TAB>" lists the cards of todo.

Examples:
  # Bash, current session
  source <(fboard completion bash)

  # Zsh, every session
  fboard completion zsh > "${fpath[1]}/_fboard"

  # Fish
  fboard completion fish > ~/.config/fish/completions/fboard.fish

  # PowerShell
  fboard completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	Annotations:           map[string]string{skipBoardAnnotation: ""},
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(os.Stdout, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		default:
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

// completionBoard opens the board for a completion request. Cobra answers
// completions without running the persistent hooks, so the container is
// built here with a silent logger.
func completionBoard() (*di.Container, error) {
	if container != nil {
		return container, nil
	}

	l := loader
	if l == nil {
		if configPath != "" {
			l = config.LoadFrom(configPath)
		} else {
			var err error
			if l, err = config.NewLoader(); err != nil {
				return nil, err
			}
		}
	}
	c, err := l.Load()
	if err != nil {
		return nil, err
	}
	if rootPath != "" {
		c.Storage.RootPath = rootPath
	}

	silent := logrus.New()
	silent.SetOutput(io.Discard)
	return di.InitializeContainer(c, silent)
}

// completeCardRefs completes the first argument with visible cards
func completeCardRefs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	c, err := completionBoard()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cards, err := c.ListCardsUseCase.Execute(getContext(), "")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return matchingRefs(cards, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeArchivedRefs completes the first argument with archived cards
func completeArchivedRefs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	c, err := completionBoard()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cards, err := c.ListArchivedCardsUseCase.Execute(getContext())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return matchingRefs(cards, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeMoveArgs completes the card, then the target stage
func completeMoveArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completeCardRefs(cmd, args, toComplete)
	}
	if len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeStageNames(cmd, nil, toComplete)
}

// completeAttachArgs completes the card, then falls back to file names
func completeAttachArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completeCardRefs(cmd, args, toComplete)
	}
	return nil, cobra.ShellCompDirectiveDefault
}

// completeStageNames completes the first argument with stage names
func completeStageNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	c, err := completionBoard()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	board, err := c.GetBoardUseCase.Execute(getContext())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []string
	for _, stage := range board.Stages {
		if strings.HasPrefix(stage.Key, toComplete) {
			names = append(names, stage.Key)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func matchingRefs(cards []dto.CardSummaryDTO, prefix string) []string {
	var refs []string
	for _, card := range cards {
		ref := formatCardRef(card.Stage, card.Title)
		if strings.HasPrefix(ref, prefix) {
			refs = append(refs, ref)
		}
	}
	return refs
}

func init() {
	for _, cmd := range []*cobra.Command{
		cardShowCmd, cardDescribeCmd, cardArchiveCmd, cardDetachCmd,
		commentAddCmd, commentEditCmd, commentDeleteCmd,
		taskListCmd, taskAddCmd, taskToggleCmd, taskRemoveCmd,
		legendSetCmd,
	} {
		cmd.ValidArgsFunction = completeCardRefs
	}
	cardMoveCmd.ValidArgsFunction = completeMoveArgs
	cardAttachCmd.ValidArgsFunction = completeAttachArgs
	cardRestoreCmd.ValidArgsFunction = completeArchivedRefs
	cardCreateCmd.ValidArgsFunction = completeStageNames

	rootCmd.AddCommand(completionCmd)
}
