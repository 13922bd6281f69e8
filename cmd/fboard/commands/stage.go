package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// stageCmd represents the stage command
var stageCmd = &cobra.Command{
	Use:     "stage",
	Aliases: []string{"column", "col"},
	Short:   "Manage stages",
	Long: `Manage stages, the first level folders of the board root.

Stages are ordered by name with numbers compared by value, so "2 doing"
comes before "10 done". Prefix folder names with numbers to control the
column order.

Examples:
  # List stages with their card counts
  fboard stage list

  # Create a stage
  fboard stage create "1 todo"`,
}

// stageListCmd lists stages
var stageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stages",
	Long: `List the visible stages in board order. The archived stage is listed last
when --all is given.

Examples:
  fboard stage list
  fboard stage list --all -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		all, _ := cmd.Flags().GetBool("all")

		board, err := container.GetBoardUseCase.Execute(ctx)
		if err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}

		type stageRow struct {
			Key   string `json:"key" yaml:"key"`
			Label string `json:"label" yaml:"label"`
			Cards int    `json:"cards" yaml:"cards"`
		}
		stages := make([]stageRow, 0, len(board.Stages)+1)
		for _, stage := range board.Stages {
			stages = append(stages, stageRow{Key: stage.Key, Label: stage.Label, Cards: len(stage.Cards)})
		}
		if all && board.ArchivedStage != "" {
			stages = append(stages, stageRow{Key: board.ArchivedStage, Label: board.ArchivedStage, Cards: board.ArchivedCount})
		}

		if formatter.Structured() {
			return formatter.Print(stages)
		}

		if len(stages) == 0 {
			printer.Info("No stages found. Create one with: fboard stage create <name>")
			return nil
		}

		rows := make([][]string, 0, len(stages))
		for i, stage := range stages {
			rows = append(rows, []string{strconv.Itoa(i + 1), stage.Label, strconv.Itoa(stage.Cards)})
		}
		printer.Table([]string{"#", "Stage", "Cards"}, rows)
		return nil
	},
}

// stageCreateCmd creates a stage
var stageCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a stage",
	Long: `Create a stage folder under the board root.

Names cannot be empty, cannot contain path separators and cannot start with
the reserved ".fboard-" prefix. Creating an existing stage fails.

Examples:
  fboard stage create backlog
  fboard stage create "3 review"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		stage, err := container.CreateStageUseCase.Execute(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to create stage: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(stage)
		}
		printer.Success("Created stage %s", stage.Label)
		return nil
	},
}

func init() {
	stageListCmd.Flags().BoolP("all", "a", false, "Include the archived stage")

	stageCmd.AddCommand(stageListCmd)
	stageCmd.AddCommand(stageCreateCmd)

	rootCmd.AddCommand(stageCmd)
}
