package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fboard/internal/application/dto"
)

// legendCmd represents the legend command
var legendCmd = &cobra.Command{
	Use:     "legend",
	Aliases: []string{"legends", "tag"},
	Short:   "Manage legends",
	Long: `Manage the board legends stored in legendas.txt at the board root, and the
legends attached to each card.

A legend is a name with a hex color. Colors that cannot be parsed fall back
to #4DA3FF.

Examples:
  # Show the registry
  fboard legend list

  # Register legends
  fboard legend add Bug "#FF4D4F"
  fboard legend add Feature

  # Attach legends to a card (replaces the card's legends)
  fboard legend set "todo/Fix login" Bug Urgent`,
}

// legendListCmd lists legends
var legendListCmd = &cobra.Command{
	Use:   "list",
	Short: "List legends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		legends, err := container.LegendsUseCase.List(getContext())
		if err != nil {
			return fmt.Errorf("failed to list legends: %w", err)
		}
		return printLegends(legends)
	},
}

// legendAddCmd registers a legend
var legendAddCmd = &cobra.Command{
	Use:   "add <name> [color]",
	Short: "Register a legend",
	Long: `Append a legend to the registry. Names are unique and cannot contain "|".

Examples:
  fboard legend add Bug "#FF4D4F"
  fboard legend add Docs`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		color := ""
		if len(args) > 1 {
			color = args[1]
		}
		legends, err := container.LegendsUseCase.Add(getContext(), args[0], color)
		if err != nil {
			return fmt.Errorf("failed to add legend: %w", err)
		}
		return legendsUpdated(legends, "Legend %s added", strings.TrimSpace(args[0]))
	},
}

// legendRemoveCmd unregisters a legend
var legendRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a legend from the registry",
	Long: `Remove a legend from the registry. Cards keep the name and show it as an
unknown legend until it is registered again.

Examples:
  fboard legend remove Docs`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		legends, err := container.LegendsUseCase.Remove(getContext(), args[0])
		if err != nil {
			return fmt.Errorf("failed to remove legend: %w", err)
		}
		return legendsUpdated(legends, "Legend %s removed", args[0])
	},
}

// legendRenameCmd renames a legend
var legendRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a legend",
	Long: `Rename a legend in the registry, keeping its color and position.

Examples:
  fboard legend rename Bug Defect`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		legends, err := container.LegendsUseCase.Rename(getContext(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to rename legend: %w", err)
		}
		return legendsUpdated(legends, "Legend %s renamed to %s", args[0], strings.TrimSpace(args[1]))
	},
}

// legendRecolorCmd changes a legend color
var legendRecolorCmd = &cobra.Command{
	Use:   "recolor <name> <color>",
	Short: "Change the color of a legend",
	Long: `Change the color of a legend. Colors are six hex digits, with or without
the leading "#".

Examples:
  fboard legend recolor Bug ff0000`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		legends, err := container.LegendsUseCase.Recolor(getContext(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to recolor legend: %w", err)
		}
		return legendsUpdated(legends, "Legend %s recolored", args[0])
	},
}

// legendReorderCmd reorders the registry
var legendReorderCmd = &cobra.Command{
	Use:   "reorder <name>...",
	Short: "Reorder legends",
	Long: `Put the named legends first, in the given order. Legends not named keep
their relative order after them.

Examples:
  fboard legend reorder Urgent Bug`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		legends, err := container.LegendsUseCase.Reorder(getContext(), args)
		if err != nil {
			return fmt.Errorf("failed to reorder legends: %w", err)
		}
		return printLegends(legends)
	},
}

// legendSetCmd replaces the legends of a card
var legendSetCmd = &cobra.Command{
	Use:   "set <stage/card> [name]...",
	Short: "Set the legends of a card",
	Long: `Replace the legends attached to a card. Names missing from the registry are
reported and not stored. Give no names to clear the card's legends.

Examples:
  fboard legend set "todo/Fix login" Bug Urgent
  fboard legend set "todo/Fix login"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		kept, dropped, err := container.SetCardLegendsUseCase.Execute(getContext(), ref, args[1:])
		if err != nil {
			return fmt.Errorf("failed to set legends: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(map[string][]string{"kept": kept, "dropped": dropped})
		}
		if len(kept) == 0 {
			printer.Success("Cleared legends of %s", args[0])
		} else {
			printer.Success("Legends of %s: %s", args[0], strings.Join(kept, ", "))
		}
		if len(dropped) > 0 {
			printer.Warning("Unknown legends ignored: %s", strings.Join(dropped, ", "))
		}
		return nil
	},
}

// legendsUpdated prints the new registry for structured output and the
// confirmation message otherwise
func legendsUpdated(legends []dto.LegendDTO, format string, args ...interface{}) error {
	if formatter.Structured() {
		return formatter.Print(legends)
	}
	printer.Success(format, args...)
	return nil
}

func printLegends(legends []dto.LegendDTO) error {
	if formatter.Structured() {
		return formatter.Print(legends)
	}
	if len(legends) == 0 {
		printer.Info("No legends registered. Add one with: fboard legend add <name> [color]")
		return nil
	}

	rows := make([][]string, 0, len(legends))
	for _, legend := range legends {
		rows = append(rows, []string{printer.Swatch(legend.Name, legend.Color), legend.Color})
	}
	printer.Table([]string{"Legend", "Color"}, rows)
	return nil
}

func init() {
	legendCmd.AddCommand(legendListCmd)
	legendCmd.AddCommand(legendAddCmd)
	legendCmd.AddCommand(legendRemoveCmd)
	legendCmd.AddCommand(legendRenameCmd)
	legendCmd.AddCommand(legendRecolorCmd)
	legendCmd.AddCommand(legendReorderCmd)
	legendCmd.AddCommand(legendSetCmd)

	rootCmd.AddCommand(legendCmd)
}
