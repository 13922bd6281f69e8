package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fboard/internal/daemon"
	"fboard/tui"
	"fboard/tui/style"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal user interface",
	Long: `Launch the interactive TUI (Terminal User Interface) for the board.

Stages are shown as columns and cards as boxes with their description
preview, legends, checklist progress and comment and attachment counts.
Changes made to the folders by other programs show up automatically.

Keyboard shortcuts (configurable under keybindings):
  ←/h      - Move to left stage
  →/l      - Move to right stage
  ↑/k      - Move to card above
  ↓/j      - Move to card below
  m/Enter  - Move card to next stage
  M        - Move card to previous stage
  a        - Archive card
  r        - Reload board
  q/Ctrl+C - Quit application

Examples:
  # Launch TUI on the configured board
  fboard tui

  # Launch TUI on another folder
  fboard tui --root ~/boards/team

  # Launch TUI (shorthand - default command)
  fboard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(getContext())
		defer cancel()

		style.InitStyles(cfg)
		tui.InitKeybindings(cfg)

		board, err := container.GetBoardUseCase.Execute(ctx)
		if err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}

		reloader, snapshots, cleanup, err := startLiveBoard(ctx)
		if err != nil {
			// the board still works without a watcher, only reloads on demand
			logger.WithError(err).Warn("live updates disabled")
			reloader = daemon.NewReloader(container.GetBoardUseCase.Execute, logger)
			var unsubscribe func()
			snapshots, unsubscribe = reloader.Subscribe()
			cleanup = func() {
				reloader.Wait()
				unsubscribe()
			}
		}
		defer cleanup()

		m := tui.NewModel(board, container, reloader, snapshots)

		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
