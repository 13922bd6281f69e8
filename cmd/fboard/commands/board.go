package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fboard/internal/application/dto"
	"fboard/internal/daemon"
	"fboard/internal/domain/service"
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Inspect the board",
	Long: `Inspect the board rooted at --root (or storage.root_path).

Examples:
  # Show every stage with its cards
  fboard board show

  # Show stage and legend statistics for the last 14 days
  fboard board report --days 14

  # Export the report as CSV into the current directory
  fboard board report --csv .

  # Print a line every time the folders change
  fboard board watch`,
}

// boardShowCmd shows the board
var boardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stages and cards",
	Long: `Show every visible stage with its cards. The archived stage is only counted.

Examples:
  fboard board show
  fboard board show --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		board, err := container.GetBoardUseCase.Execute(ctx)
		if err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(board)
		}
		if lines, ok := listingLines(board.Stages); ok {
			return formatter.PrintLines(lines)
		}

		printBoard(board)
		return nil
	},
}

// boardReportCmd shows board statistics
var boardReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show board statistics",
	Long: `Show card counts per stage and legend, the busiest stage and legend, and
how many cards changed per day.

Examples:
  # Default activity window
  fboard board report

  # Last 90 days, as YAML
  fboard board report --days 90 -o yaml

  # Write fboard-report-<board>-<date>.csv into ./exports
  fboard board report --csv ./exports`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		days, _ := cmd.Flags().GetInt("days")
		csvDir, _ := cmd.Flags().GetString("csv")

		if csvDir != "" {
			path, err := container.ExportReportUseCase.Execute(ctx, csvDir)
			if err != nil {
				return fmt.Errorf("failed to export report: %w", err)
			}
			printer.Success("Report written to %s", path)
			return nil
		}

		report, err := container.GetReportUseCase.Execute(ctx, days)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(report)
		}

		printReport(report)
		return nil
	},
}

// boardWatchCmd reloads the board whenever its folders change
var boardWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the board folders for changes",
	Long: `Watch the board root and print a summary after every change. Bursts of
file events are coalesced (watch.debounce_ms) and a reload that is overtaken
by a newer one is dropped.

Stop with Ctrl+C.

Examples:
  fboard board watch
  fboard board watch -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		_, snapshots, cleanup, err := startLiveBoard(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		printer.Info("Watching %s (Ctrl+C to stop)", container.RootPath)
		for {
			select {
			case <-ctx.Done():
				return nil
			case snapshot, ok := <-snapshots:
				if !ok {
					return nil
				}
				if err := printSnapshot(snapshot); err != nil {
					return err
				}
			}
		}
	},
}

// startLiveBoard wires a watcher on the board root to a reloader and returns
// the reloader with a subscription. cleanup stops both.
func startLiveBoard(ctx context.Context) (*daemon.Reloader, <-chan daemon.Snapshot, func(), error) {
	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	watcher, err := daemon.NewWatcher(string(container.RootPath), debounce, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		_ = watcher.Stop()
		return nil, nil, nil, fmt.Errorf("failed to watch %s: %w", container.RootPath, err)
	}

	reloader := daemon.NewReloader(container.GetBoardUseCase.Execute, logger)
	snapshots, unsubscribe := reloader.Subscribe()

	runCtx, cancel := context.WithCancel(ctx)
	go reloader.Run(runCtx, watcher.Changes())

	cleanup := func() {
		cancel()
		if err := watcher.Stop(); err != nil {
			logger.WithError(err).Warn("failed to stop watcher")
		}
		reloader.Wait()
		unsubscribe()
	}
	return reloader, snapshots, cleanup, nil
}

func printSnapshot(snapshot daemon.Snapshot) error {
	if snapshot.Err != nil {
		printer.Error("reload %d failed: %v", snapshot.Generation, snapshot.Err)
		return nil
	}
	if formatter.Structured() {
		return formatter.Print(snapshot.Board)
	}

	total := 0
	parts := make([]string, 0, len(snapshot.Board.Stages))
	for _, stage := range snapshot.Board.Stages {
		total += len(stage.Cards)
		parts = append(parts, fmt.Sprintf("%s=%d", stage.Label, len(stage.Cards)))
	}
	printer.Println("%s  #%d  %d cards  %s",
		time.Now().Format("15:04:05"),
		snapshot.Generation,
		total,
		strings.Join(parts, " "))
	return nil
}

func printBoard(board *dto.BoardDTO) {
	printer.Header("Board: %s", board.Root)
	if len(board.Stages) == 0 {
		printer.Info("No stages yet. Create one with: fboard stage create <name>")
	}

	for _, stage := range board.Stages {
		fmt.Println()
		printer.Header("%s (%d)", stage.Label, len(stage.Cards))
		if len(stage.Cards) == 0 {
			printer.Subtle("  (empty)")
			continue
		}
		for _, card := range stage.Cards {
			printer.Println("  %s%s", card.Title, cardBadges(card))
			if card.Preview != "" {
				printer.Subtle("    %s", card.Preview)
			}
		}
	}

	if board.ArchivedCount > 0 {
		fmt.Println()
		printer.Subtle("%d archived card(s) in %s", board.ArchivedCount, board.ArchivedStage)
	}
}

// cardBadges renders the legends and counters shown after a card title
func cardBadges(card dto.CardSummaryDTO) string {
	var b strings.Builder
	for _, legend := range card.Legends {
		b.WriteString(" ")
		b.WriteString(printer.Swatch(legend.Name, legend.Color))
	}
	if card.Tasks.Total > 0 {
		fmt.Fprintf(&b, " [%d/%d]", card.Tasks.Completed, card.Tasks.Total)
	}
	if card.CommentCount > 0 {
		fmt.Fprintf(&b, " 💬%d", card.CommentCount)
	}
	if card.AttachmentCount > 0 {
		fmt.Fprintf(&b, " 📎%d", card.AttachmentCount)
	}
	return b.String()
}

func printReport(report *dto.ReportDTO) {
	printer.Header("Report")
	printer.Println("Cards:        %d", report.TotalCards)
	printer.Println("Active (7d):  %d", report.Active7d)
	if report.TopStage != "" {
		printer.Println("Top stage:    %s", report.TopStage)
	}
	if report.TopLegend != "" {
		printer.Println("Top legend:   %s", report.TopLegend)
	}
	if report.LastActivity != nil {
		printer.Println("Last change:  %s", report.LastActivity.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	stageRows := make([][]string, 0, len(report.Stages))
	for _, stage := range report.Stages {
		stageRows = append(stageRows, []string{stage.Stage, strconv.Itoa(stage.Count)})
	}
	printer.Table([]string{"Stage", "Cards"}, stageRows)

	fmt.Println()
	legendRows := make([][]string, 0, len(report.Legends))
	for _, legend := range report.Legends {
		legendRows = append(legendRows, []string{
			printer.Swatch(legend.Name, legend.Color),
			strconv.Itoa(legend.Count),
			fmt.Sprintf("%d%%", legend.Percent),
		})
	}
	printer.Table([]string{"Legend", "Cards", "Share"}, legendRows)

	fmt.Println()
	peak := 0
	for _, point := range report.Activity {
		peak = max(peak, point.Count)
	}
	for _, point := range report.Activity {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("█", point.Count*20/peak)
		}
		printer.Println("%s %3d %s", point.Date, point.Count, bar)
	}
}

func init() {
	boardReportCmd.Flags().Int("days", service.DefaultRangeDays, "Days of activity to include")
	boardReportCmd.Flags().String("csv", "", "Write the report as CSV into this directory")

	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardReportCmd)
	boardCmd.AddCommand(boardWatchCmd)

	rootCmd.AddCommand(boardCmd)
}
