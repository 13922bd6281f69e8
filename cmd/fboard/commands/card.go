package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fboard/cmd/fboard/output"
	"fboard/internal/application/dto"
)

// cardCmd represents the card command
var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage cards",
	Long: `Manage cards, the folders inside each stage.

Cards are addressed as <stage>/<card>, using the folder names. When the
reference is omitted it is read from stdin, so listings can be piped back:

  fboard card list -o fzf | fzf | fboard card show

Examples:
  # List cards of every visible stage
  fboard card list

  # Create a card with a description
  fboard card create todo "Fix login" -d "Users get logged out after 5 minutes"

  # Move a card to the next stage
  fboard card move "todo/Fix login" --next

  # Search titles, descriptions and comments
  fboard card find login`,
}

// cardListCmd lists cards
var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards",
	Long: `List the cards of every visible stage, or of one stage with --stage.

Examples:
  fboard card list
  fboard card list --stage todo
  fboard card list -o fzf
  fboard card list -o path`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		stage, _ := cmd.Flags().GetString("stage")

		cards, err := container.ListCardsUseCase.Execute(ctx, stage)
		if err != nil {
			return fmt.Errorf("failed to list cards: %w", err)
		}
		return printCardList(cards, "No cards found")
	},
}

// cardArchivedCmd lists archived cards
var cardArchivedCmd = &cobra.Command{
	Use:   "archived",
	Short: "List archived cards",
	Long: `List the cards of the archived stage, most recently archived first.

Examples:
  fboard card archived
  fboard card archived -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		cards, err := container.ListArchivedCardsUseCase.Execute(ctx)
		if err != nil {
			return fmt.Errorf("failed to list archived cards: %w", err)
		}
		return printCardList(cards, "No archived cards")
	},
}

// cardFindCmd searches cards
var cardFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Find cards by fuzzy text match",
	Long: `Fuzzy search card titles, descriptions and comments. Best matches come
first. Archived cards are skipped unless --all is given.

Examples:
  fboard card find login
  fboard card find "release notes" --all`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		all, _ := cmd.Flags().GetBool("all")

		cards, err := container.FindCardsUseCase.Execute(ctx, strings.Join(args, " "), all)
		if err != nil {
			return fmt.Errorf("failed to search cards: %w", err)
		}
		return printCardList(cards, "No matching cards")
	},
}

// cardShowCmd shows a card
var cardShowCmd = &cobra.Command{
	Use:     "show [stage/card]",
	Aliases: []string{"get"},
	Short:   "Show card details",
	Long: `Show a card with its description, comments, legends, tasks and attachments.

Examples:
  fboard card show "todo/Fix login"
  fboard card show "todo/Fix login" -o yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		card, err := container.GetCardUseCase.Execute(ctx, ref)
		if err != nil {
			return fmt.Errorf("failed to get card: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(card)
		}
		printCard(card)
		return nil
	},
}

// cardCreateCmd creates a card
var cardCreateCmd = &cobra.Command{
	Use:     "create <stage> <title>",
	Aliases: []string{"new", "add"},
	Short:   "Create a card",
	Long: `Create a card folder inside a stage. The title is the folder name, so it
cannot contain path separators. A taken name gets a " (2)", " (3)", ... suffix.

Examples:
  fboard card create todo "Fix login"
  fboard card create todo "Fix login" --description "Session expires too early"
  fboard card create todo "Fix login" --edit`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		description, _ := cmd.Flags().GetString("description")
		edit, _ := cmd.Flags().GetBool("edit")

		if edit {
			edited, err := openEditorForText(description)
			if err != nil {
				return fmt.Errorf("failed to edit description: %w", err)
			}
			description = edited
		}

		card, err := container.CreateCardUseCase.Execute(ctx, dto.CreateCardRequest{
			Stage:       args[0],
			Title:       args[1],
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("failed to create card: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(card)
		}
		printer.Success("Created card %s", formatCardRef(card.Stage, card.Title))
		return nil
	},
}

// cardMoveCmd moves a card
var cardMoveCmd = &cobra.Command{
	Use:   "move [stage/card] [target-stage]",
	Short: "Move a card to another stage",
	Long: `Move a card folder with everything in it to another stage. Use --next or
--prev to move to the neighbouring visible stage instead of naming one.

A card with the same folder name in the target stage is replaced. The move
copies before it deletes, so an interrupted move can simply be run again.

Examples:
  fboard card move "todo/Fix login" doing
  fboard card move "todo/Fix login" --next
  fboard card move "doing/Fix login" --prev`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		next, _ := cmd.Flags().GetBool("next")
		prev, _ := cmd.Flags().GetBool("prev")
		if next && prev {
			return fmt.Errorf("--next and --prev cannot be used together")
		}

		expected := 2
		if next || prev {
			expected = 1
		}
		args, err := resolveArgs(args, expected)
		if err != nil {
			return err
		}
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		var moved dto.CardRefDTO
		switch {
		case next:
			moved, err = container.MoveCardUseCase.ExecuteBy(ctx, ref, 1)
		case prev:
			moved, err = container.MoveCardUseCase.ExecuteBy(ctx, ref, -1)
		default:
			moved, err = container.MoveCardUseCase.Execute(ctx, dto.MoveCardRequest{Card: ref, TargetStage: args[1]})
		}
		if err != nil {
			return fmt.Errorf("failed to move card: %w", err)
		}

		return printMoved("Moved", moved)
	},
}

// cardDescribeCmd replaces a card description
var cardDescribeCmd = &cobra.Command{
	Use:     "describe [stage/card] [text]",
	Aliases: []string{"desc"},
	Short:   "Set the description of a card",
	Long: `Replace the description stored in the card's info.txt. The text can be
given as an argument, read from a file with --file, or written in $EDITOR
with --edit.

Examples:
  fboard card describe "todo/Fix login" "Session expires after 5 minutes"
  fboard card describe "todo/Fix login" --file notes.md
  fboard card describe "todo/Fix login" --edit`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		file, _ := cmd.Flags().GetString("file")
		edit, _ := cmd.Flags().GetBool("edit")

		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		var text string
		switch {
		case file != "":
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			text = string(data)
		case edit:
			card, err := container.GetCardUseCase.Execute(ctx, ref)
			if err != nil {
				return fmt.Errorf("failed to get card: %w", err)
			}
			text, err = openEditorForText(card.Description)
			if err != nil {
				return fmt.Errorf("failed to edit description: %w", err)
			}
		case len(args) > 1:
			text = args[1]
		default:
			return fmt.Errorf("description text, --file or --edit is required")
		}

		if err := container.DescribeCardUseCase.Execute(ctx, ref, text); err != nil {
			return fmt.Errorf("failed to update description: %w", err)
		}
		printer.Success("Updated description of %s", args[0])
		return nil
	},
}

// cardArchiveCmd archives a card
var cardArchiveCmd = &cobra.Command{
	Use:   "archive [stage/card]",
	Short: "Move a card to the archived stage",
	Long: `Move a card into the archived stage (storage.archived_stage), remembering
the stage it came from so it can be restored.

Examples:
  fboard card archive "done/Fix login"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		moved, err := container.ArchiveCardUseCase.Archive(ctx, ref)
		if err != nil {
			return fmt.Errorf("failed to archive card: %w", err)
		}
		return printMoved("Archived", moved)
	},
}

// cardRestoreCmd restores an archived card
var cardRestoreCmd = &cobra.Command{
	Use:   "restore [stage/card]",
	Short: "Restore an archived card",
	Long: `Move an archived card back to the stage it was archived from. When that
stage no longer exists the card goes to --to, or to the first stage.

Examples:
  fboard card restore "Arquivados/Fix login"
  fboard card restore "Arquivados/Fix login" --to todo`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		fallback, _ := cmd.Flags().GetString("to")
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		moved, err := container.ArchiveCardUseCase.Restore(ctx, ref, fallback)
		if err != nil {
			return fmt.Errorf("failed to restore card: %w", err)
		}
		return printMoved("Restored", moved)
	},
}

// cardAttachCmd copies a file into a card
var cardAttachCmd = &cobra.Command{
	Use:   "attach <stage/card> <file>",
	Short: "Attach a file to a card",
	Long: `Copy a local file into the card folder. info.txt, comments.txt,
legendas.txt and card.yml are reserved names.

Examples:
  fboard card attach "todo/Fix login" ./screenshot.png
  fboard card attach "todo/Fix login" ./trace.log --name session-trace.log`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		name, _ := cmd.Flags().GetString("name")
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		stored, err := container.AttachmentUseCase.Attach(ctx, ref, args[1], name)
		if err != nil {
			return fmt.Errorf("failed to attach file: %w", err)
		}
		printer.Success("Attached %s to %s", stored, args[0])
		return nil
	},
}

// cardDetachCmd removes an attachment
var cardDetachCmd = &cobra.Command{
	Use:   "detach <stage/card> <name>",
	Short: "Remove an attachment from a card",
	Long: `Delete an attached file from the card folder.

Examples:
  fboard card detach "todo/Fix login" screenshot.png`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		if err := container.AttachmentUseCase.Detach(ctx, ref, args[1]); err != nil {
			return fmt.Errorf("failed to detach file: %w", err)
		}
		printer.Success("Removed %s from %s", args[1], args[0])
		return nil
	},
}

func printMoved(verb string, moved dto.CardRefDTO) error {
	if formatter.Structured() {
		return formatter.Print(moved)
	}
	printer.Success("%s to %s", verb, formatCardRef(moved.Stage, moved.Folder))
	return nil
}

func printCardList(cards []dto.CardSummaryDTO, empty string) error {
	if formatter.Structured() {
		return formatter.Print(cards)
	}
	if lines, ok := cardLines(cards); ok {
		return formatter.PrintLines(lines)
	}

	if len(cards) == 0 {
		printer.Info("%s", empty)
		return nil
	}

	rows := make([][]string, 0, len(cards))
	for _, card := range cards {
		updated := ""
		if card.UpdatedAt != nil {
			updated = card.UpdatedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			card.Stage,
			card.Title + cardBadges(card),
			updated,
		})
	}
	printer.Table([]string{"Stage", "Card", "Updated"}, rows)
	return nil
}

// listingLines flattens stages for the line oriented formats
func listingLines(stages []dto.StageDTO) ([]string, bool) {
	var cards []dto.CardSummaryDTO
	for _, stage := range stages {
		cards = append(cards, stage.Cards...)
	}
	return cardLines(cards)
}

// cardLines renders cards for the fzf and path formats
func cardLines(cards []dto.CardSummaryDTO) ([]string, bool) {
	switch formatter.Format() {
	case output.FormatFZF:
		lines := make([]string, 0, len(cards))
		for _, card := range cards {
			lines = append(lines, formatCardRef(card.Stage, card.Title)+"\t"+card.Preview)
		}
		return lines, true
	case output.FormatPath:
		lines := make([]string, 0, len(cards))
		for _, card := range cards {
			lines = append(lines, filepath.Join(string(container.RootPath), card.Stage, card.Title))
		}
		return lines, true
	default:
		return nil, false
	}
}

func printCard(card *dto.CardDTO) {
	printer.Header("%s", card.Title)
	printer.Subtle("%s", formatCardRef(card.Stage, card.Title))

	if len(card.Legends) > 0 || len(card.UnknownLegends) > 0 {
		var tags []string
		for _, legend := range card.Legends {
			tags = append(tags, printer.Swatch(legend.Name, legend.Color))
		}
		tags = append(tags, card.UnknownLegends...)
		printer.Println("Legends: %s", strings.Join(tags, " "))
	}
	if card.UpdatedAt != nil {
		printer.Println("Updated: %s", card.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	if card.Archive != nil && card.Archive.ArchivedAt != nil {
		printer.Println("Archived: %s from %s",
			card.Archive.ArchivedAt.Local().Format("2006-01-02 15:04"),
			card.Archive.FromStageLabel)
	}

	fmt.Println()
	if strings.TrimSpace(card.Description) == "" {
		printer.Subtle("(no description)")
	} else {
		printer.Println("%s", strings.TrimRight(card.Description, "\n"))
	}

	if len(card.TaskList) > 0 {
		fmt.Println()
		printer.Header("Tasks (%d/%d)", card.Tasks.Completed, card.Tasks.Total)
		printTasks(card.TaskList)
	}

	if len(card.Comments) > 0 {
		fmt.Println()
		printer.Header("Comments")
		for i, comment := range card.Comments {
			printer.Println("%3d. %s", i+1, comment)
		}
	}

	if len(card.Attachments) > 0 {
		fmt.Println()
		printer.Header("Attachments")
		rows := make([][]string, 0, len(card.Attachments))
		for _, attachment := range card.Attachments {
			rows = append(rows, []string{
				attachment.Name,
				strconv.FormatInt(attachment.Size, 10),
				attachment.LastModified.Local().Format("2006-01-02 15:04"),
			})
		}
		printer.Table([]string{"Name", "Bytes", "Modified"}, rows)
	}
}

// openEditorForText opens $EDITOR on a temporary file seeded with text and
// returns what was saved
func openEditorForText(text string) (string, error) {
	tmpFile, err := os.CreateTemp("", ".fboard-edit-*.md")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(text); err != nil {
		tmpFile.Close()
		return "", err
	}
	tmpFile.Close()

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := buildEditorCommand(editor, tmpPath)
	cleanup, err := attachEditorIO(cmd)
	if err != nil {
		return "", err
	}
	defer cleanup()

	if err := cmd.Run(); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", err
	}
	return string(edited), nil
}

// attachEditorIO connects the editor to the terminal, reopening /dev/tty
// when stdin is a pipe
func attachEditorIO(cmd *exec.Cmd) (func(), error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}

	if (stat.Mode() & os.ModeCharDevice) != 0 {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return func() {}, nil
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("no interactive terminal available (run without piping)")
	}

	cmd.Stdin = tty
	cmd.Stdout = tty
	cmd.Stderr = tty

	return func() {
		_ = tty.Close()
	}, nil
}

// buildEditorCommand supports editors given with arguments, e.g. "code -w"
func buildEditorCommand(editor, path string) *exec.Cmd {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return exec.Command("vi", path)
	}
	parts = append(parts, path)
	return exec.Command(parts[0], parts[1:]...)
}

func init() {
	cardListCmd.Flags().StringP("stage", "s", "", "Only list cards of this stage")
	_ = cardListCmd.RegisterFlagCompletionFunc("stage", completeStageNames)
	cardFindCmd.Flags().BoolP("all", "a", false, "Include archived cards")
	cardCreateCmd.Flags().StringP("description", "d", "", "Card description")
	cardCreateCmd.Flags().BoolP("edit", "e", false, "Write the description in $EDITOR")
	cardMoveCmd.Flags().BoolP("next", "n", false, "Move to the next stage")
	cardMoveCmd.Flags().BoolP("prev", "p", false, "Move to the previous stage")
	cardDescribeCmd.Flags().StringP("file", "f", "", "Read the description from a file")
	cardDescribeCmd.Flags().BoolP("edit", "e", false, "Edit the description in $EDITOR")
	cardRestoreCmd.Flags().String("to", "", "Stage to use when the original stage is gone")
	_ = cardRestoreCmd.RegisterFlagCompletionFunc("to", completeStageNames)
	cardAttachCmd.Flags().String("name", "", "Store the file under this name")

	cardCmd.AddCommand(cardListCmd)
	cardCmd.AddCommand(cardArchivedCmd)
	cardCmd.AddCommand(cardFindCmd)
	cardCmd.AddCommand(cardShowCmd)
	cardCmd.AddCommand(cardCreateCmd)
	cardCmd.AddCommand(cardMoveCmd)
	cardCmd.AddCommand(cardDescribeCmd)
	cardCmd.AddCommand(cardArchiveCmd)
	cardCmd.AddCommand(cardRestoreCmd)
	cardCmd.AddCommand(cardAttachCmd)
	cardCmd.AddCommand(cardDetachCmd)

	rootCmd.AddCommand(cardCmd)
}
