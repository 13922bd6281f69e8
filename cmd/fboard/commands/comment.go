package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// commentCmd represents the comment command
var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage card comments",
	Long: `Manage the comments stored one per line in a card's comments.txt.

Comments are numbered from 1 as shown by "fboard card show". A comment must
be a single non-empty line.

Examples:
  fboard comment add "todo/Fix login" "Reproduced on staging"
  fboard comment edit "todo/Fix login" 1 "Reproduced on staging and prod"
  fboard comment delete "todo/Fix login" 1`,
}

// commentAddCmd appends a comment
var commentAddCmd = &cobra.Command{
	Use:   "add <stage/card> <text...>",
	Short: "Add a comment",
	Long: `Append a comment to a card. Remaining arguments are joined with spaces.

Examples:
  fboard comment add "todo/Fix login" Reproduced on staging`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}

		if err := container.CommentUseCase.Add(ctx, ref, strings.Join(args[1:], " ")); err != nil {
			return fmt.Errorf("failed to add comment: %w", err)
		}
		printer.Success("Comment added to %s", args[0])
		return nil
	},
}

// commentEditCmd replaces a comment
var commentEditCmd = &cobra.Command{
	Use:   "edit <stage/card> <number> <text...>",
	Short: "Replace a comment",
	Long: `Replace the comment with the given number.

Examples:
  fboard comment edit "todo/Fix login" 2 "Fixed by reverting the cookie change"`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}
		index, err := parseCommentNumber(args[1])
		if err != nil {
			return err
		}

		if err := container.CommentUseCase.Edit(ctx, ref, index, strings.Join(args[2:], " ")); err != nil {
			return fmt.Errorf("failed to edit comment: %w", err)
		}
		printer.Success("Comment %s of %s updated", args[1], args[0])
		return nil
	},
}

// commentDeleteCmd removes a comment
var commentDeleteCmd = &cobra.Command{
	Use:     "delete <stage/card> <number>",
	Aliases: []string{"rm"},
	Short:   "Delete a comment",
	Long: `Delete the comment with the given number.

Examples:
  fboard comment delete "todo/Fix login" 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		ref, err := parseCardRef(args[0])
		if err != nil {
			return err
		}
		index, err := parseCommentNumber(args[1])
		if err != nil {
			return err
		}

		if err := container.CommentUseCase.Delete(ctx, ref, index); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		printer.Success("Comment %s of %s deleted", args[1], args[0])
		return nil
	},
}

// parseCommentNumber converts the 1-based number shown to users into an index
func parseCommentNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid comment number %q", arg)
	}
	return n - 1, nil
}

func init() {
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentEditCmd)
	commentCmd.AddCommand(commentDeleteCmd)

	rootCmd.AddCommand(commentCmd)
}
