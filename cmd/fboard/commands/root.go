package commands

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"fboard/cmd/fboard/output"
	"fboard/internal/di"
	"fboard/internal/domain/entity"
	"fboard/internal/infrastructure/config"
	"fboard/internal/infrastructure/logging"
	"fboard/internal/infrastructure/storage"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags
	rootPath     string
	outputFormat string
	configPath   string
	quiet        bool

	// Shared instances
	cfg       *config.Config
	loader    *config.Loader
	logger    *logging.Logger
	container *di.Container
	printer   *output.Printer
	formatter *output.Formatter
)

// skipBoardAnnotation marks commands that run without opening the board root
const skipBoardAnnotation = "fboard/skip-board"

var multiSpaceRE = regexp.MustCompile(`\s{2,}`)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fboard",
	Short: "Kanban board stored as plain folders",
	Long: `fboard turns a directory tree into a Kanban board.

Every first level folder of the board root is a stage and every folder inside
a stage is a card. Card descriptions, comments and legends live in small text
files next to any attachments, so the board stays readable without fboard.

Examples:
  # Launch interactive TUI on the current directory
  fboard
  fboard tui

  # Use another board root
  fboard --root ~/boards/team board show

  # Create a card and move it forward
  fboard card create todo "Fix login bug"
  fboard card move "todo/Fix login bug" --next

  # Archive a card and bring it back later
  fboard card archive "done/Fix login bug"
  fboard card restore "Arquivados/Fix login bug"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			loader = config.LoadFrom(configPath)
		} else {
			loader, err = config.NewLoader()
			if err != nil {
				return fmt.Errorf("failed to create config loader: %w", err)
			}
		}

		cfg, err = loader.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if rootPath != "" {
			cfg.Storage.RootPath = rootPath
		}

		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		formatter = output.NewFormatter(format, os.Stdout)
		printer = output.NewPrinter(os.Stdout, quiet)

		if skipsBoard(cmd) {
			return nil
		}

		logger, err = logging.New(cfg.Logging, quiet)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		container, err = di.InitializeContainer(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to open board: %w", err)
		}
		logger.WithField("root", string(container.RootPath)).Debug("board opened")

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			return logger.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.WithError(err).Debug("command failed")
			_ = logger.Close()
		}
		errPrinter := output.NewPrinter(os.Stderr, false)
		errPrinter.Error("%v", err)
		if hint := errorHint(err); hint != "" {
			errPrinter.Info("%s", hint)
		}
		os.Exit(1)
	}
}

// errorHint suggests the next step for errors the user can fix by hand
func errorHint(err error) string {
	if storage.IsPermissionDenied(err) {
		return "The board folder is not writable. Pick another folder with --root or fix its permissions."
	}
	return ""
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Board root directory (default: storage.root_path or the working directory)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml, fzf, path")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			printVersion()
			return nil
		}
		if len(args) > 0 {
			return cmd.Help()
		}
		return tuiCmd.RunE(cmd, args)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("fboard version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Built:      %s\n", BuildDate)
}

// getContext returns a context for command execution
func getContext() context.Context {
	return context.Background()
}

func skipsBoard(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[skipBoardAnnotation]; ok {
			return true
		}
	}
	return false
}

// parseCardRef splits "stage/card". Folder names cannot contain a slash, so
// the first one is the separator. Absolute paths, as printed by "-o path",
// are taken relative to the board root.
func parseCardRef(arg string) (entity.CardRef, error) {
	root := ""
	if container != nil {
		root = string(container.RootPath)
	}
	return parseCardRefIn(root, arg)
}

func parseCardRefIn(root, arg string) (entity.CardRef, error) {
	arg = strings.TrimSpace(arg)
	if filepath.IsAbs(arg) {
		arg = relativeCardPath(root, arg)
	}
	stage, folder, ok := strings.Cut(arg, "/")
	if !ok || strings.TrimSpace(stage) == "" || strings.TrimSpace(folder) == "" {
		return entity.CardRef{}, fmt.Errorf("invalid card reference %q: expected <stage>/<card>", arg)
	}
	return entity.CardRef{Stage: stage, Folder: strings.TrimSuffix(folder, "/")}, nil
}

// relativeCardPath turns "<root>/<stage>/<card>" into "stage/card". A path
// outside root keeps its last two elements.
func relativeCardPath(root, path string) string {
	path = filepath.Clean(path)
	if root != "" {
		rel, err := filepath.Rel(filepath.Clean(root), path)
		if err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.Base(filepath.Dir(path)) + "/" + filepath.Base(path)
}

// formatCardRef is the inverse of parseCardRef
func formatCardRef(stage, folder string) string {
	return stage + "/" + folder
}

// resolveArgs fills missing leading arguments from piped stdin, so the
// output of "card list -o fzf" can be fed back into card commands
func resolveArgs(args []string, expected int) ([]string, error) {
	if len(args) >= expected {
		return args, nil
	}

	pipedArgs, err := readPipedArgs(expected)
	if err != nil {
		return nil, err
	}

	needed := expected - len(args)
	available := len(args) + len(pipedArgs)
	if len(pipedArgs) < needed {
		return nil, fmt.Errorf("accepts %d arg(s), received %d", expected, available)
	}

	resolved := append([]string{}, pipedArgs[:needed]...)
	resolved = append(resolved, args...)
	return resolved, nil
}

func readPipedArgs(expected int) ([]string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}

	return extractArgsFromInput(data, expected), nil
}

func extractArgsFromInput(data []byte, expected int) []string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	bestScore := -1
	var best []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens, score := parsePipedLine(line, expected)
		if len(tokens) < expected {
			continue
		}

		if score > bestScore {
			bestScore = score
			best = tokens
		}
	}

	if len(best) == 0 {
		return nil
	}
	return best
}

// parsePipedLine scores a line by how clearly it separates fields. Card
// titles may contain single spaces, so a lone line without tabs or wide
// gaps is taken whole when one argument is expected.
func parsePipedLine(line string, expected int) ([]string, int) {
	if strings.Contains(line, "\t") {
		return splitFields(line, func(r rune) bool { return r == '\t' }), 3
	}
	if strings.Contains(line, " :: ") {
		return strings.Split(line, " :: "), 3
	}
	if multiSpaceRE.MatchString(line) {
		return multiSpaceRE.Split(line, -1), 2
	}
	if expected == 1 {
		if strings.Contains(line, "/") {
			return []string{line}, 2
		}
		return []string{line}, 1
	}
	return strings.Fields(line), 1
}

func splitFields(input string, split func(rune) bool) []string {
	fields := strings.FieldsFunc(input, split)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		out = append(out, field)
	}
	return out
}
