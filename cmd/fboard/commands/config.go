package commands

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fboard/internal/infrastructure/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage fboard configuration settings.

Configuration is stored in YAML format at:
  ~/.config/fboard/config.yml

Examples:
  # Show current configuration
  fboard config show

  # Get a specific config value
  fboard config get storage.archived_stage

  # Set a config value
  fboard config set watch.debounce_ms 500

  # Edit config in editor
  fboard config edit

  # Show config file location
  fboard config path

  # Write a default config file if none exists
  fboard config init

  # Reset config to defaults
  fboard config reset`,
	Annotations: map[string]string{skipBoardAnnotation: ""},
}

// configShowCmd shows the current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration settings, including the defaults filled in
for keys missing from the file.

Examples:
  # Show in YAML format (default)
  fboard config show

  # Show in JSON format
  fboard config show --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if formatter.Structured() {
			return formatter.Print(cfg)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

// configGetCmd gets a specific config value
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Long: `Get a specific configuration value by key.

Use dot notation for nested values.

Examples:
  fboard config get storage.root_path
  fboard config get tui.styles.legend`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := configTree(cfg)
		if err != nil {
			return err
		}
		value, err := lookupKey(tree, args[0])
		if err != nil {
			return err
		}

		if formatter.Structured() {
			return formatter.Print(value)
		}
		if _, nested := value.(map[string]interface{}); nested {
			data, err := yaml.Marshal(value)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		}
		fmt.Println(value)
		return nil
	},
}

// configSetCmd sets a config value
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a configuration value and save the config file.

Use dot notation for nested values. The value is read as YAML, so numbers,
booleans and lists keep their type.

Examples:
  fboard config set storage.root_path ~/boards/team
  fboard config set storage.create_empty_comments false
  fboard config set keybindings.quit "[q, ctrl+c]"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, raw := args[0], args[1]

		// start from the file, not from cfg, so --root is never persisted
		persisted, err := loader.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		tree, err := configTree(persisted)
		if err != nil {
			return err
		}

		var value interface{}
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return fmt.Errorf("invalid value %q: %w", raw, err)
		}
		if err := setKey(tree, key, value); err != nil {
			return err
		}

		updated, err := configFromTree(tree)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if err := loader.Save(updated); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		printer.Success("Set %s = %s", key, raw)
		return nil
	},
}

// configEditCmd opens the config file in an editor
var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration in $EDITOR",
	Long: `Open the config file in $EDITOR (vi when unset) and check that it still
loads afterwards.

Examples:
  fboard config edit
  EDITOR=nano fboard config edit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		editCmd := buildEditorCommand(editor, loader.GetConfigPath())
		cleanup, err := attachEditorIO(editCmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := editCmd.Run(); err != nil {
			return fmt.Errorf("failed to run editor: %w", err)
		}

		if _, err := loader.Load(); err != nil {
			printer.Warning("Config no longer loads: %v", err)
			return nil
		}
		printer.Success("Config saved")
		return nil
	},
}

// configPathCmd shows the config file path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(loader.GetConfigPath())
		return nil
	},
}

// configInitCmd writes the default config file when it is missing
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with defaults",
	Long: `Write the default settings to the config file. Any fboard command
creates it on first use; init only does so explicitly. An existing file is
left untouched; use "fboard config reset --force" to overwrite it.

Examples:
  fboard config init
  fboard config init --config ./fboard.yml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := loader.GetConfigPath()
		if !loader.Created() {
			printer.Info("Config already exists at %s", path)
			return nil
		}
		printer.Success("Created %s", path)
		return nil
	},
}

// configResetCmd resets config to defaults
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to defaults",
	Long: `Overwrite the config file with the default settings.

Examples:
  fboard config reset --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			printer.Warning("This overwrites %s", loader.GetConfigPath())
			printer.Info("Run again with --force to confirm")
			return nil
		}

		if err := loader.Save(config.Default()); err != nil {
			return fmt.Errorf("failed to reset config: %w", err)
		}
		printer.Success("Config reset to defaults")
		return nil
	},
}

// configTree converts the config into nested maps keyed by yaml names
func configTree(c *config.Config) (map[string]interface{}, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}
	tree := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func configFromTree(tree map[string]interface{}) (*config.Config, error) {
	data, err := yaml.Marshal(tree)
	if err != nil {
		return nil, err
	}
	updated := config.Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func lookupKey(tree map[string]interface{}, key string) (interface{}, error) {
	var current interface{} = tree
	for _, part := range strings.Split(key, ".") {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unknown config key %q", key)
		}
		current, ok = node[part]
		if !ok {
			return nil, fmt.Errorf("unknown config key %q", key)
		}
	}
	return current, nil
}

// setKey walks existing sections only. Unknown leaf names are caught when
// the tree is decoded back with KnownFields.
func setKey(tree map[string]interface{}, key string, value interface{}) error {
	parts := strings.Split(key, ".")
	node := tree
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]interface{})
		if !ok {
			return fmt.Errorf("unknown config key %q", key)
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
	return nil
}

func init() {
	configResetCmd.Flags().BoolP("force", "f", false, "Overwrite without asking")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configResetCmd)

	rootCmd.AddCommand(configCmd)
}
