package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fboard/internal/domain/entity"
	"fboard/pkg/filesystem"
)

const (
	defaultConfigFileName = "config.yml"
	defaultConfigDirName  = ".config/fboard"
	defaultLogFileName    = "fboard.log"
	defaultDataDirName    = ".local/share/fboard"
)

// Config holds application configuration
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Logging     LoggingConfig     `yaml:"logging"`
	Watch       WatchConfig       `yaml:"watch"`
	TUI         TUIConfig         `yaml:"tui"`
	Keybindings KeybindingsConfig `yaml:"keybindings"`
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	// RootPath is the board folder. Empty means the working directory.
	RootPath            string `yaml:"root_path"`
	ArchivedStage       string `yaml:"archived_stage"`
	CreateEmptyComments bool   `yaml:"create_empty_comments"`
	LoadConcurrency     int    `yaml:"load_concurrency"`
}

// LoggingConfig holds log level and rotation settings
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// WatchConfig holds file watching configuration
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// TUIConfig holds TUI styling configuration
type TUIConfig struct {
	Styles StylesConfig `yaml:"styles"`
}

// StylesConfig holds color and styling configuration
type StylesConfig struct {
	Column          ColumnStyle    `yaml:"column"`
	FocusedColumn   ColumnStyle    `yaml:"focused_column"`
	ColumnTitle     TextStyle      `yaml:"column_title"`
	Card            TextStyle      `yaml:"card"`
	SelectedCard    TextStyle      `yaml:"selected_card"`
	Help            TextStyle      `yaml:"help"`
	CardBorder      CardStyle      `yaml:"card_border"`
	SelectedBorder  CardStyle      `yaml:"selected_card_border"`
	Preview         TextStyle      `yaml:"preview"`
	Status          TextStyle      `yaml:"status"`
	Error           TextStyle      `yaml:"error"`
	TaskUrgency     DueDateColors  `yaml:"task_urgency"`
	ScrollIndicator TextStyle      `yaml:"scroll_indicator"`
	Legend          LegendTagStyle `yaml:"legend"`
}

// ColumnStyle represents column styling
type ColumnStyle struct {
	PaddingVertical   int    `yaml:"padding_vertical"`
	PaddingHorizontal int    `yaml:"padding_horizontal"`
	BorderStyle       string `yaml:"border_style"`
	BorderColor       string `yaml:"border_color"`
}

// TextStyle represents text styling
type TextStyle struct {
	Foreground        string `yaml:"foreground,omitempty"`
	Background        string `yaml:"background,omitempty"`
	Bold              bool   `yaml:"bold,omitempty"`
	Italic            bool   `yaml:"italic,omitempty"`
	PaddingVertical   int    `yaml:"padding_vertical,omitempty"`
	PaddingHorizontal int    `yaml:"padding_horizontal,omitempty"`
	Align             string `yaml:"align,omitempty"`
}

// CardStyle represents card border styling
type CardStyle struct {
	BorderColor string `yaml:"border_color"`
}

// LegendTagStyle controls how legend chips are drawn on cards
type LegendTagStyle struct {
	Foreground string `yaml:"foreground"`
}

// DueDateColors holds colors for the checklist urgency levels
type DueDateColors struct {
	Overdue  string `yaml:"overdue"`
	VeryNear string `yaml:"very_near"`
	Near     string `yaml:"near"`
	OK       string `yaml:"ok"`
	Done     string `yaml:"done"`
}

// KeybindingsConfig holds keybinding configuration
type KeybindingsConfig struct {
	Up       []string `yaml:"up"`
	Down     []string `yaml:"down"`
	Left     []string `yaml:"left"`
	Right    []string `yaml:"right"`
	Move     []string `yaml:"move"`
	MoveBack []string `yaml:"move_back"`
	Archive  []string `yaml:"archive"`
	Reload   []string `yaml:"reload"`
	Quit     []string `yaml:"quit"`
}

// Loader handles loading and saving configuration
type Loader struct {
	configPath string
	created    bool
}

// NewLoader creates a loader for the default config file
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, defaultConfigDirName, defaultConfigFileName)
	return &Loader{configPath: configPath}, nil
}

// LoadFrom creates a loader for an explicit config file
func LoadFrom(path string) *Loader {
	return &Loader{configPath: path}
}

// Load loads the configuration, creating defaults if it doesn't exist.
// Fields missing from the file keep their default values.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.configPath)
	if errors.Is(err, os.ErrNotExist) {
		return l.createDefaultConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.normalize()

	return config, nil
}

// Save persists the configuration to disk
func (l *Loader) Save(config *Config) error {
	if err := filesystem.EnsureDir(filepath.Dir(l.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := filesystem.SafeWrite(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// createDefaultConfig creates and saves a default configuration
func (l *Loader) createDefaultConfig() (*Config, error) {
	config := Default()
	if err := l.Save(config); err != nil {
		return nil, err
	}
	l.created = true
	return config, nil
}

// Created reports whether Load wrote the default file because none existed
func (l *Loader) Created() bool {
	return l.created
}

// GetConfigPath returns the path to the config file
func (l *Loader) GetConfigPath() string {
	return l.configPath
}

// normalize restores defaults for values a hand-edited file left invalid
func (c *Config) normalize() {
	defaults := Default()
	if c.Storage.ArchivedStage == "" {
		c.Storage.ArchivedStage = defaults.Storage.ArchivedStage
	}
	if c.Storage.LoadConcurrency <= 0 {
		c.Storage.LoadConcurrency = defaults.Storage.LoadConcurrency
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = defaults.Watch.DebounceMS
	}
}

// DefaultLogFile returns the log file used when logging.file is empty
func DefaultLogFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), defaultLogFileName)
	}
	return filepath.Join(homeDir, defaultDataDirName, defaultLogFileName)
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			ArchivedStage:       entity.DefaultArchivedStage,
			CreateEmptyComments: true,
			LoadConcurrency:     4,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Watch: WatchConfig{
			DebounceMS: 250,
		},
		TUI: TUIConfig{
			Styles: StylesConfig{
				Column: ColumnStyle{
					PaddingVertical:   1,
					PaddingHorizontal: 2,
					BorderStyle:       "rounded",
					BorderColor:       "240",
				},
				FocusedColumn: ColumnStyle{
					PaddingVertical:   1,
					PaddingHorizontal: 2,
					BorderStyle:       "rounded",
					BorderColor:       "62",
				},
				ColumnTitle: TextStyle{
					Foreground: "99",
					Bold:       true,
					Align:      "center",
				},
				Card: TextStyle{
					Foreground:        "252",
					PaddingHorizontal: 1,
				},
				SelectedCard: TextStyle{
					Foreground:        "230",
					Background:        "62",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				Help: TextStyle{
					Foreground:        "241",
					PaddingVertical:   1,
					PaddingHorizontal: 2,
				},
				CardBorder: CardStyle{
					BorderColor: "#444444",
				},
				SelectedBorder: CardStyle{
					BorderColor: "#A8DADC",
				},
				Preview: TextStyle{
					Foreground:        "#888888",
					Italic:            true,
					PaddingHorizontal: 2,
				},
				Status: TextStyle{
					Foreground:        "#95E1D3",
					PaddingHorizontal: 2,
				},
				Error: TextStyle{
					Foreground:        "#FF6B6B",
					Bold:              true,
					PaddingHorizontal: 2,
				},
				TaskUrgency: DueDateColors{
					Overdue:  "#FF6B6B",
					VeryNear: "#FF9F43",
					Near:     "#FFE66D",
					OK:       "#A8DADC",
					Done:     "#95E1D3",
				},
				ScrollIndicator: TextStyle{
					Foreground: "#999999",
					Bold:       true,
				},
				Legend: LegendTagStyle{
					Foreground: "#111111",
				},
			},
		},
		Keybindings: KeybindingsConfig{
			Up:       []string{"up", "k"},
			Down:     []string{"down", "j"},
			Left:     []string{"left", "h"},
			Right:    []string{"right", "l"},
			Move:     []string{"m", "enter"},
			MoveBack: []string{"M"},
			Archive:  []string{"a"},
			Reload:   []string{"r"},
			Quit:     []string{"q", "ctrl+c"},
		},
	}
}
