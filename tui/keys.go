package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"fboard/internal/infrastructure/config"
)

// keyMap holds the board key bindings. It implements help.KeyMap.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Move     key.Binding
	MoveBack key.Binding
	Archive  key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

var keys = newKeyMap(config.Default().Keybindings)

// InitKeybindings loads the key bindings from config
func InitKeybindings(cfg *config.Config) {
	keys = newKeyMap(cfg.Keybindings)
}

func newKeyMap(kb config.KeybindingsConfig) keyMap {
	return keyMap{
		Up:       binding(kb.Up, "card up"),
		Down:     binding(kb.Down, "card down"),
		Left:     binding(kb.Left, "stage left"),
		Right:    binding(kb.Right, "stage right"),
		Move:     binding(kb.Move, "move →"),
		MoveBack: binding(kb.MoveBack, "move ←"),
		Archive:  binding(kb.Archive, "archive"),
		Reload:   binding(kb.Reload, "reload"),
		Quit:     binding(kb.Quit, "quit"),
	}
}

func binding(keys []string, help string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), help),
	)
}

// ShortHelp is shown in the footer
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Move, k.MoveBack, k.Archive, k.Reload, k.Quit}
}

// FullHelp groups bindings by navigation and actions
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Move, k.MoveBack, k.Archive, k.Reload, k.Quit},
	}
}
