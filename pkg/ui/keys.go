package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/friendly_charts/pkg/controller"
)

// KeyMap holds the viewer key bindings
type KeyMap struct {
	Enter  key.Binding
	Escape key.Binding
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding

	Focus       key.Binding
	Copy        key.Binding
	Description key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings. Navigation keys are the
// six keys of the chart application region.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drill down")),
		Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "drill up")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "next group")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "previous group")),

		Focus:       key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus chart")),
		Copy:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy announcement")),
		Description: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle description")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Enter, k.Escape, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.Escape, k.Left, k.Right, k.Up, k.Down},
		{k.Focus, k.Copy, k.Description},
		{k.Help, k.Quit},
	}
}

// navigationKey maps a key message to the controller key it stands for
func (k KeyMap) navigationKey(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, k.Enter):
		return controller.KeyEnter, true
	case key.Matches(msg, k.Escape):
		return controller.KeyEscape, true
	case key.Matches(msg, k.Left):
		return controller.KeyArrowLeft, true
	case key.Matches(msg, k.Right):
		return controller.KeyArrowRight, true
	case key.Matches(msg, k.Up):
		return controller.KeyArrowUp, true
	case key.Matches(msg, k.Down):
		return controller.KeyArrowDown, true
	}
	return "", false
}
