package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Mapping struct {
	NextMarker key.Binding
	PrevMarker key.Binding
	Activate   key.Binding
	Reload     key.Binding
	GoBack     key.Binding
	Quit       key.Binding
}

var DefaultMapping = Mapping{
	NextMarker: key.NewBinding(
		key.WithKeys(tea.KeyTab.String()),
		key.WithHelp("tab", "next marker"),
	),
	PrevMarker: key.NewBinding(
		key.WithKeys(tea.KeyShiftTab.String()),
		key.WithHelp("shift+tab", "previous marker"),
	),
	Activate: key.NewBinding(
		key.WithKeys(tea.KeyEnter.String()),
		key.WithHelp("enter", "open marker"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload layers"),
	),
	GoBack: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "go back"),
	),
	Quit: key.NewBinding(
		key.WithKeys(tea.KeyCtrlC.String()),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (m Mapping) ShortHelp() []key.Binding {
	return []key.Binding{m.NextMarker, m.PrevMarker, m.Activate, m.GoBack, m.Quit}
}

// FullHelp implements help.KeyMap.
func (m Mapping) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.NextMarker, m.PrevMarker, m.Activate},
		{m.Reload, m.GoBack, m.Quit},
	}
}
