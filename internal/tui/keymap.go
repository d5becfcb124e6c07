package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPane  key.Binding
	Toggle    key.Binding
	UseCase   key.Binding
	Submit    key.Binding
	Download  key.Binding
	Forward   key.Binding
	CopyLink  key.Binding
	Capture   key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch pane"),
		),

		// Selection
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("Space/x", "toggle category"),
		),
		UseCase: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "cycle use case"),
		),
		Capture: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "capture photo"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("Ctrl+X", "clear files"),
		),

		// Actions
		Submit: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("Enter/s", "submit"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		Forward: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "send to storage"),
		),
		CopyLink: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy link"),
		),

		// Application
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Toggle, k.Submit, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPane},
		{k.Toggle, k.UseCase, k.Capture, k.Clear},
		{k.Submit, k.Download, k.Forward, k.CopyLink},
		{k.Help, k.Quit},
	}
}
