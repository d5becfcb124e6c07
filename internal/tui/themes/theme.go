// Package themes holds the TUI color palettes.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Pane          lipgloss.Style
	FocusedPane   lipgloss.Style
	Redacted      lipgloss.Style
	Visible       lipgloss.Style
	Link          lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

// Palette is the set of colors a theme is derived from.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color
}

// New derives a theme from p.
func New(p Palette) Theme {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	return Theme{
		Primary: p.Primary,
		Muted:   p.Muted,
		Border:  p.Border,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Subtle),
		Normal: lipgloss.NewStyle().
			Foreground(p.Foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Foreground),
		Selected: lipgloss.NewStyle().
			Background(p.Primary).
			Foreground(p.Background).
			Bold(true),

		Pane:        pane,
		FocusedPane: pane.BorderForeground(p.Primary),

		Redacted: lipgloss.NewStyle().
			Foreground(p.Secondary),
		Visible: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		Link: lipgloss.NewStyle().
			Foreground(p.Info).
			Underline(true),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.Info).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
	}
}

// Default is the default theme.
var Default = New(Palette{
	Primary:    lipgloss.Color("#7c3aed"),
	Secondary:  lipgloss.Color("#a78bfa"),
	Success:    lipgloss.Color("#10b981"),
	Warning:    lipgloss.Color("#f59e0b"),
	Error:      lipgloss.Color("#ef4444"),
	Info:       lipgloss.Color("#3b82f6"),
	Background: lipgloss.Color("#1a1a1a"),
	Foreground: lipgloss.Color("#fafafa"),
	Subtle:     lipgloss.Color("#a3a3a3"),
	Border:     lipgloss.Color("#404040"),
	Muted:      lipgloss.Color("#737373"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = New(Palette{
	Primary:    lipgloss.Color("#cba6f7"),
	Secondary:  lipgloss.Color("#f5c2e7"),
	Success:    lipgloss.Color("#a6e3a1"),
	Warning:    lipgloss.Color("#f9e2af"),
	Error:      lipgloss.Color("#f38ba8"),
	Info:       lipgloss.Color("#89dceb"),
	Background: lipgloss.Color("#1e1e2e"),
	Foreground: lipgloss.Color("#cdd6f4"),
	Subtle:     lipgloss.Color("#a6adc8"),
	Border:     lipgloss.Color("#45475a"),
	Muted:      lipgloss.Color("#6c7086"),
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
