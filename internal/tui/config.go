package tui

import (
	"github.com/Veraticus/redact-flow/internal/capture"
	"github.com/Veraticus/redact-flow/internal/engine"
	"github.com/Veraticus/redact-flow/internal/share"
	"github.com/Veraticus/redact-flow/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme      themes.Theme
	Controller *engine.Controller
	Capture    capture.Source
	Clipboard  *share.Clipboard
	Files      []string
	Width      int
	Height     int
	ShowHelp   bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  80,
		Height: 24,
	}
}

// WithController sets the workflow controller the TUI drives.
func WithController(c *engine.Controller) Option {
	return func(cfg *Config) {
		cfg.Controller = c
	}
}

// WithCapture enables the capture action.
func WithCapture(source capture.Source) Option {
	return func(cfg *Config) {
		cfg.Capture = source
	}
}

// WithClipboard sets the clipboard used by the copy-link action.
func WithClipboard(c *share.Clipboard) Option {
	return func(cfg *Config) {
		cfg.Clipboard = c
	}
}

// WithFiles preloads files from disk when the TUI starts.
func WithFiles(paths []string) Option {
	return func(cfg *Config) {
		cfg.Files = paths
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(cfg *Config) {
		cfg.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(cfg *Config) {
		cfg.Width = width
		cfg.Height = height
	}
}
