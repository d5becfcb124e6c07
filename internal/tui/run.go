package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Controller == nil {
		return fmt.Errorf("controller is required")
	}

	m := newModel(cfg).withContext(ctx)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			slog.Debug("TUI stopped by context", "error", err)
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
