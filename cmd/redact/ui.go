package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/redact-flow/internal/capture"
	"github.com/Veraticus/redact-flow/internal/common"
	"github.com/Veraticus/redact-flow/internal/config"
	"github.com/Veraticus/redact-flow/internal/share"
	"github.com/Veraticus/redact-flow/internal/tui"
	"github.com/Veraticus/redact-flow/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func uiCmd() *cobra.Command {
	var themeName string

	cmd := &cobra.Command{
		Use:   "ui [FILE...]",
		Short: "Open the interactive redaction screen",
		Long: `Open a full-screen interface to pick redaction settings, submit files and act
on the results. Logs are written to logging.file while the screen is open.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := redirectLogs(config.ExpandPath(viper.GetString("logging.file")))
			if err != nil {
				return err
			}
			defer closeLog()

			sess, err := newSession()
			if err != nil {
				return err
			}

			opts := []tui.Option{
				tui.WithController(sess.controller),
				tui.WithClipboard(share.NewClipboard(sess.cfg.Share.CopiedFor)),
				tui.WithTheme(themes.GetTheme(themeName)),
				tui.WithFiles(args),
			}
			if sess.cfg.Capture.Command != "" {
				source, err := capture.NewCommandSource(sess.cfg.Capture.Command)
				if err != nil {
					return err
				}
				opts = append(opts, tui.WithCapture(source))
			}

			return tui.Run(cmd.Context(), opts...)
		},
	}

	cmd.Flags().StringVar(&themeName, "theme", "default", "color theme (default, catppuccin-mocha)")
	return cmd
}

// redirectLogs keeps slog output off the alternate screen.
func redirectLogs(path string) (func(), error) {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return nil, err
	}

	if path == "" {
		if err := common.SetupLoggerTo(io.Discard, level, viper.GetString("logging.format")); err != nil {
			return nil, err
		}
		return func() {}, nil
	}

	f, err := tea.LogToFile(path, "redact")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := common.SetupLoggerTo(f, level, viper.GetString("logging.format")); err != nil {
		_ = f.Close()
		return nil, err
	}
	slog.Debug("Logging to file", "path", path)
	return func() { _ = f.Close() }, nil
}
