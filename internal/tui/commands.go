package tui

import (
	"context"
	"time"

	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/Veraticus/redact-flow/internal/selection"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) loadFiles(paths []string) tea.Cmd {
	return func() tea.Msg {
		files, err := selection.LoadFiles(paths)
		return filesLoadedMsg{files: files, err: err}
	}
}

func (m Model) captureImage() tea.Cmd {
	source := m.config.Capture
	ctx := m.ctx
	return func() tea.Msg {
		file, err := source.Capture(ctx)
		return captureDoneMsg{file: file, err: err}
	}
}

func (m Model) submit() tea.Cmd {
	c := m.controller
	ctx := m.ctx
	return func() tea.Msg {
		artifacts, err := c.Submit(ctx)
		return submitDoneMsg{artifacts: artifacts, err: err}
	}
}

func (m Model) download(artifact model.Artifact) tea.Cmd {
	c := m.controller
	ctx := m.ctx
	return func() tea.Msg {
		err := c.Download(ctx, artifact)
		return downloadDoneMsg{filename: artifact.Filename, err: err}
	}
}

func (m Model) forward(artifact model.Artifact) tea.Cmd {
	c := m.controller
	ctx := m.ctx
	return func() tea.Msg {
		link, err := c.Forward(ctx, artifact)
		return forwardDoneMsg{filename: artifact.Filename, link: link, err: err}
	}
}

func (m Model) copyLink(url string) tea.Cmd {
	clip := m.config.Clipboard
	return func() tea.Msg {
		return copiedMsg{err: clip.Copy(url)}
	}
}

func expireCopied(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return copiedExpiredMsg{}
	})
}

// withContext lets tests and Run supply the context async actions use.
func (m Model) withContext(ctx context.Context) Model {
	m.ctx = ctx
	return m
}
