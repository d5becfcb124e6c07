// Package tui implements the interactive terminal front end for the
// redaction workflow.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/redact-flow/internal/common"
	"github.com/Veraticus/redact-flow/internal/engine"
	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/Veraticus/redact-flow/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pane identifies the focused list.
type Pane int

// Panes.
const (
	PaneCategories Pane = iota
	PaneArtifacts
)

// Model holds the TUI state. Workflow state lives in the controller; the
// model only tracks cursors and transient messages.
type Model struct {
	ctx        context.Context
	controller *engine.Controller
	theme      themes.Theme
	help       help.Model
	spinner    spinner.Model
	message    string
	lastError  string
	config     Config
	keymap     KeyMap
	categories []model.Category
	width      int
	height     int
	catCursor  int
	artCursor  int
	inFlight   int
	focus      Pane
	capturing  bool
	submitting bool
	copied     bool
	quitting   bool
}

func newModel(cfg Config) Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(cfg.Theme.Primary)),
	)

	h := help.New()
	h.ShowAll = cfg.ShowHelp
	h.Width = cfg.Width

	return Model{
		ctx:        context.Background(),
		controller: cfg.Controller,
		config:     cfg,
		theme:      cfg.Theme,
		keymap:     DefaultKeyMap(),
		help:       h,
		spinner:    s,
		categories: model.Categories(),
		width:      cfg.Width,
		height:     cfg.Height,
	}
}

// Init loads any files given on the command line.
func (m Model) Init() tea.Cmd {
	if len(m.config.Files) > 0 {
		return m.loadFiles(m.config.Files)
	}
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.inFlight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case filesLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.controller.Store().SetFiles(msg.files)
		m.setMessage(fmt.Sprintf("Loaded %d file(s)", len(msg.files)))
		return m, nil

	case captureDoneMsg:
		m.inFlight--
		m.capturing = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.controller.Store().SetFiles([]model.PendingFile{msg.file})
		m.setMessage("Captured " + msg.file.Name)
		return m, nil

	case submitDoneMsg:
		return m.handleSubmitDone(msg), nil

	case downloadDoneMsg:
		m.inFlight--
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setMessage("Downloaded " + msg.filename)
		}
		m.clampArtifactCursor()
		return m, nil

	case forwardDoneMsg:
		m.inFlight--
		if msg.err != nil {
			if !errors.Is(msg.err, engine.ErrForwardInFlight) {
				m.setError(msg.err)
			}
		} else {
			m.copied = false
			m.setMessage("Sent " + msg.filename + " to storage")
		}
		m.clampArtifactCursor()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.lastError = "Could not copy the link to the clipboard"
			return m, nil
		}
		m.copied = true
		return m, expireCopied(m.config.Clipboard.CopiedFor())

	case copiedExpiredMsg:
		m.copied = m.config.Clipboard != nil && m.config.Clipboard.Copied()
		return m, nil
	}

	return m, nil
}

func (m Model) handleSubmitDone(msg submitDoneMsg) Model {
	m.inFlight--
	if errors.Is(msg.err, engine.ErrSubmissionInFlight) {
		return m
	}
	m.submitting = false
	if msg.err != nil {
		m.setError(msg.err)
		return m
	}
	m.setMessage(fmt.Sprintf("Processed %d file(s)", len(msg.artifacts)))
	m.focus = PaneArtifacts
	m.artCursor = 0
	m.copied = false
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := m.controller.Store()
	results := m.controller.Results()

	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.NextPane):
		if m.focus == PaneCategories {
			m.focus = PaneArtifacts
		} else {
			m.focus = PaneCategories
		}

	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keymap.Toggle):
		if m.focus == PaneCategories {
			if err := store.ToggleCategory(m.categories[m.catCursor]); err != nil {
				m.setError(err)
			}
		}

	case key.Matches(msg, m.keymap.UseCase):
		store.SetUseCase(store.UseCase().Next())
		m.setMessage("Use case: " + store.UseCase().Label())

	case key.Matches(msg, m.keymap.Clear):
		store.Clear()
		m.setMessage("Cleared files")

	case key.Matches(msg, m.keymap.Capture):
		if m.config.Capture == nil {
			m.lastError = "No capture command configured"
			return m, nil
		}
		if m.capturing {
			return m, nil
		}
		m.capturing = true
		m.inFlight++
		m.clearStatus()
		return m, tea.Batch(m.spinner.Tick, m.captureImage())

	case key.Matches(msg, m.keymap.Submit):
		if m.submitting {
			return m, nil
		}
		if len(store.Files()) == 0 {
			m.setError(engine.ErrEmptyBatch)
			return m, nil
		}
		m.submitting = true
		m.inFlight++
		m.clearStatus()
		return m, tea.Batch(m.spinner.Tick, m.submit())

	case key.Matches(msg, m.keymap.Download):
		artifact, ok := m.selectedArtifact()
		if !ok {
			return m, nil
		}
		m.inFlight++
		m.clearStatus()
		return m, tea.Batch(m.spinner.Tick, m.download(artifact))

	case key.Matches(msg, m.keymap.Forward):
		artifact, ok := m.selectedArtifact()
		if !ok || results.Forwarding(artifact.Filename) {
			return m, nil
		}
		m.inFlight++
		m.clearStatus()
		m.copied = false
		return m, tea.Batch(m.spinner.Tick, m.forward(artifact))

	case key.Matches(msg, m.keymap.CopyLink):
		link, ok := results.Link()
		if !ok || m.config.Clipboard == nil {
			return m, nil
		}
		return m, m.copyLink(link.URL)
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.focus == PaneCategories {
		m.catCursor = clamp(m.catCursor+delta, len(m.categories))
		return
	}
	m.artCursor = clamp(m.artCursor+delta, len(m.controller.Results().Artifacts()))
}

func (m *Model) clampArtifactCursor() {
	m.artCursor = clamp(m.artCursor, len(m.controller.Results().Artifacts()))
}

func (m Model) selectedArtifact() (model.Artifact, bool) {
	if m.focus != PaneArtifacts {
		return model.Artifact{}, false
	}
	artifacts := m.controller.Results().Artifacts()
	if m.artCursor < 0 || m.artCursor >= len(artifacts) {
		return model.Artifact{}, false
	}
	return artifacts[m.artCursor], true
}

func (m *Model) setError(err error) {
	m.lastError = common.UserMessage(err)
	m.message = ""
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.lastError = ""
}

func (m *Model) clearStatus() {
	m.message = ""
	m.lastError = ""
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
