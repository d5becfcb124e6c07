package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/redact-flow/internal/common"
	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderFiles(),
		m.renderPanes(),
	}
	if link := m.renderLink(); link != "" {
		sections = append(sections, link)
	}
	sections = append(sections, m.renderStatus(), m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("Document Redaction")

	var badge string
	switch status := m.controller.Status(); status {
	case model.StatusSubmitting:
		badge = m.theme.StatusInfo.Render(m.spinner.View() + " Processing...")
	case model.StatusForwarding:
		badge = m.theme.StatusInfo.Render(m.spinner.View() + " Sending to storage...")
	case model.StatusSubmitted:
		badge = m.theme.StatusSuccess.Render("Processed")
	default:
		badge = m.theme.StatusPending.Render("Ready")
	}
	if m.capturing {
		badge = m.theme.StatusInfo.Render(m.spinner.View() + " Capturing...")
	}

	return title + "  " + badge
}

func (m Model) renderFiles() string {
	store := m.controller.Store()
	files := store.Files()
	useCase := m.theme.Bold.Render(store.UseCase().Label())

	if len(files) == 0 {
		return m.theme.Subtitle.Render("No files selected. Pass files on the command line or press p to capture.") +
			"\nUse case: " + useCase
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	line := "Files: " + strings.Join(names, ", ")
	if preview, ok := store.Preview(); ok && len(files) > 1 {
		line += m.theme.Subtitle.Render(fmt.Sprintf(" (preview: %s)", preview.Name))
	}
	return line + "\nUse case: " + useCase
}

func (m Model) renderPanes() string {
	categories := m.paneStyle(PaneCategories).Render(m.renderCategories())
	artifacts := m.paneStyle(PaneArtifacts).Render(m.renderArtifacts())

	if m.width >= 100 {
		return lipgloss.JoinHorizontal(lipgloss.Top, categories, " ", artifacts)
	}
	return lipgloss.JoinVertical(lipgloss.Left, categories, artifacts)
}

func (m Model) paneStyle(p Pane) lipgloss.Style {
	if m.focus == p {
		return m.theme.FocusedPane
	}
	return m.theme.Pane
}

func (m Model) renderCategories() string {
	selection := m.controller.Store().Selection()

	lines := []string{m.theme.Bold.Render("Redact")}
	for i, c := range m.categories {
		mark := m.theme.Redacted.Render("[x]")
		if !selection.Redacted(c) {
			mark = m.theme.Visible.Render("[ ]")
		}
		label := fmt.Sprintf("%s %s", mark, c.Label())
		if m.focus == PaneCategories && i == m.catCursor {
			label = m.theme.Selected.Render(">") + " " + label
		} else {
			label = "  " + label
		}
		lines = append(lines, label)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderArtifacts() string {
	results := m.controller.Results()
	artifacts := results.Artifacts()

	lines := []string{m.theme.Bold.Render("Processed files")}
	if len(artifacts) == 0 {
		lines = append(lines, m.theme.Subtitle.Render("Nothing yet"))
		return strings.Join(lines, "\n")
	}

	for i, a := range artifacts {
		prefix := "  "
		if m.focus == PaneArtifacts && i == m.artCursor {
			prefix = m.theme.Selected.Render(">") + " "
		}
		line := prefix + a.Filename
		if results.Forwarding(a.Filename) {
			line += " " + m.theme.StatusInfo.Render(m.spinner.View()+" sending")
		} else if err := results.Err(a.Filename); err != nil {
			line += " " + m.theme.StatusError.Render(common.UserMessage(err))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLink() string {
	results := m.controller.Results()
	link, ok := results.Link()
	if !ok {
		return ""
	}

	links := results.Share(link)
	lines := []string{
		m.theme.Bold.Render("Public link") + "  " + m.theme.Link.Render(links.URL),
		"WhatsApp: " + m.theme.Subtitle.Render(links.WhatsApp),
		"Email:    " + m.theme.Subtitle.Render(links.Email),
	}
	if m.copied {
		lines = append(lines, m.theme.StatusSuccess.Render("Copied!"))
	}
	return m.theme.Pane.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	switch {
	case m.lastError != "":
		return m.theme.StatusError.Render("Error: " + m.lastError)
	case m.message != "":
		return m.theme.StatusSuccess.Render(m.message)
	default:
		return ""
	}
}
