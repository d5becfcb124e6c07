package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/Veraticus/redact-flow/internal/share"
)

// Action is what the user wants done with one processed artifact.
type Action int

// Artifact actions.
const (
	ActionSkip Action = iota
	ActionDownload
	ActionForward
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionDownload:
		return "download"
	case ActionForward:
		return "forward"
	case ActionQuit:
		return "quit"
	default:
		return "skip"
	}
}

// ErrInputTerminated is returned when input ends before a valid answer.
var ErrInputTerminated = errors.New("input terminated")

// Prompter asks the user what to do with processed artifacts.
type Prompter struct {
	writer io.Writer
	reader *NonBlockingReader
}

// NewPrompter creates a prompter. Nil arguments default to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// ChooseAction asks what to do with artifact. canForward hides the forward
// choice when the artifact is already being forwarded.
func (p *Prompter) ChooseAction(ctx context.Context, artifact model.Artifact, canForward bool) (Action, error) {
	p.println(fmt.Sprintf("\n%s %s", BoldStyle.Render("Processed:"), artifact.Filename))

	choices := map[string]Action{"d": ActionDownload, "s": ActionSkip, "q": ActionQuit}
	prompt := "[d]ownload, [s]kip, [q]uit"
	if canForward {
		choices["f"] = ActionForward
		prompt = "[d]ownload, [f]orward to storage, [s]kip, [q]uit"
	}

	choice, err := p.promptChoice(ctx, prompt, choices)
	if err != nil {
		return ActionQuit, err
	}
	return choice, nil
}

// Confirm asks a yes/no question. An empty answer means no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	choice, err := p.promptChoice(ctx, question+" [y/N]", map[string]Action{
		"y":   ActionDownload,
		"yes": ActionDownload,
		"n":   ActionSkip,
		"no":  ActionSkip,
		"":    ActionSkip,
	})
	if err != nil {
		return false, err
	}
	return choice == ActionDownload, nil
}

// ShowSelection prints what a submission will redact.
func (p *Prompter) ShowSelection(selection model.SelectionSet, useCase model.UseCase) {
	p.println(RenderBox("Redaction settings", FormatSelection(selection, useCase)))
}

// ShowArtifacts prints the processed artifacts.
func (p *Prompter) ShowArtifacts(artifacts []model.Artifact) {
	p.println(RenderBox("Processed files", FormatArtifacts(artifacts)))
}

// ShowLinks prints the share presentations of a public link.
func (p *Prompter) ShowLinks(links share.Links, copied bool) {
	content := fmt.Sprintf("%s %s\n\nWhatsApp: %s\nEmail:    %s",
		LinkIcon, links.URL, SubtleStyle.Render(links.WhatsApp), SubtleStyle.Render(links.Email))
	if copied {
		content += "\n\n" + FormatSuccess("Copied to clipboard")
	}
	p.println(RenderBox("Public link", content))
}

// ShowError prints err's user-facing message.
func (p *Prompter) ShowError(message string) {
	p.println(FormatError(message))
}

// ShowSuccess prints a success line.
func (p *Prompter) ShowSuccess(message string) {
	p.println(FormatSuccess(message))
}

func (p *Prompter) promptChoice(ctx context.Context, prompt string, choices map[string]Action) (Action, error) {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
			return ActionQuit, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ActionQuit, ErrInputTerminated
			}
			return ActionQuit, err
		}

		if action, ok := choices[strings.ToLower(line)]; ok {
			return action, nil
		}

		p.println(FormatError("Invalid choice. Please try again."))
	}
}

func (p *Prompter) println(s string) {
	if _, err := fmt.Fprintln(p.writer, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}
