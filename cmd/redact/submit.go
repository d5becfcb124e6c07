package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Veraticus/redact-flow/internal/backend"
	"github.com/Veraticus/redact-flow/internal/cli"
	"github.com/Veraticus/redact-flow/internal/common"
	"github.com/Veraticus/redact-flow/internal/engine"
	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/Veraticus/redact-flow/internal/selection"
	"github.com/Veraticus/redact-flow/internal/share"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type submitOptions struct {
	flags       selectionFlags
	downloadAll bool
	forwardAll  bool
	interactive bool
	copyLink    bool
	noProgress  bool
}

func submitCmd() *cobra.Command {
	var opts submitOptions

	cmd := &cobra.Command{
		Use:   "submit FILE...",
		Short: "Redact files and download or publish the results",
		Long: `Send one batch of files to the redaction service. Every file is redacted with
the same settings. Afterwards each processed file can be downloaded or sent to
shared storage, which returns a public link.`,
		Example: `  redact submit id_card.jpg --use-case identity_verification
  redact submit scan1.pdf scan2.pdf --keep org --download-all
  redact submit passport.png --use-case unclassified --forward-all --copy`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("interactive") {
				opts.interactive = !opts.downloadAll && !opts.forwardAll && isTerminal(os.Stdin)
			}
			return runSubmit(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args, opts)
		},
	}

	opts.flags.register(cmd)
	cmd.Flags().BoolVar(&opts.downloadAll, "download-all", false, "download every processed file")
	cmd.Flags().BoolVar(&opts.forwardAll, "forward-all", false, "send every processed file to storage")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose an action per processed file (default when stdin is a terminal)")
	cmd.Flags().BoolVar(&opts.copyLink, "copy", false, "copy the last public link to the clipboard")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable the upload progress bar")

	return cmd
}

func runSubmit(ctx context.Context, in io.Reader, out io.Writer, paths []string, opts submitOptions) error {
	files, err := selection.LoadFiles(paths)
	if err != nil {
		return common.NewUserError("Could not load files", err)
	}

	var clientOpts []backend.Option
	if !opts.noProgress && isTerminal(os.Stderr) {
		clientOpts = append(clientOpts, backend.WithProgress(cli.NewUploadProgress(os.Stderr, "Uploading")))
	}

	sess, err := newSession(clientOpts...)
	if err != nil {
		return err
	}

	store := sess.controller.Store()
	store.SetFiles(files)
	if err := opts.flags.apply(store); err != nil {
		return err
	}

	prompter := cli.NewPrompter(in, out)
	prompter.ShowSelection(store.Selection(), store.UseCase())

	ctx = cli.NewInterruptHandler(out).WithMessage("Redaction interrupted!").HandleInterrupts(ctx)

	artifacts, err := sess.controller.Submit(ctx)
	if err != nil {
		return err
	}
	prompter.ShowArtifacts(artifacts)

	clip := share.NewClipboard(sess.cfg.Share.CopiedFor)
	h := &resultHandler{
		controller: sess.controller,
		prompter:   prompter,
		clipboard:  clip,
		copyLink:   opts.copyLink,
		saveDir:    sess.cfg.Download.Dir,
		browser:    sess.cfg.Download.Browser,
	}

	switch {
	case opts.forwardAll:
		return h.forwardAll(ctx, artifacts)
	case opts.downloadAll:
		return h.downloadAll(ctx, artifacts)
	case opts.interactive:
		return h.interactive(ctx, artifacts)
	default:
		return nil
	}
}

// resultHandler runs the post-processing actions chosen on the command line.
type resultHandler struct {
	controller *engine.Controller
	prompter   *cli.Prompter
	clipboard  *share.Clipboard
	saveDir    string
	copyLink   bool
	browser    bool
	mu         sync.Mutex
}

func (h *resultHandler) downloadAll(ctx context.Context, artifacts []model.Artifact) error {
	var failed int
	for _, a := range artifacts {
		if !h.download(ctx, a) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(artifacts))
	}
	return nil
}

func (h *resultHandler) download(ctx context.Context, a model.Artifact) bool {
	if err := h.controller.Download(ctx, a); err != nil {
		h.prompter.ShowError(fmt.Sprintf("%s: %s", a.Filename, common.UserMessage(err)))
		return false
	}
	if h.browser {
		h.prompter.ShowSuccess("Opened " + a.Filename + " in the browser")
	} else {
		h.prompter.ShowSuccess("Saved " + a.Filename + " to " + h.saveDir)
	}
	return true
}

// forwardAll publishes every artifact concurrently. Each forward is
// independent; one failure does not cancel the others.
func (h *resultHandler) forwardAll(ctx context.Context, artifacts []model.Artifact) error {
	s := startSpinner(fmt.Sprintf("Sending %d file(s) to storage...", len(artifacts)))

	type outcome struct {
		err  error
		link model.PublicLink
	}
	outcomes := make([]outcome, len(artifacts))

	var g errgroup.Group
	g.SetLimit(4)
	for i, a := range artifacts {
		i, a := i, a
		g.Go(func() error {
			link, err := h.controller.Forward(ctx, a)
			outcomes[i] = outcome{link: link, err: err}
			return nil
		})
	}
	_ = g.Wait()
	s.Stop()

	var failed int
	var last model.PublicLink
	for i, o := range outcomes {
		if o.err != nil {
			failed++
			h.prompter.ShowError(fmt.Sprintf("%s: %s", artifacts[i].Filename, common.UserMessage(o.err)))
			continue
		}
		last = o.link
		h.prompter.ShowSuccess(fmt.Sprintf("%s %s %s", artifacts[i].Filename, cli.LinkIcon, o.link.URL))
	}

	if !last.IsZero() {
		h.showLink(last)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d forwards failed", failed, len(artifacts))
	}
	return nil
}

func (h *resultHandler) forward(ctx context.Context, a model.Artifact) {
	s := startSpinner("Sending " + a.Filename + " to storage...")
	link, err := h.controller.Forward(ctx, a)
	s.Stop()

	if err != nil {
		h.prompter.ShowError(common.UserMessage(err))
		return
	}
	h.showLink(link)
}

func (h *resultHandler) interactive(ctx context.Context, artifacts []model.Artifact) error {
	for _, a := range artifacts {
		action, err := h.prompter.ChooseAction(ctx, a, !h.controller.Results().Forwarding(a.Filename))
		if err != nil {
			return err
		}

		switch action {
		case cli.ActionDownload:
			h.download(ctx, a)
		case cli.ActionForward:
			h.forward(ctx, a)
		case cli.ActionQuit:
			return nil
		case cli.ActionSkip:
		}
	}
	return nil
}

func (h *resultHandler) showLink(link model.PublicLink) {
	h.mu.Lock()
	defer h.mu.Unlock()

	copied := false
	if h.copyLink {
		if err := h.clipboard.Copy(link.URL); err != nil {
			slog.Warn("Could not copy link", "error", err)
		} else {
			copied = h.clipboard.Copied()
		}
	}
	h.prompter.ShowLinks(h.controller.Results().Share(link), copied)
}

func startSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	if err := s.Color("cyan"); err != nil {
		slog.Debug("Failed to set spinner color", "error", err)
	}
	if isTerminal(os.Stderr) {
		s.Start()
	}
	return s
}
