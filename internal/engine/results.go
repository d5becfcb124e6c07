package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/Veraticus/redact-flow/internal/share"
)

// Results coordinates the follow-up actions on processed artifacts. Each
// action works on one artifact and re-reads the live list when it completes.
type Results struct {
	backend      Backend
	opener       Opener
	forwarding   map[string]bool
	errs         map[string]error
	link         model.PublicLink
	shareMessage string
	artifacts    []model.Artifact
	mu           sync.Mutex
}

// ResultsOption configures Results.
type ResultsOption func(*Results)

// WithShareMessage sets the text that prefixes shared links.
func WithShareMessage(message string) ResultsOption {
	return func(r *Results) {
		r.shareMessage = message
	}
}

// NewResults creates an empty result coordinator.
func NewResults(backend Backend, opener Opener, opts ...ResultsOption) *Results {
	r := &Results{
		backend:    backend,
		opener:     opener,
		forwarding: make(map[string]bool),
		errs:       make(map[string]error),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Replace swaps the active artifact list for a new submission's results.
func (r *Results) Replace(artifacts []model.Artifact) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.artifacts = make([]model.Artifact, len(artifacts))
	copy(r.artifacts, artifacts)
	r.errs = make(map[string]error)
}

// Artifacts returns a copy of the active list.
func (r *Results) Artifacts() []model.Artifact {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Artifact, len(r.artifacts))
	copy(out, r.artifacts)
	return out
}

// Link returns the current public link, if any.
func (r *Results) Link() (model.PublicLink, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.link, !r.link.IsZero()
}

// Forwarding reports whether filename is being forwarded.
func (r *Results) Forwarding(filename string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.forwarding[filename]
}

// AnyForwarding reports whether any forward is in flight.
func (r *Results) AnyForwarding() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forwarding) > 0
}

// Err returns the last forward error for filename.
func (r *Results) Err(filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errs[filename]
}

// Download opens the artifact's locator and removes it from the active list.
// A downloaded artifact is not offered again. If opening fails the artifact
// stays available.
func (r *Results) Download(ctx context.Context, artifact model.Artifact) error {
	if !r.contains(artifact.Filename) {
		return ErrArtifactNotFound
	}
	if r.opener == nil {
		return errors.New("no download handler configured")
	}

	if err := r.opener.Open(ctx, artifact); err != nil {
		slog.Warn("Failed to open artifact", "filename", artifact.Filename, "error", err)
		return err
	}

	r.mu.Lock()
	r.remove(artifact.Filename)
	r.mu.Unlock()

	slog.Debug("Artifact downloaded", "filename", artifact.Filename)
	return nil
}

// Forward publishes the artifact to durable storage. Only this artifact's
// forward action is gated while the call runs. On success the public link is
// replaced and the artifact is removed; on failure the list is unchanged and
// the error is recorded for this artifact.
func (r *Results) Forward(ctx context.Context, artifact model.Artifact) (model.PublicLink, error) {
	r.mu.Lock()
	if !r.containsLocked(artifact.Filename) {
		r.mu.Unlock()
		return model.PublicLink{}, ErrArtifactNotFound
	}
	if r.forwarding[artifact.Filename] {
		r.mu.Unlock()
		return model.PublicLink{}, ErrForwardInFlight
	}
	r.forwarding[artifact.Filename] = true
	delete(r.errs, artifact.Filename)
	r.link = model.PublicLink{}
	r.mu.Unlock()

	publicURL, err := r.backend.Forward(ctx, artifact.Filename)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forwarding, artifact.Filename)

	if err != nil {
		fwdErr := &ForwardError{Filename: artifact.Filename, Err: classifyBackendError(err)}
		r.errs[artifact.Filename] = fwdErr
		slog.Warn("Forward to storage failed", "filename", artifact.Filename, "error", err)
		return model.PublicLink{}, fwdErr
	}

	r.link = model.PublicLink{URL: publicURL, Filename: artifact.Filename}
	r.remove(artifact.Filename)

	slog.Info("Artifact forwarded to storage", "filename", artifact.Filename, "public_url", publicURL)
	return r.link, nil
}

// Share formats the presentations of link.
func (r *Results) Share(link model.PublicLink) share.Links {
	return share.Format(link, r.shareMessage)
}

func (r *Results) contains(filename string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.containsLocked(filename)
}

func (r *Results) containsLocked(filename string) bool {
	for _, a := range r.artifacts {
		if a.Filename == filename {
			return true
		}
	}
	return false
}

// remove drops filename from the live list. The caller holds r.mu.
func (r *Results) remove(filename string) {
	for i, a := range r.artifacts {
		if a.Filename == filename {
			r.artifacts = append(r.artifacts[:i:i], r.artifacts[i+1:]...)
			return
		}
	}
}
