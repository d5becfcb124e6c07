// Package engine implements the redaction workflow controller: batch
// submission against the redaction service and the follow-up actions on the
// artifacts it returns.
package engine

import (
	"context"

	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/Veraticus/redact-flow/internal/selection"
)

// Controller wires the selection store to the submission orchestrator and
// the result coordinator.
type Controller struct {
	store        *selection.Store
	orchestrator *Orchestrator
	results      *Results
}

// NewController creates a controller over store and backend. opener handles
// downloads.
func NewController(store *selection.Store, backend Backend, opener Opener, opts ...ResultsOption) *Controller {
	results := NewResults(backend, opener, opts...)
	return &Controller{
		store:        store,
		orchestrator: NewOrchestrator(backend, results),
		results:      results,
	}
}

// Store returns the selection store.
func (c *Controller) Store() *selection.Store {
	return c.store
}

// Results returns the result coordinator.
func (c *Controller) Results() *Results {
	return c.results
}

// Submit snapshots the store and submits it. The store is never modified, so
// a failed submission can be corrected and retried without re-choosing files.
func (c *Controller) Submit(ctx context.Context) ([]model.Artifact, error) {
	snap := c.store.Snapshot()
	return c.orchestrator.Submit(ctx, snap.Files, snap.Selection)
}

// Download opens artifact and consumes it.
func (c *Controller) Download(ctx context.Context, artifact model.Artifact) error {
	return c.results.Download(ctx, artifact)
}

// Forward publishes artifact to durable storage.
func (c *Controller) Forward(ctx context.Context, artifact model.Artifact) (model.PublicLink, error) {
	return c.results.Forward(ctx, artifact)
}

// Status derives the workflow status from the submission and forward gates.
func (c *Controller) Status() model.Status {
	switch {
	case c.orchestrator.Submitting():
		return model.StatusSubmitting
	case c.results.AnyForwarding():
		return model.StatusForwarding
	case len(c.results.Artifacts()) > 0:
		return model.StatusSubmitted
	default:
		if _, ok := c.results.Link(); ok {
			return model.StatusSubmitted
		}
		return model.StatusIdle
	}
}

// CanSubmit reports whether the submit affordance is enabled.
func (c *Controller) CanSubmit() bool {
	return !c.orchestrator.Submitting() && len(c.store.Files()) > 0
}
