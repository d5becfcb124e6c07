package engine

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/redact-flow/internal/model"
)

// Orchestrator runs one batch round trip per submit action. Only one
// submission may be in flight at a time.
type Orchestrator struct {
	backend  Backend
	results  *Results
	mu       sync.Mutex
	inFlight bool
}

// NewOrchestrator creates an orchestrator that publishes successful results
// to results.
func NewOrchestrator(backend Backend, results *Results) *Orchestrator {
	return &Orchestrator{
		backend: backend,
		results: results,
	}
}

// Submit sends files and selection as a single batch. On success the result
// coordinator's artifact list is replaced wholesale. On failure the previous
// artifacts stay untouched. Failures are never retried.
func (o *Orchestrator) Submit(ctx context.Context, files []model.PendingFile, selection model.SelectionSet) ([]model.Artifact, error) {
	if len(files) == 0 {
		return nil, ErrEmptyBatch
	}

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	o.inFlight = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	start := time.Now()
	artifacts, err := o.backend.Submit(ctx, files, selection.Clone())
	if err != nil {
		classified := classifyBackendError(err)
		slog.Warn("Batch submission failed",
			"files", len(files),
			"duration", time.Since(start),
			"error", err)
		return nil, classified
	}

	artifacts = orderBySubmission(files, artifacts)
	o.results.Replace(artifacts)

	slog.Info("Batch submission completed",
		"files", len(files),
		"artifacts", len(artifacts),
		"duration", time.Since(start))

	out := make([]model.Artifact, len(artifacts))
	copy(out, artifacts)
	return out, nil
}

// Submitting reports whether a submission is in flight.
func (o *Orchestrator) Submitting() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

// orderBySubmission sorts artifacts into the order their source files were
// submitted. An artifact belongs to the input whose stem is the longest
// prefix of the artifact's name; unmatched artifacts keep their relative
// order after the matched ones.
func orderBySubmission(files []model.PendingFile, artifacts []model.Artifact) []model.Artifact {
	stems := make([]string, len(files))
	for i, f := range files {
		stems[i] = stem(f.Name)
	}

	rank := make(map[int]int, len(artifacts))
	for i, a := range artifacts {
		name := stem(a.Filename)
		best, bestLen := len(files), -1
		for j, s := range stems {
			if s != "" && strings.HasPrefix(name, s) && len(s) > bestLen {
				best, bestLen = j, len(s)
			}
		}
		rank[i] = best
	}

	idx := make([]int, len(artifacts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return rank[idx[a]] < rank[idx[b]]
	})

	out := make([]model.Artifact, len(artifacts))
	for i, j := range idx {
		out[i] = artifacts[j]
	}
	return out
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
