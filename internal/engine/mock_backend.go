package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Veraticus/redact-flow/internal/model"
)

// MockBackend is a test implementation of the Backend interface. It records
// every call and derives artifacts from the submitted file names.
type MockBackend struct {
	SubmitErr   error
	ForwardErrs map[string]error
	// Block, when set, holds every call until it is closed.
	Block    chan struct{}
	Started  chan struct{}
	submits  []MockSubmitCall
	forwards []string
	mu       sync.Mutex
}

// MockSubmitCall records one batch submission.
type MockSubmitCall struct {
	Selection model.SelectionSet
	Files     []string
}

// NewMockBackend creates a mock backend that succeeds by default.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		ForwardErrs: make(map[string]error),
	}
}

// Submit returns one artifact per file, named "<stem>_redacted.pdf".
func (m *MockBackend) Submit(ctx context.Context, files []model.PendingFile, selection model.SelectionSet) ([]model.Artifact, error) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}

	m.mu.Lock()
	m.submits = append(m.submits, MockSubmitCall{Files: names, Selection: selection.Clone()})
	err := m.SubmitErr
	m.mu.Unlock()

	if waitErr := m.wait(ctx); waitErr != nil {
		return nil, waitErr
	}
	if err != nil {
		return nil, err
	}

	artifacts := make([]model.Artifact, len(names))
	for i, name := range names {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		out := base + "_redacted.pdf"
		artifacts[i] = model.Artifact{
			Filename:    out,
			DownloadURL: "http://backend.test/download/" + out,
		}
	}
	return artifacts, nil
}

// Forward returns a deterministic public URL for filename.
func (m *MockBackend) Forward(ctx context.Context, filename string) (string, error) {
	m.mu.Lock()
	m.forwards = append(m.forwards, filename)
	err := m.ForwardErrs[filename]
	m.mu.Unlock()

	if waitErr := m.wait(ctx); waitErr != nil {
		return "", waitErr
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://bucket.test/%s", filename), nil
}

// Submits returns the recorded submissions.
func (m *MockBackend) Submits() []MockSubmitCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockSubmitCall, len(m.submits))
	copy(out, m.submits)
	return out
}

// Forwards returns the filenames passed to Forward.
func (m *MockBackend) Forwards() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.forwards))
	copy(out, m.forwards)
	return out
}

func (m *MockBackend) wait(ctx context.Context) error {
	if m.Started != nil {
		m.Started <- struct{}{}
	}
	if m.Block == nil {
		return nil
	}
	select {
	case <-m.Block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MockOpener records opened artifacts.
type MockOpener struct {
	Err    error
	opened []model.Artifact
	mu     sync.Mutex
}

// Open records artifact and returns the configured error.
func (m *MockOpener) Open(_ context.Context, artifact model.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.opened = append(m.opened, artifact)
	return nil
}

// Opened returns the artifacts opened so far.
func (m *MockOpener) Opened() []model.Artifact {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Artifact, len(m.opened))
	copy(out, m.opened)
	return out
}
