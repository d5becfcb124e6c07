package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/redact-flow/internal/backend"
	"github.com/Veraticus/redact-flow/internal/common"
	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/Veraticus/redact-flow/internal/policy"
	"github.com/Veraticus/redact-flow/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pending(names ...string) []model.PendingFile {
	files := make([]model.PendingFile, len(names))
	for i, name := range names {
		files[i] = model.PendingFile{Name: name, Content: []byte("content of " + name)}
	}
	return files
}

func newTestController(t *testing.T, be *MockBackend, opener Opener) *Controller {
	t.Helper()
	store := selection.NewStore(policy.New())
	return NewController(store, be, opener)
}

func TestController_SubmitEmptyBatch(t *testing.T) {
	be := NewMockBackend()
	c := newTestController(t, be, &MockOpener{})

	artifacts, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrEmptyBatch)
	assert.Nil(t, artifacts)
	assert.Empty(t, be.Submits(), "backend must not be contacted")
	assert.Equal(t, model.StatusIdle, c.Status())
	assert.False(t, c.CanSubmit())
}

func TestController_SubmitSendsSnapshot(t *testing.T) {
	be := NewMockBackend()
	c := newTestController(t, be, &MockOpener{})

	c.Store().SetFiles(pending("id.png"))
	c.Store().SetUseCase(model.UseCaseFacialVerification)
	require.True(t, c.CanSubmit())

	artifacts, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Artifact{{
		Filename:    "id_redacted.pdf",
		DownloadURL: "http://backend.test/download/id_redacted.pdf",
	}}, artifacts)

	calls := be.Submits()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"id.png"}, calls[0].Files)
	assert.False(t, calls[0].Selection.Redacted(model.CategoryPerson))
	assert.True(t, calls[0].Selection.Redacted(model.CategoryPassport))
	assert.True(t, calls[0].Selection.IsTotal())

	assert.Equal(t, model.StatusSubmitted, c.Status())
	// Submitting leaves the pending files in place.
	assert.Len(t, c.Store().Files(), 1)
}

func TestController_SubmitReplacesArtifacts(t *testing.T) {
	be := NewMockBackend()
	c := newTestController(t, be, &MockOpener{})

	c.Store().SetFiles(pending("a.pdf", "b.pdf"))
	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Results().Artifacts(), 2)

	c.Store().SetFiles(pending("c.pdf"))
	_, err = c.Submit(context.Background())
	require.NoError(t, err)

	artifacts := c.Results().Artifacts()
	require.Len(t, artifacts, 1)
	assert.Equal(t, "c_redacted.pdf", artifacts[0].Filename)
}

func TestController_SubmitFailures(t *testing.T) {
	tests := []struct {
		submitErr   error
		wantType    any
		name        string
		wantMessage string
	}{
		{
			name:        "backend reported error is shown verbatim",
			submitErr:   &backend.APIError{Message: "bad file", StatusCode: 400},
			wantType:    &BackendError{},
			wantMessage: "bad file",
		},
		{
			name:        "transport failure is generic",
			submitErr:   errors.New("connection refused"),
			wantType:    &TransportError{},
			wantMessage: "Could not reach the redaction service. Please try again.",
		},
		{
			name:        "malformed response is a transport failure",
			submitErr:   backend.ErrMalformedResponse,
			wantType:    &TransportError{},
			wantMessage: "Could not reach the redaction service. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := NewMockBackend()
			c := newTestController(t, be, &MockOpener{})

			c.Store().SetFiles(pending("first.pdf"))
			_, err := c.Submit(context.Background())
			require.NoError(t, err)
			before := c.Results().Artifacts()

			be.SubmitErr = tt.submitErr
			c.Store().SetFiles(pending("second.pdf"))
			_, err = c.Submit(context.Background())
			require.Error(t, err)
			assert.IsType(t, tt.wantType, err)
			assert.Equal(t, tt.wantMessage, common.UserMessage(err))

			assert.Equal(t, before, c.Results().Artifacts(), "failed submission keeps previous artifacts")
			assert.Equal(t, pending("second.pdf"), c.Store().Files(), "files stay for retry")
			assert.False(t, c.orchestrator.Submitting())
		})
	}
}

func TestController_SubmitInFlightGate(t *testing.T) {
	be := NewMockBackend()
	be.Block = make(chan struct{})
	be.Started = make(chan struct{}, 1)
	c := newTestController(t, be, &MockOpener{})
	c.Store().SetFiles(pending("slow.pdf"))

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-be.Started

	assert.Equal(t, model.StatusSubmitting, c.Status())
	assert.False(t, c.CanSubmit())

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(be.Block)
	require.NoError(t, <-done)
	assert.Len(t, be.Submits(), 1)
	assert.Equal(t, model.StatusSubmitted, c.Status())
	assert.True(t, c.CanSubmit())
}

func TestController_SubmitCancelled(t *testing.T) {
	be := NewMockBackend()
	be.Block = make(chan struct{})
	c := newTestController(t, be, &MockOpener{})
	c.Store().SetFiles(pending("a.pdf"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Submit(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.Results().Artifacts())
	assert.Equal(t, model.StatusIdle, c.Status())
}

func TestController_DownloadAndForwardStatus(t *testing.T) {
	be := NewMockBackend()
	opener := &MockOpener{}
	c := newTestController(t, be, opener)

	c.Store().SetFiles(pending("f1.pdf", "f2.pdf"))
	artifacts, err := c.Submit(context.Background())
	require.NoError(t, err)

	require.NoError(t, c.Download(context.Background(), artifacts[0]))
	assert.Equal(t, []model.Artifact{artifacts[1]}, c.Results().Artifacts())
	assert.Equal(t, model.StatusSubmitted, c.Status())

	link, err := c.Forward(context.Background(), artifacts[1])
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.test/f2_redacted.pdf", link.URL)
	assert.Empty(t, c.Results().Artifacts())
	// The link is still on screen.
	assert.Equal(t, model.StatusSubmitted, c.Status())
}

func TestOrderBySubmission(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		artifacts []string
		want      []string
	}{
		{
			name:      "reorders to submission order",
			files:     []string{"b.pdf", "a.png"},
			artifacts: []string{"a_redacted.pdf", "b_redacted.pdf"},
			want:      []string{"b_redacted.pdf", "a_redacted.pdf"},
		},
		{
			name:      "longest stem wins",
			files:     []string{"scan.pdf", "scan2.pdf"},
			artifacts: []string{"scan2_redacted.pdf", "scan_redacted.pdf"},
			want:      []string{"scan_redacted.pdf", "scan2_redacted.pdf"},
		},
		{
			name:      "unmatched artifacts go last in server order",
			files:     []string{"a.pdf"},
			artifacts: []string{"zzz.pdf", "a_out.pdf", "yyy.pdf"},
			want:      []string{"a_out.pdf", "zzz.pdf", "yyy.pdf"},
		},
		{
			name:      "empty response",
			files:     []string{"a.pdf"},
			artifacts: []string{},
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifacts := make([]model.Artifact, len(tt.artifacts))
			for i, name := range tt.artifacts {
				artifacts[i] = model.Artifact{Filename: name}
			}

			got := orderBySubmission(pending(tt.files...), artifacts)
			names := make([]string, len(got))
			for i, a := range got {
				names[i] = a.Filename
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
