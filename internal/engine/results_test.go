package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Veraticus/redact-flow/internal/backend"
	"github.com/Veraticus/redact-flow/internal/common"
	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func artifactsFor(names ...string) []model.Artifact {
	out := make([]model.Artifact, len(names))
	for i, name := range names {
		out[i] = model.Artifact{Filename: name, DownloadURL: "http://backend.test/download/" + name}
	}
	return out
}

func TestResults_Download(t *testing.T) {
	tests := []struct {
		openErr   error
		wantErr   error
		name      string
		target    model.Artifact
		wantNames []string
	}{
		{
			name:      "removes only the downloaded artifact",
			target:    artifactsFor("f1")[0],
			wantNames: []string{"f2"},
		},
		{
			name:      "unknown artifact",
			target:    model.Artifact{Filename: "gone"},
			wantErr:   ErrArtifactNotFound,
			wantNames: []string{"f1", "f2"},
		},
		{
			name:      "opener failure keeps artifact",
			target:    artifactsFor("f2")[0],
			openErr:   errors.New("no browser"),
			wantNames: []string{"f1", "f2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := &MockOpener{Err: tt.openErr}
			r := NewResults(NewMockBackend(), opener)
			r.Replace(artifactsFor("f1", "f2"))

			err := r.Download(context.Background(), tt.target)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.openErr != nil:
				require.ErrorIs(t, err, tt.openErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, []model.Artifact{tt.target}, opener.Opened())
			}

			var names []string
			for _, a := range r.Artifacts() {
				names = append(names, a.Filename)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestResults_DownloadTwice(t *testing.T) {
	r := NewResults(NewMockBackend(), &MockOpener{})
	r.Replace(artifactsFor("f1"))

	require.NoError(t, r.Download(context.Background(), artifactsFor("f1")[0]))
	err := r.Download(context.Background(), artifactsFor("f1")[0])
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestResults_Forward(t *testing.T) {
	be := NewMockBackend()
	r := NewResults(be, &MockOpener{})
	r.Replace(artifactsFor("f1", "f2"))

	link, err := r.Forward(context.Background(), artifactsFor("f1")[0])
	require.NoError(t, err)
	assert.Equal(t, model.PublicLink{URL: "https://bucket.test/f1", Filename: "f1"}, link)

	current, ok := r.Link()
	require.True(t, ok)
	assert.Equal(t, link, current)
	assert.Equal(t, artifactsFor("f2"), r.Artifacts())
	assert.Equal(t, []string{"f1"}, be.Forwards())
}

func TestResults_ForwardFailureIsScoped(t *testing.T) {
	be := NewMockBackend()
	be.ForwardErrs["f1"] = &backend.APIError{Message: "bucket unavailable", StatusCode: 500}
	r := NewResults(be, &MockOpener{})
	r.Replace(artifactsFor("f1", "f2"))

	_, err := r.Forward(context.Background(), artifactsFor("f1")[0])
	require.Error(t, err)

	var fwdErr *ForwardError
	require.ErrorAs(t, err, &fwdErr)
	assert.Equal(t, "f1", fwdErr.Filename)
	assert.Equal(t, "bucket unavailable", common.UserMessage(err))

	assert.Equal(t, artifactsFor("f1", "f2"), r.Artifacts())
	assert.Equal(t, err, r.Err("f1"))
	assert.NoError(t, r.Err("f2"))
	assert.False(t, r.Forwarding("f1"))

	_, ok := r.Link()
	assert.False(t, ok)

	// The other artifact is unaffected.
	_, err = r.Forward(context.Background(), artifactsFor("f2")[0])
	require.NoError(t, err)
	assert.Equal(t, artifactsFor("f1"), r.Artifacts())
}

func TestResults_ForwardTransportError(t *testing.T) {
	be := NewMockBackend()
	be.ForwardErrs["f1"] = errors.New("dial tcp: refused")
	r := NewResults(be, &MockOpener{})
	r.Replace(artifactsFor("f1"))

	_, err := r.Forward(context.Background(), artifactsFor("f1")[0])
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "Failed to send f1 to storage", common.UserMessage(err))
}

func TestResults_ForwardInFlight(t *testing.T) {
	be := NewMockBackend()
	be.Block = make(chan struct{})
	be.Started = make(chan struct{}, 1)
	opener := &MockOpener{}
	r := NewResults(be, opener)
	r.Replace(artifactsFor("f1", "f2"))

	r.link = model.PublicLink{URL: "https://bucket.test/old", Filename: "old"}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := r.Forward(context.Background(), artifactsFor("f1")[0])
		assert.NoError(t, err)
	}()
	<-be.Started

	assert.True(t, r.Forwarding("f1"))
	assert.False(t, r.Forwarding("f2"))
	assert.True(t, r.AnyForwarding())
	_, ok := r.Link()
	assert.False(t, ok, "starting a forward clears the displayed link")

	_, err := r.Forward(context.Background(), artifactsFor("f1")[0])
	assert.ErrorIs(t, err, ErrForwardInFlight)

	// Downloading the other artifact is still possible.
	require.NoError(t, r.Download(context.Background(), artifactsFor("f2")[0]))

	close(be.Block)
	wg.Wait()

	assert.Empty(t, r.Artifacts())
	link, ok := r.Link()
	require.True(t, ok)
	assert.Equal(t, "f1", link.Filename)
}

func TestResults_ReplaceClearsErrors(t *testing.T) {
	be := NewMockBackend()
	be.ForwardErrs["f1"] = errors.New("boom")
	r := NewResults(be, &MockOpener{})
	r.Replace(artifactsFor("f1"))

	_, err := r.Forward(context.Background(), artifactsFor("f1")[0])
	require.Error(t, err)

	r.Replace(artifactsFor("f1"))
	assert.NoError(t, r.Err("f1"))
}

func TestResults_Share(t *testing.T) {
	r := NewResults(NewMockBackend(), &MockOpener{}, WithShareMessage("Redacted copy"))
	links := r.Share(model.PublicLink{URL: "https://bucket.test/f1", Filename: "f1"})

	assert.Equal(t, "https://bucket.test/f1", links.URL)
	assert.Contains(t, links.WhatsApp, "https://wa.me/?text=")
	assert.Contains(t, links.Email, "mailto:?subject=")
}
