package engine

import (
	"context"

	"github.com/Veraticus/redact-flow/internal/model"
)

// Backend is the remote redaction service.
type Backend interface {
	Submit(ctx context.Context, files []model.PendingFile, selection model.SelectionSet) ([]model.Artifact, error)
	Forward(ctx context.Context, filename string) (publicURL string, err error)
}

// Opener opens an artifact's retrieval locator, for example in a browser or
// by saving it to disk.
type Opener interface {
	Open(ctx context.Context, artifact model.Artifact) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, artifact model.Artifact) error

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, artifact model.Artifact) error {
	return f(ctx, artifact)
}
