package engine

import (
	"errors"
	"fmt"

	"github.com/Veraticus/redact-flow/internal/backend"
)

// Workflow errors.
var (
	// ErrEmptyBatch is returned when submitting without files. The backend
	// is never contacted.
	ErrEmptyBatch = errors.New("no files to submit")
	// ErrSubmissionInFlight is returned when a batch is already being submitted.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	// ErrForwardInFlight is returned when the artifact is already being forwarded.
	ErrForwardInFlight = errors.New("artifact is already being forwarded")
	// ErrArtifactNotFound is returned for artifacts that were consumed or
	// replaced by a newer submission.
	ErrArtifactNotFound = errors.New("artifact is no longer available")
)

// BackendError is a structured error reported by the redaction service. Its
// message is shown to the user verbatim.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// UserMessage returns the service's message unchanged.
func (e *BackendError) UserMessage() string {
	return e.Message
}

// TransportError wraps network and parse failures. The user sees a generic
// message; the cause is kept for logs.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage returns a generic, retryable description.
func (e *TransportError) UserMessage() string {
	return "Could not reach the redaction service. Please try again."
}

// ForwardError is scoped to one artifact's forward action.
type ForwardError struct {
	Err      error
	Filename string
}

func (e *ForwardError) Error() string {
	return fmt.Sprintf("forward %s: %v", e.Filename, e.Err)
}

func (e *ForwardError) Unwrap() error {
	return e.Err
}

// UserMessage shows the service's message when there is one.
func (e *ForwardError) UserMessage() string {
	var backendErr *BackendError
	if errors.As(e.Err, &backendErr) {
		return backendErr.Message
	}
	return fmt.Sprintf("Failed to send %s to storage", e.Filename)
}

// classifyBackendError sorts a client error into the workflow taxonomy.
func classifyBackendError(err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return &BackendError{Message: apiErr.Message}
	}
	return &TransportError{Err: err}
}
