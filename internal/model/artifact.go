package model

// Artifact is the server reported result of redacting one submitted file.
type Artifact struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
}

// PublicLink is the externally reachable location of an artifact after it
// has been forwarded to durable storage.
type PublicLink struct {
	URL      string
	Filename string
}

// IsZero reports whether no link is present.
func (l PublicLink) IsZero() bool {
	return l.URL == ""
}

// Status is the workflow state that gates which actions are available.
type Status string

// Workflow states.
const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSubmitted  Status = "submitted"
	StatusForwarding Status = "forwarding"
)
