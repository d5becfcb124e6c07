// Package testutil provides a fake redaction service for tests that exercise
// the full client stack over HTTP.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// RedactionService is an in-process stand-in for the redaction backend. It
// answers the upload, download and forward endpoints.
type RedactionService struct {
	server      *httptest.Server
	forwardErrs map[string]string
	submitErr   string
	options     map[string]bool
	uploaded    []string
	forwarded   []string
	mu          sync.Mutex
}

// Option configures a RedactionService.
type Option func(*RedactionService)

// WithForwardError makes forwarding filename fail with message.
func WithForwardError(filename, message string) Option {
	return func(s *RedactionService) {
		s.forwardErrs[filename] = message
	}
}

// WithSubmitError makes every upload fail with message.
func WithSubmitError(message string) Option {
	return func(s *RedactionService) {
		s.submitErr = message
	}
}

// NewRedactionService starts a fake service that is closed when the test
// ends. Each uploaded file comes back as "<stem>_redacted.pdf".
func NewRedactionService(t *testing.T, opts ...Option) *RedactionService {
	t.Helper()

	s := &RedactionService{forwardErrs: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/download/", s.handleDownload)
	mux.HandleFunc("/send_to_s3", s.handleForward)

	s.server = httptest.NewServer(mux)
	t.Cleanup(s.server.Close)
	return s
}

// URL returns the service base URL.
func (s *RedactionService) URL() string {
	return s.server.URL
}

// Uploaded returns the names of every uploaded file in order.
func (s *RedactionService) Uploaded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uploaded...)
}

// Forwarded returns the filenames successfully forwarded.
func (s *RedactionService) Forwarded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.forwarded...)
}

// Options returns the piiOptions of the last upload.
func (s *RedactionService) Options() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.options))
	for k, v := range s.options {
		out[k] = v
	}
	return out
}

// RedactedName is the artifact name the service reports for an upload.
func RedactedName(upload string) string {
	return strings.TrimSuffix(upload, filepath.Ext(upload)) + "_redacted.pdf"
}

func (s *RedactionService) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid upload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitErr != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": s.submitErr})
		return
	}

	var options map[string]bool
	if err := json.Unmarshal([]byte(r.FormValue("piiOptions")), &options); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid piiOptions"})
		return
	}
	s.options = options

	processed := make([]map[string]string, 0)
	for _, fh := range r.MultipartForm.File["files"] {
		s.uploaded = append(s.uploaded, fh.Filename)
		name := RedactedName(fh.Filename)
		processed = append(processed, map[string]string{
			"filename":     name,
			"download_url": "/download/" + name,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"processedFiles": processed})
}

func (s *RedactionService) handleDownload(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "redacted:%s", filepath.Base(r.URL.Path))
}

func (s *RedactionService) handleForward(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "filename is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if msg, ok := s.forwardErrs[req.Filename]; ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
		return
	}
	s.forwarded = append(s.forwarded, req.Filename)
	writeJSON(w, http.StatusOK, map[string]string{"public_url": "https://bucket.test/" + req.Filename})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
