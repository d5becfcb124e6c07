// Package backend is the HTTP client for the remote redaction service: batch
// submission, artifact retrieval and forwarding to durable storage.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/redact-flow/internal/model"
)

// Default endpoint paths of the redaction service.
const (
	DefaultSubmitPath  = "/upload"
	DefaultForwardPath = "/send_to_s3"
	DefaultTimeout     = 2 * time.Minute
)

// Multipart field names expected by the submit endpoint.
const (
	filesField     = "files"
	selectionField = "piiOptions"
)

// maxResponseSize bounds JSON responses read from the service.
const maxResponseSize = 4 << 20

// ErrMalformedResponse indicates the service answered with something that is
// neither a result nor a structured error.
var ErrMalformedResponse = errors.New("malformed response")

// APIError is a structured error payload reported by the service.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("redaction service error (status %d): %s", e.StatusCode, e.Message)
}

// Config holds connection settings for the service.
type Config struct {
	BaseURL     string
	SubmitPath  string
	ForwardPath string
	Timeout     time.Duration
}

// ProgressFunc returns a writer that observes upload bytes. total is the
// request body size.
type ProgressFunc func(total int64) io.Writer

// Client talks to the redaction service.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	progress    ProgressFunc
	submitPath  string
	forwardPath string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithProgress reports upload progress of batch submissions.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) {
		c.progress = fn
	}
}

// NewClient creates a client for the service at cfg.BaseURL.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("redaction service URL is required")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redaction service URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("redaction service URL must be http or https: %s", cfg.BaseURL)
	}

	submitPath := cfg.SubmitPath
	if submitPath == "" {
		submitPath = DefaultSubmitPath
	}
	forwardPath := cfg.ForwardPath
	if forwardPath == "" {
		forwardPath = DefaultForwardPath
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:     base,
		submitPath:  submitPath,
		forwardPath: forwardPath,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type submitResponse struct {
	Error          *string          `json:"error"`
	ProcessedFiles []model.Artifact `json:"processedFiles"`
}

type forwardRequest struct {
	Filename string `json:"filename"`
}

type forwardResponse struct {
	Error     *string `json:"error"`
	PublicURL string  `json:"public_url"`
}

// Submit sends every file and the selection as one multipart request and
// returns the artifacts the service reports.
func (c *Client) Submit(ctx context.Context, files []model.PendingFile, selection model.SelectionSet) ([]model.Artifact, error) {
	body, contentType, err := encodeBatch(files, selection)
	if err != nil {
		return nil, err
	}

	total := int64(body.Len())
	var reader io.Reader = body
	if c.progress != nil {
		if w := c.progress(total); w != nil {
			reader = io.TeeReader(body, w)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(c.submitPath), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	slog.Debug("Submitting batch to redaction service",
		"url", req.URL.String(),
		"files", len(files),
		"bytes", total)

	var resp submitResponse
	status, err := c.do(req, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &APIError{Message: *resp.Error, StatusCode: status}
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: status %d without error message", ErrMalformedResponse, status)
	}
	if resp.ProcessedFiles == nil {
		return nil, fmt.Errorf("%w: missing processedFiles", ErrMalformedResponse)
	}

	artifacts := make([]model.Artifact, 0, len(resp.ProcessedFiles))
	for _, a := range resp.ProcessedFiles {
		if a.Filename == "" {
			return nil, fmt.Errorf("%w: artifact without filename", ErrMalformedResponse)
		}
		if a.DownloadURL == "" {
			a.DownloadURL = c.endpoint("/download/" + url.PathEscape(a.Filename))
		} else {
			a.DownloadURL = c.resolve(a.DownloadURL)
		}
		artifacts = append(artifacts, a)
	}

	return artifacts, nil
}

// Forward asks the service to publish a processed artifact to durable
// storage and returns its public URL.
func (c *Client) Forward(ctx context.Context, filename string) (string, error) {
	payload, err := json.Marshal(forwardRequest{Filename: filename})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(c.forwardPath), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	slog.Debug("Forwarding artifact to storage", "filename", filename)

	var resp forwardResponse
	status, err := c.do(req, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", &APIError{Message: *resp.Error, StatusCode: status}
	}
	if status < 200 || status > 299 || resp.PublicURL == "" {
		return "", fmt.Errorf("%w: status %d without public_url", ErrMalformedResponse, status)
	}

	return resp.PublicURL, nil
}

// Fetch streams the resource at rawURL into w and returns the byte count.
func (c *Client) Fetch(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(rawURL), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("download failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read download: %w", err)
	}
	return n, nil
}

// do executes req and decodes the JSON body into out. Any status is decoded;
// callers decide how to treat non-2xx answers.
func (c *Client) do(req *http.Request, out any) (int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w (status %d): %v", ErrMalformedResponse, resp.StatusCode, err)
	}

	return resp.StatusCode, nil
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	u.RawPath = ""
	return u.String()
}

// resolve turns a possibly relative locator into an absolute URL.
func (c *Client) resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	return c.baseURL.ResolveReference(u).String()
}

func encodeBatch(files []model.PendingFile, selection model.SelectionSet) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	for _, f := range files {
		part, err := mw.CreateFormFile(filesField, f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to add %s to request: %w", f.Name, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write %s to request: %w", f.Name, err)
		}
	}

	options, err := json.Marshal(selection.Clone())
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal selection: %w", err)
	}
	if err := mw.WriteField(selectionField, string(options)); err != nil {
		return nil, "", fmt.Errorf("failed to write selection: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize request: %w", err)
	}

	return body, mw.FormDataContentType(), nil
}
