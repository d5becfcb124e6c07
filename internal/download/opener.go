// Package download implements the ways a processed artifact can be retrieved:
// handing its locator to the system browser or saving it to a local directory.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/pkg/browser"
)

// BrowserOpener opens artifact locators in the user's default browser.
type BrowserOpener struct {
	openURL func(url string) error
}

// NewBrowserOpener creates an opener backed by the system browser.
func NewBrowserOpener() *BrowserOpener {
	return &BrowserOpener{openURL: browser.OpenURL}
}

// Open launches the browser on the artifact's download URL.
func (o *BrowserOpener) Open(_ context.Context, artifact model.Artifact) error {
	if artifact.DownloadURL == "" {
		return fmt.Errorf("artifact %s has no download url", artifact.Filename)
	}
	if err := o.openURL(artifact.DownloadURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	slog.Debug("Opened artifact in browser", "filename", artifact.Filename, "url", artifact.DownloadURL)
	return nil
}

// Fetcher retrieves the bytes behind a download URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, w io.Writer) (int64, error)
}

// Saver writes artifacts into a local directory.
type Saver struct {
	fetcher Fetcher
	dir     string
}

// NewSaver creates a saver that stores artifacts in dir.
func NewSaver(fetcher Fetcher, dir string) *Saver {
	return &Saver{fetcher: fetcher, dir: dir}
}

// Dir returns the target directory.
func (s *Saver) Dir() string {
	return s.dir
}

// Open downloads artifact into the target directory. A partially written file
// is removed when the download fails.
func (s *Saver) Open(ctx context.Context, artifact model.Artifact) error {
	path, err := s.Path(artifact)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	f, err := os.Create(path) //nolint:gosec // path is confined to the download directory
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := s.fetcher.Fetch(ctx, artifact.DownloadURL, f)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to save %s: %w", artifact.Filename, err)
	}

	slog.Info("Saved artifact", "filename", artifact.Filename, "path", path, "bytes", n)
	return nil
}

// Path returns where artifact will be written. Names that would escape the
// directory are rejected.
func (s *Saver) Path(artifact model.Artifact) (string, error) {
	name := filepath.Base(strings.ReplaceAll(artifact.Filename, "\\", "/"))
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", fmt.Errorf("invalid artifact filename %q", artifact.Filename)
	}
	return filepath.Join(s.dir, name), nil
}
