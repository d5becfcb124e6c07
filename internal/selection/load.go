package selection

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/redact-flow/internal/model"
)

// LoadFiles reads each path into a PendingFile named after its base name.
// Files the backend does not accept are rejected before anything is read.
func LoadFiles(paths []string) ([]model.PendingFile, error) {
	for _, path := range paths {
		if !model.IsSupported(path) {
			return nil, fmt.Errorf("unsupported file type: %s (expected pdf, png, jpg, jpeg, tiff or bmp)", path)
		}
	}

	files := make([]model.PendingFile, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, model.PendingFile{
			Name:    filepath.Base(path),
			Content: content,
		})
	}

	return files, nil
}
