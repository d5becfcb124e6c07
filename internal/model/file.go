package model

import (
	"path/filepath"
	"strings"
)

// supportedExtensions mirrors the file types the redaction backend accepts.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tiff": true,
	".bmp":  true,
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tiff": true,
	".bmp":  true,
}

// PendingFile is a locally held file that has not been submitted yet.
type PendingFile struct {
	Name    string
	Content []byte
}

// Size returns the content length in bytes.
func (f PendingFile) Size() int {
	return len(f.Content)
}

// IsImage reports whether the file is an image the preview can render.
func (f PendingFile) IsImage() bool {
	return imageExtensions[strings.ToLower(filepath.Ext(f.Name))]
}

// Clone returns a copy that shares no memory with f.
func (f PendingFile) Clone() PendingFile {
	content := make([]byte, len(f.Content))
	copy(content, f.Content)
	return PendingFile{Name: f.Name, Content: content}
}

// IsSupported reports whether the backend accepts files with this name.
func IsSupported(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}
