// Package selection holds the in-session state of the redaction workflow:
// the pending files, the per-category selection and the chosen use case.
package selection

import (
	"log/slog"
	"sync"

	"github.com/Veraticus/redact-flow/internal/model"
)

// Resolver computes a selection from a use case and filename.
type Resolver interface {
	Resolve(useCase model.UseCase, filename string) model.SelectionSet
}

// Snapshot is an independent copy of the store state, used to build one
// submission without holding the store.
type Snapshot struct {
	Selection model.SelectionSet
	UseCase   model.UseCase
	Files     []model.PendingFile
}

// Store is the authoritative holder of session state. Every transition
// leaves the selection total.
type Store struct {
	resolver  Resolver
	selection model.SelectionSet
	preview   *model.PendingFile
	useCase   model.UseCase
	files     []model.PendingFile
	mu        sync.RWMutex
}

// NewStore creates an empty store that uses resolver to derive selections.
func NewStore(resolver Resolver) *Store {
	return &Store{
		resolver:  resolver,
		selection: model.DefaultSelection(),
	}
}

// SetFiles replaces the pending files wholesale. With files present the
// preview target is refreshed and, when a use case is selected, the selection
// is re-resolved against the preview file's name. An empty list resets the
// store.
func (s *Store) SetFiles(files []model.PendingFile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(files) == 0 {
		s.reset()
		return
	}

	s.files = make([]model.PendingFile, len(files))
	copy(s.files, files)

	preview := choosePreview(s.files)
	s.preview = &preview

	if s.useCase.IsSet() {
		s.selection = s.resolver.Resolve(s.useCase, preview.Name)
	}

	slog.Debug("Pending files replaced",
		"count", len(s.files),
		"preview", preview.Name,
		"use_case", string(s.useCase))
}

// SetUseCase stores useCase and recomputes the selection from the first
// held file, or defers the filename heuristic when there are no files.
func (s *Store) SetUseCase(useCase model.UseCase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.useCase = useCase

	var filename string
	if len(s.files) > 0 {
		filename = s.files[0].Name
	}
	s.selection = s.resolver.Resolve(useCase, filename)
}

// ToggleCategory flips one flag by hand. The use case label is kept.
func (s *Store) ToggleCategory(c model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.selection.Toggle(c)
	if err != nil {
		return err
	}
	s.selection = next
	return nil
}

// Clear empties the store. It is equivalent to SetFiles(nil).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Store) reset() {
	s.files = nil
	s.preview = nil
	s.useCase = model.UseCaseNone
	s.selection = model.DefaultSelection()
}

// Files returns a copy of the pending file list.
func (s *Store) Files() []model.PendingFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.PendingFile, len(s.files))
	copy(out, s.files)
	return out
}

// Selection returns a copy of the current selection.
func (s *Store) Selection() model.SelectionSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection.Clone()
}

// UseCase returns the selected use case.
func (s *Store) UseCase() model.UseCase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.useCase
}

// Preview returns the file chosen for preview rendering, if any.
func (s *Store) Preview() (model.PendingFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.preview == nil {
		return model.PendingFile{}, false
	}
	return *s.preview, true
}

// Snapshot returns a deep copy of the state for one submission.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files := make([]model.PendingFile, len(s.files))
	for i, f := range s.files {
		files[i] = f.Clone()
	}

	return Snapshot{
		Files:     files,
		Selection: s.selection.Clone(),
		UseCase:   s.useCase,
	}
}

// choosePreview prefers the first image, falling back to the first file.
func choosePreview(files []model.PendingFile) model.PendingFile {
	for _, f := range files {
		if f.IsImage() {
			return f
		}
	}
	return files[0]
}
