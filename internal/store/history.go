package store

import (
	"github.com/agenthands/notekeeper/internal/core/model"
)

// HistoryFile persists the running conversation as [{"role","text"}, ...].
type HistoryFile struct {
	path string
}

func NewHistoryFile(path string) *HistoryFile {
	return &HistoryFile{path: path}
}

func (h *HistoryFile) Path() string { return h.path }

// Load returns the saved turns. A missing file reads as no turns; an
// undecodable one returns an error wrapping ErrCorruptCollection.
func (h *HistoryFile) Load() ([]model.Turn, error) {
	return readArray[model.Turn](h.path)
}

// Save rewrites the whole file with the given turns.
func (h *HistoryFile) Save(turns []model.Turn) error {
	return writeArray(h.path, turns)
}

// Clear resets the file to an empty array.
func (h *HistoryFile) Clear() error {
	return h.Save(nil)
}
