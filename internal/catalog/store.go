package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lexiqai/voice-studio/internal/apperr"
)

// ErrCatalogNotFound is returned by Load before any catalog has been stored
var ErrCatalogNotFound = errors.New("voice catalog not found")

// Store persists the voice catalog
type Store interface {
	Load() ([]VoiceDescriptor, error)
	Save(voices []VoiceDescriptor) error
	Exists() bool
}

// FileStore keeps the catalog in a single JSON file.
// Saves replace the file atomically, so readers see either the old or the new catalog.
type FileStore struct {
	Path string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the stored catalog
func (s *FileStore) Load() ([]VoiceDescriptor, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &apperr.StoreError{Op: "load", Err: fmt.Errorf("%w: %s", ErrCatalogNotFound, s.Path)}
		}
		return nil, &apperr.StoreError{Op: "load", Err: err}
	}

	var voices []VoiceDescriptor
	if err := json.Unmarshal(data, &voices); err != nil {
		return nil, &apperr.StoreError{Op: "load", Err: fmt.Errorf("parse %s: %w", s.Path, err)}
	}
	return voices, nil
}

// Save overwrites the catalog with voices
func (s *FileStore) Save(voices []VoiceDescriptor) error {
	if voices == nil {
		voices = []VoiceDescriptor{}
	}
	data, err := json.MarshalIndent(voices, "", "  ")
	if err != nil {
		return &apperr.StoreError{Op: "save", Err: fmt.Errorf("marshal: %w", err)}
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &apperr.StoreError{Op: "save", Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return &apperr.StoreError{Op: "save", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &apperr.StoreError{Op: "save", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &apperr.StoreError{Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &apperr.StoreError{Op: "save", Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return &apperr.StoreError{Op: "save", Err: err}
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return &apperr.StoreError{Op: "save", Err: err}
	}
	return nil
}

// Exists reports whether a catalog file is present
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}
