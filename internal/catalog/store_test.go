package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexiqai/voice-studio/internal/apperr"
)

func TestFileStore_SaveLoad(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "voices.json"))

	voices := []VoiceDescriptor{
		{DisplayName: "Jenny", ShortName: "en-US-JennyNeural", Locale: "en-US", Gender: "Female", SampleRateHertz: 24000, WordsPerMinute: 150, FlagImageURL: "https://flagcdn.com/w40/us.png", Engine: "vercelli"},
		{DisplayName: "Ryan", ShortName: "en-GB-RyanNeural", Locale: "en-GB", Gender: "Male", SampleRateHertz: 24000, WordsPerMinute: 160, FlagImageURL: "https://flagcdn.com/w40/gb.png", Engine: "vercelli"},
	}
	if err := store.Save(voices); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists() {
		t.Fatal("Expected catalog to exist after save")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 || loaded[1] != voices[1] {
		t.Errorf("Expected loaded catalog to match saved one, got %+v", loaded)
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "voices.json"))

	if err := store.Save([]VoiceDescriptor{{ShortName: "a"}, {ShortName: "b"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save([]VoiceDescriptor{{ShortName: "c"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ShortName != "c" {
		t.Errorf("Expected catalog to be replaced, got %+v", loaded)
	}
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "voices.json"))

	if err := store.Save([]VoiceDescriptor{{ShortName: "a"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "voices.json" {
		t.Errorf("Expected only voices.json in dir, got %d entries", len(entries))
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "voices.json"))

	if store.Exists() {
		t.Error("Expected catalog not to exist")
	}

	_, err := store.Load()
	if !errors.Is(err, ErrCatalogNotFound) {
		t.Errorf("Expected ErrCatalogNotFound, got %v", err)
	}
	if apperr.KindOf(err) != apperr.KindStore {
		t.Errorf("Expected store error kind, got %v", apperr.KindOf(err))
	}
}

func TestFileStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.json")
	if err := os.WriteFile(path, []byte("[{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := NewFileStore(path).Load()
	if apperr.KindOf(err) != apperr.KindStore {
		t.Errorf("Expected store error for malformed catalog, got %v", err)
	}
}

func TestFileStore_SaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.json")
	if err := NewFileStore(path).Save(nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected empty JSON array, got %q", data)
	}
}
