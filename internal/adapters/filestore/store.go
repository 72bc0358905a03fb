// Package filestore implements ports.DocumentStore on plain JSON files.
// This is the entire transport between the simulation controller and the
// tool server: whole-file overwrites on the writer side, parse-or-retry on
// the reader side. Saves go through a temp file + rename so a reader never
// observes a half-written document on POSIX filesystems; readers still
// tolerate torn or truncated content for interop with writers that
// overwrite in place.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/marten/simbridge/internal/ports"
)

// Store reads and writes whole-file JSON documents.
type Store struct{}

// New returns a document store. Construction has no filesystem side effects.
func New() *Store {
	return &Store{}
}

// Load reads and parses the document at path.
// A missing file is (nil, nil) — the normal "producer hasn't written yet"
// condition. Unreadable or malformed content returns a wrapped error that
// callers log and then treat identically to missing data.
func (s *Store) Load(path string) (ports.Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	var doc ports.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// Save overwrites the document at path. The document is marshaled with
// two-space indent (both sides of the channel are routinely inspected by
// hand) and written to a sibling temp file first, then renamed into place.
func (s *Store) Save(path string, doc ports.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
