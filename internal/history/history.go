// Package history stores values entered at variable prompts.
//
// The file is plain text, one value per line, oldest first. It is read once
// when the store is opened and rewritten in full by Save.
package history

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is an in-memory copy of the history file.
type Store struct {
	path       string
	entries    []string
	maxEntries int
	dirty      bool
}

// Open loads the history at path. A missing file yields an empty store.
// maxEntries caps the number of kept values; 0 means unlimited.
func Open(path string, maxEntries int) (*Store, error) {
	s := &Store{path: path, maxEntries: max(maxEntries, 0)}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), "\r"); line != "" {
			s.entries = append(s.entries, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	s.trim()
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Entries returns all values, oldest first.
func (s *Store) Entries() []string {
	return append([]string(nil), s.entries...)
}

// Len returns the number of values held.
func (s *Store) Len() int { return len(s.entries) }

// Add appends value. Empty and multi-line values are not recorded.
func (s *Store) Add(value string) {
	if value == "" || strings.ContainsAny(value, "\r\n") {
		return
	}
	s.entries = append(s.entries, value)
	s.trim()
	s.dirty = true
}

func (s *Store) trim() {
	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		s.entries = s.entries[len(s.entries)-s.maxEntries:]
	}
}

// Save rewrites the history file if anything was added since Open.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	var buf bytes.Buffer
	for _, e := range s.entries {
		buf.WriteString(e)
		buf.WriteByte('\n')
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save history file: %w", err)
	}
	s.dirty = false
	return nil
}
