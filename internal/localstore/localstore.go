// Package localstore is a small key→JSON-blob store on the local filesystem.
// One file per key, JSON-encoded value. Reads repair to the caller's zero
// value on missing or corrupt data; it never returns a parse error to the
// caller. It backs best-effort concerns only (view counts, UI preferences),
// never durable post data.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var validKey = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Store reads and writes one JSON file per key under a base directory.
type Store struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create local store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get unmarshals the stored value for key into dest. Missing files and
// malformed JSON leave dest untouched and return ok = false, nil error:
// corrupt local state is repaired by the next Set, not surfaced.
func (s *Store) Get(key string, dest interface{}) (bool, error) {
	if !validKey.MatchString(key) {
		return false, fmt.Errorf("invalid store key %q", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, nil
	}
	return true, nil
}

// Set persists value under key, replacing any previous blob. The write goes
// through a temp file + rename so a crash never leaves a half-written blob.
func (s *Store) Set(key string, value interface{}) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid store key %q", key)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}
