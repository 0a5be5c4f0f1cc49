// Package store provides the file-backed document primitives shared by the
// catalog cache, telemetry log, profile, and statistics snapshot: JSON load
// with loud corruption errors, deep-merged saves, and per-path locking so
// each read-modify-write cycle has a single writer.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aterrell/shortcuts-mcp/internal/errors"
)

// Store serializes document access per file path. All methods on the same
// Store are safe for concurrent use; two Stores over the same files are not.
type Store struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty Store.
func New() *Store {
	return &Store{locks: make(map[string]*sync.Mutex)}
}

// pathLock returns the mutex guarding path, creating it on first use.
func (s *Store) pathLock(path string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[path]
	if !ok {
		l = &sync.Mutex{}
		s.locks[path] = l
	}
	return l
}

// Locked runs fn while holding the per-path mutex for path. Load, Write, and
// SaveMerged acquire the same mutex themselves, so fn must use the unlocked
// read/write helpers, not the locking ones.
func (s *Store) Locked(path string, fn func() error) error {
	l := s.pathLock(path)
	l.Lock()
	defer l.Unlock()
	return fn()
}

// Load reads the JSON document at path into out. Returns false with no error
// when the file is absent. A file that exists but cannot be read or parsed is
// a hard STORE_CORRUPT error: callers that can treat corruption as a cache
// miss (the catalog cache) check the code and refresh; callers that cannot
// (profile, statistics) propagate it.
func (s *Store) Load(path string, out any) (bool, error) {
	var found bool
	err := s.Locked(path, func() error {
		var err error
		found, err = ReadDocument(path, out)
		return err
	})
	return found, err
}

// ReadDocument is the unlocked body of Load.
func ReadDocument(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.NewStoreCorrupt(path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, errors.NewStoreCorrupt(path, err)
	}
	return true, nil
}

// WriteDocument is the unlocked body of Write: marshal, write to a temp file
// in the same directory, rename into place so a crash never leaves a
// half-written document.
func WriteDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewInternal(fmt.Errorf("marshal %s: %w", path, err))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.NewInternal(fmt.Errorf("create directory for %s: %w", path, err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(err)
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return errors.NewInternal(fmt.Errorf("write %s: %w", path, err))
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.NewInternal(fmt.Errorf("replace %s: %w", path, err))
	}
	return nil
}

// Write replaces the document at path wholesale.
func (s *Store) Write(path string, v any) error {
	return s.Locked(path, func() error {
		return WriteDocument(path, v)
	})
}

// SaveMerged deep-merges partial into the existing document at path and
// writes the result. The existing document must parse; corruption here is a
// hard error, never an overwrite.
func (s *Store) SaveMerged(path string, partial map[string]any) error {
	return s.Locked(path, func() error {
		existing := make(map[string]any)
		if _, err := ReadDocument(path, &existing); err != nil {
			return err
		}
		return WriteDocument(path, DeepMerge(existing, partial))
	})
}

// DeepMerge combines overlay into base key-by-key. Nested objects merge
// recursively; arrays and scalars are replaced wholesale. Neither input is
// mutated.
func DeepMerge(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		if bm, ok := out[k].(map[string]any); ok {
			if om, ok := v.(map[string]any); ok {
				out[k] = DeepMerge(bm, om)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// FileExists reports whether path exists as a regular file. Any stat failure,
// permission errors included, counts as absent rather than an error.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// FreshWithin reports whether timestamp falls within ttl of now. A missing
// timestamp is never fresh; an unparseable one counts as fresh, matching the
// long-standing behavior callers depend on for hand-edited documents.
func FreshWithin(timestamp string, now time.Time, ttl time.Duration) bool {
	if timestamp == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return true
	}
	return now.Sub(t) < ttl
}
