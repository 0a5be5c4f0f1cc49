// Package profile persists user preferences, context, and the per-shortcut
// purpose history. All writes go through deep merge: a partial update never
// erases unrelated keys.
package profile

import (
	"regexp"
	"strings"

	"github.com/aterrell/shortcuts-mcp/internal/errors"
	"github.com/aterrell/shortcuts-mcp/internal/store"
)

// DefaultMaxPurposes caps the purpose history kept per shortcut; oldest
// drop first.
const DefaultMaxPurposes = 8

// Profile is the durable user-profile document.
type Profile struct {
	Preferences map[string]any      `json:"preferences,omitempty"`
	Context     map[string]any      `json:"context,omitempty"`
	Annotations map[string][]string `json:"annotations,omitempty"`
}

// Store persists the profile document at a fixed path.
type Store struct {
	store *store.Store
	path  string
	max   int
}

// NewStore creates a profile store persisted at path. maxPurposes bounds
// the per-shortcut purpose history; zero or negative means the default.
func NewStore(st *store.Store, path string, maxPurposes int) *Store {
	if maxPurposes <= 0 {
		maxPurposes = DefaultMaxPurposes
	}
	return &Store{store: st, path: path, max: maxPurposes}
}

// Load reads the profile, returning an empty one when the file is absent.
// A corrupt profile is a hard error: it holds user-authored history that
// must not be silently replaced.
func (s *Store) Load() (*Profile, error) {
	p := &Profile{}
	if _, err := s.store.Load(s.path, p); err != nil {
		return nil, err
	}
	if p.Annotations == nil {
		p.Annotations = make(map[string][]string)
	}
	return p, nil
}

// Save deep-merges partial into the stored profile.
func (s *Store) Save(partial map[string]any) error {
	return s.store.SaveMerged(s.path, partial)
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalizePurpose lowercases, trims, and collapses internal whitespace so
// duplicate detection ignores cosmetic differences.
func normalizePurpose(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// RecordPurpose appends purpose to the shortcut's annotation history. A
// purpose that normalizes to an existing entry is skipped; the list is
// truncated to the most recent maxPurposes. Persisted via deep merge, and
// the whole cycle runs under the profile file's lock so two concurrent
// annotations cannot drop each other.
func (s *Store) RecordPurpose(shortcut, purpose string) ([]string, error) {
	if strings.TrimSpace(shortcut) == "" {
		return nil, errors.NewInvalidRequest("shortcut is required")
	}
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, errors.NewInvalidRequest("purpose is required")
	}

	var updated []string
	err := s.store.Locked(s.path, func() error {
		p := Profile{}
		if _, err := store.ReadDocument(s.path, &p); err != nil {
			return err
		}

		existing := p.Annotations[shortcut]
		norm := normalizePurpose(purpose)
		for _, prior := range existing {
			if normalizePurpose(prior) == norm {
				updated = existing
				return nil
			}
		}

		updated = append(existing, purpose)
		if len(updated) > s.max {
			updated = updated[len(updated)-s.max:]
		}

		existingDoc := make(map[string]any)
		if _, err := store.ReadDocument(s.path, &existingDoc); err != nil {
			return err
		}
		merged := store.DeepMerge(existingDoc, map[string]any{
			"annotations": map[string]any{shortcut: toAny(updated)},
		})
		return store.WriteDocument(s.path, merged)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Annotations returns the purpose map for catalog enrichment. Missing
// profile means no annotations; corruption propagates.
func (s *Store) Annotations() (map[string][]string, error) {
	p, err := s.Load()
	if err != nil {
		return nil, err
	}
	return p.Annotations, nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
