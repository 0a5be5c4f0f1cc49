package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aterrell/shortcuts-mcp/internal/errors"
	"github.com/aterrell/shortcuts-mcp/internal/store"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user-profile.json")
	return NewStore(store.New(), path, 0), path
}

func TestLoad_MissingProfileIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	p, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(p.Annotations) != 0 || len(p.Preferences) != 0 {
		t.Errorf("empty profile expected, got %+v", p)
	}
}

func TestLoad_CorruptProfileIsHardError(t *testing.T) {
	s, path := newTestStore(t)
	if err := os.WriteFile(path, []byte("{oops"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := s.Load()
	if !errors.Is(err, errors.ErrStoreCorrupt) {
		t.Fatalf("Load error = %v, want STORE_CORRUPT", err)
	}
}

func TestRecordPurpose_AppendAndDedupe(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.RecordPurpose("Log Water", "hydration tracking"); err != nil {
		t.Fatalf("RecordPurpose failed: %v", err)
	}

	// Case/whitespace-normalized duplicate is skipped.
	got, err := s.RecordPurpose("Log Water", "  Hydration   TRACKING ")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"hydration tracking"}) {
		t.Errorf("purposes = %v, want single deduped entry", got)
	}

	got, err = s.RecordPurpose("Log Water", "afternoon reminder")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"hydration tracking", "afternoon reminder"}) {
		t.Errorf("purposes = %v, want most-recent-last order", got)
	}
}

func TestRecordPurpose_CapAtEight(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < 12; i++ {
		if _, err := s.RecordPurpose("Focus Mode", fmt.Sprintf("purpose %d", i)); err != nil {
			t.Fatal(err)
		}
	}

	p, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	got := p.Annotations["Focus Mode"]
	if len(got) != DefaultMaxPurposes {
		t.Fatalf("purpose list length = %d, want %d", len(got), DefaultMaxPurposes)
	}
	if got[0] != "purpose 4" || got[len(got)-1] != "purpose 11" {
		t.Errorf("oldest entries should drop first, got %v", got)
	}
}

func TestRecordPurpose_ConfiguredCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-profile.json")
	s := NewStore(store.New(), path, 2)

	for i := 0; i < 5; i++ {
		if _, err := s.RecordPurpose("Focus Mode", fmt.Sprintf("purpose %d", i)); err != nil {
			t.Fatal(err)
		}
	}

	p, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Annotations["Focus Mode"]; !reflect.DeepEqual(got, []string{"purpose 3", "purpose 4"}) {
		t.Errorf("purposes = %v, want the two most recent", got)
	}
}

func TestRecordPurpose_Validation(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.RecordPurpose("", "x"); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("empty shortcut: err = %v, want INVALID_REQUEST", err)
	}
	if _, err := s.RecordPurpose("Focus Mode", "   "); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("blank purpose: err = %v, want INVALID_REQUEST", err)
	}
}

func TestRecordPurpose_PreservesSiblingKeys(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save(map[string]any{
		"preferences": map[string]any{"greeting": "hello"},
		"context":     map[string]any{"city": "Lisbon"},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RecordPurpose("Log Water", "hydration"); err != nil {
		t.Fatal(err)
	}

	p, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if p.Preferences["greeting"] != "hello" {
		t.Errorf("preferences erased by RecordPurpose: %+v", p.Preferences)
	}
	if p.Context["city"] != "Lisbon" {
		t.Errorf("context erased by RecordPurpose: %+v", p.Context)
	}
}

func TestRecordPurpose_TwoShortcutsIndependent(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.RecordPurpose("A", "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RecordPurpose("B", "second"); err != nil {
		t.Fatal(err)
	}

	ann, err := s.Annotations()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ann["A"], []string{"first"}) || !reflect.DeepEqual(ann["B"], []string{"second"}) {
		t.Errorf("annotations = %v", ann)
	}
}

func TestNormalizePurpose(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  Hydration   Tracking ", "hydration tracking"},
		{"ALREADY lower", "already lower"},
		{"tabs\tand\nnewlines", "tabs and newlines"},
	}
	for _, tt := range tests {
		if got := normalizePurpose(tt.in); got != tt.want {
			t.Errorf("normalizePurpose(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
