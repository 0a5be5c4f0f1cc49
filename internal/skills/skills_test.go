package skills

import (
	"strings"
	"testing"
)

func TestAll(t *testing.T) {
	docs, err := All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("doc count = %d, want 2", len(docs))
	}

	// Sorted by name.
	if docs[0].Name != "running-shortcuts" || docs[1].Name != "usage-insights" {
		t.Errorf("order = %s, %s", docs[0].Name, docs[1].Name)
	}

	for _, d := range docs {
		if d.Title == "" {
			t.Errorf("%s has no title", d.Name)
		}
		if d.Summary == "" {
			t.Errorf("%s has no summary", d.Name)
		}
		if !strings.HasPrefix(d.URI(), "skill://") {
			t.Errorf("%s URI = %q", d.Name, d.URI())
		}
	}
}

func TestGet(t *testing.T) {
	d, err := Get("running-shortcuts")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if d.Title != "Running Shortcuts" {
		t.Errorf("Title = %q", d.Title)
	}
	if !strings.Contains(d.Text, "shortcuts_list") {
		t.Error("full markdown text expected")
	}

	if _, err := Get("nope"); err == nil {
		t.Error("Get of unknown doc should fail")
	}
}

func TestDescribe_Headingless(t *testing.T) {
	title, summary := describe([]byte("just a paragraph\n"))
	if title != "" {
		t.Errorf("title = %q, want empty", title)
	}
	if summary != "" {
		t.Errorf("summary = %q, want empty without a title", summary)
	}
}
