package ops

import (
	"context"
	"reflect"
	"testing"
)

func TestGetCatalog(t *testing.T) {
	env, lister, _ := newTestEnv(t)

	out, err := GetCatalog(context.Background(), env)
	if err != nil {
		t.Fatalf("GetCatalog failed: %v", err)
	}
	if out.Count != 3 {
		t.Errorf("Count = %d, want 3", out.Count)
	}
	if out.Shortcuts["Log Water"].ID != "ABC-222" {
		t.Errorf("Log Water = %+v", out.Shortcuts["Log Water"])
	}
	if lister.calls != 1 {
		t.Errorf("lister calls = %d, want 1", lister.calls)
	}
}

func TestGetCatalog_IncludesAnnotations(t *testing.T) {
	env, _, _ := newTestEnv(t)

	if _, err := RecordPurpose(context.Background(), env, AnnotateInput{
		Shortcut: "Log Water",
		Purpose:  "hydration tracking",
	}); err != nil {
		t.Fatal(err)
	}

	out, err := GetCatalog(context.Background(), env)
	if err != nil {
		t.Fatal(err)
	}
	got := out.Shortcuts["Log Water"].Purposes
	if !reflect.DeepEqual(got, []string{"hydration tracking"}) {
		t.Errorf("purposes = %v", got)
	}
}

func TestRecordPurpose_ResolvesName(t *testing.T) {
	env, _, _ := newTestEnv(t)

	out, err := RecordPurpose(context.Background(), env, AnnotateInput{
		Shortcut: "FOCUS MODE",
		Purpose:  "deep work block",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Shortcut != "Focus Mode" {
		t.Errorf("Shortcut = %q, want canonical name", out.Shortcut)
	}
}
