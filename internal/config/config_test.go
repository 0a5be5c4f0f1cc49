package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CatalogTTLHours != 24 || cfg.StatsTTLHours != 24 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.CatalogTTL() != 24*time.Hour {
		t.Errorf("CatalogTTL = %v", cfg.CatalogTTL())
	}
}

func TestLoad_FileOverridesScalars(t *testing.T) {
	dir := t.TempDir()
	content := `{"catalog_ttl_hours": 6, "max_purposes": 4, "data_dir": "/tmp/alt", "disabled_tools": ["shortcuts_view"]}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CatalogTTLHours != 6 {
		t.Errorf("CatalogTTLHours = %d, want 6", cfg.CatalogTTLHours)
	}
	if cfg.StatsTTLHours != 24 {
		t.Errorf("StatsTTLHours = %d, want default 24", cfg.StatsTTLHours)
	}
	if cfg.MaxPurposes != 4 {
		t.Errorf("MaxPurposes = %d, want 4", cfg.MaxPurposes)
	}
	if cfg.DataDir != "/tmp/alt" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if !reflect.DeepEqual(cfg.DisabledTools, []string{"shortcuts_view"}) {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{bad"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestMerge_DeduplicatesDisabledTools(t *testing.T) {
	base := &Config{DisabledTools: []string{"a", "b"}}
	overlay := &Config{DisabledTools: []string{"b", "c"}}

	got := Merge(base, overlay)
	if !reflect.DeepEqual(got.DisabledTools, []string{"a", "b", "c"}) {
		t.Errorf("DisabledTools = %v", got.DisabledTools)
	}
}
