package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nestcut/nestcut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultSpacing = 4.0
	cfg.DefaultAllowRotation = true
	cfg.RecentProjects = []string{"/tmp/proj1.json", "/tmp/proj2.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultSpacing != 4.0 {
		t.Errorf("expected DefaultSpacing=4.0, got %f", loaded.DefaultSpacing)
	}
	if !loaded.DefaultAllowRotation {
		t.Error("expected DefaultAllowRotation=true")
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultTargetWidth != defaults.DefaultTargetWidth {
		t.Errorf("expected default target width %f, got %f", defaults.DefaultTargetWidth, cfg.DefaultTargetWidth)
	}
	if cfg.RecentProjects == nil {
		t.Error("expected RecentProjects to be non-nil")
	}
}

func TestLoadAppConfigCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for corrupt config, got nil")
	}
}

func TestLoadAppConfigNilRecentProjects(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"default_spacing": 2}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentProjects == nil {
		t.Error("expected RecentProjects to be initialized, got nil")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".nestcut" {
		t.Errorf("expected .nestcut directory, got %s", filepath.Dir(path))
	}
}
