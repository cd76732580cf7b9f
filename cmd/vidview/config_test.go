package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileKeepsDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Listen != ":8090" {
		t.Errorf("Listen = %q, want default :8090", cfg.Listen)
	}
	if cfg.Width != 640 || cfg.Height != 360 {
		t.Errorf("size = %gx%g, want default 640x360", cfg.Width, cfg.Height)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vidview.yaml")
	body := "listen: \":9000\"\nwidth: 320\nresize_mode: contain\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Listen != ":9000" {
		t.Errorf("Listen = %q, want :9000", cfg.Listen)
	}
	if cfg.Width != 320 {
		t.Errorf("Width = %g, want 320", cfg.Width)
	}
	if cfg.ResizeMode != "contain" {
		t.Errorf("ResizeMode = %q, want contain", cfg.ResizeMode)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Height != 360 {
		t.Errorf("Height = %g, want default 360", cfg.Height)
	}
	if cfg.JPEGQuality != 80 {
		t.Errorf("JPEGQuality = %d, want default 80", cfg.JPEGQuality)
	}
}

func TestLoadConfig_BadYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vidview.yaml")
	if err := os.WriteFile(path, []byte("listen: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
