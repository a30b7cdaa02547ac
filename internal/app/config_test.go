package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFileWritesDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gones.json")

	cfg := NewConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config to be written to %s: %v", path, err)
	}
}

func TestLoadFromFileReadsBackSavedValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gones.json")

	original := NewConfig()
	original.Video.Backend = "sdl2"
	original.Window.Scale = 3
	if err := original.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded := NewConfig()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.Video.Backend != "sdl2" {
		t.Fatalf("Video.Backend = %q, want sdl2", loaded.Video.Backend)
	}
	if loaded.Window.Scale != 3 {
		t.Fatalf("Window.Scale = %d, want 3", loaded.Window.Scale)
	}
}

func TestValidateRepairsInvalidValues(t *testing.T) {
	cfg := &Config{
		Window: WindowConfig{Scale: -1},
		Video:  VideoConfig{Backend: "", Brightness: -1, Contrast: 0, Saturation: -5},
	}
	cfg.validate()

	if cfg.Window.Scale != 1 {
		t.Fatalf("Window.Scale = %d, want repaired to 1", cfg.Window.Scale)
	}
	if cfg.Video.Backend != "ebiten" {
		t.Fatalf("Video.Backend = %q, want repaired to ebiten", cfg.Video.Backend)
	}
	if cfg.Video.Brightness != 1.0 || cfg.Video.Contrast != 1.0 || cfg.Video.Saturation != 1.0 {
		t.Fatalf("video adjustments = %+v, want all repaired to 1.0", cfg.Video)
	}
}
