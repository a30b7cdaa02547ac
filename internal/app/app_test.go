package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// writeTestROM writes a minimal one-bank NROM iNES image whose reset vector
// points at an infinite JMP loop, so a frame's worth of stepping never
// halts on an unimplemented opcode.
func writeTestROM(t *testing.T, path string) {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(1) // 1 x 16KB PRG bank
	buf.WriteByte(0) // CHR RAM
	buf.Write(make([]byte, 10))

	prg := make([]byte, 0x4000)
	prg[0] = 0x4C // JMP $8000
	prg[1] = 0x00
	prg[2] = 0x80
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	buf.Write(prg)

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write test ROM: %v", err)
	}
}

func TestNewApplicationUsesDefaultsWithoutConfigFile(t *testing.T) {
	app, err := NewApplication("")
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	if app.Config().Video.Backend != "ebiten" {
		t.Fatalf("default backend = %q, want ebiten", app.Config().Video.Backend)
	}
}

func TestLoadROMInsertsCartridgeAndStepFrameAdvances(t *testing.T) {
	dir := t.TempDir()
	romPath := filepath.Join(dir, "test.nes")
	writeTestROM(t, romPath)

	app, err := NewApplication("")
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	if err := app.LoadROM(romPath); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	if err := app.stepFrame(); err != nil {
		t.Fatalf("stepFrame: %v", err)
	}
	if app.console.FrameCount() == 0 {
		t.Fatal("expected at least one completed frame after stepFrame")
	}
}

func TestLoadROMRejectsMissingFile(t *testing.T) {
	app, err := NewApplication("")
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	if err := app.LoadROM("/nonexistent/path.nes"); err == nil {
		t.Fatal("expected an error loading a nonexistent ROM file")
	}
}

func TestSelectBackendHeadlessReturnsNoPresentationBackend(t *testing.T) {
	app, err := NewApplication("")
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	app.config.Video.Backend = "headless"
	if b := app.selectBackend(); b != nil {
		t.Fatalf("selectBackend() = %v, want nil for headless config", b)
	}
}
