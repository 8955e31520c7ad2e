package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"rv32emu/engine"
	"rv32emu/loader"
)

func TestLoadFilePopulatesMemory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.bin")
	image := []byte{0x93, 0x05, 0x50, 0x00} // addi x11, x0, 5

	if err := os.WriteFile(path, image, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	e := engine.New()
	if err := loader.LoadFile(e, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	e.Tick()
	if e.Registers[11] != 5 {
		t.Errorf("x11 = %d, want 5", e.Registers[11])
	}
}

func TestLoadFileMissingReturnsError(t *testing.T) {
	e := engine.New()
	if err := loader.LoadFile(e, "/nonexistent/path/image.bin"); err == nil {
		t.Error("expected an error for a missing image file")
	}
}

func TestLoadBytesRejectsOversizedImage(t *testing.T) {
	e := engine.New()
	oversized := make([]byte, engine.MemorySize+1)

	if err := loader.LoadBytes(e, oversized); err == nil {
		t.Error("expected an error for an image larger than the address space")
	}
}

func TestLoadBytesAcceptsExactSize(t *testing.T) {
	e := engine.New()
	full := make([]byte, engine.MemorySize)

	if err := loader.LoadBytes(e, full); err != nil {
		t.Errorf("LoadBytes: unexpected error for a full-size image: %v", err)
	}
}
