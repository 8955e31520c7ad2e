// Package loader reads a raw program image from disk into the engine.
// The image format is a flat little-endian byte stream with no header, no
// relocation, and no symbol table (spec.md §6) — the assembler-aware
// loading the teacher repo does (segments, directives, symbol tables) has
// no counterpart here since this ISA has no assembler.
package loader

import (
	"fmt"
	"os"

	"rv32emu/engine"
)

// LoadFile reads path and copies it into e's memory starting at byte
// offset 0, execution's fixed entry point (spec.md §6). An image larger
// than the 64 KiB address space is rejected outright, rather than silently
// truncated, since a truncated load would start the engine on a partial
// instruction stream.
func LoadFile(e *engine.Engine, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is an operator-supplied CLI argument
	if err != nil {
		return fmt.Errorf("failed to read image %q: %w", path, err)
	}
	return LoadBytes(e, data)
}

// LoadBytes copies a raw image into e's memory, same rejection rule as
// LoadFile.
func LoadBytes(e *engine.Engine, data []byte) error {
	if len(data) > engine.MemorySize {
		return fmt.Errorf("image is %d bytes, exceeds the %d byte address space", len(data), engine.MemorySize)
	}
	e.LoadImage(data)
	return nil
}
