// Package engine implements the instruction-by-instruction interpreter for
// a 32-bit integer RISC architecture (the RV32I baseline plus the M
// extension). It owns the architectural state exclusively: the register
// file, word-indexed program counter, 64 KiB linear memory, and the sticky
// termination status. There is no global mutable state — every value the
// engine touches hangs off a single *Engine, per the engine's design notes
// on encapsulating what a systems rewrite would otherwise keep in globals.
package engine

import "fmt"

// Engine is the complete architectural state machine (spec.md §2).
type Engine struct {
	Registers [RegisterCount]uint32 // Registers[0] is hardwired to zero
	PC        uint32                // word index into Memory, not a byte address
	Memory    *Memory

	status Status
}

// New returns a freshly initialized engine: zero registers, zero memory,
// PC at word 0, status running.
func New() *Engine {
	e := &Engine{Memory: NewMemory()}
	e.Init()
	return e
}

// Init resets all architectural state (spec.md §6 init()).
func (e *Engine) Init() {
	for i := range e.Registers {
		e.Registers[i] = 0
	}
	e.PC = 0
	e.Memory.Reset()
	e.status = Status{Kind: StatusRunning}
}

// LoadImage copies a raw little-endian byte stream into memory starting at
// offset 0 (spec.md §6 load_image()). Bytes beyond the 64 KiB window are
// dropped.
func (e *Engine) LoadImage(data []byte) {
	e.Memory.LoadImage(data)
}

// Status reports the engine's current termination state.
func (e *Engine) Status() Status {
	return e.status
}

// fault sets the sticky fault flag. A no-op if the engine has already
// terminated (the first fault/halt wins; this should never be reached in
// practice since every caller returns immediately after faulting, but it
// keeps the sticky-flag invariant airtight under future refactors).
func (e *Engine) fault(kind FaultKind, message string) {
	if e.status.Kind != StatusRunning {
		return
	}
	e.status = Status{Kind: StatusFaulted, Fault: kind, Message: message}
}

// end sets the sticky graceful-halt flag.
func (e *Engine) end() {
	if e.status.Kind != StatusRunning {
		return
	}
	e.status = Status{Kind: StatusEnded}
}

// branchTo redirects the program counter to the given word index, faulting
// "out of bounds" if it falls outside the valid range (spec.md §4.6, §4.7).
func (e *Engine) branchTo(word uint32) {
	if word >= WordCount {
		e.fault(FaultOutOfBounds, "out of bounds")
		return
	}
	e.PC = word
}

// advance moves the program counter to the next sequential word.
func (e *Engine) advance() {
	e.PC++
}

// setRegister writes rd unconditionally; writes to register 0 are rendered
// harmless by the zeroing in Tick, not by special-casing here (spec.md §3).
func (e *Engine) setRegister(rd uint32, value uint32) {
	e.Registers[rd] = value
}

// Tick consumes exactly one instruction (spec.md §4.9). Precondition:
// Status().Running() is true; calling Tick after termination is forbidden
// by contract and is a silent no-op rather than a panic, so a host that
// forgets to check Status() fails safe instead of corrupting state.
func (e *Engine) Tick() {
	if e.status.Kind != StatusRunning {
		return
	}

	e.Registers[0] = 0
	defer func() { e.Registers[0] = 0 }()

	word, ok := e.Memory.ReadWord(e.PC * 4)
	if !ok {
		e.fault(FaultOutOfBounds, "out of bounds")
		return
	}

	d := decode(word)
	if h := dispatchTable[d.compositeKey()]; h != nil {
		h(e, d)
	} else {
		e.fault(FaultIllegalInstruction, "illegal instruction")
	}
}

// DumpState renders a one-line summary, in the idiom of a host debug log
// line rather than the full register dump (which is the host CLI's job,
// per spec.md §6).
func (e *Engine) DumpState() string {
	return fmt.Sprintf("PC=0x%08X status=%s", e.PC<<2, e.status)
}
