package engine_test

import (
	"testing"

	"rv32emu/engine"
)

func mulDivWord(funct3, rd, rs1, rs2 uint32) uint32 {
	return rType(engine.OpcodeOp, funct3, 0x01, rd, rs1, rs2)
}

func TestMulWraps(t *testing.T) {
	e := engine.New()
	e.Registers[1] = 0x80000000 // -2^31
	e.Registers[2] = 2
	e.Memory.LoadImage(wordsToBytes([]uint32{mulDivWord(0x0, 3, 1, 2)}))

	e.Tick()

	if e.Registers[3] != 0 {
		t.Errorf("MUL result = 0x%X, want 0 (wraps)", e.Registers[3])
	}
}

func TestMulhSignedSigned(t *testing.T) {
	e := engine.New()
	e.Registers[1] = 0xFFFFFFFF // -1
	e.Registers[2] = 0xFFFFFFFF // -1
	e.Memory.LoadImage(wordsToBytes([]uint32{mulDivWord(0x1, 3, 1, 2)}))

	e.Tick()

	if e.Registers[3] != 0 {
		t.Errorf("MULH(-1,-1) = 0x%X, want 0 (product is 1, high word 0)", e.Registers[3])
	}
}

func TestMulhuUnsignedUnsigned(t *testing.T) {
	e := engine.New()
	e.Registers[1] = 0xFFFFFFFF
	e.Registers[2] = 0xFFFFFFFF
	e.Memory.LoadImage(wordsToBytes([]uint32{mulDivWord(0x3, 3, 1, 2)}))

	e.Tick()

	if e.Registers[3] != 0xFFFFFFFE {
		t.Errorf("MULHU = 0x%X, want 0xFFFFFFFE", e.Registers[3])
	}
}

func TestDivByZeroReturnsAllOnes(t *testing.T) {
	e := engine.New()
	e.Registers[1] = 42
	e.Registers[2] = 0
	e.Memory.LoadImage(wordsToBytes([]uint32{mulDivWord(0x4, 3, 1, 2)}))

	e.Tick()

	if e.Registers[3] != 0xFFFFFFFF {
		t.Errorf("DIV by zero = 0x%X, want 0xFFFFFFFF", e.Registers[3])
	}
}

func TestDivuByZeroReturnsAllOnes(t *testing.T) {
	e := engine.New()
	e.Registers[1] = 42
	e.Registers[2] = 0
	e.Memory.LoadImage(wordsToBytes([]uint32{mulDivWord(0x5, 3, 1, 2)}))

	e.Tick()

	if e.Registers[3] != 0xFFFFFFFF {
		t.Errorf("DIVU by zero = 0x%X, want 0xFFFFFFFF", e.Registers[3])
	}
}

func TestRemByZeroReturnsDividend(t *testing.T) {
	e := engine.New()
	e.Registers[1] = 42
	e.Registers[2] = 0
	e.Memory.LoadImage(wordsToBytes([]uint32{mulDivWord(0x6, 3, 1, 2)}))

	e.Tick()

	if e.Registers[3] != 42 {
		t.Errorf("REM by zero = %d, want 42", e.Registers[3])
	}
}

func TestDivOverflowIntMinByNegOne(t *testing.T) {
	e := engine.New()
	e.Registers[1] = 0x80000000 // INT32_MIN
	e.Registers[2] = 0xFFFFFFFF // -1
	e.Memory.LoadImage(wordsToBytes([]uint32{mulDivWord(0x4, 3, 1, 2)}))

	e.Tick()

	if e.Registers[3] != 0x80000000 {
		t.Errorf("DIV(INT32_MIN, -1) = 0x%X, want 0x80000000", e.Registers[3])
	}
}

func TestRemOverflowIntMinByNegOne(t *testing.T) {
	e := engine.New()
	e.Registers[1] = 0x80000000
	e.Registers[2] = 0xFFFFFFFF
	e.Memory.LoadImage(wordsToBytes([]uint32{mulDivWord(0x6, 3, 1, 2)}))

	e.Tick()

	if e.Registers[3] != 0 {
		t.Errorf("REM(INT32_MIN, -1) = %d, want 0", e.Registers[3])
	}
}

func TestDivuOrdinary(t *testing.T) {
	e := engine.New()
	e.Registers[1] = 100
	e.Registers[2] = 7
	e.Memory.LoadImage(wordsToBytes([]uint32{mulDivWord(0x5, 3, 1, 2)}))

	e.Tick()

	if e.Registers[3] != 14 {
		t.Errorf("DIVU(100,7) = %d, want 14", e.Registers[3])
	}
}
