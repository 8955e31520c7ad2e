package engine

// ============================================================================
// RV32I/M encoding constants
// ============================================================================
// These values are fixed by the instruction set and should not be modified.

const (
	// Memory geometry
	MemorySize = 65536          // bytes, fixed per the architecture
	WordCount  = MemorySize / 4 // valid program-counter range [0, WordCount)

	// Register file
	RegisterCount = 32

	// Primary opcode field (bits 6..2 of the instruction word)
	OpcodeLoad   = 0b00000
	OpcodeFence  = 0b00011
	OpcodeOpImm  = 0b00100
	OpcodeAUIPC  = 0b00101
	OpcodeStore  = 0b01000
	OpcodeOp     = 0b01100
	OpcodeLUI    = 0b01101
	OpcodeBranch = 0b11000
	OpcodeJALR   = 0b11001
	OpcodeJAL    = 0b11011
	OpcodeSystem = 0b11100
)

// funct3 selectors for the load family
const (
	Funct3LB  = 0x0
	Funct3LH  = 0x1
	Funct3LW  = 0x2
	Funct3LBU = 0x4
	Funct3LHU = 0x5
)

// funct3 selectors for the store family
const (
	Funct3SB = 0x0
	Funct3SH = 0x1
	Funct3SW = 0x2
)

// funct3 selectors shared by OP and OP-IMM (register-register and
// register-immediate arithmetic)
const (
	Funct3AddSub = 0x0
	Funct3SLL    = 0x1
	Funct3SLT    = 0x2
	Funct3SLTU   = 0x3
	Funct3XOR    = 0x4
	Funct3SRxx   = 0x5 // SRL / SRA, distinguished by bit 30
	Funct3OR     = 0x6
	Funct3AND    = 0x7
)

// funct3 selectors for the branch family
const (
	Funct3BEQ  = 0x0
	Funct3BNE  = 0x1
	Funct3BLT  = 0x4
	Funct3BGE  = 0x5
	Funct3BLTU = 0x6
	Funct3BGEU = 0x7
)

// SignBitMask is the position of the sign bit in a 32-bit word.
const SignBitMask = 0x80000000
