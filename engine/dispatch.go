package engine

// opHandler is the executor arm for one composite opcode key.
type opHandler func(e *Engine, d decoded)

// dispatchTable is the flat, dense dispatch table keyed on the 8-bit
// composite opcode (spec.md §9 design notes: branch-predictor-friendly
// dispatch, no nested switch). Entries left nil decode to "illegal
// instruction" in Tick, which covers fence, system/custom opcodes, and any
// funct3 value a family does not define.
var dispatchTable [256]opHandler

func init() {
	fillGroup(OpcodeLUI, execLUI)
	fillGroup(OpcodeAUIPC, execAUIPC)
	fillGroup(OpcodeJAL, execJAL)

	fillKey(OpcodeJALR, 0x0, execJALR)

	fillKey(OpcodeLoad, Funct3LB, execLoad)
	fillKey(OpcodeLoad, Funct3LH, execLoad)
	fillKey(OpcodeLoad, Funct3LW, execLoad)
	fillKey(OpcodeLoad, Funct3LBU, execLoad)
	fillKey(OpcodeLoad, Funct3LHU, execLoad)

	fillKey(OpcodeStore, Funct3SB, execStore)
	fillKey(OpcodeStore, Funct3SH, execStore)
	fillKey(OpcodeStore, Funct3SW, execStore)

	for f3 := uint32(0); f3 < 8; f3++ {
		fillKey(OpcodeOp, f3, execOp)
		fillKey(OpcodeOpImm, f3, execOpImm)
	}

	fillKey(OpcodeBranch, Funct3BEQ, execBranch)
	fillKey(OpcodeBranch, Funct3BNE, execBranch)
	fillKey(OpcodeBranch, Funct3BLT, execBranch)
	fillKey(OpcodeBranch, Funct3BGE, execBranch)
	fillKey(OpcodeBranch, Funct3BLTU, execBranch)
	fillKey(OpcodeBranch, Funct3BGEU, execBranch)
}

func fillGroup(opcode5 uint32, h opHandler) {
	base := opcode5 << 3
	for f3 := uint32(0); f3 < 8; f3++ {
		dispatchTable[base|f3] = h
	}
}

func fillKey(opcode5, funct3 uint32, h opHandler) {
	dispatchTable[(opcode5<<3)|funct3] = h
}
