package engine

// execLUI implements LUI: rd <- upper 20 bits of the instruction, zero
// extended into the low 12 bits (spec.md §4.4). funct3 is not part of this
// instruction's encoding; the dispatch table routes all eight funct3 slots
// under OpcodeLUI here.
func execLUI(e *Engine, d decoded) {
	e.setRegister(d.rd, d.word&0xFFFFF000)
	e.advance()
}

// execAUIPC implements AUIPC: rd <- byte address of this instruction plus
// the upper-immediate (spec.md §4.4).
func execAUIPC(e *Engine, d decoded) {
	e.setRegister(d.rd, (e.PC<<2)+(d.word&0xFFFFF000))
	e.advance()
}
