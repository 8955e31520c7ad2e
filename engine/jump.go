package engine

// execJAL implements JAL: link register write plus a 21-bit signed,
// word-granular branch (spec.md §4.7). A zero 20-bit payload is the
// self-loop halt idiom (`jal x0, 0`): the engine ends without touching rd
// or the program counter.
func execJAL(e *Engine, d decoded) {
	if (d.word >> 12) == 0 {
		e.end()
		return
	}

	linkValue := (e.PC + 1) << 2

	// J-type immediate: imm[20]=31, imm[19:12]=19..12, imm[11]=20, imm[10:1]=30..21, imm[0]=0.
	bit20 := (d.word >> 31) & 0x1
	bits19_12 := (d.word >> 12) & 0xFF
	bit11 := (d.word >> 20) & 0x1
	bits10_1 := (d.word >> 21) & 0x3FF

	raw := (bit20 << 20) | (bits19_12 << 12) | (bit11 << 11) | (bits10_1 << 1)
	offset := int32(raw<<11) >> 11 // sign-extend the 21-bit field

	target := int32(e.PC) + (offset >> 1)

	e.setRegister(d.rd, linkValue)
	e.branchTo(uint32(target))
}

// execJALR implements JALR: link register write, then redirect to
// rs1 + sext12(imm), converted from a byte address to a word index (which
// implicitly clears the low bit, per spec.md §4.7).
func execJALR(e *Engine, d decoded) {
	linkValue := (e.PC + 1) << 2
	targetByte := e.Registers[d.rs1] + uint32(signExtend12(d.word))

	e.setRegister(d.rd, linkValue)
	e.branchTo(targetByte >> 2)
}
