package engine

// decoded holds the fields the decoder extracts uniformly from every
// instruction word (spec.md §4.1). Immediate reconstruction is deferred to
// each executor arm; the decoder does not classify instruction format
// beyond the composite dispatch key.
type decoded struct {
	word    uint32
	opcode5 uint32
	funct3  uint32
	rd      uint32
	rs1     uint32
	rs2     uint32
}

func decode(word uint32) decoded {
	return decoded{
		word:    word,
		opcode5: (word >> 2) & 0x1F,
		funct3:  (word >> 12) & 0x7,
		rd:      (word >> 7) & 0x1F,
		rs1:     (word >> 15) & 0x1F,
		rs2:     (word >> 20) & 0x1F,
	}
}

// compositeKey forms the 8-bit dispatch key: the 5-bit primary opcode
// concatenated with the 3-bit funct3 field.
func (d decoded) compositeKey() uint8 {
	return uint8((d.opcode5 << 3) | d.funct3)
}

// signExtend12 sign-extends bits [31:20] of word to a 32-bit signed value.
// Used by loads and by I-type/JALR immediates, all of which carry their
// 12-bit immediate in the instruction's top bits.
func signExtend12(word uint32) int32 {
	return int32(word) >> 20
}

// signExtend7 sign-extends bits [31:25] of word to a 32-bit signed value,
// the upper half of the S-type store immediate (spec.md §4.5, §9).
func signExtend7(word uint32) int32 {
	return int32(word) >> 25
}
