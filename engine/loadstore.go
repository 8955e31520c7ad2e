package engine

// execLoad implements LB/LH/LW/LBU/LHU. Effective address is
// rs1 + sext12(imm[31:20]) (spec.md §4.5); bounds and alignment violations
// fault "out of bounds" rather than returning a partial value.
func execLoad(e *Engine, d decoded) {
	ea := e.Registers[d.rs1] + uint32(signExtend12(d.word))

	var value uint32
	switch d.funct3 {
	case Funct3LB:
		b, ok := e.Memory.ReadByte(ea)
		if !ok {
			e.fault(FaultOutOfBounds, "out of bounds")
			return
		}
		value = uint32(int32(int8(b)))
	case Funct3LH:
		h, ok := e.Memory.ReadHalfword(ea)
		if !ok {
			e.fault(FaultOutOfBounds, "out of bounds")
			return
		}
		value = uint32(int32(int16(h)))
	case Funct3LW:
		w, ok := e.Memory.ReadWord(ea)
		if !ok {
			e.fault(FaultOutOfBounds, "out of bounds")
			return
		}
		value = w
	case Funct3LBU:
		b, ok := e.Memory.ReadByte(ea)
		if !ok {
			e.fault(FaultOutOfBounds, "out of bounds")
			return
		}
		value = uint32(b)
	case Funct3LHU:
		h, ok := e.Memory.ReadHalfword(ea)
		if !ok {
			e.fault(FaultOutOfBounds, "out of bounds")
			return
		}
		value = uint32(h)
	}

	e.setRegister(d.rd, value)
	e.advance()
}

// execStore implements SB/SH/SW. The S-type immediate splits across the
// instruction word: the low 5 bits live where the decoder reads rd, the
// sign-extended high 7 bits come from bits [31:25] (spec.md §4.5, §9).
func execStore(e *Engine, d decoded) {
	imm := (signExtend7(d.word) << 5) | int32(d.rd)
	ea := e.Registers[d.rs1] + uint32(imm)
	rs2 := e.Registers[d.rs2]

	var ok bool
	switch d.funct3 {
	case Funct3SB:
		ok = e.Memory.WriteByte(ea, byte(rs2))
	case Funct3SH:
		ok = e.Memory.WriteHalfword(ea, uint16(rs2))
	case Funct3SW:
		ok = e.Memory.WriteWord(ea, rs2)
	}

	if !ok {
		e.fault(FaultOutOfBounds, "out of bounds")
		return
	}
	e.advance()
}
