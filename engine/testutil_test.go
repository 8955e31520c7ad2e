package engine_test

import "rv32emu/engine"

// Minimal instruction encoders for building test fixtures. Nothing in the
// engine itself needs an assembler (spec.md's program image format is a
// raw flat binary with no symbol table), so these live only in the test
// package.

func opcodeByte(opcode5 uint32) uint32 {
	return (opcode5 << 2) | 0x3
}

func rType(opcode5, funct3, funct7, rd, rs1, rs2 uint32) uint32 {
	return (funct7 << 25) | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | (rd << 7) | opcodeByte(opcode5)
}

func iType(opcode5, funct3, rd, rs1 uint32, imm int32) uint32 {
	return (uint32(imm)&0xFFF)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcodeByte(opcode5)
}

func sType(opcode5, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return ((u>>5)&0x7F)<<25 | rs2<<20 | rs1<<15 | funct3<<12 | (u&0x1F)<<7 | opcodeByte(opcode5)
}

func branchWord(funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	bit12 := (u >> 12) & 0x1
	bits10_5 := (u >> 5) & 0x3F
	bits4_1 := (u >> 1) & 0xF
	bit11 := (u >> 11) & 0x1
	return (bit12 << 31) | (bits10_5 << 25) | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) |
		(bits4_1 << 8) | (bit11 << 7) | opcodeByte(engine.OpcodeBranch)
}

func uType(opcode5, rd, imm uint32) uint32 {
	return (imm & 0xFFFFF000) | rd<<7 | opcodeByte(opcode5)
}

func jalWord(rd uint32, imm int32) uint32 {
	u := uint32(imm)
	bit20 := (u >> 20) & 0x1
	bits10_1 := (u >> 1) & 0x3FF
	bit11 := (u >> 11) & 0x1
	bits19_12 := (u >> 12) & 0xFF
	return (bit20 << 31) | (bits10_1 << 21) | (bit11 << 20) | (bits19_12 << 12) | (rd << 7) | opcodeByte(engine.OpcodeJAL)
}

func addi(rd, rs1 uint32, imm int32) uint32 {
	return iType(engine.OpcodeOpImm, engine.Funct3AddSub, rd, rs1, imm)
}

func lw(rd, rs1 uint32, imm int32) uint32 {
	return iType(engine.OpcodeLoad, engine.Funct3LW, rd, rs1, imm)
}

func sw(rs1, rs2 uint32, imm int32) uint32 {
	return sType(engine.OpcodeStore, engine.Funct3SW, rs1, rs2, imm)
}
