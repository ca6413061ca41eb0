package insts

// Instruction encoders. These build raw instruction words from fields and
// are the inverse of the decoder. They are used to assemble boot images and
// test programs without an external toolchain.

// EncodeR encodes an R-type instruction word.
func EncodeR(opcode, funct3, funct7 uint32, rd, rs1, rs2 uint8) Inst {
	return Inst(opcode&0x7F |
		uint32(rd&0x1F)<<7 |
		funct3&0x7<<12 |
		uint32(rs1&0x1F)<<15 |
		uint32(rs2&0x1F)<<20 |
		funct7<<25)
}

// EncodeI encodes an I-type instruction word. The low 12 bits of imm are
// used.
func EncodeI(opcode, funct3 uint32, rd, rs1 uint8, imm int32) Inst {
	return Inst(opcode&0x7F |
		uint32(rd&0x1F)<<7 |
		funct3&0x7<<12 |
		uint32(rs1&0x1F)<<15 |
		uint32(imm)<<20)
}

// EncodeS encodes an S-type instruction word.
func EncodeS(opcode, funct3 uint32, rs1, rs2 uint8, imm int32) Inst {
	u := uint32(imm)
	return Inst(opcode&0x7F |
		u&0x1F<<7 |
		funct3&0x7<<12 |
		uint32(rs1&0x1F)<<15 |
		uint32(rs2&0x1F)<<20 |
		u>>5&0x7F<<25)
}

// EncodeB encodes a B-type instruction word. imm must be even.
func EncodeB(opcode, funct3 uint32, rs1, rs2 uint8, imm int32) Inst {
	u := uint32(imm)
	return Inst(opcode&0x7F |
		u>>11&0x1<<7 |
		u>>1&0xF<<8 |
		funct3&0x7<<12 |
		uint32(rs1&0x1F)<<15 |
		uint32(rs2&0x1F)<<20 |
		u>>5&0x3F<<25 |
		u>>12&0x1<<31)
}

// EncodeU encodes a U-type instruction word. The low 12 bits of imm are
// ignored.
func EncodeU(opcode uint32, rd uint8, imm int32) Inst {
	return Inst(opcode&0x7F |
		uint32(rd&0x1F)<<7 |
		uint32(imm)&0xFFFFF000)
}

// EncodeJ encodes a J-type instruction word. imm must be even.
func EncodeJ(opcode uint32, rd uint8, imm int32) Inst {
	u := uint32(imm)
	return Inst(opcode&0x7F |
		uint32(rd&0x1F)<<7 |
		u>>12&0xFF<<12 |
		u>>11&0x1<<20 |
		u>>1&0x3FF<<21 |
		u>>20&0x1<<31)
}

// Mnemonic helpers.

// LUI encodes lui rd, imm (imm is the full 32-bit value; low 12 bits must
// be zero).
func LUI(rd uint8, imm int32) Inst { return EncodeU(opcodeLUI, rd, imm) }

// AUIPC encodes auipc rd, imm.
func AUIPC(rd uint8, imm int32) Inst { return EncodeU(opcodeAUIPC, rd, imm) }

// JAL encodes jal rd, offset.
func JAL(rd uint8, offset int32) Inst { return EncodeJ(opcodeJAL, rd, offset) }

// JALR encodes jalr rd, offset(rs1).
func JALR(rd, rs1 uint8, offset int32) Inst {
	return EncodeI(opcodeJALR, 0b000, rd, rs1, offset)
}

// BEQ encodes beq rs1, rs2, offset.
func BEQ(rs1, rs2 uint8, offset int32) Inst {
	return EncodeB(opcodeBranch, 0b000, rs1, rs2, offset)
}

// BNE encodes bne rs1, rs2, offset.
func BNE(rs1, rs2 uint8, offset int32) Inst {
	return EncodeB(opcodeBranch, 0b001, rs1, rs2, offset)
}

// BLT encodes blt rs1, rs2, offset.
func BLT(rs1, rs2 uint8, offset int32) Inst {
	return EncodeB(opcodeBranch, 0b100, rs1, rs2, offset)
}

// BGE encodes bge rs1, rs2, offset.
func BGE(rs1, rs2 uint8, offset int32) Inst {
	return EncodeB(opcodeBranch, 0b101, rs1, rs2, offset)
}

// LW encodes lw rd, offset(rs1).
func LW(rd, rs1 uint8, offset int32) Inst {
	return EncodeI(opcodeLoad, 0b010, rd, rs1, offset)
}

// SW encodes sw rs2, offset(rs1).
func SW(rs2, rs1 uint8, offset int32) Inst {
	return EncodeS(opcodeStore, 0b010, rs1, rs2, offset)
}

// ADDI encodes addi rd, rs1, imm.
func ADDI(rd, rs1 uint8, imm int32) Inst {
	return EncodeI(opcodeOpImm, 0b000, rd, rs1, imm)
}

// SLTI encodes slti rd, rs1, imm.
func SLTI(rd, rs1 uint8, imm int32) Inst {
	return EncodeI(opcodeOpImm, 0b010, rd, rs1, imm)
}

// XORI encodes xori rd, rs1, imm.
func XORI(rd, rs1 uint8, imm int32) Inst {
	return EncodeI(opcodeOpImm, 0b100, rd, rs1, imm)
}

// ORI encodes ori rd, rs1, imm.
func ORI(rd, rs1 uint8, imm int32) Inst {
	return EncodeI(opcodeOpImm, 0b110, rd, rs1, imm)
}

// ANDI encodes andi rd, rs1, imm.
func ANDI(rd, rs1 uint8, imm int32) Inst {
	return EncodeI(opcodeOpImm, 0b111, rd, rs1, imm)
}

// ADD encodes add rd, rs1, rs2.
func ADD(rd, rs1, rs2 uint8) Inst {
	return EncodeR(opcodeOp, 0b000, 0, rd, rs1, rs2)
}

// SUB encodes sub rd, rs1, rs2.
func SUB(rd, rs1, rs2 uint8) Inst {
	return EncodeR(opcodeOp, 0b000, 0b0100000, rd, rs1, rs2)
}

// SLT encodes slt rd, rs1, rs2.
func SLT(rd, rs1, rs2 uint8) Inst {
	return EncodeR(opcodeOp, 0b010, 0, rd, rs1, rs2)
}

// XOR encodes xor rd, rs1, rs2.
func XOR(rd, rs1, rs2 uint8) Inst {
	return EncodeR(opcodeOp, 0b100, 0, rd, rs1, rs2)
}

// OR encodes or rd, rs1, rs2.
func OR(rd, rs1, rs2 uint8) Inst {
	return EncodeR(opcodeOp, 0b110, 0, rd, rs1, rs2)
}

// AND encodes and rd, rs1, rs2.
func AND(rd, rs1, rs2 uint8) Inst {
	return EncodeR(opcodeOp, 0b111, 0, rd, rs1, rs2)
}

// ECALL encodes the environment-call instruction.
func ECALL() Inst { return EncodeI(opcodeSystem, 0, 0, 0, 0) }

// EBREAK encodes the breakpoint instruction.
func EBREAK() Inst { return EncodeI(opcodeSystem, 0, 0, 0, 1) }

// MTCR encodes mtcr cr, rs1 (control-register write).
func MTCR(cr uint16, rs1 uint8) Inst {
	return EncodeI(opcodeCustom0, 0b000, 0, rs1, int32(cr))
}

// MFCR encodes mfcr rd, cr (control-register read).
func MFCR(rd uint8, cr uint16) Inst {
	return EncodeI(opcodeCustom0, 0b001, rd, 0, int32(cr))
}

// ERET encodes the trap-return instruction.
func ERET() Inst { return EncodeI(opcodeCustom0, 0b010, 0, 0, 0) }

// HALT encodes the halt-to-idle instruction.
func HALT() Inst { return EncodeI(opcodeCustom0, 0b111, 0, 0, 0) }

// VSETCFG encodes vsetcfg rs1, rs2 (requested int/fp vector registers).
func VSETCFG(rs1, rs2 uint8) Inst {
	return EncodeR(opcodeCustom1, 0b000, 0, 0, rs1, rs2)
}

// VSETVL encodes vsetvl rd, rs1.
func VSETVL(rd, rs1 uint8) Inst {
	return EncodeR(opcodeCustom1, 0b001, 0, rd, rs1, 0)
}

// VF encodes vf offset(rs1), starting lane streams at rs1+offset.
func VF(rs1 uint8, offset int32) Inst {
	return EncodeI(opcodeCustom1, 0b010, 0, rs1, offset)
}

// STOP encodes the lane stream terminator.
func STOP() Inst { return EncodeI(opcodeCustom1, 0b111, 0, 0, 0) }
