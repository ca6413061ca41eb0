// Package insts provides RISC-V instruction definitions and decoding.
//
// This package implements decoding of RISC-V machine code into structured
// instruction representations. It supports:
//   - RV32I base subset: LUI, AUIPC, JAL, JALR, branches, LW/SW, OP-IMM, OP
//   - SYSTEM: ECALL, EBREAK
//   - Control-register moves (custom-0): MTCR, MFCR, ERET, HALT
//   - Vector control (custom-1): VSETCFG, VSETVL, VF, STOP
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x02A00093) // ADDI x1, x0, 42
//	fmt.Printf("Op: %v, Rd: %d, Imm: %d\n", inst.Op, inst.Rd, inst.Imm)
package insts

// Inst is a raw 32-bit instruction word.
type Inst uint32

// Bits returns the raw encoding.
func (i Inst) Bits() uint32 {
	return uint32(i)
}

// Op represents a decoded operation.
type Op uint16

// Operations.
const (
	OpUnknown Op = iota
	OpLUI
	OpAUIPC
	OpJAL
	OpJALR
	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpLW
	OpSW
	OpADDI
	OpSLTI
	OpXORI
	OpORI
	OpANDI
	OpADD
	OpSUB
	OpSLT
	OpXOR
	OpOR
	OpAND
	OpECALL
	OpEBREAK
	OpMTCR
	OpMFCR
	OpERET
	OpHALT
	OpVSETCFG
	OpVSETVL
	OpVF
	OpSTOP
)

// Major opcodes (bits 6:0).
const (
	opcodeLUI    = 0b0110111
	opcodeAUIPC  = 0b0010111
	opcodeJAL    = 0b1101111
	opcodeJALR   = 0b1100111
	opcodeBranch = 0b1100011
	opcodeLoad   = 0b0000011
	opcodeStore  = 0b0100011
	opcodeOpImm  = 0b0010011
	opcodeOp     = 0b0110011
	opcodeSystem = 0b1110011

	// custom-0 carries control-register and halt operations; custom-1
	// carries the vector-control operations.
	opcodeCustom0 = 0b0001011
	opcodeCustom1 = 0b0101011
)

// Instruction represents a decoded RISC-V instruction.
type Instruction struct {
	Op Op

	// Register operands. A field not used by the encoding format is zero.
	Rd  uint8
	Rs1 uint8
	Rs2 uint8

	// Imm is the sign-extended immediate. For MTCR/MFCR it holds the
	// control-register index.
	Imm int64
}

// Field extraction helpers. Offsets follow the RISC-V base encoding.

func (i Inst) opcode() uint32 { return uint32(i) & 0x7F }
func (i Inst) rd() uint8      { return uint8(uint32(i)>>7) & 0x1F }
func (i Inst) funct3() uint32 { return uint32(i) >> 12 & 0x7 }
func (i Inst) rs1() uint8     { return uint8(uint32(i)>>15) & 0x1F }
func (i Inst) rs2() uint8     { return uint8(uint32(i)>>20) & 0x1F }
func (i Inst) funct7() uint32 { return uint32(i) >> 25 }

// immI extracts the sign-extended I-type immediate (bits 31:20).
func (i Inst) immI() int64 {
	return int64(int32(uint32(i)) >> 20)
}

// immS extracts the sign-extended S-type immediate.
func (i Inst) immS() int64 {
	hi := int64(int32(uint32(i)&0xFE000000) >> 20)
	lo := int64(uint32(i) >> 7 & 0x1F)
	return hi | lo
}

// immB extracts the sign-extended B-type immediate (always even).
func (i Inst) immB() int64 {
	u := uint32(i)
	imm := int64(int32(u)>>31) << 12
	imm |= int64(u>>25&0x3F) << 5
	imm |= int64(u>>8&0xF) << 1
	imm |= int64(u>>7&0x1) << 11
	return imm
}

// immU extracts the U-type immediate (upper 20 bits, low 12 zero).
func (i Inst) immU() int64 {
	return int64(int32(uint32(i) & 0xFFFFF000))
}

// immJ extracts the sign-extended J-type immediate (always even).
func (i Inst) immJ() int64 {
	u := uint32(i)
	imm := int64(int32(u)>>31) << 20
	imm |= int64(u>>12&0xFF) << 12
	imm |= int64(u>>20&0x1) << 11
	imm |= int64(u>>21&0x3FF) << 1
	return imm
}
