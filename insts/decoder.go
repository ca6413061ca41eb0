package insts

// Decoder decodes raw RISC-V instruction words into Instruction structs.
// The decoder is stateless; a single instance may be shared freely.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit instruction word.
// Unrecognized encodings decode to OpUnknown rather than failing; the
// execution layer turns those into illegal-instruction traps.
func (d *Decoder) Decode(word Inst) *Instruction {
	switch word.opcode() {
	case opcodeLUI:
		return &Instruction{Op: OpLUI, Rd: word.rd(), Imm: word.immU()}
	case opcodeAUIPC:
		return &Instruction{Op: OpAUIPC, Rd: word.rd(), Imm: word.immU()}
	case opcodeJAL:
		return &Instruction{Op: OpJAL, Rd: word.rd(), Imm: word.immJ()}
	case opcodeJALR:
		if word.funct3() != 0 {
			return &Instruction{Op: OpUnknown}
		}
		return &Instruction{
			Op: OpJALR, Rd: word.rd(), Rs1: word.rs1(), Imm: word.immI(),
		}
	case opcodeBranch:
		return d.decodeBranch(word)
	case opcodeLoad:
		if word.funct3() != 0b010 {
			return &Instruction{Op: OpUnknown}
		}
		return &Instruction{
			Op: OpLW, Rd: word.rd(), Rs1: word.rs1(), Imm: word.immI(),
		}
	case opcodeStore:
		if word.funct3() != 0b010 {
			return &Instruction{Op: OpUnknown}
		}
		return &Instruction{
			Op: OpSW, Rs1: word.rs1(), Rs2: word.rs2(), Imm: word.immS(),
		}
	case opcodeOpImm:
		return d.decodeOpImm(word)
	case opcodeOp:
		return d.decodeOp(word)
	case opcodeSystem:
		return d.decodeSystem(word)
	case opcodeCustom0:
		return d.decodeCustom0(word)
	case opcodeCustom1:
		return d.decodeCustom1(word)
	}
	return &Instruction{Op: OpUnknown}
}

func (d *Decoder) decodeBranch(word Inst) *Instruction {
	var op Op
	switch word.funct3() {
	case 0b000:
		op = OpBEQ
	case 0b001:
		op = OpBNE
	case 0b100:
		op = OpBLT
	case 0b101:
		op = OpBGE
	default:
		return &Instruction{Op: OpUnknown}
	}
	return &Instruction{
		Op: op, Rs1: word.rs1(), Rs2: word.rs2(), Imm: word.immB(),
	}
}

func (d *Decoder) decodeOpImm(word Inst) *Instruction {
	var op Op
	switch word.funct3() {
	case 0b000:
		op = OpADDI
	case 0b010:
		op = OpSLTI
	case 0b100:
		op = OpXORI
	case 0b110:
		op = OpORI
	case 0b111:
		op = OpANDI
	default:
		return &Instruction{Op: OpUnknown}
	}
	return &Instruction{
		Op: op, Rd: word.rd(), Rs1: word.rs1(), Imm: word.immI(),
	}
}

func (d *Decoder) decodeOp(word Inst) *Instruction {
	var op Op
	switch word.funct3() {
	case 0b000:
		switch word.funct7() {
		case 0:
			op = OpADD
		case 0b0100000:
			op = OpSUB
		default:
			return &Instruction{Op: OpUnknown}
		}
	case 0b010:
		op = OpSLT
	case 0b100:
		op = OpXOR
	case 0b110:
		op = OpOR
	case 0b111:
		op = OpAND
	default:
		return &Instruction{Op: OpUnknown}
	}
	if op != OpADD && op != OpSUB && word.funct7() != 0 {
		return &Instruction{Op: OpUnknown}
	}
	return &Instruction{
		Op: op, Rd: word.rd(), Rs1: word.rs1(), Rs2: word.rs2(),
	}
}

func (d *Decoder) decodeSystem(word Inst) *Instruction {
	if word.funct3() != 0 || word.rd() != 0 || word.rs1() != 0 {
		return &Instruction{Op: OpUnknown}
	}
	switch word.immI() {
	case 0:
		return &Instruction{Op: OpECALL}
	case 1:
		return &Instruction{Op: OpEBREAK}
	}
	return &Instruction{Op: OpUnknown}
}

func (d *Decoder) decodeCustom0(word Inst) *Instruction {
	switch word.funct3() {
	case 0b000: // mtcr cr[imm] <- rs1
		return &Instruction{Op: OpMTCR, Rs1: word.rs1(), Imm: word.immI()}
	case 0b001: // mfcr rd <- cr[imm]
		return &Instruction{Op: OpMFCR, Rd: word.rd(), Imm: word.immI()}
	case 0b010:
		return &Instruction{Op: OpERET}
	case 0b111:
		return &Instruction{Op: OpHALT}
	}
	return &Instruction{Op: OpUnknown}
}

func (d *Decoder) decodeCustom1(word Inst) *Instruction {
	switch word.funct3() {
	case 0b000:
		return &Instruction{Op: OpVSETCFG, Rs1: word.rs1(), Rs2: word.rs2()}
	case 0b001:
		return &Instruction{Op: OpVSETVL, Rd: word.rd(), Rs1: word.rs1()}
	case 0b010: // vf: fetch a lane stream at rs1+imm
		return &Instruction{Op: OpVF, Rs1: word.rs1(), Imm: word.immI()}
	case 0b111:
		return &Instruction{Op: OpSTOP}
	}
	return &Instruction{Op: OpUnknown}
}
